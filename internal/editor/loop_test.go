package editor_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliofy/ted/internal/render"
)

type fakeUI struct {
	fakeEcho
	input [][]byte
	idx   int
}

func (f *fakeUI) ReadByteRun(buf []byte) ([]byte, error) {
	if f.idx >= len(f.input) {
		return nil, io.EOF
	}
	b := f.input[f.idx]
	f.idx++
	n := copy(buf, b)
	return buf[:n], nil
}

func (f *fakeUI) DrawFrame(frame []byte, cursor render.Anchor) error { return nil }
func (f *fakeUI) EchoClear() error                                  { return nil }
func (f *fakeUI) ScreenAnchor() render.Anchor                       { return render.Anchor{Row: 1, Col: 1} }

func TestRunInsertsTypedTextThenQuitsOnKillTed(t *testing.T) {
	e := newTestEditor("")
	ui := &fakeUI{input: [][]byte{
		{'a'},
		{'b'},
		{0x18},      // C-x
		{0x1B, 'c'}, // M-c
	}}

	err := e.Run(ui)
	require.NoError(t, err)
	assert.True(t, e.Quit)
	assert.Equal(t, "ab", bufString(e))
}

func TestRunStopsOnReadError(t *testing.T) {
	e := newTestEditor("")
	ui := &fakeUI{}
	err := e.Run(ui)
	assert.ErrorIs(t, err, io.EOF)
}

func TestRunReportsUndefinedKey(t *testing.T) {
	e := newTestEditor("")
	ui := &fakeUI{input: [][]byte{
		{0x18}, // C-x
		{0x1B}, // plain Escape, unbound under the C-x prefix
		{0x18},
		{0x03},
	}}

	err := e.Run(ui)
	require.NoError(t, err)
	assert.True(t, e.Quit)
	found := false
	for _, m := range ui.errs {
		if m != "" {
			found = true
		}
	}
	assert.True(t, found, "expected an undefined-key error to be echoed")
}
