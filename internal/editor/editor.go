// Package editor holds the running state of a ted session — buffer,
// viewport, mark ring, search results, kill buffer, and file metadata —
// and implements the command set and command loop that mutate them.
// Grounded throughout on the struct ed / main_loop of
// _examples/original_source/src/ted.c.
package editor

import (
	"go.uber.org/zap"

	"github.com/cliofy/ted/internal/char"
	"github.com/cliofy/ted/internal/fileio"
	"github.com/cliofy/ted/internal/gapbuf"
	"github.com/cliofy/ted/internal/key"
	"github.com/cliofy/ted/internal/mark"
	"github.com/cliofy/ted/internal/viewport"
)

// Editor is all mutable session state, exclusively owned by the command
// loop goroutine (spec §3 "Lifecycle": single-threaded ownership).
type Editor struct {
	Buf  *gapbuf.Buffer
	View viewport.State
	Mark mark.Ring

	Meta        *fileio.Metadata
	NewlineMode fileio.NewlineMode

	SearchResults []int
	SearchCurrent int

	KillBuffer []char.Char

	IsReadOnly bool
	IsDirty    bool

	LastKey   key.Key
	IsPrefix  bool
	PrefixArg int

	PreserveEcho bool

	NLines, NCols, Tabstop int

	Quit bool
	Term TerminalControl

	Log *zap.Logger
}

// TerminalControl is the subset of *term.Terminal the editor needs to
// suspend and resume raw mode around an external subprocess (search's
// query prompt, or C-z job control), without the editor package
// importing term directly.
type TerminalControl interface {
	Restore() error
	Setup() error
	ReserveScreen() error
	ClearScreen() error
}

// New constructs an Editor from a freshly loaded file's characters and
// metadata, mirroring loadf's final state reset.
func New(chars []char.Char, meta *fileio.Metadata, mode fileio.NewlineMode, nlines, ncols, tabstop int, logger *zap.Logger) *Editor {
	buf := gapbuf.New(len(chars) + 4096)
	for _, c := range chars {
		buf.Insert(c)
	}
	buf.MovePoint(0)

	e := &Editor{
		Buf:         buf,
		Meta:        meta,
		NewlineMode: mode,
		NLines:      nlines,
		NCols:       ncols,
		Tabstop:     tabstop,
		Log:         logger,
	}
	e.View.Reset(nlines, ncols, tabstop, buf)
	return e
}

// repeat returns the prefix-argument repeat count, defaulting to 1 and
// clearing the prefix state — the "size_t repeat = ed.is_prefix ? ...;
// ed.is_prefix = false;" idiom repeated at the top of nearly every
// original command.
func (e *Editor) repeat() int {
	n := 1
	if e.IsPrefix {
		n = e.PrefixArg
	}
	e.IsPrefix = false
	return n
}

func (e *Editor) logCommand(name string) {
	if e.Log == nil {
		return
	}
	e.Log.Debug("command",
		zap.String("name", name),
		zap.Int("point", e.Buf.Point()),
		zap.Bool("dirty", e.IsDirty),
		zap.Bool("readOnly", e.IsReadOnly),
	)
}
