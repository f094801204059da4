package editor_test

import (
	"io/fs"
	"time"

	"github.com/cliofy/ted/internal/char"
	"github.com/cliofy/ted/internal/editor"
	"github.com/cliofy/ted/internal/fileio"
)

func newTestEditor(s string) *editor.Editor {
	chars := make([]char.Char, 0, len(s))
	for _, r := range s {
		if r == '\n' {
			chars = append(chars, char.NewNewline())
		} else {
			chars = append(chars, char.NewFromRune(r))
		}
	}
	meta := &fileio.Metadata{
		Path:                  "/tmp/ted-test.txt",
		Dir:                   "/tmp",
		Base:                  "ted-test.txt",
		Mode:                  fs.FileMode(0644),
		Mtime:                 time.Now(),
		EnsureTrailingNewline: true,
	}
	return editor.New(chars, meta, fileio.Unix, 5, 10, 8, nil)
}

func bufString(e *editor.Editor) string {
	chars := e.Buf.Slice(0, e.Buf.Len())
	var out []byte
	for _, c := range chars {
		out = append(out, c.Bytes()...)
	}
	return string(out)
}
