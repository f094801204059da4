package editor

import (
	"errors"
	"fmt"

	"github.com/cliofy/ted/internal/char"
	"github.com/cliofy/ted/internal/fileio"
)

// ensureTrailingNewline inserts a final newline if the buffer is
// non-empty and doesn't already end with one, preserving the point's
// logical position the way maybe_insert_trailing_newline does.
func (e *Editor) ensureTrailingNewline() {
	if !e.Meta.EnsureTrailingNewline || e.Buf.IsEmpty() {
		return
	}
	last, ok := e.Buf.CharAt(e.Buf.Len() - 1)
	if ok && last.IsNewline() {
		return
	}
	saved := e.Buf.Point()
	e.Buf.MovePoint(e.Buf.Len())
	e.Buf.Insert(char.NewNewline())
	e.Buf.MovePoint(saved)
}

// SaveBuffer writes the buffer to its backing file, mirroring
// save_buffer: ensure a trailing newline, encode under the current
// newline mode, write via a temp file and atomic rename, and report the
// outcome on the echo line. A concurrent external edit (detected by
// mtime) is reported as an error rather than silently overwritten.
func SaveBuffer(e *Editor, echo Echo) {
	e.IsPrefix = false
	if e.IsReadOnly {
		if echo != nil {
			echo.EchoError("Buffer is read-only.")
		}
		return
	}

	e.ensureTrailingNewline()

	chars := e.Buf.Slice(0, e.Buf.Len())
	mtime, err := fileio.Save(chars, e.Meta, e.NewlineMode)
	if err != nil {
		if echo != nil {
			if errors.Is(err, fileio.ErrConcurrentModification) {
				echo.EchoError(fmt.Sprintf("%s has changed on disk; not overwriting.", e.Meta.Path))
			} else {
				echo.EchoError(err.Error())
			}
		}
		return
	}

	e.Meta.Mtime = mtime
	e.IsDirty = false
	if echo != nil {
		echo.EchoInfo(fmt.Sprintf("Wrote %q", e.Meta.Path))
	}
}
