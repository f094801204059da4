package editor

import (
	"fmt"
	"os"
	"syscall"

	"github.com/cliofy/ted/internal/search"
)

// SearchBuffer drops out of raw mode, dumps the buffer to a temp file,
// runs the configured search command against it, and (on success) jumps
// to the first match — mirroring search_buffer's suspend/popen/resume
// dance (_examples/original_source/src/ted.c lines 2523-2587).
func SearchBuffer(e *Editor, echo Echo) {
	e.IsPrefix = false
	if len(e.SearchResults) > 0 {
		SearchNext(e, echo)
		return
	}

	data := encodeForSearch(e)

	results, err := e.runSearch(data)
	if err != nil {
		if echo != nil {
			echo.EchoError(err.Error())
		}
		return
	}
	if len(results) == 0 {
		if echo != nil {
			echo.EchoInfo("Not found.")
		}
		return
	}

	e.SearchResults = results
	e.SearchCurrent = 0
	e.Mark.Push(e.Buf.Point())
	e.View.MoveTo(e.Buf, results[0])
}

// SearchNext jumps to the next match in SearchResults, wrapping around.
func SearchNext(e *Editor, echo Echo) {
	e.IsPrefix = false
	if len(e.SearchResults) == 0 {
		if echo != nil {
			echo.EchoError("No active search.")
		}
		return
	}
	e.SearchCurrent = (e.SearchCurrent + 1) % len(e.SearchResults)
	e.View.MoveTo(e.Buf, e.SearchResults[e.SearchCurrent])
}

// SearchPrevious jumps to the previous match in SearchResults, wrapping
// around.
func SearchPrevious(e *Editor, echo Echo) {
	e.IsPrefix = false
	if len(e.SearchResults) == 0 {
		if echo != nil {
			echo.EchoError("No active search.")
		}
		return
	}
	e.SearchCurrent = (e.SearchCurrent - 1 + len(e.SearchResults)) % len(e.SearchResults)
	e.View.MoveTo(e.Buf, e.SearchResults[e.SearchCurrent])
}

// SearchQuit discards the active search results without moving point.
func SearchQuit(e *Editor, _ Echo) {
	e.SearchResults = nil
	e.SearchCurrent = 0
}

func encodeForSearch(e *Editor) []byte {
	chars := e.Buf.Slice(0, e.Buf.Len())
	out := make([]byte, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.Bytes()...)
	}
	return out
}

// runSearch suspends raw mode for the duration of the external search
// command (which needs the tty for its own prompt) and always restores
// it before returning, even on failure.
func (e *Editor) runSearch(data []byte) ([]int, error) {
	if e.Term != nil {
		if err := e.Term.Restore(); err != nil {
			return nil, fmt.Errorf("editor: search: %w", err)
		}
		defer func() {
			e.Term.Setup()
			e.Term.ReserveScreen()
		}()
	}
	return search.Run(data, e.NLines)
}

// Suspend stops the process under SIGTSTP, restoring cooked mode first
// and re-entering raw mode with a redrawn screen on resume — the
// original's C-z job-control binding.
func Suspend(e *Editor, echo Echo) {
	e.IsPrefix = false
	if e.Term == nil {
		return
	}
	_ = e.Term.ClearScreen()
	if err := e.Term.Restore(); err != nil {
		if echo != nil {
			echo.EchoError(err.Error())
		}
		return
	}
	_ = syscall.Kill(os.Getpid(), syscall.SIGTSTP)
	e.Term.Setup()
	e.Term.ReserveScreen()
}

// KillTed quits unconditionally, discarding unsaved changes (the
// extended-keymap C-x M-c binding).
func KillTed(e *Editor, _ Echo) {
	e.IsPrefix = false
	e.Quit = true
}

// Quit exits cleanly when the buffer isn't dirty. With a prefix argument
// on a dirty buffer it saves first and only exits if that succeeds;
// without one it declines and points at the two escape hatches. Mirrors
// quit() (_examples/original_source/src/ted.c lines 2594-2613).
func Quit(e *Editor, echo Echo) {
	if !e.IsDirty {
		e.IsPrefix = false
		e.Quit = true
		return
	}

	if e.IsPrefix {
		e.IsPrefix = false
		SaveBuffer(e, echo)
		if !e.IsDirty {
			e.Quit = true
		}
		return
	}

	e.IsPrefix = false
	if echo != nil {
		echo.EchoError("Save and quit: C-u C-x C-c. Quit without saving: C-x M-c.")
	}
}
