// Package fileio implements the durable load/save protocol described in
// spec §4.9/§6: newline-mode decode/encode between raw bytes and
// char.Char, a strict load that resolves the target path into directory
// and basename components, and a save that writes to an exclusive temp
// file before an atomic rename, detecting concurrent external
// modification by mtime (grounded on the original's loadf/save_buffer,
// _examples/original_source/src/ted.c lines 1052-1185 and 2148-2305).
package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/cliofy/ted/internal/char"
)

// NewlineMode selects how line breaks are read from and written to disk.
type NewlineMode int

const (
	Unix NewlineMode = iota
	Dos
)

// Metadata describes the file an Editor has loaded, mirroring the fields
// the original keeps on struct ed (spec §3 "File metadata").
type Metadata struct {
	Path                  string
	Dir                   string
	Base                  string
	Mode                  fs.FileMode
	Mtime                 time.Time
	EnsureTrailingNewline bool
}

// Decode turns raw file bytes into char.Chars under the given newline
// mode, rejecting control bytes other than tab and newline, invalid UTF-8
// leaders, and (in Dos mode) a bare '\r' not followed by '\n' — the same
// hard failures as tedchar_from_bytes.
func Decode(data []byte, mode NewlineMode) ([]char.Char, error) {
	out := make([]char.Char, 0, len(data))
	j := 0
	for j < len(data) {
		b := data[j]
		if mode == Dos && b == '\r' {
			if j+1 < len(data) && data[j+1] == '\n' {
				out = append(out, char.NewNewline())
				j += 2
				continue
			}
			return nil, fmt.Errorf("fileio: decode: <cr> not followed by <lf> at byte %d", j)
		}
		if mode == Unix && b == '\n' {
			out = append(out, char.NewNewline())
			j++
			continue
		}

		n := utf8RunLen(b)
		if j+n > len(data) {
			return nil, fmt.Errorf("fileio: decode: truncated utf-8 run at byte %d", j)
		}
		if n == 1 {
			if b != '\t' && (b < 0x20 || b > 0x7E) {
				return nil, fmt.Errorf("fileio: decode: invalid control byte 0x%02x at byte %d", b, j)
			}
			out = append(out, char.NewFromBytes(data[j:j+1]))
			j++
			continue
		}
		r, sz := utf8.DecodeRune(data[j : j+n])
		if r == utf8.RuneError && sz <= 1 {
			return nil, fmt.Errorf("fileio: decode: invalid utf-8 at byte %d", j)
		}
		out = append(out, char.NewFromBytes(data[j:j+n]))
		j += n
	}
	return out, nil
}

func utf8RunLen(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xF0 == 0xF0:
		return 4
	case lead&0xE0 == 0xE0:
		return 3
	case lead&0xC0 == 0xC0:
		return 2
	default:
		return 1
	}
}

// Encode turns char.Chars back into raw bytes under the given newline
// mode (the for_each_block macro's write path).
func Encode(chars []char.Char, mode NewlineMode) []byte {
	out := make([]byte, 0, len(chars))
	for _, c := range chars {
		if c.IsNewline() {
			if mode == Dos {
				out = append(out, '\r', '\n')
			} else {
				out = append(out, '\n')
			}
			continue
		}
		out = append(out, c.Bytes()...)
	}
	return out
}

// Load resolves path, validates its containing directory, reads the file
// (creating it if absent, per the original's O_CREAT load), and decodes it
// under mode. Returns the decoded characters and the metadata to persist
// on an Editor.
func Load(path string, mode NewlineMode) ([]char.Char, *Metadata, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("fileio: load: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	dir := filepath.Dir(abs)
	base := filepath.Base(abs)

	dst, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("fileio: load: stat %q: %w", dir, err)
	}
	if !dst.IsDir() {
		return nil, nil, fmt.Errorf("fileio: load: %q: not a directory", dir)
	}

	f, err := os.OpenFile(abs, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("fileio: load: open %q: %w", abs, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("fileio: load: fstat %q: %w", abs, err)
	}

	data := make([]byte, st.Size())
	if _, err := io.ReadFull(f, data); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("fileio: load: read %q: %w", abs, err)
	}

	chars, err := Decode(data, mode)
	if err != nil {
		return nil, nil, err
	}

	meta := &Metadata{
		Path:                  abs,
		Dir:                   dir,
		Base:                  base,
		Mode:                  st.Mode(),
		Mtime:                 st.ModTime(),
		EnsureTrailingNewline: true,
	}
	return chars, meta, nil
}

// ErrConcurrentModification reports that the target file's mtime advanced
// past the load-time snapshot while a save was in flight.
var ErrConcurrentModification = errors.New("fileio: file modified since load")

// openExclusive creates a new, exclusive temp file in dir named
// ".<base>.<n>" for the first free n in [0,100); past that it falls back
// to a uuid-suffixed name in fallbackDir. Mirrors open_save_file's
// 100-collision retry with a stronger uniqueness guarantee once that
// budget is exhausted.
func openExclusive(dir, base string, mode fs.FileMode) (*os.File, string, error) {
	for i := 0; i < 100; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf(".%s.%d", base, i))
		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_TRUNC, mode)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
	candidate := filepath.Join(dir, fmt.Sprintf(".%s.%s", base, uuid.NewString()))
	f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return nil, "", err
	}
	return f, candidate, nil
}

// Save writes chars to a temp file beside meta.Path (falling back to the
// system temp directory when the original directory can't host one),
// renames it into place if the target hasn't changed since load, and
// returns the fresh mtime to store back on meta. A watch on meta.Dir is
// opened before the write starts, so a concurrent external modification
// that lands after the watch is opened is also caught as a filesystem
// event, not only by the mtime comparison against the stat taken just
// below. Changes made before Save is called are seen only through that
// mtime comparison.
func Save(chars []char.Char, meta *Metadata, mode NewlineMode) (time.Time, error) {
	data := Encode(chars, mode)

	watcher, watchErr := WatchDir(meta.Dir)
	if watchErr == nil {
		defer watcher.Close()
	}

	f, tmpPath, err := openExclusive(meta.Dir, meta.Base, meta.Mode)
	usedFallback := false
	if err != nil {
		f, tmpPath, err = openExclusive(os.TempDir(), meta.Base, meta.Mode)
		if err != nil {
			return time.Time{}, fmt.Errorf("fileio: save: failed to create temp file: %w", err)
		}
		usedFallback = true
	}

	if err := writeAllRetry(f, data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return time.Time{}, fmt.Errorf("fileio: save: write failed: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return time.Time{}, fmt.Errorf("fileio: save: close failed: %w", err)
	}

	st, statErr := os.Stat(meta.Path)
	modifiedSinceEvent := watchErr == nil && !usedFallback && ModifiedSince(watcher, meta.Base)
	if (statErr == nil && st.ModTime().After(meta.Mtime)) || modifiedSinceEvent {
		return time.Time{}, fmt.Errorf("%w: wrote to %q", ErrConcurrentModification, tmpPath)
	}

	if usedFallback {
		// Can't rename across filesystems in general; copy the bytes into place.
		if err := os.WriteFile(meta.Path, data, meta.Mode); err != nil {
			return time.Time{}, fmt.Errorf("fileio: save: %q rename failed: %w", tmpPath, err)
		}
		os.Remove(tmpPath)
	} else if err := os.Rename(tmpPath, meta.Path); err != nil {
		return time.Time{}, fmt.Errorf("fileio: save: %q rename failed: %w", tmpPath, err)
	}
	os.Remove(tmpPath)

	st, err = os.Stat(meta.Path)
	if err != nil {
		return time.Now(), nil
	}
	return st.ModTime(), nil
}

// writeAllRetry writes all of data to f, retrying a bounded number of
// times on a short write (write_all's retry budget).
func writeAllRetry(f *os.File, data []byte) error {
	const maxRetries = 10
	retries := 0
	for len(data) > 0 {
		n, err := f.Write(data)
		if err != nil {
			if retries >= maxRetries {
				return err
			}
			retries++
			continue
		}
		if n == 0 {
			if retries >= maxRetries {
				return fmt.Errorf("fileio: write stalled")
			}
			retries++
			continue
		}
		data = data[n:]
	}
	return nil
}

// WatchDir opens an fsnotify watch on dir so a save can observe a
// concurrent external modification to the target file as an event rather
// than only via a post-write stat race.
func WatchDir(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fileio: watch: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("fileio: watch: add %q: %w", dir, err)
	}
	return w, nil
}

// ModifiedSince drains any pending events from w, reporting whether one
// named base (the watched file's own basename) arrived.
func ModifiedSince(w *fsnotify.Watcher, base string) bool {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return false
			}
			if filepath.Base(ev.Name) == base && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				return true
			}
		default:
			return false
		}
	}
}
