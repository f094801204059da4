package fileio_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliofy/ted/internal/char"
	"github.com/cliofy/ted/internal/fileio"
)

func asString(cs []char.Char) string {
	s := ""
	for _, c := range cs {
		s += string(c.Bytes())
	}
	return s
}

func TestDecodeUnixNewlines(t *testing.T) {
	cs, err := fileio.Decode([]byte("ab\ncd"), fileio.Unix)
	require.NoError(t, err)
	assert.Equal(t, "ab\ncd", asString(cs))
}

func TestDecodeDosNewlines(t *testing.T) {
	cs, err := fileio.Decode([]byte("ab\r\ncd"), fileio.Dos)
	require.NoError(t, err)
	assert.Equal(t, "ab\ncd", asString(cs))
}

func TestDecodeDosRejectsBareCR(t *testing.T) {
	_, err := fileio.Decode([]byte("ab\rcd"), fileio.Dos)
	assert.Error(t, err)
}

func TestDecodeRejectsControlBytes(t *testing.T) {
	_, err := fileio.Decode([]byte{'a', 0x01, 'b'}, fileio.Unix)
	assert.Error(t, err)
}

func TestDecodeAllowsTab(t *testing.T) {
	cs, err := fileio.Decode([]byte("a\tb"), fileio.Unix)
	require.NoError(t, err)
	assert.Equal(t, "a\tb", asString(cs))
}

func TestDecodeMultibyteUTF8(t *testing.T) {
	cs, err := fileio.Decode([]byte("héllo"), fileio.Unix)
	require.NoError(t, err)
	assert.Equal(t, "héllo", asString(cs))
}

func TestEncodeRoundTripsUnixAndDos(t *testing.T) {
	cs, err := fileio.Decode([]byte("ab\ncd"), fileio.Unix)
	require.NoError(t, err)

	assert.Equal(t, []byte("ab\ncd"), fileio.Encode(cs, fileio.Unix))
	assert.Equal(t, []byte("ab\r\ncd"), fileio.Encode(cs, fileio.Dos))
}

func TestLoadExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi\nthere"), 0644))

	cs, meta, err := fileio.Load(path, fileio.Unix)
	require.NoError(t, err)
	assert.Equal(t, "hi\nthere", asString(cs))
	assert.Equal(t, dir, meta.Dir)
	assert.Equal(t, "hello.txt", meta.Base)
	assert.True(t, meta.EnsureTrailingNewline)
}

func TestLoadCreatesMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.txt")

	cs, meta, err := fileio.Load(path, fileio.Unix)
	require.NoError(t, err)
	assert.Empty(t, cs)
	assert.Equal(t, "new.txt", meta.Base)
}

func TestLoadRejectsMissingDirectory(t *testing.T) {
	_, _, err := fileio.Load("/no/such/dir/file.txt", fileio.Unix)
	assert.Error(t, err)
}

func TestSaveWritesAndRenamesIntoPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	_, meta, err := fileio.Load(path, fileio.Unix)
	require.NoError(t, err)

	cs, err := fileio.Decode([]byte("new content\n"), fileio.Unix)
	require.NoError(t, err)

	newMtime, err := fileio.Save(cs, meta, fileio.Unix)
	require.NoError(t, err)
	assert.False(t, newMtime.IsZero())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no leftover temp file")
}

func TestWatchDirDetectsModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	w, err := fileio.WatchDir(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("b"), 0644))

	var detected bool
	for i := 0; i < 50 && !detected; i++ {
		detected = fileio.ModifiedSince(w, "watched.txt")
		if !detected {
			time.Sleep(10 * time.Millisecond)
		}
	}
	assert.True(t, detected, "expected a write event for watched.txt")
}

func TestSaveDetectsConcurrentModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	_, meta, err := fileio.Load(path, fileio.Unix)
	require.NoError(t, err)

	// Simulate an external writer racing the save by moving the stored
	// mtime snapshot into the past relative to the file's real mtime.
	meta.Mtime = meta.Mtime.Add(-time.Hour)

	cs, err := fileio.Decode([]byte("mine\n"), fileio.Unix)
	require.NoError(t, err)

	_, err = fileio.Save(cs, meta, fileio.Unix)
	assert.ErrorIs(t, err, fileio.ErrConcurrentModification)
}
