// Package search shells out to an external program to locate byte offsets
// in the buffer's on-disk representation, exactly as the original's
// search_buffer does via popen (_examples/original_source/src/ted.c
// lines 2523-2587): the buffer is dumped to a temp file, a command line is
// built from $TED_SEARCH or a built-in grep pipeline, and its stdout is
// parsed as newline-separated non-negative integers.
package search

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// defaultCommandTemplate is used when $TED_SEARCH is unset: an interactive query
// prompt on the controlling tty followed by a byte-offset grep.
const defaultCommandTemplate = `printf '\e[s' > /dev/tty; ` +
	`read -p 'Query: ' query; ` +
	`printf '\e[u\e[J' > /dev/tty; ` +
	`grep -bo -F "$query" '%s' | cut -d: -f1`

// Run writes data to a fresh temp file, invokes the search command (from
// $TED_SEARCH, given the temp path and nlines+1, or the built-in grep
// pipeline), and parses its stdout as byte offsets. The temp file is
// always removed before Run returns.
func Run(data []byte, nlines int) ([]int, error) {
	tmpPath, err := writeTempFile(data)
	if err != nil {
		return nil, fmt.Errorf("search: failed to start search: %w", err)
	}
	defer os.Remove(tmpPath)

	cmd := buildCommand(tmpPath, nlines)

	out, err := exec.Command("/bin/sh", "-c", cmd).Output()
	if err != nil {
		return nil, fmt.Errorf("search: search failed: %w", err)
	}

	return parseOffsets(out), nil
}

func writeTempFile(data []byte) (string, error) {
	path := filepath.Join(os.TempDir(), "ted-search-"+uuid.NewString())
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

func buildCommand(tmpPath string, nlines int) string {
	if e := os.Getenv("TED_SEARCH"); e != "" {
		return fmt.Sprintf("%s '%s' %d", e, tmpPath, nlines+1)
	}
	return fmt.Sprintf(defaultCommandTemplate, tmpPath)
}

// parseOffsets reads one non-negative integer per line from out, skipping
// blank lines and stopping at the first line that doesn't parse as a
// single integer — the same best-effort fscanf loop the original uses.
func parseOffsets(out []byte) []int {
	var results []int
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 {
			break
		}
		results = append(results, n)
	}
	return results
}
