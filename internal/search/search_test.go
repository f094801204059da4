package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliofy/ted/internal/search"
)

func TestRunUsesTedSearchOverride(t *testing.T) {
	// A stand-in for a real search tool: echoes three fixed offsets
	// regardless of its arguments, so the test never touches /dev/tty.
	t.Setenv("TED_SEARCH", "printf '2\\n9\\n40\\n'; true #")

	results, err := search.Run([]byte("whatever content"), 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 9, 40}, results)
}

func TestRunReportsNonZeroExitAsFailure(t *testing.T) {
	t.Setenv("TED_SEARCH", "false #")

	_, err := search.Run([]byte("content"), 10)
	assert.Error(t, err)
}

func TestRunReportsNoResultsAsEmptySlice(t *testing.T) {
	t.Setenv("TED_SEARCH", "true #")

	results, err := search.Run([]byte("content"), 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
