package filterlist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyDiffScenario(t *testing.T) {
	current := "A\nB\nC\n"
	next := "A\nX\nC\n"

	patch := fmt.Sprintf("diff name:Seven checksum:%s\nd2 1\na1 1\nX\n", MD5Hex(next))

	blocks, err := ParsePatch(patch)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	block, err := SelectBlock(blocks, "Seven", "")
	require.NoError(t, err)

	got, err := ApplyDiff(current, MD5Hex(current), block)
	require.NoError(t, err)
	require.Equal(t, next, got)
}

func TestApplyDiffPreImageMismatchFallsBack(t *testing.T) {
	current := "A\nB\nC\n"
	patch := "diff name:Seven checksum:deadbeef\nd2 1\na1 1\nX\n"

	blocks, err := ParsePatch(patch)
	require.NoError(t, err)

	block, err := SelectBlock(blocks, "Seven", "")
	require.NoError(t, err)

	_, err = ApplyDiff(current, "0000000000000000000000000000000", block)
	require.ErrorIs(t, err, ErrDiffChecksumMismatch)
}
