package filterlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorTrailingNewlineContract(t *testing.T) {
	withTrailing := NewCursor("https://x/a.txt", "A\nB\n")
	withoutTrailing := NewCursor("https://x/a.txt", "A\nB")

	var withLines, withoutLines []string
	for {
		l, ok := withTrailing.NextLine()
		if !ok {
			break
		}
		withLines = append(withLines, l)
	}
	for {
		l, ok := withoutTrailing.NextLine()
		if !ok {
			break
		}
		withoutLines = append(withoutLines, l)
	}

	require.Equal(t, []string{"A", "B", ""}, withLines)
	require.Equal(t, []string{"A", "B"}, withoutLines)
}
