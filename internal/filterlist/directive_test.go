package filterlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDirectivesConditionalCompilation(t *testing.T) {
	body := "!#if mobile\nR1\n!#endif\n!#if !mobile\nR2\n!#endif"
	constants := NewConstantSet([]string{"mobile"})

	out, err := ResolveDirectives(context.Background(), "https://x/a.txt", body, constants, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"R1"}, out)
}

func TestResolveDirectivesIncludeCycle(t *testing.T) {
	files := map[string]string{
		"https://x/a.txt": "!#include https://x/b.txt",
		"https://x/b.txt": "!#include https://x/a.txt",
	}

	fetchFn := func(_ context.Context, url string) (string, error) {
		return files[url], nil
	}

	_, err := ResolveDirectives(context.Background(), "https://x/a.txt", files["https://x/a.txt"], nil, fetchFn)
	require.ErrorIs(t, err, ErrIncludeCycle)
}

func TestResolveDirectivesUnterminatedIf(t *testing.T) {
	_, err := ResolveDirectives(context.Background(), "https://x/a.txt", "!#if mobile\nR1", NewConstantSet(nil), nil)
	require.ErrorIs(t, err, ErrUnterminatedIf)
}

func TestResolveDirectivesUnmatchedEndif(t *testing.T) {
	_, err := ResolveDirectives(context.Background(), "https://x/a.txt", "!#endif", NewConstantSet(nil), nil)
	require.ErrorIs(t, err, ErrUnmatchedEndif)
}
