package filterlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRule(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"", false},
		{"! Title: Foo", false},
		{"!#if mobile", false},
		{"# extra comment", false},
		{"||example.com^", true},
		{" ||example.com^", true}, // whitespace not stripped, but still not '!' or "# "
	}

	for _, c := range cases {
		require.Equal(t, c.want, IsRule(c.line), "line %q", c.line)
	}
}
