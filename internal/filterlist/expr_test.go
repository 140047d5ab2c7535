package filterlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalExpression(t *testing.T) {
	mobile := NewConstantSet([]string{"mobile"})
	empty := NewConstantSet(nil)
	bar := NewConstantSet([]string{"bar"})

	cases := []struct {
		expr string
		set  ConstantSet
		want bool
	}{
		{"FOO", NewConstantSet([]string{"FOO"}), true},
		{"FOO", empty, false},
		{"FOO", bar, false},
		{"mobile", mobile, true},
		{"!mobile", mobile, false},
		{"mobile && !mobile", mobile, false},
		{"mobile || bar", mobile, true},
		{"(mobile || bar) && !bar", mobile, true},
	}

	for _, c := range cases {
		got, err := EvalExpression(c.expr, c.set)
		require.NoError(t, err, c.expr)
		require.Equal(t, c.want, got, c.expr)
	}
}

func TestEvalExpressionRejectsUnknownOperators(t *testing.T) {
	_, err := EvalExpression("FOO == BAR", NewConstantSet(nil))
	require.ErrorIs(t, err, ErrBadExpression)
}
