package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnd(t *testing.T) {
	assert.Nil(t, And(nil, nil))

	pred := And(&Predicate{SQL: "a = ?", Args: []any{1}}, nil, &Predicate{SQL: "b = ?", Args: []any{"x"}})
	require.NotNil(t, pred)
	assert.Equal(t, "a = ? AND b = ?", pred.SQL)
	assert.Equal(t, []any{1, "x"}, pred.Args)
}
