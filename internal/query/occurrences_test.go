package query

import (
	"testing"

	"graphcheck/internal/symbolindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccurrenceQuery(t *testing.T) {
	ix := orderIndex(t)

	q, err := Occurrences(ix)
	require.NoError(t, err)

	t.Run("for symbol", func(t *testing.T) {
		assert.Equal(t, 2, q.ForSymbol("OrderService").Count())
		assert.Zero(t, q.ForSymbol("OrderServ").Count(), "match is exact, not substring")
	})

	t.Run("symbol contains", func(t *testing.T) {
		assert.Equal(t, 3, q.SymbolContains("OrderService").Count())
	})

	t.Run("symbol glob", func(t *testing.T) {
		got := q.SymbolMatches("Order*").All()
		assert.Len(t, got, 4)
	})

	t.Run("definitions", func(t *testing.T) {
		got := q.IsDefinition().All()
		require.Len(t, got, 3)
		for _, o := range got {
			assert.NotZero(t, o.SymbolRoles&1)
		}
	})

	t.Run("references", func(t *testing.T) {
		got := q.IsReference().All()
		require.Len(t, got, 2)
	})

	t.Run("definition and reference bits are independent", func(t *testing.T) {
		got := q.IsDefinition().IsReference().All()
		require.Len(t, got, 1)
		assert.Equal(t, "OrderService::processOrder", got[0].Symbol)
		assert.Equal(t, 3, got[0].SymbolRoles)
	})

	t.Run("in file", func(t *testing.T) {
		assert.Equal(t, 1, q.InFile("Controller").Count())
		assert.Equal(t, 2, q.InFile("Service/OrderService").Count())
	})

	t.Run("between lines is 1-indexed inclusive", func(t *testing.T) {
		// Range [4,...] is stored 0-indexed, so the occurrence sits on line 5.
		assert.Equal(t, 1, q.ForSymbol("OrderService").BetweenLines(5, 5).Count())
		assert.Zero(t, q.ForSymbol("OrderService").BetweenLines(4, 4).Count())
		assert.Equal(t, 2, q.ForSymbol("OrderService").BetweenLines(1, 100).Count())
	})

	t.Run("document order preserved", func(t *testing.T) {
		got := q.IsDefinition().All()
		require.Len(t, got, 3)
		assert.Equal(t, "OrderService", got[0].Symbol)
		assert.Equal(t, "OrderService::processOrder", got[1].Symbol)
		assert.Equal(t, "OrderRepository", got[2].Symbol)
	})

	t.Run("first and empty results", func(t *testing.T) {
		occ, ok := q.InFile("Repository").First()
		require.True(t, ok)
		assert.Equal(t, "OrderRepository", occ.Symbol)

		_, ok = q.InFile("Invoice").First()
		assert.False(t, ok)
	})
}

func TestOccurrenceQuery_Unavailable(t *testing.T) {
	_, err := Occurrences(symbolindex.Unavailable())
	assert.ErrorIs(t, err, symbolindex.ErrUnavailable)
}
