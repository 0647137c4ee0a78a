package query

import (
	"testing"

	"graphcheck/internal/callgraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueIDs(values []callgraph.Value) []string {
	ids := make([]string, 0, len(values))
	for _, v := range values {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestValueQuery_Filters(t *testing.T) {
	store := orderFixture(t)

	t.Run("kind", func(t *testing.T) {
		assert.Equal(t, []string{"v1"}, valueIDs(Values(store).Kind(callgraph.ValueParameter).All()))
		assert.Equal(t, []string{"v5"}, valueIDs(Values(store).Kind(callgraph.ValueLocal).All()))
	})

	t.Run("kind type", func(t *testing.T) {
		assert.Equal(t, []string{"v3", "v4", "v10"}, valueIDs(Values(store).KindType(callgraph.KindTypeAccess).All()))
	})

	t.Run("named", func(t *testing.T) {
		got := Values(store).Named("$processedOrder").All()
		require.Len(t, got, 1)
		assert.Equal(t, "v5", got[0].ID)
	})

	t.Run("scope", func(t *testing.T) {
		assert.Equal(t, 6, Values(store).InScope("OrderService::processOrder").Count())
	})

	t.Run("type", func(t *testing.T) {
		assert.Equal(t, []string{"v7", "v9"}, valueIDs(Values(store).TypeIs("int").All()))
	})

	t.Run("expr contains", func(t *testing.T) {
		assert.Equal(t, []string{"v10"}, valueIDs(Values(store).ExprContains("?->").All()))
	})

	t.Run("composed", func(t *testing.T) {
		got := Values(store).
			InScope("OrderService::processOrder").
			Kind(callgraph.ValueLocal).
			Named("$processedOrder").
			All()
		assert.Equal(t, []string{"v5"}, valueIDs(got))
	})
}

func TestValueQuery_Terminals(t *testing.T) {
	store := orderFixture(t)

	t.Run("first in document order", func(t *testing.T) {
		v, ok := Values(store).KindType(callgraph.KindTypeAccess).First()
		require.True(t, ok)
		assert.Equal(t, "v3", v.ID)
	})

	t.Run("empty result is silent", func(t *testing.T) {
		v, ok := Values(store).Named("$missing").First()
		assert.False(t, ok)
		assert.Nil(t, v)
		assert.Zero(t, Values(store).Named("$missing").Count())
	})
}

func TestMethodScope(t *testing.T) {
	store := orderFixture(t)
	scope := NewMethodScope(store, "OrderService", "processOrder")

	assert.Equal(t, "OrderService::processOrder", scope.Symbol())

	t.Run("calls are pre-filtered", func(t *testing.T) {
		assert.Equal(t, []string{"c1", "c2", "c4"}, callIDs(scope.Calls().All()))
	})

	t.Run("values are pre-filtered", func(t *testing.T) {
		assert.Equal(t, 6, scope.Values().Count())
	})

	t.Run("scope queries chain like any other", func(t *testing.T) {
		got := scope.Calls().KindType(callgraph.KindTypeOperator).All()
		assert.Equal(t, []string{"c4"}, callIDs(got))

		v, ok := scope.Values().Kind(callgraph.ValueLocal).First()
		require.True(t, ok)
		assert.Equal(t, "$processedOrder", v.Name)
	})

	t.Run("unknown method scopes to nothing", func(t *testing.T) {
		empty := NewMethodScope(store, "OrderService", "cancelOrder")
		assert.Zero(t, empty.Calls().Count())
		assert.Zero(t, empty.Values().Count())
	})
}
