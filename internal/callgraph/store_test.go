package callgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
	"version": "1.0",
	"values": [
		{"id": "v1", "kind": "parameter", "kindType": "value", "type": "Order", "name": "$order", "scope": "OrderService::processOrder"},
		{"id": "v2", "kind": "local", "kindType": "value", "name": "$processedOrder", "scope": "OrderService::processOrder", "line": 12, "sourceCallId": "c1"},
		{"id": "v3", "kind": "result", "kindType": "value", "type": "Order", "sourceCallId": "c1"}
	],
	"calls": [
		{"id": "c1", "kind": "method", "kindType": "invocation",
		 "caller": "OrderService::processOrder", "callee": "OrderValidator::validate",
		 "resultValueId": "v3",
		 "arguments": [{"position": 0, "parameter": "OrderValidator::validate($order)", "valueId": "v1"}]}
	]
}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_Load(t *testing.T) {
	store, err := Load(writeDoc(t, sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "1.0", store.Version())
	assert.Equal(t, 3, store.ValueCount())
	assert.Equal(t, 1, store.CallCount())

	t.Run("id lookup round trip", func(t *testing.T) {
		for _, v := range store.Values() {
			assert.True(t, store.HasValue(v.ID))
			got := store.Value(v.ID)
			require.NotNil(t, got)
			assert.Equal(t, v.ID, got.ID)
		}
		for _, c := range store.Calls() {
			assert.True(t, store.HasCall(c.ID))
			got := store.Call(c.ID)
			require.NotNil(t, got)
			assert.Equal(t, c.ID, got.ID)
		}
	})

	t.Run("absent ids", func(t *testing.T) {
		assert.False(t, store.HasValue("v999"))
		assert.False(t, store.HasCall("c999"))
		assert.Nil(t, store.Value("v999"))
		assert.Nil(t, store.Call("c999"))
	})

	t.Run("document order preserved", func(t *testing.T) {
		ids := []string{}
		for _, v := range store.Values() {
			ids = append(ids, v.ID)
		}
		assert.Equal(t, []string{"v1", "v2", "v3"}, ids)
	})

	t.Run("index maps cover the lists", func(t *testing.T) {
		assert.Len(t, store.ValuesByID(), store.ValueCount())
		assert.Len(t, store.CallsByID(), store.CallCount())
	})
}

func TestStore_LoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestStore_LoadMalformed(t *testing.T) {
	cases := map[string]string{
		"invalid JSON":       `{"version": `,
		"unknown value kind": `{"version": "1", "values": [{"id": "v1", "kind": "wormhole", "kindType": "value"}], "calls": []}`,
		"unknown call kind":  `{"version": "1", "values": [], "calls": [{"id": "c1", "kind": "teleport", "kindType": "invocation", "caller": "A::a", "callee": "B::b"}]}`,
		"missing value id":   `{"version": "1", "values": [{"kind": "literal", "kindType": "value"}], "calls": []}`,
		"duplicate value id": `{"version": "1", "values": [{"id": "v1", "kind": "literal", "kindType": "value"}, {"id": "v1", "kind": "literal", "kindType": "value"}], "calls": []}`,
		"duplicate argument position": `{"version": "1", "values": [], "calls": [
			{"id": "c1", "kind": "method", "kindType": "invocation", "caller": "A::a", "callee": "B::b",
			 "arguments": [{"position": 0, "valueExpr": "1"}, {"position": 0, "valueExpr": "2"}]}]}`,
		"argument with neither valueId nor valueExpr": `{"version": "1", "values": [], "calls": [
			{"id": "c1", "kind": "method", "kindType": "invocation", "caller": "A::a", "callee": "B::b",
			 "arguments": [{"position": 0}]}]}`,
		"argument with both valueId and valueExpr": `{"version": "1", "values": [
			{"id": "v1", "kind": "literal", "kindType": "value"}], "calls": [
			{"id": "c1", "kind": "method", "kindType": "invocation", "caller": "A::a", "callee": "B::b",
			 "arguments": [{"position": 0, "valueId": "v1", "valueExpr": "1"}]}]}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeDoc(t, content))
			require.Error(t, err)

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestCall_Argument(t *testing.T) {
	store, err := Load(writeDoc(t, sampleDoc))
	require.NoError(t, err)

	call := store.Call("c1")
	require.NotNil(t, call)

	arg := call.Argument(0)
	require.NotNil(t, arg)
	assert.Equal(t, "v1", arg.ValueID)

	assert.Nil(t, call.Argument(1))
}
