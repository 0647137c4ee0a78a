package query

import (
	"os"
	"path/filepath"
	"testing"

	"graphcheck/internal/callgraph"
	"graphcheck/internal/symbolindex"

	"github.com/stretchr/testify/require"
)

// orderFixture is a small graph around OrderService::processOrder: the
// validator call producing $processedOrder, the repository save, a static
// log call from the controller, and one operator application.
func orderFixture(t *testing.T) *callgraph.Store {
	t.Helper()

	doc := &callgraph.Document{
		Version: "1.0",
		Values: []callgraph.Value{
			{ID: "v1", Kind: callgraph.ValueParameter, KindType: callgraph.KindTypeValue, Type: "Order", Name: "$order", Scope: "OrderService::processOrder"},
			{ID: "v2", Kind: callgraph.ValueThis, KindType: callgraph.KindTypeValue, Type: "OrderService", Name: "$this", Scope: "OrderService::processOrder"},
			{ID: "v3", Kind: callgraph.ValueAccess, KindType: callgraph.KindTypeAccess, Expr: "$this->validator", Scope: "OrderService::processOrder", SourceValueID: "v2"},
			{ID: "v4", Kind: callgraph.ValueAccess, KindType: callgraph.KindTypeAccess, Expr: "$this->repository", Scope: "OrderService::processOrder", SourceValueID: "v2"},
			{ID: "v5", Kind: callgraph.ValueLocal, KindType: callgraph.KindTypeValue, Type: "Order", Name: "$processedOrder", Scope: "OrderService::processOrder", Line: 12, SourceCallID: "c1"},
			{ID: "v6", Kind: callgraph.ValueResult, KindType: callgraph.KindTypeValue, Type: "bool", SourceCallID: "c2"},
			{ID: "v7", Kind: callgraph.ValueLiteral, KindType: callgraph.KindTypeValue, Type: "int", Expr: "42"},
			{ID: "v8", Kind: callgraph.ValueResult, KindType: callgraph.KindTypeValue, SourceCallID: "c3"},
			{ID: "v9", Kind: callgraph.ValueResult, KindType: callgraph.KindTypeValue, Type: "int", SourceCallID: "c4"},
			{ID: "v10", Kind: callgraph.ValueAccessNullsafe, KindType: callgraph.KindTypeAccess, Expr: "$order?->getCustomer()", Scope: "OrderService::processOrder"},
		},
		Calls: []callgraph.Call{
			{ID: "c1", Kind: callgraph.CallMethod, KindType: callgraph.KindTypeInvocation,
				Caller: "OrderService::processOrder", Callee: "OrderValidator::validate",
				ReceiverValueID: "v3", ResultValueID: "v5",
				Arguments: []callgraph.Argument{{Position: 0, Parameter: "OrderValidator::validate().$order", ValueID: "v1"}}},
			{ID: "c2", Kind: callgraph.CallMethod, KindType: callgraph.KindTypeInvocation,
				Caller: "OrderService::processOrder", Callee: "OrderRepository::save",
				ReturnType: "bool", ReceiverValueID: "v4", ResultValueID: "v6",
				Arguments: []callgraph.Argument{{Position: 0, Parameter: "OrderRepository::save().$entity", ValueID: "v5"}}},
			{ID: "c3", Kind: callgraph.CallMethodStatic, KindType: callgraph.KindTypeInvocation,
				Caller: "OrderController::create", Callee: "Logger::info",
				ResultValueID: "v8",
				Arguments: []callgraph.Argument{{Position: 0, ValueExpr: "'order created'"}}},
			{ID: "c4", Kind: callgraph.CallBinaryOp, KindType: callgraph.KindTypeOperator,
				Caller: "OrderService::processOrder", Callee: "+",
				ResultValueID: "v9",
				Arguments: []callgraph.Argument{{Position: 0, ValueID: "v7"}, {Position: 1, ValueID: "v7"}}},
		},
	}

	store, err := callgraph.FromDocument("fixture", doc)
	require.NoError(t, err)
	return store
}

const indexFixture = `{
	"symbols": {
		"OrderService": {"kind": "class"},
		"OrderRepository": {"kind": "class"},
		"OrderService::processOrder": {"kind": "method"},
		"OrderService::$validator": {"kind": "property"}
	},
	"occurrences": [
		{"symbol": "OrderService", "_file": "src/Service/OrderService.php", "range": [4, 6, 4, 18], "symbolRoles": 1},
		{"symbol": "OrderService::processOrder", "_file": "src/Service/OrderService.php", "range": [11, 4, 11, 16], "symbolRoles": 3},
		{"symbol": "OrderService", "_file": "src/Controller/OrderController.php", "range": [20, 8, 20, 20], "symbolRoles": 2},
		{"symbol": "OrderRepository", "_file": "src/Repository/OrderRepository.php", "range": [7, 6, 7, 21], "symbolRoles": 1}
	]
}`

func orderIndex(t *testing.T) *symbolindex.Index {
	t.Helper()

	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(indexFixture), 0o644))

	store, err := symbolindex.Load(path, nil)
	require.NoError(t, err)
	return symbolindex.Attach(store)
}
