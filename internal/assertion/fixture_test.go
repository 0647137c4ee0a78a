package assertion

import (
	"testing"

	"graphcheck/internal/callgraph"

	"github.com/stretchr/testify/require"
)

// orderFixture mirrors a minimal OrderService::processOrder body: the
// validator call producing $processedOrder, the repository save taking
// it, and a static log call bound by expression only.
func orderFixture(t *testing.T, mutate func(*callgraph.Document)) *callgraph.Store {
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
			{ID: "v7", Kind: callgraph.ValueResult, KindType: callgraph.KindTypeValue, SourceCallID: "c3"},
		},
		Calls: []callgraph.Call{
			{ID: "c1", Kind: callgraph.CallMethod, KindType: callgraph.KindTypeInvocation,
				Caller: "OrderService::processOrder", Callee: "OrderValidator::validate",
				ReturnType: "Order", ReceiverValueID: "v3", ResultValueID: "v5",
				Arguments: []callgraph.Argument{{Position: 0, Parameter: "OrderValidator::validate().$order", ValueID: "v1"}}},
			{ID: "c2", Kind: callgraph.CallMethod, KindType: callgraph.KindTypeInvocation,
				Caller: "OrderService::processOrder", Callee: "OrderRepository::save",
				ReturnType: "bool", ReceiverValueID: "v4", ResultValueID: "v6",
				Arguments: []callgraph.Argument{{Position: 0, Parameter: "OrderRepository::save().$entity", ValueID: "v5"}}},
			{ID: "c3", Kind: callgraph.CallMethodStatic, KindType: callgraph.KindTypeInvocation,
				Caller: "OrderController::create", Callee: "Logger::info",
				ResultValueID: "v7",
				Arguments: []callgraph.Argument{{Position: 0, ValueExpr: "'order created'"}}},
		},
	}

	if mutate != nil {
		mutate(doc)
	}

	store, err := callgraph.FromDocument("fixture", doc)
	require.NoError(t, err)
	return store
}
