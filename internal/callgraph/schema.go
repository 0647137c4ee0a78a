package callgraph

// ValueKind classifies how a value was produced.
type ValueKind string

const (
	ValueLiteral        ValueKind = "literal"
	ValueParameter      ValueKind = "parameter"
	ValueLocal          ValueKind = "local"
	ValueResult         ValueKind = "result"
	ValueAccess         ValueKind = "access"
	ValueAccessNullsafe ValueKind = "access_nullsafe"
	ValueStaticAccess   ValueKind = "access_static"
	ValueThis           ValueKind = "this"
)

// CallKind classifies an invocation or operator application.
type CallKind string

const (
	CallMethod         CallKind = "method"
	CallMethodStatic   CallKind = "method_static"
	CallMethodNullsafe CallKind = "method_nullsafe"
	CallConstructor    CallKind = "constructor"
	CallFunction       CallKind = "function"
	CallBinaryOp       CallKind = "binary_op"
	CallUnaryOp        CallKind = "unary_op"
)

// KindType is the coarse grouping shared by values and calls.
type KindType string

const (
	KindTypeValue      KindType = "value"
	KindTypeAccess     KindType = "access"
	KindTypeInvocation KindType = "invocation"
	KindTypeOperator   KindType = "operator"
)

// Value is a node representing a single producible quantity in the
// analyzed program: a literal, a parameter, a local variable, a property
// access, or the result of a call.
type Value struct {
	ID            string    `json:"id"`
	Kind          ValueKind `json:"kind"`
	KindType      KindType  `json:"kindType"`
	Type          string    `json:"type,omitempty"`
	Expr          string    `json:"expr,omitempty"`
	Name          string    `json:"name,omitempty"`
	Scope         string    `json:"scope,omitempty"` // enclosing method, "Class::method"
	SourceCallID  string    `json:"sourceCallId,omitempty"`
	SourceValueID string    `json:"sourceValueId,omitempty"`
	File          string    `json:"file,omitempty"`
	Line          int       `json:"line,omitempty"`
}

// Argument binds one of a call's parameter slots to a value. When the
// bound expression is too compound to carry a value id, ValueExpr holds
// the textual fallback instead; exactly one of the two is present.
type Argument struct {
	Position  int    `json:"position"`
	Parameter string `json:"parameter,omitempty"`
	ValueID   string `json:"valueId,omitempty"`
	ValueExpr string `json:"valueExpr,omitempty"`
}

// Call is a node representing one invocation or operator application.
type Call struct {
	ID              string     `json:"id"`
	Kind            CallKind   `json:"kind"`
	KindType        KindType   `json:"kindType"`
	Caller          string     `json:"caller"`
	Callee          string     `json:"callee"`
	ReturnType      string     `json:"returnType,omitempty"`
	ReceiverValueID string     `json:"receiverValueId,omitempty"`
	ResultValueID   string     `json:"resultValueId,omitempty"`
	Arguments       []Argument `json:"arguments,omitempty"`
	File            string     `json:"file,omitempty"`
	Line            int        `json:"line,omitempty"`
}

// Document is the on-disk shape of a call/value-graph artifact.
type Document struct {
	Version string  `json:"version"`
	Values  []Value `json:"values"`
	Calls   []Call  `json:"calls"`
}

var knownValueKinds = map[ValueKind]bool{
	ValueLiteral:        true,
	ValueParameter:      true,
	ValueLocal:          true,
	ValueResult:         true,
	ValueAccess:         true,
	ValueAccessNullsafe: true,
	ValueStaticAccess:   true,
	ValueThis:           true,
}

var knownCallKinds = map[CallKind]bool{
	CallMethod:         true,
	CallMethodStatic:   true,
	CallMethodNullsafe: true,
	CallConstructor:    true,
	CallFunction:       true,
	CallBinaryOp:       true,
	CallUnaryOp:        true,
}

// KnownValueKind reports whether kind belongs to the closed value-kind set.
func KnownValueKind(kind ValueKind) bool {
	return knownValueKinds[kind]
}

// KnownCallKind reports whether kind belongs to the closed call-kind set.
func KnownCallKind(kind CallKind) bool {
	return knownCallKinds[kind]
}
