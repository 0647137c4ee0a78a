package assertion

import (
	"fmt"

	"graphcheck/internal/callgraph"
)

// defaultMaxSteps bounds the walk so a cyclic document cannot hang it.
const defaultMaxSteps = 64

// ChainIntegrity verifies that the alternating Value→Call→Value path
// reached from a starting value through sourceCallId/receiverValueId
// links is well formed: every link resolves, every call's resultValueId
// points back at the value that claims it as source, and the walk
// reaches a declared end condition before the chain runs out.
type ChainIntegrity struct {
	store    *callgraph.Store
	startID  string
	endID    string
	endKind  callgraph.ValueKind
	hasEnd   bool
	maxSteps int
}

// NewChainIntegrity starts an assertion against the store.
func NewChainIntegrity(store *callgraph.Store) *ChainIntegrity {
	return &ChainIntegrity{store: store, maxSteps: defaultMaxSteps}
}

// StartAt designates the value the walk begins from.
func (a *ChainIntegrity) StartAt(valueID string) *ChainIntegrity {
	a.startID = valueID
	return a
}

// EndAt declares the walk complete when it reaches the given value id.
func (a *ChainIntegrity) EndAt(valueID string) *ChainIntegrity {
	a.endID = valueID
	a.hasEnd = true
	return a
}

// EndAtKind declares the walk complete when it reaches a value of the
// given kind, typically a parameter or literal at the chain's origin.
func (a *ChainIntegrity) EndAtKind(kind callgraph.ValueKind) *ChainIntegrity {
	a.endKind = kind
	a.hasEnd = true
	return a
}

// MaxSteps overrides the default bound on the number of walked links.
func (a *ChainIntegrity) MaxSteps(n int) *ChainIntegrity {
	a.maxSteps = n
	return a
}

// Verify walks the chain and fails on the first malformed link.
func (a *ChainIntegrity) Verify() error {
	v := a.store.Value(a.startID)
	if v == nil {
		return &Violation{
			Check:    "chain_integrity",
			EntityID: a.startID,
			Position: -1,
			Message:  fmt.Sprintf("starting value %s does not exist", a.startID),
		}
	}

	for step := 0; ; step++ {
		if a.atEnd(v) {
			return nil
		}
		if step >= a.maxSteps {
			return &Violation{
				Check:    "chain_integrity",
				EntityID: v.ID,
				Position: -1,
				Message:  fmt.Sprintf("chain exceeded %d steps without reaching its end", a.maxSteps),
			}
		}

		if v.SourceCallID == "" {
			if v.SourceValueID != "" {
				next := a.store.Value(v.SourceValueID)
				if next == nil {
					return &Violation{
						Check:    "chain_integrity",
						EntityID: v.ID,
						Position: -1,
						Expected: "existing value",
						Actual:   v.SourceValueID,
						Message:  fmt.Sprintf("value %s has dangling sourceValueId", v.ID),
					}
				}
				v = next
				continue
			}
			return &Violation{
				Check:    "chain_integrity",
				EntityID: v.ID,
				Position: -1,
				Message:  fmt.Sprintf("chain terminated at value %s before reaching its end", v.ID),
			}
		}

		call := a.store.Call(v.SourceCallID)
		if call == nil {
			return &Violation{
				Check:    "chain_integrity",
				EntityID: v.ID,
				Position: -1,
				Expected: "existing call",
				Actual:   v.SourceCallID,
				Message:  fmt.Sprintf("value %s has dangling sourceCallId", v.ID),
			}
		}
		if call.ResultValueID != v.ID {
			return &Violation{
				Check:    "chain_integrity",
				EntityID: v.ID,
				CallID:   call.ID,
				Position: -1,
				Expected: v.ID,
				Actual:   call.ResultValueID,
				Message:  fmt.Sprintf("call %s does not produce the value claiming it as source", call.ID),
			}
		}

		if call.ReceiverValueID == "" {
			return &Violation{
				Check:    "chain_integrity",
				EntityID: call.ID,
				CallID:   call.ID,
				Position: -1,
				Message:  fmt.Sprintf("chain terminated at call %s before reaching its end", call.ID),
			}
		}
		next := a.store.Value(call.ReceiverValueID)
		if next == nil {
			return &Violation{
				Check:    "chain_integrity",
				EntityID: call.ID,
				CallID:   call.ID,
				Position: -1,
				Expected: "existing value",
				Actual:   call.ReceiverValueID,
				Message:  fmt.Sprintf("call %s has dangling receiverValueId", call.ID),
			}
		}
		v = next
	}
}

func (a *ChainIntegrity) atEnd(v *callgraph.Value) bool {
	if !a.hasEnd {
		// No declared end: any natural chain origin terminates the walk.
		return v.SourceCallID == "" && v.SourceValueID == ""
	}
	if a.endID != "" && v.ID == a.endID {
		return true
	}
	if a.endKind != "" && v.Kind == a.endKind {
		return true
	}
	return false
}
