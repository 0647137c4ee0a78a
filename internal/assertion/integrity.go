package assertion

import (
	"fmt"
	"sort"

	"graphcheck/internal/callgraph"
)

// Check names as they appear in reports.
const (
	CheckNoParameterDuplicates    = "noParameterDuplicates"
	CheckNoLocalDuplicatesPerLine = "noLocalDuplicatesPerLine"
	CheckAllReceiverValueIDsExist = "allReceiverValueIdsExist"
	CheckAllArgumentValueIDsExist = "allArgumentValueIdsExist"
	CheckAllSourceCallIDsExist    = "allSourceCallIdsExist"
	CheckAllSourceValueIDsExist   = "allSourceValueIdsExist"
	CheckEveryCallHasResultValue  = "everyCallHasResultValue"
	CheckResultValueTypesMatch    = "resultValueTypesMatch"
)

type integrityCheck struct {
	name string
	run  func(*callgraph.Store) []CheckViolation
}

// DataIntegrity is the batched assertion: store-wide scans accumulate
// into a report instead of failing on the first hit. Each configuration
// method returns the receiver so checks chain.
type DataIntegrity struct {
	store    *callgraph.Store
	document string
	checks   []integrityCheck
}

// NewDataIntegrity starts an empty batch against the store.
func NewDataIntegrity(store *callgraph.Store) *DataIntegrity {
	return &DataIntegrity{store: store}
}

// Document records the artifact path for the report header.
func (a *DataIntegrity) Document(path string) *DataIntegrity {
	a.document = path
	return a
}

func (a *DataIntegrity) enable(name string, run func(*callgraph.Store) []CheckViolation) *DataIntegrity {
	for _, c := range a.checks {
		if c.name == name {
			return a
		}
	}
	a.checks = append(a.checks, integrityCheck{name: name, run: run})
	return a
}

// NoParameterDuplicates flags two parameter values sharing a name within
// one scope.
func (a *DataIntegrity) NoParameterDuplicates() *DataIntegrity {
	return a.enable(CheckNoParameterDuplicates, checkNoParameterDuplicates)
}

// NoLocalDuplicatesPerLine flags two local values sharing a name and an
// originating line within one scope.
func (a *DataIntegrity) NoLocalDuplicatesPerLine() *DataIntegrity {
	return a.enable(CheckNoLocalDuplicatesPerLine, checkNoLocalDuplicatesPerLine)
}

// AllReceiverValueIDsExist flags calls whose receiver reference dangles.
func (a *DataIntegrity) AllReceiverValueIDsExist() *DataIntegrity {
	return a.enable(CheckAllReceiverValueIDsExist, checkAllReceiverValueIDsExist)
}

// AllArgumentValueIDsExist flags arguments whose value reference dangles.
func (a *DataIntegrity) AllArgumentValueIDsExist() *DataIntegrity {
	return a.enable(CheckAllArgumentValueIDsExist, checkAllArgumentValueIDsExist)
}

// AllSourceCallIDsExist flags values whose source-call reference dangles.
func (a *DataIntegrity) AllSourceCallIDsExist() *DataIntegrity {
	return a.enable(CheckAllSourceCallIDsExist, checkAllSourceCallIDsExist)
}

// AllSourceValueIDsExist flags values whose source-value reference dangles.
func (a *DataIntegrity) AllSourceValueIDsExist() *DataIntegrity {
	return a.enable(CheckAllSourceValueIDsExist, checkAllSourceValueIDsExist)
}

// EveryCallHasResultValue flags calls without a resolving result value.
func (a *DataIntegrity) EveryCallHasResultValue() *DataIntegrity {
	return a.enable(CheckEveryCallHasResultValue, checkEveryCallHasResultValue)
}

// ResultValueTypesMatch flags calls whose declared return type differs
// from their result value's type. Comparison is exact string equality.
func (a *DataIntegrity) ResultValueTypesMatch() *DataIntegrity {
	return a.enable(CheckResultValueTypesMatch, checkResultValueTypesMatch)
}

// AllChecks enables the full battery.
func (a *DataIntegrity) AllChecks() *DataIntegrity {
	return a.NoParameterDuplicates().
		NoLocalDuplicatesPerLine().
		AllReceiverValueIDsExist().
		AllArgumentValueIDsExist().
		AllSourceCallIDsExist().
		AllSourceValueIDsExist().
		EveryCallHasResultValue().
		ResultValueTypesMatch()
}

// Report runs every configured check and returns the accumulated result.
// Individual check failures never abort the batch.
func (a *DataIntegrity) Report() *Report {
	report := newReport(a.document)
	for _, c := range a.checks {
		report.add(CheckResult{Name: c.name, Violations: c.run(a.store)})
	}
	report.finalize()
	return report
}

func checkNoParameterDuplicates(s *callgraph.Store) []CheckViolation {
	return duplicateValues(s, func(v *callgraph.Value) (string, bool) {
		if v.Kind != callgraph.ValueParameter || v.Name == "" {
			return "", false
		}
		return v.Scope + "\x00" + v.Name, true
	}, "duplicate parameter %s in scope %s")
}

func checkNoLocalDuplicatesPerLine(s *callgraph.Store) []CheckViolation {
	return duplicateValues(s, func(v *callgraph.Value) (string, bool) {
		if v.Kind != callgraph.ValueLocal || v.Name == "" {
			return "", false
		}
		return fmt.Sprintf("%s\x00%s\x00%d", v.Scope, v.Name, v.Line), true
	}, "duplicate local %s in scope %s")
}

// duplicateValues reports every member of every group with more than one
// value, in document order.
func duplicateValues(s *callgraph.Store, key func(*callgraph.Value) (string, bool), format string) []CheckViolation {
	groups := map[string][]*callgraph.Value{}
	var order []string
	values := s.Values()
	for i := range values {
		v := &values[i]
		k, ok := key(v)
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], v)
	}
	sort.Strings(order)

	var out []CheckViolation
	for _, k := range order {
		group := groups[k]
		if len(group) < 2 {
			continue
		}
		for _, v := range group {
			out = append(out, CheckViolation{
				EntityID: v.ID,
				Message:  fmt.Sprintf(format, v.Name, v.Scope),
			})
		}
	}
	return out
}

func checkAllReceiverValueIDsExist(s *callgraph.Store) []CheckViolation {
	var out []CheckViolation
	for _, c := range s.Calls() {
		if c.ReceiverValueID != "" && !s.HasValue(c.ReceiverValueID) {
			out = append(out, CheckViolation{
				EntityID: c.ID,
				Message:  fmt.Sprintf("receiverValueId %s does not resolve", c.ReceiverValueID),
			})
		}
	}
	return out
}

func checkAllArgumentValueIDsExist(s *callgraph.Store) []CheckViolation {
	var out []CheckViolation
	for _, c := range s.Calls() {
		for _, arg := range c.Arguments {
			if arg.ValueID != "" && !s.HasValue(arg.ValueID) {
				out = append(out, CheckViolation{
					EntityID: c.ID,
					Message:  fmt.Sprintf("argument %d valueId %s does not resolve", arg.Position, arg.ValueID),
				})
			}
		}
	}
	return out
}

func checkAllSourceCallIDsExist(s *callgraph.Store) []CheckViolation {
	var out []CheckViolation
	for _, v := range s.Values() {
		if v.SourceCallID != "" && !s.HasCall(v.SourceCallID) {
			out = append(out, CheckViolation{
				EntityID: v.ID,
				Message:  fmt.Sprintf("sourceCallId %s does not resolve", v.SourceCallID),
			})
		}
	}
	return out
}

func checkAllSourceValueIDsExist(s *callgraph.Store) []CheckViolation {
	var out []CheckViolation
	for _, v := range s.Values() {
		if v.SourceValueID != "" && !s.HasValue(v.SourceValueID) {
			out = append(out, CheckViolation{
				EntityID: v.ID,
				Message:  fmt.Sprintf("sourceValueId %s does not resolve", v.SourceValueID),
			})
		}
	}
	return out
}

func checkEveryCallHasResultValue(s *callgraph.Store) []CheckViolation {
	var out []CheckViolation
	for _, c := range s.Calls() {
		if c.ResultValueID == "" {
			out = append(out, CheckViolation{
				EntityID: c.ID,
				Message:  "call has no resultValueId",
			})
			continue
		}
		if !s.HasValue(c.ResultValueID) {
			out = append(out, CheckViolation{
				EntityID: c.ID,
				Message:  fmt.Sprintf("resultValueId %s does not resolve", c.ResultValueID),
			})
		}
	}
	return out
}

func checkResultValueTypesMatch(s *callgraph.Store) []CheckViolation {
	var out []CheckViolation
	for _, c := range s.Calls() {
		if c.ReturnType == "" || c.ResultValueID == "" {
			continue
		}
		v := s.Value(c.ResultValueID)
		if v == nil || v.Type == "" {
			continue
		}
		if v.Type != c.ReturnType {
			out = append(out, CheckViolation{
				EntityID: c.ID,
				Message:  fmt.Sprintf("declared return type %s but result value %s has type %s", c.ReturnType, v.ID, v.Type),
			})
		}
	}
	return out
}
