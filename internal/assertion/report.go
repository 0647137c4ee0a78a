package assertion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CheckViolation is one offending entity found by a batched check.
type CheckViolation struct {
	EntityID string `json:"entity_id"`
	Message  string `json:"message"`
}

// CheckResult is the outcome of one batched check.
type CheckResult struct {
	Name       string           `json:"name"`
	Violations []CheckViolation `json:"violations,omitempty"`
}

// Violated reports whether the check found anything.
func (c CheckResult) Violated() bool { return len(c.Violations) > 0 }

// ReportSummary aggregates the batch outcome.
type ReportSummary struct {
	CheckCount     int `json:"check_count"`
	ViolatedChecks int `json:"violated_checks"`
	ViolationCount int `json:"violation_count"`
}

// Report is the accumulated result of a DataIntegrity batch. Unlike the
// fast-fail assertions it tolerates multiple simultaneous failures, so a
// single run surfaces every distinct defect class.
type Report struct {
	Version     string        `json:"version"`
	GeneratedAt string        `json:"generated_at"`
	Document    string        `json:"document,omitempty"`
	Checks      []CheckResult `json:"checks"`
	Summary     ReportSummary `json:"summary"`
}

func newReport(document string) *Report {
	return &Report{
		Version:     "v1",
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Document:    document,
		Checks:      []CheckResult{},
	}
}

func (r *Report) add(result CheckResult) {
	r.Checks = append(r.Checks, result)
}

func (r *Report) finalize() {
	violated := 0
	total := 0
	for _, c := range r.Checks {
		if c.Violated() {
			violated++
		}
		total += len(c.Violations)
	}
	r.Summary = ReportSummary{
		CheckCount:     len(r.Checks),
		ViolatedChecks: violated,
		ViolationCount: total,
	}
}

// Failed reports whether any configured check found a violation.
func (r *Report) Failed() bool { return r.Summary.ViolationCount > 0 }

// Check returns the result of the named check, or nil.
func (r *Report) Check(name string) *CheckResult {
	for i := range r.Checks {
		if r.Checks[i].Name == name {
			return &r.Checks[i]
		}
	}
	return nil
}

// Err converts a failed report into a single error listing every
// violated check, or nil when the batch passed.
func (r *Report) Err() error {
	if !r.Failed() {
		return nil
	}
	msg := fmt.Sprintf("%d violation(s) across %d check(s)", r.Summary.ViolationCount, r.Summary.ViolatedChecks)
	for _, c := range r.Checks {
		if c.Violated() {
			msg += fmt.Sprintf("; %s: %d", c.Name, len(c.Violations))
		}
	}
	return fmt.Errorf("integrity report: %s", msg)
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}
