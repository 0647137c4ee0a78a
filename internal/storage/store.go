package storage

import (
	"context"
	"time"

	"graphcheck/internal/assertion"
)

// Run is one archived integrity batch.
type Run struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Document       string    `json:"document"`
	CheckCount     int       `json:"check_count"`
	ViolatedChecks int       `json:"violated_checks"`
	ViolationCount int       `json:"violation_count"`
}

// ReportStore archives integrity reports so repeated validations of the
// same artifacts keep history.
type ReportStore interface {
	SaveRun(ctx context.Context, report *assertion.Report) (int64, error)
	ListRuns(ctx context.Context) ([]Run, error)
	LoadRun(ctx context.Context, id int64) (*assertion.Report, error)
	Close() error
}
