// Package generator owns the per-keyword generation run: reference
// acquisition, schema extraction, and the variation loop driving
// mutation, prompting, remote generation, validation, and fallback
// synthesis into persisted CSV files.
package generator

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal state of one run.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeStopped   Outcome = "stopped"
	OutcomeFailed    Outcome = "failed"
)

// Result is the caller-facing record of one keyword run. It is created
// at run start, appended to during the loop, and sealed exactly once
// at run end. A run never panics across the boundary; failures surface
// here as values.
type Result struct {
	ID             string
	Keyword        string
	ReferenceFile  string
	GeneratedFiles []string
	Elapsed        time.Duration
	Outcome        Outcome
	Err            string

	started time.Time
	sealed  bool
}

func newResult(keyword string) *Result {
	return &Result{
		ID:      uuid.NewString(),
		Keyword: keyword,
		started: time.Now(),
	}
}

// seal fixes the outcome and elapsed time. Later calls are no-ops so
// the first terminal transition wins.
func (r *Result) seal(outcome Outcome, err error) {
	if r.sealed {
		return
	}
	r.sealed = true
	r.Outcome = outcome
	r.Elapsed = time.Since(r.started)
	if err != nil {
		r.Err = err.Error()
	}
}
