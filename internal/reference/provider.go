// Package reference acquires reference tabular datasets: searching and
// downloading from Kaggle, with a built-in template table substituted
// whenever acquisition fails.
package reference

import (
	"context"
	"errors"
)

// ErrReferenceAcquisition marks search or download failures. The
// orchestrator recovers by writing a template reference table.
var ErrReferenceAcquisition = errors.New("reference acquisition failed")

// DatasetMeta describes one search hit.
type DatasetMeta struct {
	Ref       string
	Title     string
	SizeBytes int64
}

// Provider is the contract the pipeline needs from a tabular-reference
// service: keyword search plus download of one CSV-like file.
type Provider interface {
	Search(ctx context.Context, keyword string) ([]DatasetMeta, error)
	Download(ctx context.Context, meta DatasetMeta, destDir string) (string, error)
}
