// Package llm provides the text-generation service facade. The
// pipeline treats any client failure as a routing decision toward
// fallback synthesis, so clients report errors without retrying.
package llm

import (
	"context"
	"errors"
)

// ErrGenerationFailure marks remote text-generation failures:
// unreachable service, non-2xx status, or empty output. Callers
// recover via fallback synthesis; this error never crosses the run
// boundary.
var ErrGenerationFailure = errors.New("text generation failed")

// Client is the contract the pipeline needs from a text-generation
// service: prompt in, raw text out. Implementations do not retry.
type Client interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}
