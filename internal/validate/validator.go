// Package validate checks raw text-generation output against the
// mutated schema and repairs it into clean CSV. Rejection is a routing
// decision toward fallback synthesis, not a hard failure.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Vasishta03/DataForge/internal/schema"
)

// ErrValidationRejected marks output that cannot be repaired into a
// table matching the schema.
var ErrValidationRejected = errors.New("generated output rejected")

// maxDataLines bounds how many data lines are kept from one response.
const maxDataLines = 1000

// Validator cleans and validates raw generation output.
type Validator struct {
	logger *zap.Logger
}

// NewValidator returns a Validator.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate cleans raw into CSV text whose header field count equals
// the schema's column count and which retains at least one data row.
// Returns ErrValidationRejected when no such table can be recovered.
// Cleaning is idempotent: validating already-cleaned text returns it
// unchanged.
func (v *Validator) Validate(raw string, s *schema.Schema) (string, error) {
	lines := nonEmptyLines(raw)
	if len(lines) < 2 {
		return "", fmt.Errorf("%w: need a header and at least one data row", ErrValidationRejected)
	}

	want := len(s.Columns)
	var kept []string
	dropped := 0

	for _, line := range lines {
		cleaned := cleanLine(line)
		if fieldCount(cleaned) != want {
			// Before the header is found, mismatching lines are model
			// commentary; after it they are unrepairable data lines.
			if len(kept) > 0 {
				dropped++
			}
			continue
		}
		kept = append(kept, cleaned)
		if len(kept) > maxDataLines {
			break
		}
	}

	if len(kept) < 2 {
		v.logger.Debug("output rejected",
			zap.Int("lines", len(lines)),
			zap.Int("kept", len(kept)),
			zap.Int("want_fields", want))
		return "", fmt.Errorf("%w: no valid header plus data line for %d columns", ErrValidationRejected, want)
	}

	if dropped > 0 {
		v.logger.Debug("dropped unrepairable lines", zap.Int("dropped", dropped))
	}
	return strings.Join(kept, "\n"), nil
}

func nonEmptyLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func fieldCount(line string) int {
	if line == "" {
		return 0
	}
	return strings.Count(line, ",") + 1
}

// cleanLine strips characters outside the safe CSV set: alphanumerics,
// the comma separator, and limited punctuation. Leading separators and
// list markers left over from model commentary are removed.
func cleanLine(line string) string {
	var sb strings.Builder
	for _, r := range line {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ',' || r == '.' || r == '-' || r == '_' || r == '@' || r == ':' || r == ' ' || r == '/':
			sb.WriteRune(r)
		}
	}
	cleaned := sb.String()
	cleaned = strings.TrimLeft(cleaned, ",-. ")
	return strings.TrimSpace(cleaned)
}
