package prompt

import (
	"fmt"
	"strings"

	"github.com/Vasishta03/DataForge/internal/schema"
)

// Builder renders generation prompts. Building is deterministic: the
// same schema, row count, keyword, and bucket always yield the same
// prompt text.
type Builder struct{}

// NewBuilder returns a prompt Builder.
func NewBuilder() *Builder { return &Builder{} }

// Build produces the full natural-language specification sent to the
// text-generation service.
func (b *Builder) Build(s *schema.Schema, rowCount int, keyword string, bucket schema.DomainBucket) string {
	tpl := TemplateFor(bucket)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert synthetic data generator specializing in %s domain data.\n\n", keyword)
	fmt.Fprintf(&sb, "TASK: Generate exactly %d rows of realistic CSV data.\n\n", rowCount)
	fmt.Fprintf(&sb, "DOMAIN CONTEXT: %s\n\n", tpl.Context)

	sb.WriteString("COLUMN SPECIFICATIONS:\n")
	for _, col := range s.Columns {
		sb.WriteString("- ")
		sb.WriteString(columnSpecLine(col))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	sb.WriteString("DATA QUALITY REQUIREMENTS:\n")
	sb.WriteString(tpl.Quality)
	sb.WriteString("\n\n")

	sb.WriteString("OUTPUT FORMAT:\n")
	fmt.Fprintf(&sb, "- Start with the header row: %s\n", s.Header())
	fmt.Fprintf(&sb, "- Follow with exactly %d data rows\n", rowCount)
	sb.WriteString("- Use proper CSV formatting (comma-separated, no extra quotes unless needed)\n")
	sb.WriteString("- Ensure realistic, domain-appropriate values\n\n")

	fmt.Fprintf(&sb, "EXAMPLE STRUCTURE:\n%s\n\n", tpl.Example)
	sb.WriteString("Important: Output ONLY the CSV data with header. No explanations, no markdown, no additional text.")

	return sb.String()
}

// columnSpecLine describes one column's semantic type and sample for
// the model. Name heuristics refine the raw type tag.
func columnSpecLine(col schema.ColumnSpec) string {
	name := strings.ToLower(col.Name)
	switch {
	case col.Type == schema.TypeInteger || containsAny(name, "id", "age", "count", "number"):
		return fmt.Sprintf("%s: integer values (like %s)", col.Name, col.SampleValue)
	case col.Type == schema.TypeDecimal || containsAny(name, "price", "amount", "rate", "score"):
		return fmt.Sprintf("%s: decimal values (like %s)", col.Name, col.SampleValue)
	case col.Type == schema.TypeDate || containsAny(name, "date", "time", "created", "updated"):
		return fmt.Sprintf("%s: date/time values (format like %s)", col.Name, col.SampleValue)
	case containsAny(name, "email", "phone", "address"):
		return fmt.Sprintf("%s: realistic %s format", col.Name, name)
	case col.Type == schema.TypeBoolean:
		return fmt.Sprintf("%s: boolean values (true/false)", col.Name)
	case col.Type == schema.TypeCategory:
		return fmt.Sprintf("%s: categorical values (like %s)", col.Name, col.SampleValue)
	default:
		return fmt.Sprintf("%s: text values (like %s)", col.Name, col.SampleValue)
	}
}

func containsAny(s string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
