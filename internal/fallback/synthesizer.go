// Package fallback produces schema-conformant rows without the
// text-generation service. Values are seed-driven: the same schema,
// variation, and row index always synthesize the same row, so fallback
// output is reproducible across runs.
package fallback

import (
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/Vasishta03/DataForge/internal/schema"
)

// MaxRows is the safety ceiling on synthesized rows per file.
const MaxRows = 1000

// rowSeed derives the per-row seed. Every column of a row draws from
// the same reseeded source, so a row's values pair identically across
// runs.
func rowSeed(variation, row int) int64 {
	return int64(variation)*1000 + int64(row)
}

// vocabulary holds the per-bucket value lists used by the name
// heuristics.
type vocabulary struct {
	names      []string
	conditions []string
	categories []string
	statuses   []string
}

var vocabularies = map[schema.DomainBucket]vocabulary{
	schema.BucketHealthcare: {
		names:      []string{"John Smith", "Sarah Johnson", "Michael Brown", "Emily Davis", "David Wilson"},
		conditions: []string{"Hypertension", "Diabetes", "Asthma", "Arthritis", "Migraine"},
		categories: []string{"Cardiology", "Neurology", "Orthopedics", "Pediatrics", "Emergency"},
		statuses:   []string{"Admitted", "Discharged", "Observation", "Scheduled", "Transferred"},
	},
	schema.BucketFinance: {
		names:      []string{"Alice Cooper", "Bob Johnson", "Carol White", "David Lee", "Eva Martinez"},
		conditions: []string{"Deposit", "Withdrawal", "Transfer", "Payment", "Fee"},
		categories: []string{"Checking", "Savings", "Credit", "Investment", "Loan"},
		statuses:   []string{"Posted", "Pending", "Cleared", "Declined", "Reversed"},
	},
	schema.BucketEducation: {
		names:      []string{"Alex Chen", "Maria Garcia", "James Kim", "Lisa Wang", "Tom Anderson"},
		conditions: []string{"Mathematics", "Science", "English", "History", "Art"},
		categories: []string{"Computer Science", "Biology", "Business", "Psychology", "Engineering"},
		statuses:   []string{"Enrolled", "Completed", "Withdrawn", "Auditing", "Waitlisted"},
	},
	schema.BucketRetail: {
		names:      []string{"Grace Hall", "Henry Ford", "Ivy Chen", "Jack Ryan", "Kara Owens"},
		conditions: []string{"Electronics", "Clothing", "Groceries", "Home", "Sports"},
		categories: []string{"Electronics", "Clothing", "Groceries", "Home", "Sports"},
		statuses:   []string{"In Stock", "Backordered", "Discontinued", "Shipped", "Returned"},
	},
	schema.BucketGeneric: {
		names:      []string{"Person A", "Person B", "Person C", "Person D", "Person E"},
		conditions: []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"},
		categories: []string{"Category 1", "Category 2", "Category 3", "Category 4", "Category 5"},
		statuses:   []string{"Active", "Inactive", "Pending", "Completed", "Cancelled"},
	},
}

// Synthesizer generates deterministic schema-conformant rows.
type Synthesizer struct {
	logger *zap.Logger
}

// NewSynthesizer returns a Synthesizer.
func NewSynthesizer(logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{logger: logger}
}

// Row synthesizes one row for the given variation and row index. The
// generator is reseeded from (variation, row), making the whole row a
// pure function of its inputs.
func (s *Synthesizer) Row(sc *schema.Schema, bucket schema.DomainBucket, variation, row int) []string {
	seed := rowSeed(variation, row)
	rng := rand.New(rand.NewSource(seed))
	vocab, ok := vocabularies[bucket]
	if !ok {
		vocab = vocabularies[schema.BucketGeneric]
	}

	out := make([]string, len(sc.Columns))
	for i, col := range sc.Columns {
		out[i] = columnValue(col, rng, vocab, row, seed)
	}
	return out
}

// Rows synthesizes up to rowCount rows, capped at MaxRows.
func (s *Synthesizer) Rows(sc *schema.Schema, bucket schema.DomainBucket, variation, rowCount int) [][]string {
	n := rowCount
	if n > MaxRows {
		n = MaxRows
	}
	rows := make([][]string, 0, n)
	for r := 0; r < n; r++ {
		rows = append(rows, s.Row(sc, bucket, variation, r))
	}
	s.logger.Debug("synthesized fallback rows",
		zap.Int("variation", variation),
		zap.Int("rows", len(rows)),
		zap.String("bucket", string(bucket)))
	return rows
}

// CSV renders header plus synthesized rows as comma-separated text.
func (s *Synthesizer) CSV(sc *schema.Schema, bucket schema.DomainBucket, variation, rowCount int) string {
	var sb strings.Builder
	sb.WriteString(sc.Header())
	for _, row := range s.Rows(sc, bucket, variation, rowCount) {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join(row, ","))
	}
	return sb.String()
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

// columnValue dispatches on the column name, then on the type tag.
// Unmatched columns fall through to a deterministic placeholder.
func columnValue(col schema.ColumnSpec, rng *rand.Rand, vocab vocabulary, row int, seed int64) string {
	name := strings.ToLower(col.Name)

	switch {
	case strings.Contains(name, "id"):
		return fmt.Sprintf("%d", 1000+row)
	case strings.Contains(name, "name"):
		return pick(rng, vocab.names)
	case strings.Contains(name, "age"):
		return fmt.Sprintf("%d", 18+rng.Intn(68))
	case strings.Contains(name, "email"):
		person := vocab.names[row%len(vocab.names)]
		domain := pick(rng, []string{"gmail.com", "yahoo.com", "company.com"})
		return strings.ToLower(strings.ReplaceAll(person, " ", ".")) + "@" + domain
	case strings.Contains(name, "phone"):
		return fmt.Sprintf("555-%03d-%04d", rng.Intn(1000), rng.Intn(10000))
	case strings.Contains(name, "date") || strings.Contains(name, "time"):
		return fmt.Sprintf("2024-%02d-%02d", 1+rng.Intn(12), 1+rng.Intn(28))
	case strings.Contains(name, "price") || strings.Contains(name, "cost") ||
		strings.Contains(name, "amount") || strings.Contains(name, "balance"):
		return fmt.Sprintf("%.2f", 10+rng.Float64()*990)
	case strings.Contains(name, "category") || strings.Contains(name, "department") ||
		strings.Contains(name, "type"):
		return pick(rng, vocab.categories)
	case strings.Contains(name, "status"):
		return pick(rng, vocab.statuses)
	case strings.Contains(name, "gender"):
		return pick(rng, []string{"Female", "Male", "Other"})
	case strings.Contains(name, "diagnosis") || strings.Contains(name, "condition") ||
		strings.Contains(name, "course") || strings.Contains(name, "transaction") ||
		strings.Contains(name, "product"):
		return pick(rng, vocab.conditions)
	}

	switch col.Type {
	case schema.TypeInteger:
		return fmt.Sprintf("%d", 1+rng.Intn(1000))
	case schema.TypeDecimal:
		return fmt.Sprintf("%.2f", 1+rng.Float64()*99)
	case schema.TypeBoolean:
		return pick(rng, []string{"true", "false"})
	case schema.TypeDate:
		return fmt.Sprintf("2024-%02d-%02d", 1+rng.Intn(12), 1+rng.Intn(28))
	case schema.TypeCategory:
		return pick(rng, vocab.categories)
	default:
		return fmt.Sprintf("%s_%d", col.Name, seed%97)
	}
}
