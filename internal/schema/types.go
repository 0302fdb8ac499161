// Package schema defines the tabular schema model used across the
// generation pipeline: typed column descriptors, the schema snapshot
// taken from a reference dataset, and the domain bucket resolution
// that selects prompt templates and fallback vocabularies.
package schema

import (
	"fmt"
	"strings"
)

// TypeTag classifies a column's value representation.
type TypeTag string

const (
	TypeInteger  TypeTag = "integer"
	TypeDecimal  TypeTag = "decimal"
	TypeText     TypeTag = "text"
	TypeCategory TypeTag = "category"
	TypeDate     TypeTag = "date"
	TypeBoolean  TypeTag = "boolean"
)

// IsNumeric reports whether the tag describes a numeric column.
func (t TypeTag) IsNumeric() bool {
	return t == TypeInteger || t == TypeDecimal
}

// Column bounds enforced on every schema snapshot.
const (
	MinColumns = 2
	MaxColumns = 20
)

// MaxDistinctCap bounds the distinct-value count recorded for
// category-like columns.
const MaxDistinctCap = 10

// ColumnSpec describes one column of a tabular dataset.
type ColumnSpec struct {
	Name        string  `json:"name"`
	Type        TypeTag `json:"type"`
	SampleValue string  `json:"sample_value"`

	// Numeric summary over the sampled prefix. Nil for non-numeric columns.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Mean *float64 `json:"mean,omitempty"`

	NullCount   int `json:"null_count,omitempty"`
	DistinctCap int `json:"distinct_cap,omitempty"`
}

// Schema is a snapshot of one tabular dataset's structure.
type Schema struct {
	Columns    []ColumnSpec      `json:"columns"`
	SampleData map[string]string `json:"sample_data"`
	Domain     string            `json:"domain"`
}

// ColumnNames returns the column names in order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// Header renders the comma-separated header row for this schema.
func (s *Schema) Header() string {
	return strings.Join(s.ColumnNames(), ",")
}

// Clone returns a deep copy. Mutations of the copy never alias the
// receiver's columns or sample data.
func (s *Schema) Clone() *Schema {
	out := &Schema{
		Columns:    make([]ColumnSpec, len(s.Columns)),
		SampleData: make(map[string]string, len(s.SampleData)),
		Domain:     s.Domain,
	}
	for i, col := range s.Columns {
		c := col
		if col.Min != nil {
			v := *col.Min
			c.Min = &v
		}
		if col.Max != nil {
			v := *col.Max
			c.Max = &v
		}
		if col.Mean != nil {
			v := *col.Mean
			c.Mean = &v
		}
		out.Columns[i] = c
	}
	for k, v := range s.SampleData {
		out.SampleData[k] = v
	}
	return out
}

// Validate enforces the structural invariants: column count within
// [MinColumns, MaxColumns] and names unique within the snapshot.
func (s *Schema) Validate() error {
	if len(s.Columns) < MinColumns || len(s.Columns) > MaxColumns {
		return fmt.Errorf("schema has %d columns, want %d-%d", len(s.Columns), MinColumns, MaxColumns)
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("schema contains an unnamed column")
		}
		if _, dup := seen[col.Name]; dup {
			return fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = struct{}{}
	}
	return nil
}
