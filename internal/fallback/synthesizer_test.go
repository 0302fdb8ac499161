package fallback

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasishta03/DataForge/internal/schema"
)

func TestRow_Deterministic(t *testing.T) {
	s := schema.TemplateSchema("finance")
	syn := NewSynthesizer(nil)

	one := syn.Row(s, schema.BucketFinance, 3, 17)
	two := syn.Row(s, schema.BucketFinance, 3, 17)
	assert.Empty(t, cmp.Diff(one, two))
}

func TestRow_VariesAcrossSeeds(t *testing.T) {
	s := schema.TemplateSchema("finance")
	syn := NewSynthesizer(nil)

	a := syn.Row(s, schema.BucketFinance, 1, 5)
	b := syn.Row(s, schema.BucketFinance, 2, 5)
	assert.NotEqual(t, a, b, "different variations should reseed differently")
}

func TestRows_CountAndWidth(t *testing.T) {
	s := schema.TemplateSchema("healthcare")
	syn := NewSynthesizer(nil)

	rows := syn.Rows(s, schema.BucketHealthcare, 0, 25)
	require.Len(t, rows, 25)
	for _, row := range rows {
		assert.Len(t, row, len(s.Columns))
	}
}

func TestRows_SafetyCeiling(t *testing.T) {
	s := schema.TemplateSchema("generic")
	rows := NewSynthesizer(nil).Rows(s, schema.BucketGeneric, 0, MaxRows+5000)
	assert.Len(t, rows, MaxRows)
}

func TestCSV_HeaderMatchesSchema(t *testing.T) {
	s := schema.TemplateSchema("education")
	csv := NewSynthesizer(nil).CSV(s, schema.BucketEducation, 2, 10)

	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, s.Header(), lines[0])
}

func TestColumnValue_NameHeuristics(t *testing.T) {
	s := &schema.Schema{
		Columns: []schema.ColumnSpec{
			{Name: "patient_id", Type: schema.TypeInteger},
			{Name: "age", Type: schema.TypeInteger},
			{Name: "admission_date", Type: schema.TypeDate},
			{Name: "treatment_cost", Type: schema.TypeDecimal},
			{Name: "department", Type: schema.TypeCategory},
		},
	}
	row := NewSynthesizer(nil).Row(s, schema.BucketHealthcare, 0, 4)
	require.Len(t, row, 5)

	assert.Equal(t, "1004", row[0], "id columns index from 1000+row")
	assert.Regexp(t, `^\d{2}$`, row[1])
	assert.Regexp(t, `^2024-\d{2}-\d{2}$`, row[2])
	assert.Regexp(t, `^\d+\.\d{2}$`, row[3])
	assert.Contains(t, []string{"Cardiology", "Neurology", "Orthopedics", "Pediatrics", "Emergency"}, row[4])
}

func TestColumnValue_PlaceholderForUnmatched(t *testing.T) {
	s := &schema.Schema{
		Columns: []schema.ColumnSpec{
			{Name: "mystery", Type: schema.TypeText},
			{Name: "other", Type: schema.TypeText},
		},
	}
	row := NewSynthesizer(nil).Row(s, schema.BucketGeneric, 2, 3)
	suffix := strconv.FormatInt(rowSeed(2, 3)%97, 10)
	assert.Equal(t, []string{"mystery_" + suffix, "other_" + suffix}, row)
}
