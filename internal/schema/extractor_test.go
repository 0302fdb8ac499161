package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtract_TypeInference(t *testing.T) {
	csv := "id,price,city,joined\n" +
		"1,10.50,Austin,2024-01-15\n" +
		"2,20.00,Boston,2024-02-20\n" +
		"3,7.25,Austin,2024-03-05\n"
	path := writeCSV(t, csv)

	s, err := NewExtractor(nil).Extract(path, "retail")
	require.NoError(t, err)
	require.Len(t, s.Columns, 4)

	byName := map[string]ColumnSpec{}
	for _, col := range s.Columns {
		byName[col.Name] = col
	}

	assert.Equal(t, TypeInteger, byName["id"].Type)
	assert.Equal(t, TypeDecimal, byName["price"].Type)
	assert.Equal(t, TypeText, byName["city"].Type)
	assert.Equal(t, TypeDate, byName["joined"].Type)

	require.NotNil(t, byName["price"].Min)
	assert.Equal(t, 7.25, *byName["price"].Min)
	assert.Equal(t, 20.00, *byName["price"].Max)
	assert.InDelta(t, 12.58, *byName["price"].Mean, 0.01)

	assert.Equal(t, "Austin", byName["city"].SampleValue)
	assert.Equal(t, "retail", s.Domain)
	assert.Equal(t, "1", s.SampleData["id"])
}

func TestExtract_MissingValues(t *testing.T) {
	csv := "a,b\n,x\n5,y\n,z\n"
	path := writeCSV(t, csv)

	s, err := NewExtractor(nil).Extract(path, "demo")
	require.NoError(t, err)

	assert.Equal(t, "5", s.Columns[0].SampleValue)
	assert.Equal(t, 2, s.Columns[0].NullCount)
	assert.Equal(t, TypeInteger, s.Columns[0].Type)
}

func TestExtract_SkipsRaggedRows(t *testing.T) {
	csv := "a,b\n1,2\nonly-one-field\n3,4\n"
	path := writeCSV(t, csv)

	s, err := NewExtractor(nil).Extract(path, "demo")
	require.NoError(t, err)
	assert.Equal(t, TypeInteger, s.Columns[0].Type)
}

func TestExtract_Unreadable(t *testing.T) {
	_, err := NewExtractor(nil).Extract(filepath.Join(t.TempDir(), "missing.csv"), "demo")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaExtraction)
}

func TestExtract_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	_, err := NewExtractor(nil).Extract(path, "demo")
	assert.ErrorIs(t, err, ErrSchemaExtraction)
}
