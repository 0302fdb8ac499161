package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaClone_DeepCopy(t *testing.T) {
	min := 1.0
	base := &Schema{
		Columns: []ColumnSpec{
			{Name: "id", Type: TypeInteger, SampleValue: "1", Min: &min},
			{Name: "name", Type: TypeText, SampleValue: "Alice"},
		},
		SampleData: map[string]string{"id": "1", "name": "Alice"},
		Domain:     "finance",
	}

	clone := base.Clone()
	require.Empty(t, cmp.Diff(base, clone))

	clone.Columns[0].Name = "renamed"
	*clone.Columns[0].Min = 99
	clone.SampleData["id"] = "changed"

	assert.Equal(t, "id", base.Columns[0].Name)
	assert.Equal(t, 1.0, *base.Columns[0].Min)
	assert.Equal(t, "1", base.SampleData["id"])
}

func TestSchemaValidate(t *testing.T) {
	valid := &Schema{Columns: []ColumnSpec{{Name: "a"}, {Name: "b"}}}
	assert.NoError(t, valid.Validate())

	t.Run("too few columns", func(t *testing.T) {
		s := &Schema{Columns: []ColumnSpec{{Name: "a"}}}
		assert.Error(t, s.Validate())
	})

	t.Run("too many columns", func(t *testing.T) {
		s := &Schema{}
		for i := 0; i < MaxColumns+1; i++ {
			s.Columns = append(s.Columns, ColumnSpec{Name: string(rune('a' + i))})
		}
		assert.Error(t, s.Validate())
	})

	t.Run("duplicate names", func(t *testing.T) {
		s := &Schema{Columns: []ColumnSpec{{Name: "a"}, {Name: "a"}}}
		assert.Error(t, s.Validate())
	})
}

func TestResolveBucket(t *testing.T) {
	tests := []struct {
		keyword string
		want    DomainBucket
	}{
		{"healthcare", BucketHealthcare},
		{"Medical Records", BucketHealthcare},
		{"finance", BucketFinance},
		{"retail banking", BucketFinance}, // bank outranks retail in lookup order
		{"education", BucketEducation},
		{"high school sports", BucketEducation},
		{"retail", BucketRetail},
		{"ecommerce sales", BucketRetail},
		{"weather", BucketGeneric},
		{"", BucketGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBucket(tt.keyword))
		})
	}
}

func TestTemplateSchema(t *testing.T) {
	s := TemplateSchema("finance")
	require.NoError(t, s.Validate())
	assert.Equal(t, "finance", s.Domain)
	assert.Contains(t, s.ColumnNames(), "account_id")
	assert.Contains(t, s.ColumnNames(), "balance")
	for _, col := range s.Columns {
		assert.Equal(t, col.SampleValue, s.SampleData[col.Name])
	}

	// Copies are independent.
	s.Columns[0].Name = "clobbered"
	again := TemplateSchema("finance")
	assert.Equal(t, "account_id", again.Columns[0].Name)
}
