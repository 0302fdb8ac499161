package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSchema() *Schema {
	s := TemplateSchema("finance")
	return s
}

func TestMutate_InvariantsHoldOverManyVariations(t *testing.T) {
	m := NewMutator(42, nil)
	base := baseSchema()

	for i := 0; i < 500; i++ {
		out := m.Mutate(base)
		require.NoError(t, out.Validate(), "variation %d violated schema invariants", i)
	}
}

func TestMutate_NeverAliasesBase(t *testing.T) {
	m := NewMutator(7, nil)
	base := baseSchema()
	snapshot := base.Clone()

	for i := 0; i < 200; i++ {
		_ = m.Mutate(base)
	}
	assert.Empty(t, cmp.Diff(snapshot, base), "base schema changed across mutations")
}

func TestMutate_BoundedDriftFromBase(t *testing.T) {
	// Every variation differs from the base by at most one structural
	// edit: the column count can only move by one.
	m := NewMutator(99, nil)
	base := baseSchema()
	n := len(base.Columns)

	for i := 0; i < 300; i++ {
		out := m.Mutate(base)
		diff := len(out.Columns) - n
		assert.True(t, diff >= -1 && diff <= 1, "variation %d drifted %d columns", i, diff)
	}
}

func TestMutate_AddRespectsCeiling(t *testing.T) {
	base := baseSchema()
	for len(base.Columns) < MaxColumns {
		name := "extra_" + string(rune('a'+len(base.Columns)))
		base.Columns = append(base.Columns, ColumnSpec{Name: name, Type: TypeText, SampleValue: "x"})
		base.SampleData[name] = "x"
	}
	require.NoError(t, base.Validate())

	m := NewMutator(1, nil)
	for i := 0; i < 200; i++ {
		out := m.Mutate(base)
		assert.LessOrEqual(t, len(out.Columns), MaxColumns)
	}
}

func TestMutate_RemoveRespectsFloor(t *testing.T) {
	base := &Schema{
		Columns: []ColumnSpec{
			{Name: "a", Type: TypeInteger, SampleValue: "1"},
			{Name: "b", Type: TypeText, SampleValue: "x"},
		},
		SampleData: map[string]string{"a": "1", "b": "x"},
	}
	m := NewMutator(5, nil)
	for i := 0; i < 200; i++ {
		out := m.Mutate(base)
		assert.GreaterOrEqual(t, len(out.Columns), MinColumns)
	}
}

func TestMutate_RetypeClearsNumericSummary(t *testing.T) {
	// Drive mutations until a numeric column flips to a non-numeric
	// type, then check its min/max/mean were dropped.
	m := NewMutator(11, nil)
	base := baseSchema()

	for i := 0; i < 1000; i++ {
		out := m.Mutate(base)
		for _, col := range out.Columns {
			if !col.Type.IsNumeric() {
				if col.Type == TypeBoolean {
					assert.Nil(t, col.Min)
					assert.Nil(t, col.Max)
					assert.Nil(t, col.Mean)
					return
				}
			}
		}
	}
	t.Fatal("no numeric column was ever retyped to boolean")
}
