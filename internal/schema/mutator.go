package schema

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

// mutationKind is one bounded structural edit applied to a schema.
type mutationKind int

const (
	mutateRename mutationKind = iota
	mutateAdd
	mutateRemove
	mutateRetype
	mutationKinds
)

func (k mutationKind) String() string {
	switch k {
	case mutateRename:
		return "rename"
	case mutateAdd:
		return "add"
	case mutateRemove:
		return "remove"
	case mutateRetype:
		return "retype"
	default:
		return "unknown"
	}
}

// Mutator produces structurally varied copies of a base schema. Each
// call applies exactly one mutation kind to a fresh deep copy, so
// drift is bounded per variation and never cumulative.
type Mutator struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// NewMutator seeds the mutator's own random source. Pass a fixed seed
// in tests for reproducible mutation sequences.
func NewMutator(seed int64, logger *zap.Logger) *Mutator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mutator{rng: rand.New(rand.NewSource(seed)), logger: logger}
}

// Mutate returns a deep copy of base with one structural edit applied.
// When the selected kind's precondition does not hold (add at the
// column ceiling, remove at the floor) the copy is returned unaltered.
// The input schema is never modified.
func (m *Mutator) Mutate(base *Schema) *Schema {
	out := base.Clone()
	kind := mutationKind(m.rng.Intn(int(mutationKinds)))

	switch kind {
	case mutateRename:
		m.rename(out)
	case mutateAdd:
		if len(out.Columns) < MaxColumns {
			m.add(out)
		}
	case mutateRemove:
		if len(out.Columns) > MinColumns {
			m.remove(out)
		}
	case mutateRetype:
		m.retype(out)
	}

	m.logger.Debug("mutated schema",
		zap.String("kind", kind.String()),
		zap.Int("columns", len(out.Columns)))
	return out
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz"

func (m *Mutator) rename(s *Schema) {
	i := m.rng.Intn(len(s.Columns))
	suffix := make([]byte, 3)
	for j := range suffix {
		suffix[j] = suffixAlphabet[m.rng.Intn(len(suffixAlphabet))]
	}
	old := s.Columns[i].Name
	s.Columns[i].Name = old + "_" + string(suffix)
	if v, ok := s.SampleData[old]; ok {
		delete(s.SampleData, old)
		s.SampleData[s.Columns[i].Name] = v
	}
}

var addableTypes = []TypeTag{TypeInteger, TypeDecimal, TypeText}

func (m *Mutator) add(s *Schema) {
	// Keep generating candidate names until one is unique; a rename may
	// already have produced a new_column_N style name.
	var name string
	for n := len(s.Columns) + 1; ; n++ {
		name = fmt.Sprintf("new_column_%d", n)
		if !hasColumn(s, name) {
			break
		}
	}
	col := ColumnSpec{
		Name:        name,
		Type:        addableTypes[m.rng.Intn(len(addableTypes))],
		SampleValue: fmt.Sprintf("%d", m.rng.Intn(100)+1),
	}
	s.Columns = append(s.Columns, col)
	s.SampleData[col.Name] = col.SampleValue
}

func (m *Mutator) remove(s *Schema) {
	i := m.rng.Intn(len(s.Columns))
	delete(s.SampleData, s.Columns[i].Name)
	s.Columns = append(s.Columns[:i], s.Columns[i+1:]...)
}

func (m *Mutator) retype(s *Schema) {
	i := m.rng.Intn(len(s.Columns))
	col := &s.Columns[i]
	if col.Type.IsNumeric() {
		if m.rng.Intn(2) == 0 {
			col.Type = TypeText
		} else {
			col.Type = TypeBoolean
		}
		col.Min, col.Max, col.Mean = nil, nil, nil
	} else {
		if m.rng.Intn(2) == 0 {
			col.Type = TypeInteger
		} else {
			col.Type = TypeDecimal
		}
	}
}

func hasColumn(s *Schema, name string) bool {
	for _, col := range s.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}
