package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrSchemaExtraction marks failures to derive a schema from a
// reference file. Callers recover by substituting a template schema.
var ErrSchemaExtraction = errors.New("schema extraction failed")

// sampleRowLimit bounds how much of the reference file is read for
// inference. Schema analysis never needs the whole file.
const sampleRowLimit = 100

var dateValue = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}([ T].*)?$`)

// Extractor derives a Schema from the prefix of a CSV file.
type Extractor struct {
	logger   *zap.Logger
	rowLimit int
}

// NewExtractor returns an Extractor that samples up to sampleRowLimit
// data rows per file.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger, rowLimit: sampleRowLimit}
}

// Extract reads the header and a bounded row prefix of the file at
// path and infers a column specification for each header field.
func (e *Extractor) Extract(path, keyword string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSchemaExtraction, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; they are skipped below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrSchemaExtraction, err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: file has zero columns", ErrSchemaExtraction)
	}

	cols := len(header)
	samples := make([][]string, 0, e.rowLimit)
	for len(samples) < e.rowLimit {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row inside the prefix is skipped, not fatal.
			continue
		}
		if len(record) != cols {
			continue
		}
		samples = append(samples, record)
	}

	s := &Schema{
		Columns:    make([]ColumnSpec, 0, cols),
		SampleData: make(map[string]string, cols),
		Domain:     keyword,
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		spec := e.inferColumn(name, i, samples)
		s.Columns = append(s.Columns, spec)
		s.SampleData[spec.Name] = spec.SampleValue
	}

	e.logger.Info("extracted schema",
		zap.String("file", path),
		zap.Int("columns", len(s.Columns)),
		zap.Int("sampled_rows", len(samples)))
	return s, nil
}

// inferColumn derives one ColumnSpec from the sampled values of
// column index i.
func (e *Extractor) inferColumn(name string, i int, samples [][]string) ColumnSpec {
	spec := ColumnSpec{Name: name, Type: TypeText}

	var (
		values   []string
		nulls    int
		distinct = make(map[string]struct{})
	)
	for _, row := range samples {
		v := strings.TrimSpace(row[i])
		if v == "" {
			nulls++
			continue
		}
		values = append(values, v)
		if len(distinct) <= MaxDistinctCap {
			distinct[v] = struct{}{}
		}
	}
	spec.NullCount = nulls
	if len(values) == 0 {
		return spec
	}
	spec.SampleValue = values[0]
	spec.Type = inferType(values)

	if spec.Type == TypeCategory && len(distinct) <= MaxDistinctCap {
		spec.DistinctCap = len(distinct)
	}
	if spec.Type.IsNumeric() {
		min, max, mean := numericSummary(values)
		spec.Min, spec.Max, spec.Mean = &min, &max, &mean
	}
	return spec
}

// inferType classifies a column from its non-missing sampled values.
// All-integer wins over decimal; a small distinct set of short strings
// is treated as a category.
func inferType(values []string) TypeTag {
	allInt, allFloat, allDate := true, true, true
	distinct := make(map[string]struct{})
	for _, v := range values {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			allFloat = false
		}
		if !dateValue.MatchString(v) {
			allDate = false
		}
		distinct[v] = struct{}{}
	}
	switch {
	case allInt:
		return TypeInteger
	case allFloat:
		return TypeDecimal
	case allDate:
		return TypeDate
	case len(distinct) <= MaxDistinctCap && len(values) > MaxDistinctCap:
		return TypeCategory
	default:
		return TypeText
	}
}

func numericSummary(values []string) (min, max, mean float64) {
	var sum float64
	n := 0
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		if n == 0 || f < min {
			min = f
		}
		if n == 0 || f > max {
			max = f
		}
		sum += f
		n++
	}
	if n > 0 {
		mean = sum / float64(n)
	}
	return min, max, mean
}
