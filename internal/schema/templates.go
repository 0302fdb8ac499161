package schema

// Built-in template schemas, keyed by domain bucket. Used whenever
// reference acquisition or schema extraction fails so a run can always
// proceed with a plausible structure for the keyword.

func fptr(v float64) *float64 { return &v }

var templateCatalog = map[DomainBucket]*Schema{
	BucketHealthcare: {
		Columns: []ColumnSpec{
			{Name: "patient_id", Type: TypeInteger, SampleValue: "1001", Min: fptr(1001), Max: fptr(9999), Mean: fptr(5500)},
			{Name: "age", Type: TypeInteger, SampleValue: "45", Min: fptr(18), Max: fptr(85), Mean: fptr(47)},
			{Name: "gender", Type: TypeCategory, SampleValue: "Female", DistinctCap: 3},
			{Name: "diagnosis", Type: TypeText, SampleValue: "Hypertension"},
			{Name: "treatment_cost", Type: TypeDecimal, SampleValue: "2500.50", Min: fptr(100), Max: fptr(25000), Mean: fptr(4200)},
			{Name: "admission_date", Type: TypeDate, SampleValue: "2024-01-15"},
		},
	},
	BucketFinance: {
		Columns: []ColumnSpec{
			{Name: "account_id", Type: TypeText, SampleValue: "ACC001"},
			{Name: "balance", Type: TypeDecimal, SampleValue: "15000.75", Min: fptr(0), Max: fptr(100000), Mean: fptr(18000)},
			{Name: "transaction_type", Type: TypeCategory, SampleValue: "credit", DistinctCap: 5},
			{Name: "amount", Type: TypeDecimal, SampleValue: "1200.00", Min: fptr(1), Max: fptr(10000), Mean: fptr(850)},
			{Name: "date", Type: TypeDate, SampleValue: "2024-01-15"},
		},
	},
	BucketEducation: {
		Columns: []ColumnSpec{
			{Name: "student_id", Type: TypeText, SampleValue: "STU001"},
			{Name: "course_name", Type: TypeText, SampleValue: "Mathematics"},
			{Name: "grade", Type: TypeDecimal, SampleValue: "85.5", Min: fptr(0), Max: fptr(100), Mean: fptr(74)},
			{Name: "credits", Type: TypeInteger, SampleValue: "3", Min: fptr(1), Max: fptr(6), Mean: fptr(3)},
			{Name: "semester", Type: TypeCategory, SampleValue: "Fall2024", DistinctCap: 4},
		},
	},
	BucketRetail: {
		Columns: []ColumnSpec{
			{Name: "product_id", Type: TypeText, SampleValue: "PRD001"},
			{Name: "product_name", Type: TypeText, SampleValue: "Wireless Headphones"},
			{Name: "category", Type: TypeCategory, SampleValue: "Electronics", DistinctCap: 8},
			{Name: "price", Type: TypeDecimal, SampleValue: "89.99", Min: fptr(1), Max: fptr(2000), Mean: fptr(120)},
			{Name: "stock_quantity", Type: TypeInteger, SampleValue: "150", Min: fptr(0), Max: fptr(1000), Mean: fptr(210)},
		},
	},
	BucketGeneric: {
		Columns: []ColumnSpec{
			{Name: "id", Type: TypeInteger, SampleValue: "1", Min: fptr(1), Max: fptr(1000), Mean: fptr(500)},
			{Name: "name", Type: TypeText, SampleValue: "Sample Item"},
			{Name: "category", Type: TypeCategory, SampleValue: "Category A", DistinctCap: 5},
			{Name: "value", Type: TypeDecimal, SampleValue: "100.0", Min: fptr(1), Max: fptr(1000), Mean: fptr(320)},
			{Name: "status", Type: TypeCategory, SampleValue: "active", DistinctCap: 3},
		},
	},
}

// TemplateSchema returns a deep copy of the built-in schema for the
// keyword's domain bucket, with Domain and SampleData populated.
func TemplateSchema(keyword string) *Schema {
	base, ok := templateCatalog[ResolveBucket(keyword)]
	if !ok {
		base = templateCatalog[BucketGeneric]
	}
	s := base.Clone()
	s.Domain = keyword
	s.SampleData = make(map[string]string, len(s.Columns))
	for _, col := range s.Columns {
		s.SampleData[col.Name] = col.SampleValue
	}
	return s
}
