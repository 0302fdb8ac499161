// Package prompt renders natural-language generation requests for the
// text-generation service from a mutated schema and a domain template.
package prompt

import "github.com/Vasishta03/DataForge/internal/schema"

// Template supplies the contextual framing and quality guidance for
// one domain bucket.
type Template struct {
	Context string
	Quality string
	Example string
}

var templates = map[schema.DomainBucket]Template{
	schema.BucketHealthcare: {
		Context: "Healthcare and medical data with patient records, treatments, and medical terminology. Focus on realistic medical scenarios while maintaining privacy.",
		Quality: `- Use realistic medical terminology and codes
- Maintain logical relationships (age vs conditions)
- Include diverse demographic representation
- Ensure temporal consistency in dates`,
		Example: "patient_id,age,gender,diagnosis,treatment_cost,admission_date\n1001,45,Female,Hypertension,2500.50,2024-01-15",
	},
	schema.BucketFinance: {
		Context: "Financial and banking data including transactions, accounts, and market data. Focus on realistic financial patterns and regulations.",
		Quality: `- Use realistic financial amounts and ranges
- Maintain transaction balance logic
- Include diverse account types and statuses
- Follow financial data formats (currency, percentages)`,
		Example: "account_id,balance,transaction_type,amount,date\nACC001,15000.75,credit,1200.00,2024-01-15",
	},
	schema.BucketEducation: {
		Context: "Educational data including students, courses, grades, and academic performance. Focus on realistic academic scenarios.",
		Quality: `- Use realistic grade ranges and academic terms
- Maintain logical course-grade relationships
- Follow academic calendar patterns
- Ensure grade progression consistency`,
		Example: "student_id,course_name,grade,credits,semester\nSTU001,Mathematics,85.5,3,Fall2024",
	},
	schema.BucketRetail: {
		Context: "Retail and e-commerce data including products, sales, and customer transactions. Focus on realistic shopping patterns.",
		Quality: `- Use realistic product names and categories
- Maintain logical price-quantity relationships
- Include seasonal shopping patterns
- Ensure inventory consistency`,
		Example: "product_id,product_name,category,price,stock_quantity\nPRD001,Wireless Headphones,Electronics,89.99,150",
	},
	schema.BucketGeneric: {
		Context: "General business data with realistic patterns and relationships appropriate for the specified domain.",
		Quality: `- Use realistic and consistent data values
- Maintain logical relationships between columns
- Include appropriate data distributions
- Ensure data quality and completeness`,
		Example: "id,name,category,value,status\n1,Sample Item,Category A,100.0,active",
	},
}

// TemplateFor returns the template for a bucket, defaulting to the
// generic template for unknown buckets.
func TemplateFor(bucket schema.DomainBucket) Template {
	if t, ok := templates[bucket]; ok {
		return t
	}
	return templates[schema.BucketGeneric]
}
