package schema

import "strings"

// DomainBucket is the closed set of categories used to select prompt
// templates and fallback value vocabularies. Resolved once at run start
// and threaded through the pipeline.
type DomainBucket string

const (
	BucketHealthcare DomainBucket = "healthcare"
	BucketFinance    DomainBucket = "finance"
	BucketEducation  DomainBucket = "education"
	BucketRetail     DomainBucket = "retail"
	BucketGeneric    DomainBucket = "generic"
)

// bucketKeywords maps keyword fragments to buckets. First match wins,
// checked in a fixed order so resolution is deterministic.
var bucketKeywords = []struct {
	fragment string
	bucket   DomainBucket
}{
	{"health", BucketHealthcare},
	{"medical", BucketHealthcare},
	{"hospital", BucketHealthcare},
	{"patient", BucketHealthcare},
	{"finance", BucketFinance},
	{"financial", BucketFinance},
	{"bank", BucketFinance},
	{"loan", BucketFinance},
	{"insurance", BucketFinance},
	{"education", BucketEducation},
	{"school", BucketEducation},
	{"student", BucketEducation},
	{"university", BucketEducation},
	{"retail", BucketRetail},
	{"ecommerce", BucketRetail},
	{"sales", BucketRetail},
	{"product", BucketRetail},
}

// ResolveBucket maps a free-form keyword onto its domain bucket.
// Unrecognized keywords resolve to BucketGeneric.
func ResolveBucket(keyword string) DomainBucket {
	k := strings.ToLower(strings.TrimSpace(keyword))
	for _, entry := range bucketKeywords {
		if strings.Contains(k, entry.fragment) {
			return entry.bucket
		}
	}
	return BucketGeneric
}
