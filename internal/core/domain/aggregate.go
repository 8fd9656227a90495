package domain

// AggregationMethod selects how grouped values are reduced
type AggregationMethod string

const (
	AggSum    AggregationMethod = "sum"
	AggMean   AggregationMethod = "mean"
	AggMedian AggregationMethod = "median"
	AggCount  AggregationMethod = "count"
	AggMin    AggregationMethod = "min"
	AggMax    AggregationMethod = "max"
)

// ValidAggregationMethods returns the supported aggregation methods
func ValidAggregationMethods() []AggregationMethod {
	return []AggregationMethod{AggSum, AggMean, AggMedian, AggCount, AggMin, AggMax}
}

// IsValidAggregationMethod checks membership in the supported set
func IsValidAggregationMethod(m AggregationMethod) bool {
	for _, v := range ValidAggregationMethods() {
		if v == m {
			return true
		}
	}
	return false
}

// AggregatedGroup is one (category, value) pair of an aggregation result.
// Groups preserve first-seen category order.
type AggregatedGroup struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}
