package domain

// DimensionRequirement is one data slot a visualization target declares.
// Owned by the external visualization layer; the engine only consumes it.
type DimensionRequirement struct {
	ID            string       `json:"id"`
	Required      bool         `json:"required"`
	AcceptedTypes []ColumnType `json:"accepted_types"`
	AllowMultiple bool         `json:"allow_multiple"`
}

// Accepts reports whether the dimension accepts the given column type
func (d DimensionRequirement) Accepts(t ColumnType) bool {
	for _, accepted := range d.AcceptedTypes {
		if accepted == t {
			return true
		}
	}
	return false
}

// Mapping assigns one or more column names to each dimension id
type Mapping map[string][]string

// ValidationIssue is a single error or warning keyed by dimension id
type ValidationIssue struct {
	DimensionID string `json:"dimension_id"`
	Message     string `json:"message"`
}

// ValidationResult is the outcome of checking a mapping against a target's
// dimension requirements. Errors block downstream use; warnings never do.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}
