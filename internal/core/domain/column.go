package domain

// ColumnType is the semantic type detected for a column
type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeNumber  ColumnType = "number"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
)

// ValidColumnTypes returns the closed set of column types
func ValidColumnTypes() []ColumnType {
	return []ColumnType{TypeString, TypeNumber, TypeDate, TypeBoolean}
}

// IsValidColumnType checks membership in the closed type set
func IsValidColumnType(t ColumnType) bool {
	for _, v := range ValidColumnTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// NumericStats holds full-dataset statistics for a number-typed column.
// Present only when at least one value parsed successfully.
type NumericStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// ColumnMetadata describes a single column of a dataset snapshot.
// ConfirmedType defaults to DetectedType and may be overridden later by an
// external actor; it always stays within the closed type set.
type ColumnMetadata struct {
	Name          string        `json:"name"`
	DetectedType  ColumnType    `json:"detected_type"`
	ConfirmedType ColumnType    `json:"confirmed_type"`
	UniqueValues  int           `json:"unique_values"`
	NullCount     int           `json:"null_count"`
	SampleValues  []string      `json:"sample_values"`
	Stats         *NumericStats `json:"stats,omitempty"`
}
