package validation

import (
	"fmt"
	"log/slog"

	"github.com/chartfoundry/tabular-engine/internal/core/domain"
)

// Validator checks a column-to-dimension mapping against a visualization
// target's declared dimension requirements.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a mapping validator
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger}
}

// Validate walks the requirements in order and collects errors and warnings.
// Errors (missing required dimension, unknown column, multiplicity breach)
// block downstream use; a type mismatch is only a warning. The result is
// valid iff the error list is empty.
func (v *Validator) Validate(requirements []domain.DimensionRequirement, mapping domain.Mapping, columns []domain.ColumnMetadata) domain.ValidationResult {
	result := domain.ValidationResult{
		Errors:   []domain.ValidationIssue{},
		Warnings: []domain.ValidationIssue{},
	}

	byName := make(map[string]domain.ColumnMetadata, len(columns))
	for _, col := range columns {
		byName[col.Name] = col
	}

	for _, req := range requirements {
		assigned := mapping[req.ID]

		if len(assigned) == 0 {
			if req.Required {
				result.Errors = append(result.Errors, domain.ValidationIssue{
					DimensionID: req.ID,
					Message:     fmt.Sprintf("required dimension %q is not mapped", req.ID),
				})
			}
			continue
		}

		for _, columnName := range assigned {
			col, found := byName[columnName]
			if !found {
				result.Errors = append(result.Errors, domain.ValidationIssue{
					DimensionID: req.ID,
					Message:     fmt.Sprintf("mapped column %q does not exist", columnName),
				})
				continue
			}

			if !req.Accepts(col.ConfirmedType) {
				result.Warnings = append(result.Warnings, domain.ValidationIssue{
					DimensionID: req.ID,
					Message: fmt.Sprintf("column %q has type %s, which dimension %q does not expect",
						columnName, col.ConfirmedType, req.ID),
				})
			}
		}

		if !req.AllowMultiple && len(assigned) > 1 {
			result.Errors = append(result.Errors, domain.ValidationIssue{
				DimensionID: req.ID,
				Message:     fmt.Sprintf("dimension %q accepts a single column but %d were mapped", req.ID, len(assigned)),
			})
		}
	}

	result.Valid = len(result.Errors) == 0

	v.logger.Debug("mapping validated",
		slog.Bool("valid", result.Valid),
		slog.Int("errors", len(result.Errors)),
		slog.Int("warnings", len(result.Warnings)))

	return result
}
