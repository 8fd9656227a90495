package aggregation

import (
	"log/slog"

	"github.com/chartfoundry/tabular-engine/internal/core/domain"
	"github.com/chartfoundry/tabular-engine/internal/core/services/numeric"
	apperrors "github.com/chartfoundry/tabular-engine/internal/pkg/errors"
)

// Service groups rows by a category column and reduces a value column with
// one of the supported aggregation methods.
type Service struct {
	logger *slog.Logger
}

// NewService creates an aggregation service
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Aggregate produces one group per distinct category in first-seen order.
// The category cell is coerced to its string form (a missing category becomes
// the empty string). Rows whose value cell does not resolve to a number are
// dropped from the category's contributing set entirely: they do not count
// toward count and never become zero.
func (s *Service) Aggregate(rows []domain.Row, categoryColumn, valueColumn string, method domain.AggregationMethod) ([]domain.AggregatedGroup, error) {
	if !domain.IsValidAggregationMethod(method) {
		return nil, apperrors.InvalidAggregation(string(method))
	}

	order := make([]string, 0)
	grouped := make(map[string][]float64)

	for _, row := range rows {
		category := row.Cell(categoryColumn).AsString()

		value, ok := resolveValue(row.Cell(valueColumn))
		if !ok {
			continue
		}

		if _, seen := grouped[category]; !seen {
			order = append(order, category)
		}
		grouped[category] = append(grouped[category], value)
	}

	groups := make([]domain.AggregatedGroup, 0, len(order))
	for _, category := range order {
		groups = append(groups, domain.AggregatedGroup{
			Category: category,
			Value:    reduce(grouped[category], method),
		})
	}

	s.logger.Debug("aggregation completed",
		slog.String("category", categoryColumn),
		slog.String("value", valueColumn),
		slog.String("method", string(method)),
		slog.Int("groups", len(groups)))

	return groups, nil
}

// resolveValue accepts an already-numeric cell directly and runs everything
// else through the locale disambiguator.
func resolveValue(cell domain.CellValue) (float64, bool) {
	switch cell.Kind {
	case domain.KindNumber:
		return cell.Num, true
	case domain.KindAbsent:
		return 0, false
	default:
		return numeric.Parse(cell.AsString())
	}
}

// reduce is defined to return 0 for zero contributing values, though a
// category is only created once it has at least one.
func reduce(values []float64, method domain.AggregationMethod) float64 {
	if len(values) == 0 {
		return 0
	}

	switch method {
	case domain.AggSum:
		return numeric.Sum(values)
	case domain.AggMean:
		return numeric.Mean(values)
	case domain.AggMedian:
		return numeric.Median(values)
	case domain.AggCount:
		return float64(len(values))
	case domain.AggMin:
		return numeric.Min(values)
	case domain.AggMax:
		return numeric.Max(values)
	default:
		return 0
	}
}
