package detection

import (
	"log/slog"

	"github.com/chartfoundry/tabular-engine/internal/core/domain"
	"github.com/chartfoundry/tabular-engine/internal/core/services/numeric"
)

const maxSampleValues = 5

// Config holds detector tuning. Values come from the caller explicitly;
// the detector never reads ambient configuration.
type Config struct {
	// SampleSize is how many leading rows feed the type vote
	SampleSize int

	// ConfidenceThreshold is the match ratio a rule must clear to win
	ConfidenceThreshold float64
}

// DefaultConfig returns the standard 100-row / 80% detector settings
func DefaultConfig() Config {
	return Config{
		SampleSize:          100,
		ConfidenceThreshold: 0.8,
	}
}

// Detector classifies columns by majority vote over a leading sample and
// computes full-dataset statistics for each column.
type Detector struct {
	config Config
	rules  []ClassifierRule
	logger *slog.Logger
}

// NewDetector creates a detector with the given settings and the built-in
// rule order (boolean, date, number, falling through to string).
func NewDetector(config Config, logger *slog.Logger) *Detector {
	if config.SampleSize <= 0 {
		config.SampleSize = DefaultConfig().SampleSize
	}
	if config.ConfidenceThreshold <= 0 || config.ConfidenceThreshold > 1 {
		config.ConfidenceThreshold = DefaultConfig().ConfidenceThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Detector{
		config: config,
		rules:  DefaultRules(),
		logger: logger,
	}
}

// DetectColumns classifies every column and computes its statistics over the
// full dataset. Headers fix the column order of the result.
func (d *Detector) DetectColumns(rows []domain.Row, headers []string) []domain.ColumnMetadata {
	columns := make([]domain.ColumnMetadata, 0, len(headers))

	for _, header := range headers {
		meta := d.detectColumn(rows, header)
		columns = append(columns, meta)
	}

	return columns
}

func (d *Detector) detectColumn(rows []domain.Row, name string) domain.ColumnMetadata {
	sample := d.sampleColumn(rows, name)
	detected := d.classify(sample)

	meta := domain.ColumnMetadata{
		Name:          name,
		DetectedType:  detected,
		ConfirmedType: detected,
	}

	d.computeStatistics(rows, &meta)

	if len(sample) > maxSampleValues {
		sample = sample[:maxSampleValues]
	}
	meta.SampleValues = sample

	d.logger.Debug("column classified",
		slog.String("column", name),
		slog.String("type", string(detected)))

	return meta
}

// sampleColumn collects non-empty cells from the leading SampleSize rows.
// Sampling is over the whole dataset's leading rows, not per-column.
func (d *Detector) sampleColumn(rows []domain.Row, name string) []string {
	limit := d.config.SampleSize
	if limit > len(rows) {
		limit = len(rows)
	}

	sample := make([]string, 0, limit)
	for _, row := range rows[:limit] {
		cell := row.Cell(name)
		if cell.IsAbsent() {
			continue
		}
		sample = append(sample, cell.AsString())
	}
	return sample
}

// classify runs the rules in priority order; the first rule whose match
// ratio clears the threshold wins. An empty sample defaults to string.
func (d *Detector) classify(sample []string) domain.ColumnType {
	if len(sample) == 0 {
		return domain.TypeString
	}

	for _, rule := range d.rules {
		matches := 0
		for _, value := range sample {
			if rule.Matches(value) {
				matches++
			}
		}
		ratio := float64(matches) / float64(len(sample))
		if ratio >= d.config.ConfidenceThreshold {
			return rule.Type()
		}
	}

	return domain.TypeString
}

// computeStatistics scans the full dataset: null count, distinct non-null
// count, and min/max/mean for number-typed columns. Values the disambiguator
// rejects are excluded from the numeric statistics, never treated as zero.
func (d *Detector) computeStatistics(rows []domain.Row, meta *domain.ColumnMetadata) {
	distinct := make(map[string]struct{})
	var parsed []float64

	for _, row := range rows {
		cell := row.Cell(meta.Name)
		if cell.IsAbsent() {
			meta.NullCount++
			continue
		}

		raw := cell.AsString()
		distinct[raw] = struct{}{}

		if meta.DetectedType == domain.TypeNumber {
			if f, ok := numeric.Parse(raw); ok {
				parsed = append(parsed, f)
			}
		}
	}

	meta.UniqueValues = len(distinct)

	if meta.DetectedType == domain.TypeNumber && len(parsed) > 0 {
		meta.Stats = &domain.NumericStats{
			Min:  numeric.Min(parsed),
			Max:  numeric.Max(parsed),
			Mean: numeric.Mean(parsed),
		}
	}
}
