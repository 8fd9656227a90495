package detection

import (
	"regexp"
	"strings"
	"time"

	"github.com/chartfoundry/tabular-engine/internal/core/domain"
	"github.com/chartfoundry/tabular-engine/internal/core/services/numeric"
)

// ClassifierRule matches a single sampled value against one column type.
// The detector walks rules in priority order (most specific first) and the
// first rule whose match ratio clears the confidence threshold wins.
type ClassifierRule interface {
	// Type returns the column type this rule classifies
	Type() domain.ColumnType

	// Matches reports whether a single non-empty value fits the type
	Matches(value string) bool
}

// DefaultRules returns the built-in rules in priority order:
// boolean, date, number. String is the fall-through default and has no rule.
func DefaultRules() []ClassifierRule {
	return []ClassifierRule{
		booleanRule{},
		dateRule{},
		numberRule{},
	}
}

// booleanRule matches a fixed literal set, case-insensitive, including the
// localized yes/no pairs the engine recognizes.
type booleanRule struct{}

var booleanLiterals = map[string]struct{}{
	"true": {}, "false": {},
	"yes": {}, "no": {},
	"y": {}, "n": {},
	"1": {}, "0": {},
	"si": {}, "sí": {},
	"oui": {}, "non": {},
	"ja": {}, "nein": {},
}

func (booleanRule) Type() domain.ColumnType {
	return domain.TypeBoolean
}

func (booleanRule) Matches(value string) bool {
	_, ok := booleanLiterals[strings.ToLower(value)]
	return ok
}

// dateRule matches the fixed date-shape set. Each shape pairs a regex gate
// with time.Parse layouts so "99/99/9999" does not pass as a date.
type dateRule struct{}

type dateShape struct {
	pattern *regexp.Regexp
	layouts []string
}

var dateShapes = []dateShape{
	// ISO: 2024-01-31
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), []string{"2006-01-02"}},
	// US slash: 1/31/2024, 01/31/2024
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), []string{"1/2/2006"}},
	// EU dot: 31.1.2024, 31.01.2024
	{regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`), []string{"2.1.2006"}},
	// Dash-alternate: 31-1-2024
	{regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`), []string{"2-1-2006"}},
	// Year-first slash: 2024/1/31
	{regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`), []string{"2006/1/2"}},
}

func (dateRule) Type() domain.ColumnType {
	return domain.TypeDate
}

func (dateRule) Matches(value string) bool {
	for _, shape := range dateShapes {
		if !shape.pattern.MatchString(value) {
			continue
		}
		for _, layout := range shape.layouts {
			if _, err := time.Parse(layout, value); err == nil {
				return true
			}
		}
	}
	return false
}

// numberRule delegates to the locale disambiguator
type numberRule struct{}

func (numberRule) Type() domain.ColumnType {
	return domain.TypeNumber
}

func (numberRule) Matches(value string) bool {
	_, ok := numeric.Parse(value)
	return ok
}
