package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"odd count", []float64{3, 1, 2}, 2},
		{"even count averages middle pair", []float64{4, 1, 3, 2}, 2.5},
		{"unsorted input", []float64{100, 10, 50}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Median(tt.values), 1e-9)
		})
	}
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMeanSumMinMax(t *testing.T) {
	values := []float64{100, 150, 200, 250}

	assert.InDelta(t, 700.0, Sum(values), 1e-9)
	assert.InDelta(t, 175.0, Mean(values), 1e-9)
	assert.InDelta(t, 100.0, Min(values), 1e-9)
	assert.InDelta(t, 250.0, Max(values), 1e-9)
}

func TestStats_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
}
