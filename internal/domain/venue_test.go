package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carnaval-microservice/internal/domain"
)

func TestOccupancyPercentage(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		max      int
		expected float64
	}{
		{"empty venue", 0, 500, 0},
		{"full venue", 500, 500, 100},
		{"two decimals", 1, 3, 33.33},
		{"rounds up", 2, 3, 66.67},
		{"zero capacity guarded", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.OccupancyPercentage(tt.current, tt.max))
		})
	}
}

func TestAlertThresholds_Classify(t *testing.T) {
	thresholds := domain.DefaultThresholds()

	tests := []struct {
		name       string
		percentage float64
		expected   domain.OccupancyState
	}{
		{"critical at boundary", 90, domain.StateCritical},
		{"critical above", 95, domain.StateCritical},
		{"warning at boundary", 75, domain.StateWarning},
		{"warning below critical", 89.99, domain.StateWarning},
		{"low at boundary", 20, domain.StateLow},
		{"low at zero", 0, domain.StateLow},
		{"normal between bands", 50, domain.StateNormal},
		{"normal just above low", 20.01, domain.StateNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, thresholds.Classify(tt.percentage))
		})
	}
}

// Overlapping thresholds must resolve in priority order: critical wins over
// warning, warning wins over low.
func TestAlertThresholds_ClassifyPriority(t *testing.T) {
	thresholds := domain.AlertThresholds{Critical: 50, Warning: 50, Low: 60}

	assert.Equal(t, domain.StateCritical, thresholds.Classify(55))
	assert.Equal(t, domain.StateCritical, thresholds.Classify(50))
	assert.Equal(t, domain.StateLow, thresholds.Classify(40))
}

func TestAlertThresholds_AlertKindFor(t *testing.T) {
	thresholds := domain.DefaultThresholds()

	kind, ok := thresholds.AlertKindFor(95)
	assert.True(t, ok)
	assert.Equal(t, domain.AlertCriticalCapacity, kind)

	kind, ok = thresholds.AlertKindFor(80)
	assert.True(t, ok)
	assert.Equal(t, domain.AlertWarningCapacity, kind)

	kind, ok = thresholds.AlertKindFor(10)
	assert.True(t, ok)
	assert.Equal(t, domain.AlertLowOccupancy, kind)

	_, ok = thresholds.AlertKindFor(50)
	assert.False(t, ok)
}
