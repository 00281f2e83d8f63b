package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carnaval-microservice/internal/domain"
)

func TestPermitFee(t *testing.T) {
	tests := []struct {
		name     string
		category domain.ProductCategory
		area     float64
		expected float64
	}{
		{"food at 50 per sqm", domain.ProductFood, 50, 2500},
		{"beverages", domain.ProductBeverages, 10, 400},
		{"crafts", domain.ProductCrafts, 10, 300},
		{"entertainment", domain.ProductEntertainment, 10, 600},
		{"other", domain.ProductOther, 40, 1000},
		{"unknown category falls back to default rate", domain.ProductCategory("flores"), 10, 250},
		{"discount above 100 sqm", domain.ProductFood, 150, 6750},
		{"no discount at exactly 100 sqm", domain.ProductFood, 100, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.PermitFee(tt.category, tt.area))
		})
	}
}

func TestPermitRequest_Overlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	request := &domain.PermitRequest{
		Location:  "Plaza Central",
		StartDate: day(1),
		EndDate:   day(7),
	}

	tests := []struct {
		name     string
		location string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"disjoint after", "Plaza Central", day(8), day(10), false},
		{"disjoint before", "Plaza Central", time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC), time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC), false},
		{"contained", "Plaza Central", day(2), day(3), true},
		{"partial overlap", "Plaza Central", day(5), day(10), true},
		{"touching endpoint counts", "Plaza Central", day(7), day(12), true},
		{"same dates different location", "Parque Norte", day(2), day(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, request.Overlaps(tt.location, tt.start, tt.end))
		})
	}
}
