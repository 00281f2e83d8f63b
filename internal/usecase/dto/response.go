package dto

import (
	"time"

	"github.com/carnaval-microservice/internal/domain"
)

// OccupancyStateResponse - venue, its occupancy and the derived state
type OccupancyStateResponse struct {
	Venue     domain.Venue          `json:"venue"`
	Occupancy domain.Occupancy      `json:"occupancy"`
	State     domain.OccupancyState `json:"state"`
}

// OccupancyReportResponse - aggregate occupancy report over all venues
type OccupancyReportResponse struct {
	GeneratedAt time.Time                `json:"generated_at"`
	TotalVenues int                      `json:"total_venues"`
	Rows        []*domain.VenueReportRow `json:"rows"`
}

// AvailabilityResponse - result of a location availability check
type AvailabilityResponse struct {
	Location  string    `json:"location"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Available bool      `json:"available"`
}
