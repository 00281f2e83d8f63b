package dto

import "time"

// CreateVenueRequest - request to register a venue for capacity monitoring
type CreateVenueRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Location    string `json:"location" validate:"required,min=5,max=200"`
	MaxCapacity int    `json:"max_capacity" validate:"required,gt=0,max=1000000"`
	Category    string `json:"category" validate:"required,oneof=plaza parque estadio auditorio"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// UpdateVenueRequest - request to update mutable venue fields.
// Max capacity is fixed at creation and deliberately absent here.
type UpdateVenueRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Location    *string `json:"location" validate:"omitempty,min=5,max=200"`
	Status      *string `json:"status" validate:"omitempty,oneof=active maintenance closed"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// UpdateOccupancyRequest - request to set the absolute headcount of a venue
type UpdateOccupancyRequest struct {
	Current *int `json:"current" validate:"required,min=0"`
}

// EntryExitRequest - request to register people entering or leaving.
// Count defaults to 1 when omitted.
type EntryExitRequest struct {
	Count int `json:"count" validate:"omitempty,min=1"`
}

// UpdateThresholdsRequest - partial update of the alert thresholds
type UpdateThresholdsRequest struct {
	Critical *float64 `json:"critical" validate:"omitempty,gt=0,max=100"`
	Warning  *float64 `json:"warning" validate:"omitempty,gt=0,max=100"`
	Low      *float64 `json:"low" validate:"omitempty,gte=0,max=100"`
}

// RegisterVendorRequest - request to register a vendor
type RegisterVendorRequest struct {
	FirstName    string `json:"first_name" validate:"required,min=2,max=100"`
	LastName     string `json:"last_name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=5,max=30"`
	NationalID   string `json:"national_id" validate:"required,min=5,max=20"`
	BusinessName string `json:"business_name" validate:"required,min=3,max=200"`
}

// CreatePermitRequest - request to create a permit request.
// Any caller-supplied fee is ignored: the fee is always computed server side.
type CreatePermitRequest struct {
	VendorID    string    `json:"vendor_id" validate:"required,uuid"`
	Category    string    `json:"category" validate:"required,oneof=alimentos bebidas artesanias entretenimiento otro"`
	Description string    `json:"description" validate:"required,min=10,max=1000"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	Location    string    `json:"location" validate:"required,min=5,max=200"`
	AreaSqm     float64   `json:"area_sqm" validate:"required,gt=0,max=500"`
	Documents   []string  `json:"documents" validate:"omitempty,dive,uri"`
}

// ApproveRequestRequest - request to approve a pending permit request
type ApproveRequestRequest struct {
	ApprovedBy string   `json:"approved_by" validate:"required,min=2,max=100"`
	Conditions []string `json:"conditions" validate:"omitempty,dive,min=3"`
}

// RejectRequestRequest - request to reject a pending permit request
type RejectRequestRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

// AvailabilityRequest - location/date-range availability check
type AvailabilityRequest struct {
	Location  string    `json:"location" validate:"required,min=5,max=200"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
}
