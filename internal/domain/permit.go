package domain

import (
	"time"

	"github.com/google/uuid"
)

// VendorStatus - registration status of a vendor
type VendorStatus string

const (
	VendorActive   VendorStatus = "active"
	VendorInactive VendorStatus = "inactive"
	VendorBlocked  VendorStatus = "blocked"
)

// Vendor - a registered business entity eligible to request sales permits.
// Status is the only field mutated after registration.
type Vendor struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	FirstName    string       `json:"first_name" db:"first_name"`
	LastName     string       `json:"last_name" db:"last_name"`
	Email        string       `json:"email" db:"email"`
	Phone        string       `json:"phone" db:"phone"`
	NationalID   string       `json:"national_id" db:"national_id"`
	BusinessName string       `json:"business_name" db:"business_name"`
	Status       VendorStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// ProductCategory - fixed set of permit product categories
type ProductCategory string

const (
	ProductFood          ProductCategory = "alimentos"
	ProductBeverages     ProductCategory = "bebidas"
	ProductCrafts        ProductCategory = "artesanias"
	ProductEntertainment ProductCategory = "entretenimiento"
	ProductOther         ProductCategory = "otro"
)

// baseRates - fee per square meter by product category
var baseRates = map[ProductCategory]float64{
	ProductFood:          50,
	ProductBeverages:     40,
	ProductCrafts:        30,
	ProductEntertainment: 60,
	ProductOther:         25,
}

// defaultRate applies to unknown categories
const defaultRate = 25

// volumeDiscountAreaSqm - above this area the whole fee gets a flat 10% discount
const volumeDiscountAreaSqm = 100

// PermitFee computes the fee for a request. The fee is fixed at creation
// and never recomputed.
func PermitFee(category ProductCategory, areaSqm float64) float64 {
	rate, ok := baseRates[category]
	if !ok {
		rate = defaultRate
	}

	fee := rate * areaSqm
	if areaSqm > volumeDiscountAreaSqm {
		fee *= 0.9
	}
	return fee
}

// RequestStatus - lifecycle state of a permit request.
// pending is initial; approved, rejected and cancelled are terminal.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// PermitRequest - a vendor's application to sell at a location and date range
type PermitRequest struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	VendorID        uuid.UUID       `json:"vendor_id" db:"vendor_id"`
	Category        ProductCategory `json:"category" db:"category"`
	Description     string          `json:"description" db:"description"`
	RequestDate     time.Time       `json:"request_date" db:"request_date"`
	StartDate       time.Time       `json:"start_date" db:"start_date"`
	EndDate         time.Time       `json:"end_date" db:"end_date"`
	Location        string          `json:"location" db:"location"`
	AreaSqm         float64         `json:"area_sqm" db:"area_sqm"`
	Fee             float64         `json:"fee" db:"fee"`
	Status          RequestStatus   `json:"status" db:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ApprovalDate    *time.Time      `json:"approval_date,omitempty" db:"approval_date"`
	Documents       []string        `json:"documents" db:"documents"`
}

// Overlaps reports whether the request's date range intersects [start, end]
// at the same location. Touching endpoints count as overlapping.
func (r *PermitRequest) Overlaps(location string, start, end time.Time) bool {
	if r.Location != location {
		return false
	}
	return !(end.Before(r.StartDate) || start.After(r.EndDate))
}

// PermitApproval - the record of a request being granted, one per approved request
type PermitApproval struct {
	RequestID    uuid.UUID `json:"request_id" db:"request_id"`
	VendorID     uuid.UUID `json:"vendor_id" db:"vendor_id"`
	ApprovedBy   string    `json:"approved_by" db:"approved_by"`
	ApprovalDate time.Time `json:"approval_date" db:"approval_date"`
	PermitNumber string    `json:"permit_number" db:"permit_number"`
	Conditions   []string  `json:"conditions,omitempty" db:"conditions"`
}

// PermitStatistics - aggregate counts by status plus revenue over approved requests
type PermitStatistics struct {
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	Rejected     int     `json:"rejected"`
	Pending      int     `json:"pending"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"total_revenue"`
}
