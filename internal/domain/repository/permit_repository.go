package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/carnaval-microservice/internal/domain"
)

// PermitRepository abstracts storage for vendors, permit requests and
// approvals. Completely independent of the venue module's storage.
type PermitRepository interface {
	// CreateVendor stores a new vendor
	CreateVendor(ctx context.Context, vendor *domain.Vendor) error

	// GetVendor returns a vendor by id
	GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)

	// GetAllVendors returns every registered vendor
	GetAllVendors(ctx context.Context) ([]*domain.Vendor, error)

	// UpdateVendor persists mutable vendor fields (status)
	UpdateVendor(ctx context.Context, vendor *domain.Vendor) error

	// CreateRequest stores a new permit request
	CreateRequest(ctx context.Context, request *domain.PermitRequest) error

	// GetRequest returns a permit request by id
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.PermitRequest, error)

	// GetRequestsByVendor returns every request owned by a vendor
	GetRequestsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*domain.PermitRequest, error)

	// GetRequestsByStatus returns every request in the given status
	GetRequestsByStatus(ctx context.Context, status domain.RequestStatus) ([]*domain.PermitRequest, error)

	// UpdateRequest persists request lifecycle fields (status, reason, approval date)
	UpdateRequest(ctx context.Context, request *domain.PermitRequest) error

	// CreateApproval stores the approval record of a request
	CreateApproval(ctx context.Context, approval *domain.PermitApproval) error

	// GetApproval returns the approval record of a request, nil when absent
	GetApproval(ctx context.Context, requestID uuid.UUID) (*domain.PermitApproval, error)

	// PermitNumberExists reports whether a permit number is already taken
	PermitNumberExists(ctx context.Context, permitNumber string) (bool, error)
}
