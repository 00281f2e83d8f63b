package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/domain/repository"
	"github.com/carnaval-microservice/internal/pkg/errors"
)

// permitRepository - map-backed implementation of PermitRepository
type permitRepository struct {
	mu        sync.RWMutex
	vendors   map[uuid.UUID]*domain.Vendor
	requests  map[uuid.UUID]*domain.PermitRequest
	approvals map[uuid.UUID]*domain.PermitApproval
	logger    *zap.Logger
}

// NewPermitRepository creates the in-memory PermitRepository
func NewPermitRepository(logger *zap.Logger) repository.PermitRepository {
	return &permitRepository{
		vendors:   make(map[uuid.UUID]*domain.Vendor),
		requests:  make(map[uuid.UUID]*domain.PermitRequest),
		approvals: make(map[uuid.UUID]*domain.PermitApproval),
		logger:    logger,
	}
}

func (r *permitRepository) CreateVendor(_ context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *vendor
	r.vendors[vendor.ID] = &stored

	r.logger.Debug("Vendor stored", zap.String("vendor_id", vendor.ID.String()))
	return nil
}

func (r *permitRepository) GetVendor(_ context.Context, id uuid.UUID) (*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendor, ok := r.vendors[id]
	if !ok {
		return nil, errors.ErrVendorNotFound
	}

	copied := *vendor
	return &copied, nil
}

func (r *permitRepository) GetAllVendors(_ context.Context) ([]*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendors := make([]*domain.Vendor, 0, len(r.vendors))
	for _, vendor := range r.vendors {
		copied := *vendor
		vendors = append(vendors, &copied)
	}
	return vendors, nil
}

func (r *permitRepository) UpdateVendor(_ context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vendors[vendor.ID]; !ok {
		return errors.ErrVendorNotFound
	}

	stored := *vendor
	r.vendors[vendor.ID] = &stored
	return nil
}

func (r *permitRepository) CreateRequest(_ context.Context, request *domain.PermitRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *request
	stored.Documents = append([]string(nil), request.Documents...)
	r.requests[request.ID] = &stored

	r.logger.Debug("Permit request stored",
		zap.String("request_id", request.ID.String()),
		zap.String("vendor_id", request.VendorID.String()))
	return nil
}

func (r *permitRepository) GetRequest(_ context.Context, id uuid.UUID) (*domain.PermitRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, errors.ErrRequestNotFound
	}

	return copyRequest(request), nil
}

func (r *permitRepository) GetRequestsByVendor(_ context.Context, vendorID uuid.UUID) ([]*domain.PermitRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]*domain.PermitRequest, 0)
	for _, request := range r.requests {
		if request.VendorID == vendorID {
			requests = append(requests, copyRequest(request))
		}
	}
	return requests, nil
}

func (r *permitRepository) GetRequestsByStatus(_ context.Context, status domain.RequestStatus) ([]*domain.PermitRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requests := make([]*domain.PermitRequest, 0)
	for _, request := range r.requests {
		if request.Status == status {
			requests = append(requests, copyRequest(request))
		}
	}
	return requests, nil
}

func (r *permitRepository) UpdateRequest(_ context.Context, request *domain.PermitRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[request.ID]; !ok {
		return errors.ErrRequestNotFound
	}

	r.requests[request.ID] = copyRequest(request)
	return nil
}

func (r *permitRepository) CreateApproval(_ context.Context, approval *domain.PermitApproval) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *approval
	stored.Conditions = append([]string(nil), approval.Conditions...)
	r.approvals[approval.RequestID] = &stored
	return nil
}

func (r *permitRepository) GetApproval(_ context.Context, requestID uuid.UUID) (*domain.PermitApproval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	approval, ok := r.approvals[requestID]
	if !ok {
		return nil, nil
	}

	copied := *approval
	copied.Conditions = append([]string(nil), approval.Conditions...)
	return &copied, nil
}

func (r *permitRepository) PermitNumberExists(_ context.Context, permitNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, approval := range r.approvals {
		if approval.PermitNumber == permitNumber {
			return true, nil
		}
	}
	return false, nil
}

func copyRequest(request *domain.PermitRequest) *domain.PermitRequest {
	copied := *request
	copied.Documents = append([]string(nil), request.Documents...)
	if request.ApprovalDate != nil {
		approvalDate := *request.ApprovalDate
		copied.ApprovalDate = &approvalDate
	}
	return &copied
}
