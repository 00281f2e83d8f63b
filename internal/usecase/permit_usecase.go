package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/domain/repository"
	"github.com/carnaval-microservice/internal/pkg/errors"
	"github.com/carnaval-microservice/internal/usecase/dto"
)

// ApprovalCallback - subscriber for approved requests, invoked synchronously
type ApprovalCallback func(event domain.RequestApprovedEvent)

const permitNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// permitNumberAttempts bounds the uniqueness retry loop; with 36^6
// candidates a second collision in a row is practically impossible
const permitNumberAttempts = 5

// PermitUseCase - business logic for vendor registration and the permit
// request lifecycle
type PermitUseCase struct {
	permitRepo repository.PermitRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger

	requestLocks *keyedMutex

	subscribersMu sync.RWMutex
	subscribers   []ApprovalCallback
}

// NewPermitUseCase creates a new PermitUseCase. streamRepo may be nil, in
// which case events are delivered to in-process subscribers only.
func NewPermitUseCase(
	permitRepo repository.PermitRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *PermitUseCase {
	return &PermitUseCase{
		permitRepo:   permitRepo,
		streamRepo:   streamRepo,
		logger:       logger,
		requestLocks: newKeyedMutex(),
	}
}

// RegisterVendor creates a vendor with status active. Email and national
// id are not checked for uniqueness; duplicates are accepted.
func (uc *PermitUseCase) RegisterVendor(ctx context.Context, req dto.RegisterVendorRequest) (*domain.Vendor, error) {
	vendor := &domain.Vendor{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		NationalID:   req.NationalID,
		BusinessName: req.BusinessName,
		Status:       domain.VendorActive,
		CreatedAt:    time.Now(),
	}

	if err := uc.permitRepo.CreateVendor(ctx, vendor); err != nil {
		return nil, err
	}

	uc.logger.Info("Vendor registered",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("business_name", vendor.BusinessName))
	return vendor, nil
}

// GetVendor returns a vendor by id
func (uc *PermitUseCase) GetVendor(ctx context.Context, vendorID uuid.UUID) (*domain.Vendor, error) {
	return uc.permitRepo.GetVendor(ctx, vendorID)
}

// ListVendors returns every registered vendor
func (uc *PermitUseCase) ListVendors(ctx context.Context) ([]*domain.Vendor, error) {
	return uc.permitRepo.GetAllVendors(ctx)
}

// BlockVendor sets the vendor status to blocked. Pending requests of the
// vendor are left untouched and remain approvable.
func (uc *PermitUseCase) BlockVendor(ctx context.Context, vendorID uuid.UUID) (*domain.Vendor, error) {
	vendor, err := uc.permitRepo.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	vendor.Status = domain.VendorBlocked
	if err := uc.permitRepo.UpdateVendor(ctx, vendor); err != nil {
		return nil, err
	}

	uc.logger.Info("Vendor blocked", zap.String("vendor_id", vendorID.String()))
	return vendor, nil
}

// CreateRequest creates a pending permit request with a computed fee.
// Location availability is the caller's concern: check it separately
// before calling this.
func (uc *PermitUseCase) CreateRequest(ctx context.Context, req dto.CreatePermitRequest) (*domain.PermitRequest, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	vendor, err := uc.permitRepo.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if vendor.Status == domain.VendorBlocked {
		return nil, errors.ErrVendorBlocked
	}

	category := domain.ProductCategory(req.Category)
	request := &domain.PermitRequest{
		ID:          uuid.New(),
		VendorID:    vendorID,
		Category:    category,
		Description: req.Description,
		RequestDate: time.Now(),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		AreaSqm:     req.AreaSqm,
		Fee:         domain.PermitFee(category, req.AreaSqm),
		Status:      domain.RequestPending,
		Documents:   req.Documents,
	}
	if request.Documents == nil {
		request.Documents = []string{}
	}

	if err := uc.permitRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	uc.logger.Info("Permit request created",
		zap.String("request_id", request.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.Float64("fee", request.Fee))
	return request, nil
}

// GetVendorRequests returns every request owned by a vendor
func (uc *PermitUseCase) GetVendorRequests(ctx context.Context, vendorID uuid.UUID) ([]*domain.PermitRequest, error) {
	return uc.permitRepo.GetRequestsByVendor(ctx, vendorID)
}

// GetPendingRequests returns every request awaiting a decision
func (uc *PermitUseCase) GetPendingRequests(ctx context.Context) ([]*domain.PermitRequest, error) {
	return uc.permitRepo.GetRequestsByStatus(ctx, domain.RequestPending)
}

// ApproveRequest transitions a pending request to approved, generates the
// permit number and records the approval
func (uc *PermitUseCase) ApproveRequest(ctx context.Context, requestID uuid.UUID, approvedBy string, conditions []string) (*domain.PermitApproval, error) {
	unlock := uc.requestLocks.Lock(requestID)
	defer unlock()

	request, err := uc.permitRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != domain.RequestPending {
		return nil, errors.ErrInvalidState.WithDetails(map[string]interface{}{
			"status": string(request.Status),
		})
	}

	permitNumber, err := uc.generatePermitNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = domain.RequestApproved
	request.ApprovalDate = &now
	if err := uc.permitRepo.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	approval := &domain.PermitApproval{
		RequestID:    requestID,
		VendorID:     request.VendorID,
		ApprovedBy:   approvedBy,
		ApprovalDate: now,
		PermitNumber: permitNumber,
		Conditions:   conditions,
	}
	if err := uc.permitRepo.CreateApproval(ctx, approval); err != nil {
		return nil, err
	}

	uc.logger.Info("Permit request approved",
		zap.String("request_id", requestID.String()),
		zap.String("permit_number", permitNumber))

	event := domain.RequestApprovedEvent{
		RequestID:    requestID,
		VendorID:     request.VendorID,
		PermitNumber: permitNumber,
		Fee:          request.Fee,
		Timestamp:    now,
	}

	uc.subscribersMu.RLock()
	subscribers := make([]ApprovalCallback, len(uc.subscribers))
	copy(subscribers, uc.subscribers)
	uc.subscribersMu.RUnlock()

	for _, cb := range subscribers {
		cb(event)
	}

	if uc.streamRepo != nil {
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamPermisosApproved, event); err != nil {
			uc.logger.Warn("Failed to publish approval event", zap.Error(err))
		}
	}

	return approval, nil
}

// RejectRequest transitions a pending request to rejected with a reason
func (uc *PermitUseCase) RejectRequest(ctx context.Context, requestID uuid.UUID, reason string) (*domain.PermitRequest, error) {
	unlock := uc.requestLocks.Lock(requestID)
	defer unlock()

	request, err := uc.permitRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != domain.RequestPending {
		return nil, errors.ErrInvalidState.WithDetails(map[string]interface{}{
			"status": string(request.Status),
		})
	}

	request.Status = domain.RequestRejected
	request.RejectionReason = reason
	if err := uc.permitRepo.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	uc.logger.Info("Permit request rejected",
		zap.String("request_id", requestID.String()),
		zap.String("reason", reason))
	return request, nil
}

// CancelRequest transitions a pending request to cancelled. Like approve
// and reject, the transition is only allowed from pending: approved,
// rejected and cancelled are terminal.
func (uc *PermitUseCase) CancelRequest(ctx context.Context, requestID uuid.UUID) (*domain.PermitRequest, error) {
	unlock := uc.requestLocks.Lock(requestID)
	defer unlock()

	request, err := uc.permitRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != domain.RequestPending {
		return nil, errors.ErrInvalidState.WithDetails(map[string]interface{}{
			"status": string(request.Status),
		})
	}

	request.Status = domain.RequestCancelled
	if err := uc.permitRepo.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	uc.logger.Info("Permit request cancelled", zap.String("request_id", requestID.String()))
	return request, nil
}

// GetStatistics counts requests by status and sums revenue over approved ones
func (uc *PermitUseCase) GetStatistics(ctx context.Context) (*domain.PermitStatistics, error) {
	stats := &domain.PermitStatistics{}

	approved, err := uc.permitRepo.GetRequestsByStatus(ctx, domain.RequestApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := uc.permitRepo.GetRequestsByStatus(ctx, domain.RequestRejected)
	if err != nil {
		return nil, err
	}
	pending, err := uc.permitRepo.GetRequestsByStatus(ctx, domain.RequestPending)
	if err != nil {
		return nil, err
	}
	cancelled, err := uc.permitRepo.GetRequestsByStatus(ctx, domain.RequestCancelled)
	if err != nil {
		return nil, err
	}

	stats.Approved = len(approved)
	stats.Rejected = len(rejected)
	stats.Pending = len(pending)
	stats.Cancelled = len(cancelled)
	stats.Total = stats.Approved + stats.Rejected + stats.Pending + stats.Cancelled

	for _, request := range approved {
		stats.TotalRevenue += request.Fee
	}

	return stats, nil
}

// ValidateLocationAvailable scans approved requests for a same-location
// date overlap. Touching endpoints count as a conflict.
func (uc *PermitUseCase) ValidateLocationAvailable(ctx context.Context, location string, start, end time.Time) (bool, error) {
	approved, err := uc.permitRepo.GetRequestsByStatus(ctx, domain.RequestApproved)
	if err != nil {
		return false, err
	}

	for _, request := range approved {
		if request.Overlaps(location, start, end) {
			return false, nil
		}
	}
	return true, nil
}

// OnRequestApproved registers a callback invoked synchronously for every
// approved request
func (uc *PermitUseCase) OnRequestApproved(cb ApprovalCallback) {
	uc.subscribersMu.Lock()
	defer uc.subscribersMu.Unlock()
	uc.subscribers = append(uc.subscribers, cb)
}

// generatePermitNumber builds PERM-<YYYYMMDD>-<6 uppercase alphanumerics>,
// retrying against the approval store so numbers stay unique
func (uc *PermitUseCase) generatePermitNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < permitNumberAttempts; attempt++ {
		suffix := make([]byte, 6)
		if _, err := rand.Read(suffix); err != nil {
			return "", fmt.Errorf("generate permit number: %w", err)
		}
		for i, b := range suffix {
			suffix[i] = permitNumberCharset[int(b)%len(permitNumberCharset)]
		}

		candidate := fmt.Sprintf("PERM-%s-%s", time.Now().Format("20060102"), suffix)

		exists, err := uc.permitRepo.PermitNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		uc.logger.Warn("Permit number collision, regenerating",
			zap.String("permit_number", candidate))
	}

	return "", errors.ErrInternalServer
}
