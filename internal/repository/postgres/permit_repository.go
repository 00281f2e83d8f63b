package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/domain/repository"
	apperrors "github.com/carnaval-microservice/internal/pkg/errors"
)

type permitRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewPermitRepository creates the PostgreSQL backed PermitRepository
func NewPermitRepository(db *DB, logger *zap.Logger) repository.PermitRepository {
	return &permitRepository{
		db:     db,
		logger: logger,
	}
}

func (r *permitRepository) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vendors (id, first_name, last_name, email, phone, national_id, business_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, vendor.ID, vendor.FirstName, vendor.LastName, vendor.Email, vendor.Phone,
		vendor.NationalID, vendor.BusinessName, vendor.Status, vendor.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func (r *permitRepository) GetVendor(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	vendor := &domain.Vendor{}
	err := r.db.GetContext(ctx, vendor, `
		SELECT id, first_name, last_name, email, phone, national_id, business_name, status, created_at
		FROM vendors
		WHERE id = $1
	`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrVendorNotFound
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return vendor, nil
}

func (r *permitRepository) GetAllVendors(ctx context.Context) ([]*domain.Vendor, error) {
	vendors := make([]*domain.Vendor, 0)
	err := r.db.SelectContext(ctx, &vendors, `
		SELECT id, first_name, last_name, email, phone, national_id, business_name, status, created_at
		FROM vendors
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("select vendors: %w", err)
	}
	return vendors, nil
}

func (r *permitRepository) UpdateVendor(ctx context.Context, vendor *domain.Vendor) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE vendors SET status = $1 WHERE id = $2
	`, vendor.Status, vendor.ID)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrVendorNotFound)
}

func (r *permitRepository) CreateRequest(ctx context.Context, request *domain.PermitRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO permit_requests
			(id, vendor_id, category, description, request_date, start_date, end_date,
			 location, area_sqm, fee, status, rejection_reason, approval_date, documents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, request.ID, request.VendorID, request.Category, request.Description,
		request.RequestDate, request.StartDate, request.EndDate, request.Location,
		request.AreaSqm, request.Fee, request.Status, request.RejectionReason,
		request.ApprovalDate, pq.Array(request.Documents))
	if err != nil {
		return fmt.Errorf("insert permit request: %w", err)
	}
	return nil
}

func (r *permitRepository) GetRequest(ctx context.Context, id uuid.UUID) (*domain.PermitRequest, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT id, vendor_id, category, description, request_date, start_date, end_date,
		       location, area_sqm, fee, status, rejection_reason, approval_date, documents
		FROM permit_requests
		WHERE id = $1
	`, id)

	request, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("get permit request: %w", err)
	}
	return request, nil
}

func (r *permitRepository) GetRequestsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*domain.PermitRequest, error) {
	return r.selectRequests(ctx, `
		SELECT id, vendor_id, category, description, request_date, start_date, end_date,
		       location, area_sqm, fee, status, rejection_reason, approval_date, documents
		FROM permit_requests
		WHERE vendor_id = $1
		ORDER BY request_date
	`, vendorID)
}

func (r *permitRepository) GetRequestsByStatus(ctx context.Context, status domain.RequestStatus) ([]*domain.PermitRequest, error) {
	return r.selectRequests(ctx, `
		SELECT id, vendor_id, category, description, request_date, start_date, end_date,
		       location, area_sqm, fee, status, rejection_reason, approval_date, documents
		FROM permit_requests
		WHERE status = $1
		ORDER BY request_date
	`, status)
}

func (r *permitRepository) UpdateRequest(ctx context.Context, request *domain.PermitRequest) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE permit_requests
		SET status = $1, rejection_reason = $2, approval_date = $3
		WHERE id = $4
	`, request.Status, request.RejectionReason, request.ApprovalDate, request.ID)
	if err != nil {
		return fmt.Errorf("update permit request: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrRequestNotFound)
}

func (r *permitRepository) CreateApproval(ctx context.Context, approval *domain.PermitApproval) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO permit_approvals (request_id, vendor_id, approved_by, approval_date, permit_number, conditions)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, approval.RequestID, approval.VendorID, approval.ApprovedBy,
		approval.ApprovalDate, approval.PermitNumber, pq.Array(approval.Conditions))
	if err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

func (r *permitRepository) GetApproval(ctx context.Context, requestID uuid.UUID) (*domain.PermitApproval, error) {
	approval := &domain.PermitApproval{}
	var conditions pq.StringArray
	err := r.db.QueryRowxContext(ctx, `
		SELECT request_id, vendor_id, approved_by, approval_date, permit_number, conditions
		FROM permit_approvals
		WHERE request_id = $1
	`, requestID).Scan(&approval.RequestID, &approval.VendorID, &approval.ApprovedBy,
		&approval.ApprovalDate, &approval.PermitNumber, &conditions)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval: %w", err)
	}
	approval.Conditions = conditions
	return approval, nil
}

func (r *permitRepository) PermitNumberExists(ctx context.Context, permitNumber string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM permit_approvals WHERE permit_number = $1)
	`, permitNumber)
	if err != nil {
		return false, fmt.Errorf("permit number exists: %w", err)
	}
	return exists, nil
}

func (r *permitRepository) selectRequests(ctx context.Context, query string, args ...interface{}) ([]*domain.PermitRequest, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select permit requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*domain.PermitRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan permit request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.PermitRequest, error) {
	request := &domain.PermitRequest{}
	var documents pq.StringArray
	err := row.Scan(&request.ID, &request.VendorID, &request.Category, &request.Description,
		&request.RequestDate, &request.StartDate, &request.EndDate, &request.Location,
		&request.AreaSqm, &request.Fee, &request.Status, &request.RejectionReason,
		&request.ApprovalDate, &documents)
	if err != nil {
		return nil, err
	}
	request.Documents = documents
	return request, nil
}
