package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gstims/internal/domain"
	"gstims/internal/port"
)

type integrationRequestRepo struct {
	db *sqlx.DB
}

// NewIntegrationRequestRepo creates a new PostgreSQL-backed IntegrationRequestRepository.
func NewIntegrationRequestRepo(db *sqlx.DB) port.IntegrationRequestRepository {
	return &integrationRequestRepo{db: db}
}

func (r *integrationRequestRepo) Save(ctx context.Context, req *domain.IntegrationRequest) error {
	req.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO integration_requests (request_id, company_gstin, request_type, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (request_id) DO UPDATE SET payload = EXCLUDED.payload`,
		req.RequestID, req.CompanyGSTIN, req.RequestType, req.Payload, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("integrationRequestRepo.Save: %w", err)
	}
	return nil
}

func (r *integrationRequestRepo) GetByRequestID(ctx context.Context, requestID string) (*domain.IntegrationRequest, error) {
	var req domain.IntegrationRequest
	err := r.db.GetContext(ctx, &req,
		"SELECT * FROM integration_requests WHERE request_id = $1", requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIntegrationRequestNotFound
		}
		return nil, fmt.Errorf("integrationRequestRepo.GetByRequestID: %w", err)
	}
	return &req, nil
}
