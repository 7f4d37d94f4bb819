package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstims/internal/domain"
	"gstims/internal/port"
)

type returnLogRepo struct {
	db *sqlx.DB
}

// NewReturnLogRepo creates a new PostgreSQL-backed ReturnLogRepository.
func NewReturnLogRepo(db *sqlx.DB) port.ReturnLogRepository {
	return &returnLogRepo{db: db}
}

func (r *returnLogRepo) Get(ctx context.Context, name string) (*domain.ReturnLog, error) {
	var log domain.ReturnLog
	err := r.db.GetContext(ctx, &log,
		"SELECT * FROM return_logs WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReturnLogNotFound
		}
		return nil, fmt.Errorf("returnLogRepo.Get: %w", err)
	}
	return &log, nil
}

func (r *returnLogRepo) GetOrCreate(ctx context.Context, gstin string) (*domain.ReturnLog, error) {
	name := domain.ReturnLogName(gstin)

	log, err := r.Get(ctx, name)
	if err == nil {
		return log, nil
	}
	if !errors.Is(err, domain.ErrReturnLogNotFound) {
		return nil, err
	}

	created := &domain.ReturnLog{
		Name:         name,
		GSTIN:        gstin,
		ReturnPeriod: "ALL",
		CreatedAt:    time.Now().UTC(),
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO return_logs (name, gstin, return_period, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO NOTHING`,
		created.Name, created.GSTIN, created.ReturnPeriod, created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("returnLogRepo.GetOrCreate: %w", err)
	}
	return r.Get(ctx, name)
}

func (r *returnLogRepo) AddAction(ctx context.Context, action *domain.ReturnAction) error {
	if action.ID == uuid.Nil {
		action.ID = uuid.New()
	}
	action.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO return_actions (id, return_log_name, request_type, token, request_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		action.ID, action.ReturnLogName, action.RequestType, action.Token,
		action.RequestID, action.Status, action.CreatedAt)
	if err != nil {
		return fmt.Errorf("returnLogRepo.AddAction: %w", err)
	}
	return nil
}

func (r *returnLogRepo) FirstUnprocessedAction(ctx context.Context, logName string, requestType domain.RequestType) (*domain.ReturnAction, error) {
	var action domain.ReturnAction
	err := r.db.GetContext(ctx, &action,
		`SELECT * FROM return_actions
		 WHERE return_log_name = $1 AND request_type = $2
		   AND token <> '' AND status IS NULL
		 ORDER BY created_at
		 LIMIT 1`,
		logName, requestType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("returnLogRepo.FirstUnprocessedAction: %w", err)
	}
	return &action, nil
}

func (r *returnLogRepo) HasUnprocessedAction(ctx context.Context, logName string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM return_actions
		 WHERE return_log_name = $1 AND token <> '' AND status IS NULL`,
		logName)
	if err != nil {
		return false, fmt.Errorf("returnLogRepo.HasUnprocessedAction: %w", err)
	}
	return count > 0, nil
}

func (r *returnLogRepo) PendingRequestTypes(ctx context.Context, logName string) ([]string, error) {
	var types []string
	err := r.db.SelectContext(ctx, &types,
		`SELECT DISTINCT request_type FROM return_actions
		 WHERE return_log_name = $1 AND token <> '' AND status IS NULL`,
		logName)
	if err != nil {
		return nil, fmt.Errorf("returnLogRepo.PendingRequestTypes: %w", err)
	}
	return types, nil
}

func (r *returnLogRepo) SetActionStatus(ctx context.Context, actionID uuid.UUID, status string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE return_actions SET status = $1 WHERE id = $2",
		status, actionID)
	if err != nil {
		return fmt.Errorf("returnLogRepo.SetActionStatus: %w", err)
	}
	return nil
}

func (r *returnLogRepo) LatestFiled3BPeriod(ctx context.Context, company, gstin string) (string, error) {
	var period string
	err := r.db.GetContext(ctx, &period,
		`SELECT return_period FROM gstr3b_filings
		 WHERE company = $1 AND gstin = $2 AND filed = TRUE
		 ORDER BY filing_year DESC, filing_month DESC
		 LIMIT 1`,
		company, gstin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("returnLogRepo.LatestFiled3BPeriod: %w", err)
	}
	return period, nil
}
