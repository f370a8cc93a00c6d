package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gihanotis/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// RequestRepository defines the interface for request persistence.
type RequestRepository interface {
	Create(ctx context.Context, in *models.CreateRequestInput) (*models.Request, error)
	GetByID(ctx context.Context, id int64) (*models.Request, error)
	GetOpenByID(ctx context.Context, id int64) (*models.Request, error)
	List(ctx context.Context, limit, offset int) ([]*models.RequestWithCount, error)
	Count(ctx context.Context) (int, error)
	ListOpen(ctx context.Context, limit, offset int) ([]*models.Request, error)
	CountOpen(ctx context.Context) (int, error)
	Update(ctx context.Context, id int64, patch *models.UpdateRequestPatch) (*models.Request, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type requestRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRequestRepository creates a new request repository.
func NewRequestRepository(db *sqlx.DB, logger *zap.Logger) RequestRepository {
	return &requestRepository{
		db:     db,
		logger: logger,
	}
}

const requestColumns = "id, item_name, quantity_needed, unit, description, status, created_at"

func (r *requestRepository) Create(ctx context.Context, in *models.CreateRequestInput) (*models.Request, error) {
	query := `
		INSERT INTO requests (item_name, quantity_needed, unit, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + requestColumns

	description := ""
	if in.Description != nil {
		description = strings.TrimSpace(*in.Description)
	}

	var req models.Request
	err := r.db.GetContext(ctx, &req, query,
		strings.TrimSpace(in.ItemName),
		*in.QuantityNeeded,
		strings.TrimSpace(in.Unit),
		description,
	)
	if err != nil {
		r.logger.Error("Failed to create request", zap.Error(err))
		return nil, err
	}

	return &req, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*models.Request, error) {
	var req models.Request
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get request by ID", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return &req, nil
}

func (r *requestRepository) GetOpenByID(ctx context.Context, id int64) (*models.Request, error) {
	var req models.Request
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1 AND status = 'open'`

	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get open request by ID", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return &req, nil
}

func (r *requestRepository) List(ctx context.Context, limit, offset int) ([]*models.RequestWithCount, error) {
	var requests []*models.RequestWithCount
	query := `
		SELECT r.id, r.item_name, r.quantity_needed, r.unit, r.description, r.status, r.created_at,
		       COUNT(resp.id) AS response_count
		FROM requests r
		LEFT JOIN responses resp ON r.id = resp.request_id
		GROUP BY r.id
		ORDER BY r.created_at DESC
		LIMIT $1 OFFSET $2
	`

	err := r.db.SelectContext(ctx, &requests, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list requests", zap.Error(err))
		return nil, err
	}

	return requests, nil
}

func (r *requestRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM requests`)
	if err != nil {
		r.logger.Error("Failed to count requests", zap.Error(err))
		return 0, err
	}
	return total, nil
}

func (r *requestRepository) ListOpen(ctx context.Context, limit, offset int) ([]*models.Request, error) {
	var requests []*models.Request
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE status = 'open'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	err := r.db.SelectContext(ctx, &requests, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list open requests", zap.Error(err))
		return nil, err
	}

	return requests, nil
}

func (r *requestRepository) CountOpen(ctx context.Context) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM requests WHERE status = 'open'`)
	if err != nil {
		r.logger.Error("Failed to count open requests", zap.Error(err))
		return 0, err
	}
	return total, nil
}

// Update applies only the fields carried by the patch. The SET list is built
// from the typed patch struct, one clause per non-nil field.
func (r *requestRepository) Update(ctx context.Context, id int64, patch *models.UpdateRequestPatch) (*models.Request, error) {
	setClauses := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)

	add := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.ItemName != nil {
		add("item_name", strings.TrimSpace(*patch.ItemName))
	}
	if patch.QuantityNeeded != nil {
		add("quantity_needed", *patch.QuantityNeeded)
	}
	if patch.Unit != nil {
		add("unit", strings.TrimSpace(*patch.Unit))
	}
	if patch.Description != nil {
		add("description", strings.TrimSpace(*patch.Description))
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE requests
		SET %s
		WHERE id = $%d
		RETURNING `+requestColumns,
		strings.Join(setClauses, ", "), len(args))

	var req models.Request
	err := r.db.GetContext(ctx, &req, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to update request", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return &req, nil
}

// Delete removes the request; its responses go with it via ON DELETE CASCADE.
func (r *requestRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete request", zap.Int64("id", id), zap.Error(err))
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
