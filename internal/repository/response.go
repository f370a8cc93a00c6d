package repository

import (
	"context"
	"database/sql"
	"strings"

	"gihanotis/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ResponseRepository defines the interface for response persistence.
type ResponseRepository interface {
	// Create inserts a response against an open request. It returns
	// (nil, nil) when the parent request does not exist or is closed.
	Create(ctx context.Context, requestID int64, in *models.CreateResponseInput) (*models.Response, error)
	ListByRequest(ctx context.Context, requestID int64) ([]*models.Response, error)
}

type responseRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewResponseRepository creates a new response repository.
func NewResponseRepository(db *sqlx.DB, logger *zap.Logger) ResponseRepository {
	return &responseRepository{
		db:     db,
		logger: logger,
	}
}

const responseColumns = "id, request_id, responder_name, responder_contact, quantity_available, location, notes, accepted, created_at"

func (r *responseRepository) Create(ctx context.Context, requestID int64, in *models.CreateResponseInput) (*models.Response, error) {
	// The open-status check and the insert are one statement, so a request
	// closed between check and insert cannot slip a response in.
	query := `
		INSERT INTO responses (request_id, responder_name, responder_contact, quantity_available, location, notes)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM requests WHERE id = $1 AND status = 'open')
		RETURNING ` + responseColumns

	var resp models.Response
	err := r.db.GetContext(ctx, &resp, query,
		requestID,
		trimmedOrNil(in.ResponderName),
		trimmedOrNil(in.ResponderContact),
		*in.QuantityAvailable,
		strings.TrimSpace(in.Location),
		trimmedOrNil(in.Notes),
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to create response", zap.Int64("request_id", requestID), zap.Error(err))
		return nil, err
	}

	return &resp, nil
}

func (r *responseRepository) ListByRequest(ctx context.Context, requestID int64) ([]*models.Response, error) {
	var responses []*models.Response
	query := `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE request_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &responses, query, requestID)
	if err != nil {
		r.logger.Error("Failed to list responses", zap.Int64("request_id", requestID), zap.Error(err))
		return nil, err
	}

	return responses, nil
}

// trimmedOrNil maps an absent or blank optional field to SQL NULL.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
