package repository

import (
	"context"
	"database/sql"

	"gihanotis/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ReconcileTx is the set of statements the reconciliation engine issues
// inside one transaction.
type ReconcileTx interface {
	// GetResponseForUpdate locks the response row and its parent request
	// row, returning the response joined with the request's current
	// quantity_needed. Returns (nil, nil) when no such response exists.
	GetResponseForUpdate(ctx context.Context, responseID int64) (*models.ReconcileRow, error)
	MarkAccepted(ctx context.Context, responseID int64, accepted bool) error
	SetQuantityNeeded(ctx context.Context, requestID int64, quantity int) error
}

// ReconcileStore scopes a ReconcileTx to a single transaction: committed on
// normal return, rolled back on error.
type ReconcileStore interface {
	WithinTx(ctx context.Context, fn func(tx ReconcileTx) error) error
}

type reconcileStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewReconcileStore creates the sqlx-backed reconcile store.
func NewReconcileStore(db *sqlx.DB, logger *zap.Logger) ReconcileStore {
	return &reconcileStore{
		db:     db,
		logger: logger,
	}
}

func (s *reconcileStore) WithinTx(ctx context.Context, fn func(tx ReconcileTx) error) error {
	return WithinTx(ctx, s.db, s.logger, func(tx *sqlx.Tx) error {
		return fn(&reconcileTx{tx: tx, logger: s.logger})
	})
}

type reconcileTx struct {
	tx     *sqlx.Tx
	logger *zap.Logger
}

func (t *reconcileTx) GetResponseForUpdate(ctx context.Context, responseID int64) (*models.ReconcileRow, error) {
	// FOR UPDATE OF both tables serializes concurrent accepts/unaccepts
	// touching the same request: the second transaction blocks on the
	// request row until the first commits, then reads the fresh quantity.
	query := `
		SELECT r.id, r.request_id, r.quantity_available, r.accepted, req.quantity_needed
		FROM responses r
		JOIN requests req ON r.request_id = req.id
		WHERE r.id = $1
		FOR UPDATE OF r, req
	`

	var row models.ReconcileRow
	err := t.tx.GetContext(ctx, &row, query, responseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		t.logger.Error("Failed to lock response for reconcile", zap.Int64("response_id", responseID), zap.Error(err))
		return nil, err
	}

	return &row, nil
}

func (t *reconcileTx) MarkAccepted(ctx context.Context, responseID int64, accepted bool) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE responses SET accepted = $1 WHERE id = $2`, accepted, responseID)
	if err != nil {
		t.logger.Error("Failed to mark response accepted", zap.Int64("response_id", responseID), zap.Bool("accepted", accepted), zap.Error(err))
	}
	return err
}

func (t *reconcileTx) SetQuantityNeeded(ctx context.Context, requestID int64, quantity int) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE requests SET quantity_needed = $1 WHERE id = $2`, quantity, requestID)
	if err != nil {
		t.logger.Error("Failed to set quantity needed", zap.Int64("request_id", requestID), zap.Int("quantity", quantity), zap.Error(err))
	}
	return err
}
