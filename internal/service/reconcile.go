package service

import (
	"context"
	"errors"

	"gihanotis/internal/repository"
	"gihanotis/internal/validation"

	"go.uber.org/zap"
)

var ( // Define custom errors
	ErrResponseNotFound = errors.New("response not found")
	ErrAlreadyAccepted  = errors.New("response already accepted")
	ErrNotAccepted      = errors.New("response is not accepted")
)

// ReconcileService toggles a response's accepted flag and keeps the parent
// request's quantity_needed consistent with it. Both operations read and
// write inside one row-locked transaction, so concurrent accepts against the
// same request serialize instead of computing from a stale quantity.
type ReconcileService interface {
	// Accept marks the response accepted and decrements the request's
	// quantity_needed, flooring at zero.
	Accept(ctx context.Context, responseID int64) (*ReconcileResult, error)
	// Unaccept mirrors Accept: clears the flag and restores the quantity.
	Unaccept(ctx context.Context, responseID int64) (*ReconcileResult, error)
}

// ReconcileResult reports the outcome of an accept or unaccept.
type ReconcileResult struct {
	RequestID         int64
	NewQuantityNeeded int
}

type reconcileService struct {
	store  repository.ReconcileStore
	logger *zap.Logger
}

// NewReconcileService creates a new reconciliation service.
func NewReconcileService(store repository.ReconcileStore, logger *zap.Logger) ReconcileService {
	return &reconcileService{
		store:  store,
		logger: logger,
	}
}

func (s *reconcileService) Accept(ctx context.Context, responseID int64) (*ReconcileResult, error) {
	var result ReconcileResult

	err := s.store.WithinTx(ctx, func(tx repository.ReconcileTx) error {
		row, err := tx.GetResponseForUpdate(ctx, responseID)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrResponseNotFound
		}
		if row.Accepted {
			// Accepting twice would double-apply the decrement.
			return ErrAlreadyAccepted
		}

		result = ReconcileResult{
			RequestID:         row.RequestID,
			NewQuantityNeeded: acceptedQuantity(row.QuantityNeeded, row.QuantityAvailable),
		}

		if err := tx.MarkAccepted(ctx, responseID, true); err != nil {
			return err
		}
		return tx.SetQuantityNeeded(ctx, row.RequestID, result.NewQuantityNeeded)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Response accepted",
		zap.Int64("response_id", responseID),
		zap.Int("new_quantity_needed", result.NewQuantityNeeded),
	)
	return &result, nil
}

func (s *reconcileService) Unaccept(ctx context.Context, responseID int64) (*ReconcileResult, error) {
	var result ReconcileResult

	err := s.store.WithinTx(ctx, func(tx repository.ReconcileTx) error {
		row, err := tx.GetResponseForUpdate(ctx, responseID)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrResponseNotFound
		}
		if !row.Accepted {
			return ErrNotAccepted
		}

		result = ReconcileResult{
			RequestID:         row.RequestID,
			NewQuantityNeeded: restoredQuantity(row.QuantityNeeded, row.QuantityAvailable),
		}

		if err := tx.MarkAccepted(ctx, responseID, false); err != nil {
			return err
		}
		return tx.SetQuantityNeeded(ctx, row.RequestID, result.NewQuantityNeeded)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Response unaccepted",
		zap.Int64("response_id", responseID),
		zap.Int("new_quantity_needed", result.NewQuantityNeeded),
	)
	return &result, nil
}

// acceptedQuantity floors at zero: an over-fulfilling response must not
// drive the remaining need negative.
func acceptedQuantity(needed, available int) int {
	if available >= needed {
		return 0
	}
	return needed - available
}

// restoredQuantity adds the offered quantity back, clamped to the same
// ceiling requests are created under so repeated accept/unaccept cycles
// combined with admin edits cannot push the counter out of range.
func restoredQuantity(needed, available int) int {
	restored := needed + available
	if restored > validation.MaxQuantity {
		return validation.MaxQuantity
	}
	return restored
}
