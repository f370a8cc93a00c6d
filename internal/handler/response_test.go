package handler

import (
	"context"
	"net/http"
	"testing"

	"gihanotis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func reconcileRouter(reconcile service.ReconcileService) *gin.Engine {
	h := NewResponseHandler(reconcile, nil, zap.NewNop())
	router := gin.New()
	router.POST("/api/responses/:id/accept", h.Accept)
	router.POST("/api/responses/:id/unaccept", h.Unaccept)
	return router
}

func TestAcceptReturnsNewQuantity(t *testing.T) {
	router := reconcileRouter(&fakeReconcile{
		acceptFn: func(ctx context.Context, id int64) (*service.ReconcileResult, error) {
			require.Equal(t, int64(10), id)
			return &service.ReconcileResult{RequestID: 1, NewQuantityNeeded: 40}, nil
		},
	})

	w := performJSON(t, router, http.MethodPost, "/api/responses/10/accept", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(40), body["new_quantity_needed"])
	assert.Equal(t, "Response accepted", body["message"])
}

func TestAcceptConflictMapsTo400(t *testing.T) {
	router := reconcileRouter(&fakeReconcile{
		acceptFn: func(ctx context.Context, id int64) (*service.ReconcileResult, error) {
			return nil, service.ErrAlreadyAccepted
		},
	})

	w := performJSON(t, router, http.MethodPost, "/api/responses/10/accept", nil)
	assertErrorBody(t, w, http.StatusBadRequest)
}

func TestAcceptNotFoundMapsTo404(t *testing.T) {
	router := reconcileRouter(&fakeReconcile{
		acceptFn: func(ctx context.Context, id int64) (*service.ReconcileResult, error) {
			return nil, service.ErrResponseNotFound
		},
	})

	w := performJSON(t, router, http.MethodPost, "/api/responses/999/accept", nil)
	assertErrorBody(t, w, http.StatusNotFound)
}

func TestAcceptInvalidID(t *testing.T) {
	router := reconcileRouter(&fakeReconcile{})

	w := performJSON(t, router, http.MethodPost, "/api/responses/abc/accept", nil)
	assertErrorBody(t, w, http.StatusBadRequest)
}

func TestAcceptDeadlineMapsTo503(t *testing.T) {
	router := reconcileRouter(&fakeReconcile{
		acceptFn: func(ctx context.Context, id int64) (*service.ReconcileResult, error) {
			return nil, context.DeadlineExceeded
		},
	})

	w := performJSON(t, router, http.MethodPost, "/api/responses/10/accept", nil)
	assertErrorBody(t, w, http.StatusServiceUnavailable)
}

func TestUnacceptReturnsRestoredQuantity(t *testing.T) {
	router := reconcileRouter(&fakeReconcile{
		unacceptFn: func(ctx context.Context, id int64) (*service.ReconcileResult, error) {
			return &service.ReconcileResult{RequestID: 1, NewQuantityNeeded: 50}, nil
		},
	})

	w := performJSON(t, router, http.MethodPost, "/api/responses/11/unaccept", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(50), body["new_quantity_needed"])
	assert.Equal(t, "Response unaccepted", body["message"])
}

func TestUnacceptConflictMapsTo400(t *testing.T) {
	router := reconcileRouter(&fakeReconcile{
		unacceptFn: func(ctx context.Context, id int64) (*service.ReconcileResult, error) {
			return nil, service.ErrNotAccepted
		},
	})

	w := performJSON(t, router, http.MethodPost, "/api/responses/11/unaccept", nil)
	assertErrorBody(t, w, http.StatusBadRequest)
}
