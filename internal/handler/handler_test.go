package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"gihanotis/internal/models"
	"gihanotis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// fakeReconcile satisfies service.ReconcileService with pluggable behavior.
type fakeReconcile struct {
	acceptFn   func(ctx context.Context, id int64) (*service.ReconcileResult, error)
	unacceptFn func(ctx context.Context, id int64) (*service.ReconcileResult, error)
}

func (f *fakeReconcile) Accept(ctx context.Context, id int64) (*service.ReconcileResult, error) {
	return f.acceptFn(ctx, id)
}

func (f *fakeReconcile) Unaccept(ctx context.Context, id int64) (*service.ReconcileResult, error) {
	return f.unacceptFn(ctx, id)
}

// fakeRequestRepo satisfies repository.RequestRepository; unset functions
// return zero values.
type fakeRequestRepo struct {
	createFn      func(ctx context.Context, in *models.CreateRequestInput) (*models.Request, error)
	getByIDFn     func(ctx context.Context, id int64) (*models.Request, error)
	getOpenByIDFn func(ctx context.Context, id int64) (*models.Request, error)
	listFn        func(ctx context.Context, limit, offset int) ([]*models.RequestWithCount, error)
	countFn       func(ctx context.Context) (int, error)
	listOpenFn    func(ctx context.Context, limit, offset int) ([]*models.Request, error)
	countOpenFn   func(ctx context.Context) (int, error)
	updateFn      func(ctx context.Context, id int64, patch *models.UpdateRequestPatch) (*models.Request, error)
	deleteFn      func(ctx context.Context, id int64) (bool, error)
}

func (f *fakeRequestRepo) Create(ctx context.Context, in *models.CreateRequestInput) (*models.Request, error) {
	if f.createFn == nil {
		return nil, nil
	}
	return f.createFn(ctx, in)
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id int64) (*models.Request, error) {
	if f.getByIDFn == nil {
		return nil, nil
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeRequestRepo) GetOpenByID(ctx context.Context, id int64) (*models.Request, error) {
	if f.getOpenByIDFn == nil {
		return nil, nil
	}
	return f.getOpenByIDFn(ctx, id)
}

func (f *fakeRequestRepo) List(ctx context.Context, limit, offset int) ([]*models.RequestWithCount, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, limit, offset)
}

func (f *fakeRequestRepo) Count(ctx context.Context) (int, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(ctx)
}

func (f *fakeRequestRepo) ListOpen(ctx context.Context, limit, offset int) ([]*models.Request, error) {
	if f.listOpenFn == nil {
		return nil, nil
	}
	return f.listOpenFn(ctx, limit, offset)
}

func (f *fakeRequestRepo) CountOpen(ctx context.Context) (int, error) {
	if f.countOpenFn == nil {
		return 0, nil
	}
	return f.countOpenFn(ctx)
}

func (f *fakeRequestRepo) Update(ctx context.Context, id int64, patch *models.UpdateRequestPatch) (*models.Request, error) {
	if f.updateFn == nil {
		return nil, nil
	}
	return f.updateFn(ctx, id, patch)
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if f.deleteFn == nil {
		return false, nil
	}
	return f.deleteFn(ctx, id)
}

// fakeResponseRepo satisfies repository.ResponseRepository.
type fakeResponseRepo struct {
	createFn        func(ctx context.Context, requestID int64, in *models.CreateResponseInput) (*models.Response, error)
	listByRequestFn func(ctx context.Context, requestID int64) ([]*models.Response, error)
}

func (f *fakeResponseRepo) Create(ctx context.Context, requestID int64, in *models.CreateResponseInput) (*models.Response, error) {
	if f.createFn == nil {
		return nil, nil
	}
	return f.createFn(ctx, requestID, in)
}

func (f *fakeResponseRepo) ListByRequest(ctx context.Context, requestID int64) ([]*models.Response, error) {
	if f.listByRequestFn == nil {
		return nil, nil
	}
	return f.listByRequestFn(ctx, requestID)
}

func assertErrorBody(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code)
	body := decodeBody(t, w)
	require.Contains(t, body, "error")
}
