package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The handler under test gets a nil repository: every request asserted here
// must be rejected before any store access, so a nil repo doubles as proof
// that the store is never touched.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	h := NewFeedbackHandler(nil, false)
	r := chi.NewRouter()
	r.Get("/api/feedback", h.List)
	r.Post("/api/feedback", h.Submit)
	r.Delete("/api/feedback/{id}", h.Delete)
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListMissingSlugReturns400WithoutQueryingStore(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feedback", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestSubmitInvalidBodyReturns400(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestSubmitSchemaViolationReturns400(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/feedback",
		strings.NewReader(`{"slug":"/home"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "message is required")
}

func TestSubmitHoneypotReturnsSuccessWithoutPersisting(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/feedback",
		strings.NewReader(`{"slug":"/home","message":"hello","hp":"bot was here"}`)))

	// Accepted silently; the nil repository proves nothing was inserted.
	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "id")
}

func TestDeleteMalformedIDReturns400(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/feedback/not-a-hex-id", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid feedback ID", body["message"])
}
