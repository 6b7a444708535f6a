package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, err error) (int, apiError) {
	t.Helper()
	rec := httptest.NewRecorder()
	ServeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), err)
	var body apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestServeValidationError(t *testing.T) {
	code, body := serve(t, errors.Required("page", "query", nil))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, int32(-1), body.Count)
	assert.Contains(t, body.Detail, "page")
}

func TestServeCompositeReportsFirst(t *testing.T) {
	err := errors.CompositeValidationError(
		errors.CompositeValidationError(errors.Required("language", "query", nil)),
		errors.Required("page", "query", nil),
	)
	_, body := serve(t, err)
	assert.Contains(t, body.Detail, "language")
}

func TestServePlainError(t *testing.T) {
	code, body := serve(t, fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", body.Detail)
}

func TestServeNil(t *testing.T) {
	code, body := serve(t, nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Unknown error", body.Detail)
}

func TestCollect(t *testing.T) {
	var v *errors.Validation
	assert.NoError(t, Collect(nil, v))
	assert.Error(t, Collect(nil, errors.Required("x", "query", nil)))
}
