package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errGone   = errors.New("widget not found")
	errLocked = errors.New("widget locked")
	errDenied = errors.New("denied")
)

type fieldErr map[string]string

func (fieldErr) Error() string { return "invalid" }

func init() {
	RegisterMapper(func(err error) (Mapping, bool) {
		var f fieldErr
		switch {
		case errors.As(err, &f):
			return Mapping{Status: http.StatusUnprocessableEntity, Fields: f}, true
		case errors.Is(err, errGone):
			return Mapping{Status: http.StatusNotFound, Message: err.Error()}, true
		case errors.Is(err, errLocked):
			return Mapping{Status: http.StatusConflict}, true
		case errors.Is(err, errDenied):
			return Mapping{Status: http.StatusForbidden, Message: "secret reason"}, true
		}
		return Mapping{}, false
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestFromErrorUsesMappers(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"mapped message", fmt.Errorf("load: %w", errGone), http.StatusNotFound, "load: widget not found"},
		{"status text fallback", errLocked, http.StatusConflict, "Conflict"},
		{"forbidden stays generic", errDenied, http.StatusForbidden, "Forbidden"},
		{"unmapped is internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tc.status, env.Status)
			assert.Equal(t, tc.message, env.Message)
		})
	}
}

func TestFromErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, fieldErr{"items.0.quantity": "must be at least 1"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "must be at least 1", env.Errors["items.0.quantity"])
}

func TestStatusOfNil(t *testing.T) {
	assert.Equal(t, http.StatusOK, Status(nil))
}

func TestCreatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "01J"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"status":201,"data":{"id":"01J"}}`, rec.Body.String())
}
