package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/ideaforge/internal/apperror"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails bool
		wantLogged  bool
	}{
		{"not found", apperror.NotFound("Idea"), http.StatusNotFound, "Idea not found", false, false},
		{"validation", apperror.InvalidField("score", "score must be at most 10"), http.StatusBadRequest, "Validation failed", true, false},
		{"mismatch", apperror.RelationMismatch("Ticket does not belong to this idea"), http.StatusBadRequest, "Ticket does not belong to this idea", false, false},
		{"internal", apperror.Internal(errors.New("no such table: ideas")), http.StatusInternalServerError, "Internal server error", false, false},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			rr := httptest.NewRecorder()

			writeError(rr, logger, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.wantMessage, resp["error"])
			_, hasDetails := resp["details"]
			assert.Equal(t, tt.wantDetails, hasDetails)
			assert.NotContains(t, rr.Body.String(), "no such table")
			assert.Equal(t, tt.wantLogged, logs.Len() > 0)
		})
	}
}

func TestWriteData(t *testing.T) {
	rr := httptest.NewRecorder()
	writeData(rr, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), []string{})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rr.Body.String())
}

func TestWriteJSON_EncodeFailureUsesLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	rr := httptest.NewRecorder()

	writeData(rr, logger, make(chan int))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logs.String(), "failed to encode JSON response")
	assert.Contains(t, logs.String(), "unsupported type")
}

func TestFallbackHandlers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	rr := httptest.NewRecorder()
	NotFound(logger)(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Route not found"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	MethodNotAllowed(logger)(rr, httptest.NewRequest(http.MethodPut, "/ideas", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Method not allowed"}`, rr.Body.String())
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	rr := httptest.NewRecorder()
	NewHealthHandler(fakePinger{}, logger).HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, rr.Body.String())

	rr = httptest.NewRecorder()
	NewHealthHandler(fakePinger{err: errors.New("down")}, logger).HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Database unavailable"}`, rr.Body.String())
}
