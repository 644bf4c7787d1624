package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name             string
		db               Pinger
		expectedStatus   int
		expectedBody     string
		expectedDatabase string
	}{
		{
			name:           "memory_backend_without_database",
			db:             nil,
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:             "database_reachable",
			db:               &mockPinger{},
			expectedStatus:   http.StatusOK,
			expectedBody:     "ok",
			expectedDatabase: "ok",
		},
		{
			name:             "database_unreachable",
			db:               &mockPinger{err: errors.New("connection refused")},
			expectedStatus:   http.StatusServiceUnavailable,
			expectedBody:     "unavailable",
			expectedDatabase: "unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.db, newTestLogger())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			handler.Check(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var respBody map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
			assert.Equal(t, tt.expectedBody, respBody["status"])

			if tt.expectedDatabase != "" {
				assert.Equal(t, tt.expectedDatabase, respBody["database"])
			} else {
				assert.NotContains(t, respBody, "database")
			}
		})
	}
}
