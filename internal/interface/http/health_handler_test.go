package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name   string
		checks map[string]Check
		code   int
		want   map[string]string
		errs   []string
	}{
		{"no checks", nil, http.StatusOK, map[string]string{}, nil},
		{"all up", map[string]Check{"postgres": up}, http.StatusOK, map[string]string{"postgres": "up"}, nil},
		{"one down", map[string]Check{"postgres": up, "redis": down}, http.StatusServiceUnavailable, map[string]string{"postgres": "up", "redis": "down"}, []string{"redis"}},
		{"two down", map[string]Check{"redis": down, "elasticsearch": down}, http.StatusServiceUnavailable, map[string]string{"redis": "down", "elasticsearch": "down"}, []string{"elasticsearch", "redis"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthz", NewHealthHandler(tc.checks).Healthz)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			require.Equal(t, tc.code, w.Code)

			var body struct {
				Success bool              `json:"success"`
				Data    map[string]string `json:"data"`
				Errors  []string          `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code == http.StatusOK, body.Success)
			assert.Equal(t, tc.want, body.Data)
			assert.Equal(t, tc.errs, body.Errors)
		})
	}
}
