package middleware_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetmate/internal/middleware"
	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthn map[string]*model.User

func (s stubAuthn) Authenticate(_ context.Context, token string) (*model.User, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, pkg.Unauthenticated("Token is not valid")
}

func newEngine(authn middleware.Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/me", middleware.Auth(authn, "msg"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": middleware.Identity(c).ID})
	})
	r.GET("/admin", middleware.Auth(authn, "message"), middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func body(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestAuth(t *testing.T) {
	r := newEngine(stubAuthn{
		"alice-token": {ID: 7, Name: "alice", Role: model.RoleUser},
	})

	rec := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", body(t, rec)["msg"])

	for _, header := range []string{"alice-token", "Basic alice-token", "Bearer "} {
		rec = get(r, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "Token is not valid", body(t, rec)["msg"], header)
	}

	rec = get(r, "/me", "Bearer stolen")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(r, "/me", "Bearer alice-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), body(t, rec)["id"])
}

func TestRequireAdmin(t *testing.T) {
	r := newEngine(stubAuthn{
		"user":  {ID: 1, Role: model.RoleUser},
		"admin": {ID: 2, Role: model.RoleAdmin},
		"odd":   {ID: 3, Role: model.Role("owner")},
	})

	for _, token := range []string{"user", "odd"} {
		rec := get(r, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Access denied. Admin privileges required.", body(t, rec)["message"])
	}

	rec := get(r, "/admin", "Bearer admin")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = get(r, "/admin", "")
	assert.Equal(t, "No token, authorization denied", body(t, rec)["message"])
}

func TestMetricsAndLogger(t *testing.T) {
	reg := prometheus.NewRegistry()
	var logs strings.Builder
	log := slog.New(slog.NewJSONHandler(&logs, nil))

	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.NewMetrics(reg).Handler())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	get(r, "/ok", "")
	get(r, "/ok", "")
	get(r, "/boom", "")
	get(r, "/missing", "")

	expected := `
# HELP budgetmate_http_requests_total HTTP requests by method, route and status.
# TYPE budgetmate_http_requests_total counter
budgetmate_http_requests_total{method="GET",route="/boom",status="500"} 1
budgetmate_http_requests_total{method="GET",route="/ok",status="200"} 2
budgetmate_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "budgetmate_http_requests_total"))

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 4)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "/boom", entry["route"])
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &entry))
	assert.Equal(t, "WARN", entry["level"])
}
