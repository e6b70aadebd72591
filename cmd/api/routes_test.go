package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voice-reports/internal/appointments"
	"voice-reports/internal/audit"
	"voice-reports/internal/auth"
	"voice-reports/internal/callreport"
	"voice-reports/internal/config"
	"voice-reports/internal/httpapi"
	"voice-reports/internal/rbac"
	"voice-reports/internal/reporting"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, m *auth.Manager, health func(ctx context.Context) error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auditSvc := audit.NewService(audit.NewMemoryRepo())
	reports := callreport.NewService(callreport.NewMemoryStore(), callreport.AuditAdapter{Audit: auditSvc})
	appts := appointments.NewService(appointments.NewMemoryRepo())
	h := httpapi.Handlers{
		Reports:      reports,
		Appointments: appts,
		Reporting:    reporting.NewService(reports, appts),
		Audit:        auditSvc,
	}

	r := gin.New()
	r.Use(cors("*"))
	registerRoutes(r, h, m, health)
	return r
}

func serve(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_OpenWithoutAuth(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	if w := serve(r, http.MethodGet, "/healthz", "", ""); w.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/dashboard/summary", "", ""); w.Code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/admin/deliveries", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("deliveries: expected 404 without auth, got %d", w.Code)
	}
}

func TestRoutes_DashboardRequiresToken(t *testing.T) {
	m, err := auth.NewManager(config.AuthConfig{
		JWTSecret:       "test-secret",
		JWTIssuer:       "voice-reports",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	r := newTestRouter(t, m, nil)

	if w := serve(r, http.MethodGet, "/call-reports", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// Webhooks stay public.
	w := serve(r, http.MethodPost, "/call-reports", "", `{"type":"end-of-call-report","callId":"c1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	analyst, _ := m.IssuePair(time.Now(), "u1", rbac.RoleAnalyst)
	if w := serve(r, http.MethodGet, "/call-reports", analyst.AccessToken, ""); w.Code != http.StatusOK {
		t.Fatalf("analyst read: expected 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/admin/deliveries", analyst.AccessToken, ""); w.Code != http.StatusForbidden {
		t.Fatalf("analyst admin: expected 403, got %d", w.Code)
	}

	owner, _ := m.IssuePair(time.Now(), "u2", rbac.RoleOwner)
	if w := serve(r, http.MethodGet, "/admin/deliveries", owner.AccessToken, ""); w.Code != http.StatusOK {
		t.Fatalf("owner admin: expected 200, got %d", w.Code)
	}
}

func TestRoutes_HealthDegraded(t *testing.T) {
	r := newTestRouter(t, nil, func(ctx context.Context) error { return errors.New("down") })
	if w := serve(r, http.MethodGet, "/healthz", "", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	r := newTestRouter(t, nil, nil)
	w := serve(r, http.MethodOptions, "/call-reports", "", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected origin header %q", got)
	}
}
