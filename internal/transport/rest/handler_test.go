package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/config"
	"salon/internal/calendar"
	"salon/internal/domain"
	"salon/internal/repository"
	"salon/internal/service"
	"salon/pkg/auth"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

func newTestRouter(t *testing.T, limiter RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := auth.HashPassword("12345678")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg := &config.Config{
		JWT:   config.JWTConfig{SigningKey: "test-key", AccessTokenTTL: time.Hour},
		Admin: config.AdminConfig{Username: "admin", PasswordHash: hash},
		Salon: config.SalonConfig{Name: "Bright Look"},
	}
	logger := zap.NewNop()

	services := service.NewServices(service.Deps{
		Repos:  repository.NewMemoryRepositories(),
		Rules:  calendar.DefaultRules(),
		Logger: logger,
		Config: cfg,
	})

	router := gin.New()
	NewHandler(services, logger, cfg, nil, limiter).InitRoutes(router)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w, env
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w, env := do(t, router, http.MethodPost, "/api/v1/admin/login", "", domain.LoginRequest{Username: "admin", Password: "12345678"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp loginResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil || resp.AccessToken == "" {
		t.Fatalf("login: no token in %s", env.Data)
	}
	return resp.AccessToken
}

func book(t *testing.T, router *gin.Engine, start string) domain.Appointment {
	t.Helper()

	w, env := do(t, router, http.MethodPost, "/api/v1/appointments", "", map[string]string{
		"client_name":  "Asha Rao",
		"client_phone": "9876543210",
		"service":      calendar.HairCutting,
		"date":         "2025-03-14",
		"start_time":   start,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book %s: expected 201, got %d (%s)", start, w.Code, w.Body.String())
	}
	var appt domain.Appointment
	if err := json.Unmarshal(env.Data, &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	return appt
}

func TestCatalogAndSlots(t *testing.T) {
	router := newTestRouter(t, nil)

	w, env := do(t, router, http.MethodGet, "/api/v1/services", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), `"Hair cutting"`) {
		t.Fatalf("catalog: %d %s", w.Code, w.Body.String())
	}

	w, env = do(t, router, http.MethodGet, "/api/v1/slots?date=2025-03-14&service=Trimming", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("slots: expected 200, got %d", w.Code)
	}
	var slots struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(env.Data, &slots); err != nil {
		t.Fatalf("decode slots: %v", err)
	}
	if slots.Date != "2025-03-14" || len(slots.Slots) == 0 || slots.Slots[0] != "09:00" {
		t.Fatalf("unexpected slots %+v", slots)
	}

	w, env = do(t, router, http.MethodGet, "/api/v1/slots?date=2025-03-14&style=Undercut", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("style slots: expected 200, got %d", w.Code)
	}
}

func TestSlotsErrors(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"missing date", "service=Trimming", "date"},
		{"bad date", "date=14.03.2025&service=Trimming", "date"},
		{"no service", "date=2025-03-14", "service"},
		{"both", "date=2025-03-14&service=Trimming&style=Undercut", "service"},
		{"unknown service", "date=2025-03-14&service=Shave", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, router, http.MethodGet, "/api/v1/slots?"+tt.query, "", nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
			}
			if env.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, env.Field)
			}
		})
	}
}

func TestBookingFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	appt := book(t, router, "10:00")
	if appt.Status != domain.AppointmentStatusPending || appt.Price != 120 {
		t.Fatalf("unexpected booking %+v", appt)
	}

	w, _ := do(t, router, http.MethodPost, "/api/v1/appointments", "", map[string]string{
		"client_name":  "Ravi Kumar",
		"client_phone": "9123456780",
		"service":      calendar.Trimming,
		"date":         "2025-03-14",
		"start_time":   "10:10",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("overlapping booking: expected 409, got %d", w.Code)
	}

	w, env := do(t, router, http.MethodPost, "/api/v1/appointments", "", map[string]string{
		"client_name":  "Ravi Kumar",
		"client_phone": "n/a",
		"service":      calendar.Trimming,
		"date":         "2025-03-14",
		"start_time":   "15:00",
	})
	if w.Code != http.StatusBadRequest || env.Field != "client_phone" {
		t.Fatalf("bad phone: expected 400 on client_phone, got %d %q", w.Code, env.Field)
	}

	w, _ = do(t, router, http.MethodPost, "/api/v1/appointments", "", map[string]string{"client_name": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: expected 400, got %d", w.Code)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, token := range []string{"", "garbage"} {
		w, _ := do(t, router, http.MethodGet, "/api/v1/admin/appointments?period=day&date=2025-03-14", token, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %d", token, w.Code)
		}
	}

	w, _ := do(t, router, http.MethodPost, "/api/v1/admin/login", "", domain.LoginRequest{Username: "admin", Password: "wrong-password"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", w.Code)
	}
}

func TestAdminLifecycle(t *testing.T) {
	router := newTestRouter(t, nil)
	token := login(t, router)
	appt := book(t, router, "10:00")
	base := "/api/v1/admin/appointments/"
	id := func(suffix string) string { return base + strconv.FormatInt(appt.ID, 10) + suffix }

	w, _ := do(t, router, http.MethodPost, id("/pay"), token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("pay pending: expected 409, got %d", w.Code)
	}

	w, _ = do(t, router, http.MethodPost, id("/status"), token, map[string]string{"status": "cancelled"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", w.Code)
	}

	w, _ = do(t, router, http.MethodPost, id("/status"), token, map[string]string{"status": "approved"})
	if w.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w, _ = do(t, router, http.MethodPost, id("/pay"), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pay: expected 200, got %d", w.Code)
	}

	w, env := do(t, router, http.MethodGet, id(""), token, nil)
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), `"status":"paid"`) {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}

	w, _ = do(t, router, http.MethodGet, id("/document"), token, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Receipt #") {
		t.Fatalf("document: %d %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "asha_rao_") {
		t.Fatalf("unexpected content disposition %q", cd)
	}

	w, env = do(t, router, http.MethodGet, strings.TrimSuffix(base, "/")+"?period=week&date=2025-03-12", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", w.Code)
	}
	var dash domain.Dashboard
	if err := json.Unmarshal(env.Data, &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if len(dash.Appointments) != 1 || dash.TotalCollected != 120 {
		t.Fatalf("unexpected dashboard %+v", dash)
	}

	w, _ = do(t, router, http.MethodGet, strings.TrimSuffix(base, "/")+"?period=year", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad period: expected 400, got %d", w.Code)
	}

	for path, want := range map[string]int{
		base + "999":     http.StatusNotFound,
		base + "abc":     http.StatusBadRequest,
		base + "999/pay": http.StatusNotFound,
	} {
		method := http.MethodGet
		if strings.HasSuffix(path, "/pay") {
			method = http.MethodPost
		}
		if w, _ := do(t, router, method, path, token, nil); w.Code != want {
			t.Fatalf("%s %s: expected %d, got %d", method, path, want, w.Code)
		}
	}
}

func TestRateLimit(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	router := newTestRouter(t, limiter)

	w, _ := do(t, router, http.MethodGet, "/api/v1/slots?date=2025-03-14&service=Trimming", "", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if len(limiter.keys) != 1 || !strings.HasPrefix(limiter.keys[0], "slots:") {
		t.Fatalf("unexpected limiter keys %v", limiter.keys)
	}

	limiter.err = errors.New("redis down")
	w, _ = do(t, router, http.MethodGet, "/api/v1/slots?date=2025-03-14&service=Trimming", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("limiter outage must fail open, got %d", w.Code)
	}

	w, _ = do(t, router, http.MethodGet, "/api/v1/services", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("catalog is not rate limited, got %d", w.Code)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("date", "bad"), http.StatusBadRequest},
		{domain.ErrUnknownService, http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrSlotUnavailable, http.StatusConflict},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForError(tt.err); got != tt.want {
			t.Fatalf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
