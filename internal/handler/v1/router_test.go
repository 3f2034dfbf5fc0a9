package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/app"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/seed"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/store/memory"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newClient(t *testing.T) *apiClient {
	t.Helper()

	cfg := &config.Config{
		App:    config.AppConfig{Name: "clinicdesk", Environment: "test", Version: "test"},
		Server: config.ServerConfig{GinMode: "test"},
		JWT: config.JWTConfig{
			Secret:          "router-test-secret-router-test-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			Issuer:          "clinicdesk",
		},
		Tracing:   config.TracingConfig{ServiceName: "clinicdesk"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 1000, AuthRequestsPerMinute: 100},
		Audit:     config.AuditConfig{BufferSize: 100},
	}

	store := memory.New(seed.Build(7, time.Now()), memory.Latency{})
	m := metrics.NewCollector("clinicdesk_router_test", prometheus.NewRegistry())
	a := app.New(cfg, app.MemoryRepositories(store), m, prometheus.NewRegistry(), zap.NewNop())
	t.Cleanup(a.Shutdown)

	return &apiClient{t: t, router: a.Router}
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *apiClient) login(email string) {
	c.t.Helper()

	w := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": email, "password": "whatever"})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Tokens struct {
				AccessToken string `json:"access_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(c.t, resp.Data.Tokens.AccessToken)
	c.token = resp.Data.Tokens.AccessToken
}

type patientJSON struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Data
}

func TestRouter_RegisterPatientFlow(t *testing.T) {
	c := newClient(t)
	c.login("ADOBEA.ODAME@ashesi.edu.gh")

	w := c.do(http.MethodGet, "/api/v1/patients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	before := decodeData[[]patientJSON](t, w)
	require.Len(t, before, 5)

	w = c.do(http.MethodPost, "/api/v1/patients", map[string]any{
		"full_name":     "Efua Sutherland",
		"date_of_birth": "1994-02-11",
		"gender":        "female",
		"contact_phone": "+233 26 123 4567",
		"address":       "22 Ring Road, Accra",
		"next_of_kin":   map[string]string{"name": "Kojo Sutherland", "relationship": "Brother", "contact": "+233 26 765 4321"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[patientJSON](t, w)
	assert.Equal(t, "Efua Sutherland", created.FullName)

	w = c.do(http.MethodGet, "/api/v1/patients", nil)
	after := decodeData[[]patientJSON](t, w)
	require.Len(t, after, 6)
	assert.Equal(t, created.ID, after[5].ID)
	for _, p := range before {
		assert.NotEqual(t, created.ID, p.ID)
	}

	w = c.do(http.MethodGet, "/api/v1/patients/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Efua Sutherland", decodeData[patientJSON](t, w).FullName)
}

func TestRouter_Errors(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodGet, "/api/v1/patients", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "nobody@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid credentials","code":"INVALID_CREDENTIALS"}`, w.Body.String())

	c.login("abena.koomson@example.com")

	w = c.do(http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())

	w = c.do(http.MethodGet, "/api/v1/patients/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"patient not found","code":"NOT_FOUND"}`, w.Body.String())

	w = c.do(http.MethodGet, "/api/v1/patients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPost, "/api/v1/patients", map[string]any{"full_name": "Al"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var verr struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verr))
	assert.Equal(t, "validation failed", verr.Error)
	assert.Contains(t, verr.Fields, "full_name must be at least 3 characters")

	// Receptionists cannot write clinical notes.
	w = c.do(http.MethodGet, "/api/v1/patients", nil)
	first := decodeData[[]patientJSON](t, w)[0]
	w = c.do(http.MethodPost, "/api/v1/patients/"+first.ID.String()+"/medical-records", map[string]any{
		"attending_doctor_id": uuid.NewString(),
		"symptoms":            "Cough",
		"diagnosis":           "Flu",
		"prescriptions":       []map[string]string{{"medication": "Paracetamol", "dosage": "500mg"}},
		"treatment_plan":      "Rest",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

type dashboardJSON struct {
	Stats struct {
		TotalPatients    int `json:"total_patients"`
		MedicationAlerts int `json:"medication_alerts"`
	} `json:"stats"`
}

func TestRouter_DashboardAndHealth(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	c.login("jescaps.antwi@ashesi.edu.gh")

	w = c.do(http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decodeData[dashboardJSON](t, w)
	assert.Equal(t, 5, dash.Stats.TotalPatients)
	assert.Equal(t, 5, dash.Stats.MedicationAlerts)

	w = c.do(http.MethodGet, "/api/v1/medications?low_stock=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[[]json.RawMessage](t, w), 5)

	w = c.do(http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. Jescaps Antwi")
}

func TestRouter_RefreshAndDoctors(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "nanaakua.oduraa@ashesi.edu.gh", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Data struct {
			Tokens struct {
				RefreshToken string `json:"refresh_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = c.do(http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": login.Data.Tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c.login("nanaakua.oduraa@ashesi.edu.gh")
	w = c.do(http.MethodGet, "/api/v1/staff/doctors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doctors := decodeData[[]struct {
		Role string `json:"role"`
	}](t, w)
	require.Len(t, doctors, 2)
	for _, d := range doctors {
		assert.Equal(t, "doctor", d.Role)
	}
}

func TestRouter_FacilityAndMedications(t *testing.T) {
	c := newClient(t)
	c.login("abena.koomson@example.com")

	w := c.do(http.MethodGet, "/api/v1/referrals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	referrals := decodeData[[]struct {
		PatientName string `json:"patient_name"`
		Status      string `json:"status"`
	}](t, w)
	require.Len(t, referrals, 2)
	assert.Equal(t, "Akosua Mensah", referrals[0].PatientName)

	w = c.do(http.MethodGet, "/api/v1/health-programs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[[]struct {
		Name string `json:"name"`
	}](t, w), 3)

	w = c.do(http.MethodGet, "/api/v1/equipment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	equipment := decodeData[[]struct {
		SerialNumber string `json:"serial_number"`
	}](t, w)
	require.Len(t, equipment, 3)
	assert.Equal(t, "ECG-2021-0042", equipment[0].SerialNumber)

	type medicationJSON struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	w = c.do(http.MethodPost, "/api/v1/medications", map[string]any{
		"name":          "Azithromycin",
		"dosage":        "250mg tablets",
		"current_stock": 20,
		"minimum_stock": 40,
		"expiry_date":   "2026-01-31",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[medicationJSON](t, w)
	assert.Equal(t, "Azithromycin", created.Name)

	w = c.do(http.MethodGet, "/api/v1/medications/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decodeData[medicationJSON](t, w).ID)

	w = c.do(http.MethodGet, "/api/v1/medications?low_stock=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[[]medicationJSON](t, w), 6)

	w = c.do(http.MethodPost, "/api/v1/medications", map[string]any{"dosage": "5mg"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")
}
