package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/seed"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/store/memory"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	ds    *seed.Dataset
	store *memory.Store
	audit *AuditService
	m     *metrics.Collector

	patients     *PatientService
	appointments *AppointmentService
	records      *MedicalRecordService
	labTests     *LabTestService
	medications  *MedicationService
	dashboard    *DashboardService
	reports      *ReportService
	auth         *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ds := seed.Build(3, testNow)
	store := memory.New(ds, memory.Latency{}, memory.WithClock(func() time.Time { return testNow }))
	m := metrics.NewCollector("clinicdesk_test", prometheus.NewRegistry())
	log := zap.NewNop()

	audit := NewAuditService(store.Audit, 100, m, log)
	t.Cleanup(audit.Shutdown)

	clock := func() time.Time { return testNow }

	f := &fixture{
		ds:           ds,
		store:        store,
		audit:        audit,
		m:            m,
		patients:     NewPatientService(store.Patients, store.Appointments, store.MedicalRecords, audit, m, log),
		appointments: NewAppointmentService(store.Appointments, store.Patients, store.Staff, audit, m, log),
		records:      NewMedicalRecordService(store.MedicalRecords, store.Patients, store.Staff, store.LabTests, audit, m, log),
		labTests:     NewLabTestService(store.LabTests, store.Patients, audit, m, log),
		medications:  NewMedicationService(store.Medications, audit, m, log),
		dashboard:    NewDashboardService(store.Patients, store.Appointments, store.LabTests, store.Medications, store.Facility),
		reports:      NewReportService(store.Patients, store.MedicalRecords, store.LabTests),
		auth: NewAuthService(store.Users, auth.NewJWTManager(config.JWTConfig{
			Secret:          "service-test-secret-service-test-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			Issuer:          "clinicdesk",
		}), audit, m, log),
	}
	f.patients.now = clock
	f.records.now = clock
	f.labTests.now = clock
	f.dashboard.now = clock

	return f
}

func (f *fixture) caller(role domain.Role) Caller {
	return Caller{Name: "Test " + string(role), Role: role, IP: "127.0.0.1", RequestID: "req-1"}
}

// flushAudit drains the queue so tests can inspect what was written.
func (f *fixture) flushAudit(t *testing.T) []*domain.AuditLog {
	t.Helper()
	f.audit.Shutdown()
	return f.store.Audit.Entries("")
}

var bg = context.Background()

func requireValidation(t *testing.T, err error, contains ...string) {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	for _, c := range contains {
		require.Contains(t, ve.Fields, c)
	}
}
