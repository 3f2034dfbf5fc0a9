// Package app wires repositories, services and the HTTP router together.
package app

import (
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/facility"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	mr "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	v1 "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/store/memory"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/store/postgres"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repositories struct {
	Patients       patient.Repository
	Appointments   appointment.Repository
	MedicalRecords mr.Repository
	LabTests       labtest.Repository
	Medications    medication.Repository
	Staff          staff.Repository
	Facility       facility.Repository
	Users          service.UserRepository
	Audit          service.AuditRepository
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Patients:       s.Patients,
		Appointments:   s.Appointments,
		MedicalRecords: s.MedicalRecords,
		LabTests:       s.LabTests,
		Medications:    s.Medications,
		Staff:          s.Staff,
		Facility:       s.Facility,
		Users:          s.Users,
		Audit:          s.Audit,
	}
}

func PostgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Patients:       postgres.NewPatientRepository(db),
		Appointments:   postgres.NewAppointmentRepository(db),
		MedicalRecords: postgres.NewMedicalRecordRepository(db),
		LabTests:       postgres.NewLabTestRepository(db),
		Medications:    postgres.NewMedicationRepository(db),
		Staff:          postgres.NewStaffRepository(db),
		Facility:       postgres.NewFacilityRepository(db),
		Users:          postgres.NewUserRepository(db),
		Audit:          postgres.NewAuditRepository(db),
	}
}

type App struct {
	Router   *gin.Engine
	Services v1.Services
	Audit    *service.AuditService
}

// New builds every service over repos. Call Shutdown to flush the audit queue.
func New(cfg *config.Config, repos Repositories, m *metrics.Collector, gatherer prometheus.Gatherer, log *zap.Logger) *App {
	auditSvc := service.NewAuditService(repos.Audit, cfg.Audit.BufferSize, m, log.Named("audit"))
	jwtManager := auth.NewJWTManager(cfg.JWT)

	svcs := v1.Services{
		Auth:         service.NewAuthService(repos.Users, jwtManager, auditSvc, m, log.Named("auth")),
		Patients:     service.NewPatientService(repos.Patients, repos.Appointments, repos.MedicalRecords, auditSvc, m, log.Named("patients")),
		Appointments: service.NewAppointmentService(repos.Appointments, repos.Patients, repos.Staff, auditSvc, m, log.Named("appointments")),
		Records:      service.NewMedicalRecordService(repos.MedicalRecords, repos.Patients, repos.Staff, repos.LabTests, auditSvc, m, log.Named("records")),
		LabTests:     service.NewLabTestService(repos.LabTests, repos.Patients, auditSvc, m, log.Named("lab")),
		Medications:  service.NewMedicationService(repos.Medications, auditSvc, m, log.Named("pharmacy")),
		Staff:        service.NewStaffService(repos.Staff),
		Facility:     service.NewFacilityService(repos.Facility),
		Dashboard:    service.NewDashboardService(repos.Patients, repos.Appointments, repos.LabTests, repos.Medications, repos.Facility),
		Reports:      service.NewReportService(repos.Patients, repos.MedicalRecords, repos.LabTests),
	}

	router := v1.NewRouter(v1.RouterDeps{
		Config:   cfg,
		Services: svcs,
		Metrics:  m,
		Gatherer: gatherer,
		Log:      log,
	})

	return &App{Router: router, Services: svcs, Audit: auditSvc}
}

func (a *App) Shutdown() {
	a.Audit.Shutdown()
}
