package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	mr "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PatientService struct {
	repo            patient.Repository
	appointmentRepo appointment.Repository
	recordRepo      mr.Repository
	auditSvc        *AuditService
	metrics         *metrics.Collector
	log             *zap.Logger
	now             func() time.Time
}

func NewPatientService(
	repo patient.Repository,
	appointmentRepo appointment.Repository,
	recordRepo mr.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *PatientService {
	return &PatientService{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		recordRepo:      recordRepo,
		auditSvc:        auditSvc,
		metrics:         m,
		log:             log,
		now:             time.Now,
	}
}

func (s *PatientService) ListPatients(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	patients, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}

// GetPatient returns nil without an error when the patient does not exist.
func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID, caller Caller) (*patient.Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching patient: %w", err)
	}
	if p == nil {
		return nil, nil
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionRead,
		ResourceType: "patient",
		ResourceID:   id.String(),
	})

	return p, nil
}

func (s *PatientService) RegisterPatient(ctx context.Context, cmd *patient.CreatePatientCommand, caller Caller) (*patient.Patient, error) {
	if err := s.validateCreate(cmd); err != nil {
		return nil, err
	}

	p := &patient.Patient{
		FullName:       strings.TrimSpace(cmd.FullName),
		DateOfBirth:    cmd.DateOfBirth.Time,
		Gender:         cmd.Gender,
		ContactPhone:   strings.TrimSpace(cmd.ContactPhone),
		Email:          strings.ToLower(strings.TrimSpace(cmd.Email)),
		Address:        strings.TrimSpace(cmd.Address),
		NextOfKin:      cmd.NextOfKin,
		MedicalHistory: cmd.MedicalHistory,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to register patient", zap.Error(err))
		return nil, fmt.Errorf("registering patient: %w", err)
	}

	s.metrics.PatientsRegisteredTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
	})

	s.log.Info("patient registered",
		zap.String("patient_id", p.ID.String()),
		zap.String("registered_by", caller.UserID.String()),
	)

	return p, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand, caller Caller) (*patient.Patient, error) {
	var extra []string
	if cmd.DateOfBirth != nil {
		switch {
		case cmd.DateOfBirth.IsZero():
			extra = append(extra, "date_of_birth is required")
		case cmd.DateOfBirth.After(s.now()):
			extra = append(extra, "date_of_birth cannot be in the future")
		}
	}
	if err := mergeValidation(validateStruct(cmd), extra...); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionUpdate,
		ResourceType: "patient",
		ResourceID:   id.String(),
	})

	s.log.Info("patient updated", zap.String("patient_id", id.String()))
	return p, nil
}

// PatientOverview is everything the patient detail page shows at once.
type PatientOverview struct {
	Patient        *patient.Patient           `json:"patient"`
	Age            int                        `json:"age"`
	Appointments   []*appointment.Appointment `json:"appointments"`
	MedicalRecords []*mr.MedicalRecord        `json:"medical_records"`
}

// Overview loads the patient with its appointments and medical
// records. Returns nil without an error when the patient does not exist.
func (s *PatientService) Overview(ctx context.Context, id uuid.UUID, caller Caller) (*PatientOverview, error) {
	var (
		p       *patient.Patient
		appts   []*appointment.Appointment
		records []*mr.MedicalRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.repo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		appts, err = s.appointmentRepo.List(gctx, &appointment.ListAppointmentsQuery{PatientID: &id})
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.recordRepo.List(gctx, &mr.ListRecordsQuery{PatientID: &id})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading patient overview: %w", err)
	}
	if p == nil {
		return nil, nil
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionRead,
		ResourceType: "patient",
		ResourceID:   id.String(),
	})

	return &PatientOverview{
		Patient:        p,
		Age:            p.Age(s.now()),
		Appointments:   appts,
		MedicalRecords: records,
	}, nil
}

func (s *PatientService) validateCreate(cmd *patient.CreatePatientCommand) error {
	var extra []string
	if !cmd.DateOfBirth.IsZero() && cmd.DateOfBirth.After(s.now()) {
		extra = append(extra, "date_of_birth cannot be in the future")
	}
	return mergeValidation(validateStruct(cmd), extra...)
}
