package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	staffRepo   staff.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	staffRepo staff.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		staffRepo:   staffRepo,
		auditSvc:    auditSvc,
		metrics:     m,
		log:         log,
	}
}

func (s *AppointmentService) ListAppointments(ctx context.Context, q *appointment.ListAppointmentsQuery) ([]*appointment.Appointment, error) {
	appts, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appts, nil
}

func (s *AppointmentService) ListPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	return s.ListAppointments(ctx, &appointment.ListAppointmentsQuery{PatientID: &patientID})
}

// GetAppointment returns nil without an error when the appointment does not exist.
func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	return a, nil
}

// ScheduleAppointment books a visit. Patient and doctor names are copied onto
// the appointment as they are now.
func (s *AppointmentService) ScheduleAppointment(ctx context.Context, cmd *appointment.CreateAppointmentCommand, caller Caller) (*appointment.Appointment, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	p, err := s.patientRepo.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}
	if p == nil {
		return nil, patient.ErrPatientNotFound
	}

	doctor, err := s.staffRepo.GetByID(ctx, cmd.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, staff.ErrStaffMemberNotFound
	}

	a := &appointment.Appointment{
		PatientID:   p.ID,
		PatientName: p.FullName,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		Date:        cmd.Date.Time,
		Time:        cmd.Time,
		Reason:      strings.TrimSpace(cmd.Reason),
		Status:      appointment.StatusScheduled,
		Notes:       cmd.Notes,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.metrics.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
	})

	s.log.Info("appointment scheduled",
		zap.String("appointment_id", a.ID.String()),
		zap.String("patient_id", a.PatientID.String()),
		zap.String("doctor_id", a.DoctorID.String()),
	)

	return a, nil
}

// UpdateAppointment patches an appointment. Any status may follow any other.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand, caller Caller) (*appointment.Appointment, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	a, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Status != nil {
		s.metrics.AppointmentsTotal.WithLabelValues(string(*cmd.Status)).Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionUpdate,
		ResourceType: "appointment",
		ResourceID:   id.String(),
	})

	return a, nil
}
