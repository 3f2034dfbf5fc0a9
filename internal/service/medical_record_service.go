package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	mr "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MedicalRecordService struct {
	repo        mr.Repository
	patientRepo patient.Repository
	staffRepo   staff.Repository
	labRepo     labtest.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
	now         func() time.Time
}

func NewMedicalRecordService(
	repo mr.Repository,
	patientRepo patient.Repository,
	staffRepo staff.Repository,
	labRepo labtest.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *MedicalRecordService {
	return &MedicalRecordService{
		repo:        repo,
		patientRepo: patientRepo,
		staffRepo:   staffRepo,
		labRepo:     labRepo,
		auditSvc:    auditSvc,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

func (s *MedicalRecordService) ListRecords(ctx context.Context, q *mr.ListRecordsQuery) ([]*mr.MedicalRecord, error) {
	records, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing medical records: %w", err)
	}
	return records, nil
}

func (s *MedicalRecordService) ListPatientRecords(ctx context.Context, patientID uuid.UUID) ([]*mr.MedicalRecord, error) {
	return s.ListRecords(ctx, &mr.ListRecordsQuery{PatientID: &patientID})
}

// GetRecord returns nil without an error when the record does not exist.
func (s *MedicalRecordService) GetRecord(ctx context.Context, id uuid.UUID, caller Caller) (*mr.MedicalRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching medical record: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionRead,
		ResourceType: "medical_record",
		ResourceID:   id.String(),
	})

	return record, nil
}

// CreatedRecord is the result of a visit: the record plus the lab test
// ordered alongside it, if any.
type CreatedRecord struct {
	Record  *mr.MedicalRecord `json:"record"`
	LabTest *labtest.LabTest  `json:"lab_test,omitempty"`
}

// CreateRecord writes a visit note dated today. Only clinical staff may call it.
func (s *MedicalRecordService) CreateRecord(ctx context.Context, cmd *mr.CreateRecordCommand, caller Caller) (*CreatedRecord, error) {
	if err := caller.require(domain.RoleDoctor, domain.RoleNurse, domain.RoleAdmin); err != nil {
		return nil, err
	}

	var extra []string
	if cmd.RequestLabTest && cmd.LabTestType != "" && !labtest.IsKnownType(cmd.LabTestType) {
		extra = append(extra, "lab_test_type must be one of: "+strings.Join(labtest.TestTypes, ", "))
	}
	if err := mergeValidation(validateStruct(cmd), extra...); err != nil {
		return nil, err
	}

	p, err := s.patientRepo.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}
	if p == nil {
		return nil, patient.ErrPatientNotFound
	}

	doctor, err := s.staffRepo.GetByID(ctx, cmd.AttendingDoctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying attending doctor: %w", err)
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, staff.ErrStaffMemberNotFound
	}

	prescriptions := make([]string, 0, len(cmd.Prescriptions))
	for _, item := range cmd.Prescriptions {
		prescriptions = append(prescriptions, item.String())
	}

	today := domain.DateOf(s.now())
	record := &mr.MedicalRecord{
		PatientID:            p.ID,
		DateOfVisit:          today,
		Symptoms:             strings.TrimSpace(cmd.Symptoms),
		Diagnosis:            strings.TrimSpace(cmd.Diagnosis),
		Prescriptions:        prescriptions,
		TreatmentPlan:        strings.TrimSpace(cmd.TreatmentPlan),
		FollowUpInstructions: strings.TrimSpace(cmd.FollowUpInstructions),
		AttendingDoctorID:    doctor.ID,
		AttendingDoctorName:  doctor.Name,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error("failed to create medical record", zap.Error(err))
		return nil, fmt.Errorf("creating medical record: %w", err)
	}

	s.metrics.MedicalRecordsCreated.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "medical_record",
		ResourceID:   record.ID.String(),
	})

	out := &CreatedRecord{Record: record}
	if !cmd.RequestLabTest {
		return out, nil
	}

	test := &labtest.LabTest{
		PatientID:   p.ID,
		PatientName: p.FullName,
		RequestedBy: doctor.Name,
		TestType:    cmd.LabTestType,
		RequestDate: today,
		Status:      labtest.StatusRequested,
	}
	if err := s.labRepo.Create(ctx, test); err != nil {
		// The record is already stored; report the partial failure.
		s.log.Error("medical record saved but lab test request failed",
			zap.String("record_id", record.ID.String()),
			zap.Error(err),
		)
		return out, fmt.Errorf("requesting lab test for record %s: %w", record.ID, err)
	}

	s.metrics.LabTestsRequested.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "lab_test",
		ResourceID:   test.ID.String(),
	})
	out.LabTest = test

	s.log.Info("medical record created",
		zap.String("record_id", record.ID.String()),
		zap.String("patient_id", p.ID.String()),
		zap.Bool("lab_test_requested", true),
	)

	return out, nil
}
