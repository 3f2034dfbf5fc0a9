package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LabTestService struct {
	repo        labtest.Repository
	patientRepo patient.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
	now         func() time.Time
}

func NewLabTestService(
	repo labtest.Repository,
	patientRepo patient.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *LabTestService {
	return &LabTestService{
		repo:        repo,
		patientRepo: patientRepo,
		auditSvc:    auditSvc,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

func (s *LabTestService) ListLabTests(ctx context.Context, q *labtest.ListLabTestsQuery) ([]*labtest.LabTest, error) {
	tests, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing lab tests: %w", err)
	}
	return tests, nil
}

// GetLabTest returns nil without an error when the test does not exist.
func (s *LabTestService) GetLabTest(ctx context.Context, id uuid.UUID) (*labtest.LabTest, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching lab test: %w", err)
	}
	return t, nil
}

func (s *LabTestService) RequestLabTest(ctx context.Context, cmd *labtest.RequestLabTestCommand, caller Caller) (*labtest.LabTest, error) {
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

	requestedBy := strings.TrimSpace(cmd.RequestedBy)
	if requestedBy == "" {
		requestedBy = caller.Name
	}

	t := &labtest.LabTest{
		PatientID:   p.ID,
		PatientName: p.FullName,
		RequestedBy: requestedBy,
		TestType:    cmd.TestType,
		RequestDate: domain.DateOf(s.now()),
		Status:      labtest.StatusRequested,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error("failed to request lab test", zap.Error(err))
		return nil, fmt.Errorf("requesting lab test: %w", err)
	}

	s.metrics.LabTestsRequested.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "lab_test",
		ResourceID:   t.ID.String(),
	})

	s.log.Info("lab test requested",
		zap.String("lab_test_id", t.ID.String()),
		zap.String("test_type", t.TestType),
	)

	return t, nil
}

// UpdateLabTest applies a partial patch. Status may move in any direction.
func (s *LabTestService) UpdateLabTest(ctx context.Context, id uuid.UUID, cmd *labtest.UpdateLabTestCommand, caller Caller) (*labtest.LabTest, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	t, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionUpdate,
		ResourceType: "lab_test",
		ResourceID:   id.String(),
	})

	return t, nil
}

// RecordResults completes a test with today's date.
func (s *LabTestService) RecordResults(ctx context.Context, id uuid.UUID, cmd *labtest.RecordResultsCommand, caller Caller) (*labtest.LabTest, error) {
	if err := caller.require(domain.RoleLabTechnician, domain.RoleDoctor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	trimmed := labtest.RecordResultsCommand{
		Results:  strings.TrimSpace(cmd.Results),
		Comments: strings.TrimSpace(cmd.Comments),
	}
	if err := validateStruct(&trimmed); err != nil {
		return nil, err
	}

	results := trimmed.Results
	status := labtest.StatusCompleted
	resultDate := domain.NewDate(s.now())
	patch := &labtest.UpdateLabTestCommand{
		Status:     &status,
		Results:    &results,
		ResultDate: &resultDate,
	}
	if trimmed.Comments != "" {
		patch.Comments = &trimmed.Comments
	}

	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.metrics.LabResultsRecorded.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionUpdate,
		ResourceType: "lab_test",
		ResourceID:   id.String(),
		Changes:      `{"status":"completed"}`,
	})

	s.log.Info("lab results recorded",
		zap.String("lab_test_id", id.String()),
		zap.String("recorded_by", caller.UserID.String()),
	)

	return t, nil
}
