package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MedicationService struct {
	repo     medication.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewMedicationService(repo medication.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *MedicationService {
	return &MedicationService{repo: repo, auditSvc: auditSvc, metrics: m, log: log}
}

// ListMedications also refreshes the low-stock gauge when the full inventory is read.
func (s *MedicationService) ListMedications(ctx context.Context, q *medication.ListMedicationsQuery) ([]*medication.Medication, error) {
	meds, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing medications: %w", err)
	}

	if q == nil || !q.LowStockOnly {
		s.metrics.LowStockMedications.Set(float64(countLowStock(meds)))
	}
	return meds, nil
}

func (s *MedicationService) LowStock(ctx context.Context) ([]*medication.Medication, error) {
	meds, err := s.repo.List(ctx, &medication.ListMedicationsQuery{LowStockOnly: true})
	if err != nil {
		return nil, fmt.Errorf("listing low stock medications: %w", err)
	}
	s.metrics.LowStockMedications.Set(float64(len(meds)))
	return meds, nil
}

// GetMedication returns nil without an error when the medication does not exist.
func (s *MedicationService) GetMedication(ctx context.Context, id uuid.UUID) (*medication.Medication, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching medication: %w", err)
	}
	return m, nil
}

func (s *MedicationService) AddMedication(ctx context.Context, cmd *medication.CreateMedicationCommand, caller Caller) (*medication.Medication, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	m := &medication.Medication{
		Name:         strings.TrimSpace(cmd.Name),
		Dosage:       strings.TrimSpace(cmd.Dosage),
		CurrentStock: cmd.CurrentStock,
		MinimumStock: cmd.MinimumStock,
		ExpiryDate:   cmd.ExpiryDate.Time,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.log.Error("failed to add medication", zap.Error(err))
		return nil, fmt.Errorf("adding medication: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "medication",
		ResourceID:   m.ID.String(),
	})

	s.log.Info("medication added",
		zap.String("medication_id", m.ID.String()),
		zap.String("name", m.Name),
		zap.Bool("low_stock", m.IsLowStock()),
	)

	return m, nil
}

func (s *MedicationService) UpdateMedication(ctx context.Context, id uuid.UUID, cmd *medication.UpdateMedicationCommand, caller Caller) (*medication.Medication, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	m, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionUpdate,
		ResourceType: "medication",
		ResourceID:   id.String(),
	})

	if m.IsLowStock() {
		s.log.Warn("medication at or below minimum stock",
			zap.String("medication_id", id.String()),
			zap.Int("current_stock", m.CurrentStock),
			zap.Int("minimum_stock", m.MinimumStock),
		)
	}

	return m, nil
}

func countLowStock(meds []*medication.Medication) int {
	n := 0
	for _, m := range meds {
		if m.IsLowStock() {
			n++
		}
	}
	return n
}
