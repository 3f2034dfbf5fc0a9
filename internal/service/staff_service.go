package service

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/facility"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/google/uuid"
)

// StaffService exposes the read-only staff directory.
type StaffService struct {
	repo staff.Repository
}

func NewStaffService(repo staff.Repository) *StaffService {
	return &StaffService{repo: repo}
}

func (s *StaffService) ListStaff(ctx context.Context, q *staff.ListStaffQuery) ([]*staff.StaffMember, error) {
	members, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	return members, nil
}

func (s *StaffService) ListDoctors(ctx context.Context) ([]*staff.StaffMember, error) {
	role := domain.RoleDoctor
	return s.ListStaff(ctx, &staff.ListStaffQuery{Role: &role})
}

// GetStaffMember returns nil without an error when nobody has that id.
func (s *StaffService) GetStaffMember(ctx context.Context, id uuid.UUID) (*staff.StaffMember, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching staff member: %w", err)
	}
	return m, nil
}

// FacilityService serves the referral, outreach and equipment registers.
type FacilityService struct {
	repo facility.Repository
}

func NewFacilityService(repo facility.Repository) *FacilityService {
	return &FacilityService{repo: repo}
}

func (s *FacilityService) ListReferrals(ctx context.Context) ([]*facility.Referral, error) {
	refs, err := s.repo.ListReferrals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing referrals: %w", err)
	}
	return refs, nil
}

func (s *FacilityService) ListHealthPrograms(ctx context.Context) ([]*facility.HealthProgram, error) {
	programs, err := s.repo.ListHealthPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing health programs: %w", err)
	}
	return programs, nil
}

func (s *FacilityService) ListEquipment(ctx context.Context) ([]*facility.Equipment, error) {
	items, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	return items, nil
}
