// Package postgres implements the domain repositories on top of gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/facility"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ patient.Repository        = (*PatientRepository)(nil)
	_ appointment.Repository    = (*AppointmentRepository)(nil)
	_ medical_record.Repository = (*MedicalRecordRepository)(nil)
	_ labtest.Repository        = (*LabTestRepository)(nil)
	_ medication.Repository     = (*MedicationRepository)(nil)
	_ staff.Repository          = (*StaffRepository)(nil)
	_ facility.Repository       = (*FacilityRepository)(nil)
)

// first loads one row by primary key. A missing row is reported as nil, nil.
func first[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var out T
	err := db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// patch loads the row under a row lock, applies fn and saves it in one
// transaction. notFound is returned when no row has that id.
func patch[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, notFound error, fn func(*T)) (*T, error) {
	var out T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&out).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound
			}
			return err
		}
		fn(&out)
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type PatientRepository struct{ db *gorm.DB }

func NewPatientRepository(db *gorm.DB) *PatientRepository { return &PatientRepository{db: db} }

func (r *PatientRepository) List(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	tx := r.db.WithContext(ctx).Order("created_at ASC")
	if q != nil {
		if s := strings.TrimSpace(q.Search); s != "" {
			like := "%" + strings.ToLower(s) + "%"
			tx = tx.Where("LOWER(full_name) LIKE ? OR contact_phone LIKE ? OR LOWER(email) LIKE ?", like, like, like)
		}
	}
	var out []*patient.Patient
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return out, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return first[patient.Patient](ctx, r.db, id)
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	now := time.Now().UTC()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientRepository) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	return patch(ctx, r.db, id, patient.ErrPatientNotFound, func(p *patient.Patient) {
		p.Apply(cmd)
		p.UpdatedAt = time.Now().UTC()
	})
}

type AppointmentRepository struct{ db *gorm.DB }

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) List(ctx context.Context, q *appointment.ListAppointmentsQuery) ([]*appointment.Appointment, error) {
	tx := r.db.WithContext(ctx).Order("date ASC, time ASC")
	if q != nil {
		if q.PatientID != nil {
			tx = tx.Where("patient_id = ?", *q.PatientID)
		}
		if q.DoctorID != nil {
			tx = tx.Where("doctor_id = ?", *q.DoctorID)
		}
		if q.Status != nil {
			tx = tx.Where("status = ?", *q.Status)
		}
		if q.Date != nil {
			tx = tx.Where("date = ?", q.Date.Format(time.DateOnly))
		}
	}
	var out []*appointment.Appointment
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return out, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return first[appointment.Appointment](ctx, r.db, id)
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	a.ID = uuid.New()
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AppointmentRepository) Update(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	return patch(ctx, r.db, id, appointment.ErrAppointmentNotFound, func(a *appointment.Appointment) { a.Apply(cmd) })
}

type MedicalRecordRepository struct{ db *gorm.DB }

func NewMedicalRecordRepository(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

func (r *MedicalRecordRepository) List(ctx context.Context, q *medical_record.ListRecordsQuery) ([]*medical_record.MedicalRecord, error) {
	tx := r.db.WithContext(ctx).Order("date_of_visit DESC")
	if q != nil {
		if q.PatientID != nil {
			tx = tx.Where("patient_id = ?", *q.PatientID)
		}
		if q.DoctorID != nil {
			tx = tx.Where("attending_doctor_id = ?", *q.DoctorID)
		}
	}
	var out []*medical_record.MedicalRecord
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing medical records: %w", err)
	}
	return out, nil
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*medical_record.MedicalRecord, error) {
	return first[medical_record.MedicalRecord](ctx, r.db, id)
}

func (r *MedicalRecordRepository) Create(ctx context.Context, rec *medical_record.MedicalRecord) error {
	rec.ID = uuid.New()
	return r.db.WithContext(ctx).Create(rec).Error
}

type LabTestRepository struct{ db *gorm.DB }

func NewLabTestRepository(db *gorm.DB) *LabTestRepository { return &LabTestRepository{db: db} }

func (r *LabTestRepository) List(ctx context.Context, q *labtest.ListLabTestsQuery) ([]*labtest.LabTest, error) {
	tx := r.db.WithContext(ctx).Order("request_date DESC")
	if q != nil {
		if q.PatientID != nil {
			tx = tx.Where("patient_id = ?", *q.PatientID)
		}
		if q.Status != nil {
			tx = tx.Where("status = ?", *q.Status)
		}
	}
	var out []*labtest.LabTest
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing lab tests: %w", err)
	}
	return out, nil
}

func (r *LabTestRepository) GetByID(ctx context.Context, id uuid.UUID) (*labtest.LabTest, error) {
	return first[labtest.LabTest](ctx, r.db, id)
}

func (r *LabTestRepository) Create(ctx context.Context, t *labtest.LabTest) error {
	t.ID = uuid.New()
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *LabTestRepository) Update(ctx context.Context, id uuid.UUID, cmd *labtest.UpdateLabTestCommand) (*labtest.LabTest, error) {
	return patch(ctx, r.db, id, labtest.ErrLabTestNotFound, func(t *labtest.LabTest) { t.Apply(cmd) })
}

type MedicationRepository struct{ db *gorm.DB }

func NewMedicationRepository(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

func (r *MedicationRepository) List(ctx context.Context, q *medication.ListMedicationsQuery) ([]*medication.Medication, error) {
	tx := r.db.WithContext(ctx).Order("name ASC")
	if q != nil && q.LowStockOnly {
		tx = tx.Where("current_stock <= minimum_stock")
	}
	var out []*medication.Medication
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing medications: %w", err)
	}
	return out, nil
}

func (r *MedicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*medication.Medication, error) {
	return first[medication.Medication](ctx, r.db, id)
}

func (r *MedicationRepository) Create(ctx context.Context, m *medication.Medication) error {
	m.ID = uuid.New()
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MedicationRepository) Update(ctx context.Context, id uuid.UUID, cmd *medication.UpdateMedicationCommand) (*medication.Medication, error) {
	return patch(ctx, r.db, id, medication.ErrMedicationNotFound, func(m *medication.Medication) { m.Apply(cmd) })
}

type StaffRepository struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) *StaffRepository { return &StaffRepository{db: db} }

func (r *StaffRepository) List(ctx context.Context, q *staff.ListStaffQuery) ([]*staff.StaffMember, error) {
	tx := r.db.WithContext(ctx).Order("name ASC")
	if q != nil && q.Role != nil {
		tx = tx.Where("role = ?", *q.Role)
	}
	var out []*staff.StaffMember
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	return out, nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*staff.StaffMember, error) {
	return first[staff.StaffMember](ctx, r.db, id)
}

type FacilityRepository struct{ db *gorm.DB }

func NewFacilityRepository(db *gorm.DB) *FacilityRepository { return &FacilityRepository{db: db} }

func (r *FacilityRepository) ListReferrals(ctx context.Context) ([]*facility.Referral, error) {
	var out []*facility.Referral
	err := r.db.WithContext(ctx).Order("date DESC").Find(&out).Error
	return out, err
}

func (r *FacilityRepository) ListHealthPrograms(ctx context.Context) ([]*facility.HealthProgram, error) {
	var out []*facility.HealthProgram
	err := r.db.WithContext(ctx).Order("start_date ASC").Find(&out).Error
	return out, err
}

func (r *FacilityRepository) ListEquipment(ctx context.Context) ([]*facility.Equipment, error) {
	var out []*facility.Equipment
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return first[domain.User](ctx, r.db, id)
}

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Changes == "" {
		entry.Changes = "{}"
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
