package memory

import (
	"context"
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

// ---- patients ----

type PatientRepository struct {
	c   *collection[patient.Patient]
	lat Latency
	now func() time.Time
}

func (r *PatientRepository) List(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.c.list(q.Matches), nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	if err := wait(ctx, r.lat.Get); err != nil {
		return nil, err
	}
	return r.c.get(id), nil
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	if err := wait(ctx, r.lat.Write); err != nil {
		return err
	}
	now := r.now().UTC()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.c.add(p)
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if err := wait(ctx, r.lat.Write); err != nil {
		return nil, err
	}
	updated := r.c.update(id, func(p *patient.Patient) {
		p.Apply(cmd)
		p.UpdatedAt = r.now().UTC()
	})
	if updated == nil {
		return nil, patient.ErrPatientNotFound
	}
	return updated, nil
}

// ---- appointments ----

type AppointmentRepository struct {
	c   *collection[appointment.Appointment]
	lat Latency
}

func (r *AppointmentRepository) List(ctx context.Context, q *appointment.ListAppointmentsQuery) ([]*appointment.Appointment, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.c.list(q.Matches), nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if err := wait(ctx, r.lat.Get); err != nil {
		return nil, err
	}
	return r.c.get(id), nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := wait(ctx, r.lat.Write); err != nil {
		return err
	}
	a.ID = uuid.New()
	r.c.add(a)
	return nil
}

func (r *AppointmentRepository) Update(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	if err := wait(ctx, r.lat.Write); err != nil {
		return nil, err
	}
	updated := r.c.update(id, func(a *appointment.Appointment) { a.Apply(cmd) })
	if updated == nil {
		return nil, appointment.ErrAppointmentNotFound
	}
	return updated, nil
}

// ---- medical records ----

type MedicalRecordRepository struct {
	c   *collection[medical_record.MedicalRecord]
	lat Latency
}

func (r *MedicalRecordRepository) List(ctx context.Context, q *medical_record.ListRecordsQuery) ([]*medical_record.MedicalRecord, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.c.list(q.Matches), nil
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*medical_record.MedicalRecord, error) {
	if err := wait(ctx, r.lat.Get); err != nil {
		return nil, err
	}
	return r.c.get(id), nil
}

func (r *MedicalRecordRepository) Create(ctx context.Context, rec *medical_record.MedicalRecord) error {
	if err := wait(ctx, r.lat.Write); err != nil {
		return err
	}
	rec.ID = uuid.New()
	r.c.add(rec)
	return nil
}

// ---- lab tests ----

type LabTestRepository struct {
	c   *collection[labtest.LabTest]
	lat Latency
}

func (r *LabTestRepository) List(ctx context.Context, q *labtest.ListLabTestsQuery) ([]*labtest.LabTest, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.c.list(q.Matches), nil
}

func (r *LabTestRepository) GetByID(ctx context.Context, id uuid.UUID) (*labtest.LabTest, error) {
	if err := wait(ctx, r.lat.Get); err != nil {
		return nil, err
	}
	return r.c.get(id), nil
}

func (r *LabTestRepository) Create(ctx context.Context, t *labtest.LabTest) error {
	if err := wait(ctx, r.lat.Write); err != nil {
		return err
	}
	t.ID = uuid.New()
	r.c.add(t)
	return nil
}

func (r *LabTestRepository) Update(ctx context.Context, id uuid.UUID, cmd *labtest.UpdateLabTestCommand) (*labtest.LabTest, error) {
	if err := wait(ctx, r.lat.Write); err != nil {
		return nil, err
	}
	updated := r.c.update(id, func(t *labtest.LabTest) { t.Apply(cmd) })
	if updated == nil {
		return nil, labtest.ErrLabTestNotFound
	}
	return updated, nil
}

// ---- medications ----

type MedicationRepository struct {
	c   *collection[medication.Medication]
	lat Latency
}

func (r *MedicationRepository) List(ctx context.Context, q *medication.ListMedicationsQuery) ([]*medication.Medication, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.c.list(q.Matches), nil
}

func (r *MedicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*medication.Medication, error) {
	if err := wait(ctx, r.lat.Get); err != nil {
		return nil, err
	}
	return r.c.get(id), nil
}

func (r *MedicationRepository) Create(ctx context.Context, m *medication.Medication) error {
	if err := wait(ctx, r.lat.Write); err != nil {
		return err
	}
	m.ID = uuid.New()
	r.c.add(m)
	return nil
}

func (r *MedicationRepository) Update(ctx context.Context, id uuid.UUID, cmd *medication.UpdateMedicationCommand) (*medication.Medication, error) {
	if err := wait(ctx, r.lat.Write); err != nil {
		return nil, err
	}
	updated := r.c.update(id, func(m *medication.Medication) { m.Apply(cmd) })
	if updated == nil {
		return nil, medication.ErrMedicationNotFound
	}
	return updated, nil
}

// ---- staff ----

type StaffRepository struct {
	c   *collection[staff.StaffMember]
	lat Latency
}

func (r *StaffRepository) List(ctx context.Context, q *staff.ListStaffQuery) ([]*staff.StaffMember, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.c.list(q.Matches), nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*staff.StaffMember, error) {
	if err := wait(ctx, r.lat.Get); err != nil {
		return nil, err
	}
	return r.c.get(id), nil
}

// ---- facility ----

type FacilityRepository struct {
	referrals *collection[facility.Referral]
	programs  *collection[facility.HealthProgram]
	equipment *collection[facility.Equipment]
	lat       Latency
}

func (r *FacilityRepository) ListReferrals(ctx context.Context) ([]*facility.Referral, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.referrals.list(nil), nil
}

func (r *FacilityRepository) ListHealthPrograms(ctx context.Context) ([]*facility.HealthProgram, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.programs.list(nil), nil
}

func (r *FacilityRepository) ListEquipment(ctx context.Context) ([]*facility.Equipment, error) {
	if err := wait(ctx, r.lat.List); err != nil {
		return nil, err
	}
	return r.equipment.list(nil), nil
}

// ---- users ----

type UserRepository struct {
	c   *collection[domain.User]
	lat Latency
}

// GetByEmail is the login lookup, so it waits the login latency.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := wait(ctx, r.lat.Login); err != nil {
		return nil, err
	}
	return r.c.find(func(u *domain.User) bool { return u.EmailMatches(email) }), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := wait(ctx, r.lat.Get); err != nil {
		return nil, err
	}
	return r.c.get(id), nil
}

// ---- audit ----

// AuditRepository has no artificial latency; it is written from a background worker.
type AuditRepository struct {
	c   *collection[domain.AuditLog]
	now func() time.Time
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = r.now().UTC()
	}
	r.c.add(entry)
	return nil
}

// Entries returns the logged entries, optionally only those of one action.
func (r *AuditRepository) Entries(action domain.AuditAction) []*domain.AuditLog {
	if action == "" {
		return r.c.list(nil)
	}
	return r.c.list(func(l *domain.AuditLog) bool { return l.Action == action })
}

// Count reports the size of every collection.
func (s *Store) Count() map[string]int {
	return map[string]int{
		"patients":        s.Patients.c.len(),
		"appointments":    s.Appointments.c.len(),
		"medical_records": s.MedicalRecords.c.len(),
		"lab_tests":       s.LabTests.c.len(),
		"medications":     s.Medications.c.len(),
		"staff":           s.Staff.c.len(),
		"users":           s.Users.c.len(),
		"referrals":       s.Facility.referrals.len(),
		"health_programs": s.Facility.programs.len(),
		"equipment":       s.Facility.equipment.len(),
	}
}
