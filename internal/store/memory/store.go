// Package memory keeps every collection in process memory. It stands in for
// the remote API the front end was written against, so each call waits a
// configurable latency before it answers.
package memory

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/facility"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/seed"
	"github.com/google/uuid"
)

type Store struct {
	Patients       *PatientRepository
	Appointments   *AppointmentRepository
	MedicalRecords *MedicalRecordRepository
	LabTests       *LabTestRepository
	Medications    *MedicationRepository
	Staff          *StaffRepository
	Facility       *FacilityRepository
	Users          *UserRepository
	Audit          *AuditRepository
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for timestamps the store assigns.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New copies ds into fresh collections. Later changes to ds are not seen by
// the store and vice versa.
func New(ds *seed.Dataset, lat Latency, opts ...Option) *Store {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		Patients: &PatientRepository{
			c:   newCollection(ds.Patients, func(p *patient.Patient) uuid.UUID { return p.ID }, shallow[patient.Patient]),
			lat: lat,
			now: o.now,
		},
		Appointments: &AppointmentRepository{
			c:   newCollection(ds.Appointments, func(a *appointment.Appointment) uuid.UUID { return a.ID }, shallow[appointment.Appointment]),
			lat: lat,
		},
		MedicalRecords: &MedicalRecordRepository{
			c: newCollection(ds.MedicalRecords, func(r *medical_record.MedicalRecord) uuid.UUID { return r.ID }, func(r *medical_record.MedicalRecord) *medical_record.MedicalRecord {
				cp := r.Clone()
				return &cp
			}),
			lat: lat,
		},
		LabTests: &LabTestRepository{
			c: newCollection(ds.LabTests, func(t *labtest.LabTest) uuid.UUID { return t.ID }, func(t *labtest.LabTest) *labtest.LabTest {
				cp := t.Clone()
				return &cp
			}),
			lat: lat,
		},
		Medications: &MedicationRepository{
			c:   newCollection(ds.Medications, func(m *medication.Medication) uuid.UUID { return m.ID }, shallow[medication.Medication]),
			lat: lat,
		},
		Staff: &StaffRepository{
			c:   newCollection(ds.Staff, func(s *staff.StaffMember) uuid.UUID { return s.ID }, shallow[staff.StaffMember]),
			lat: lat,
		},
		Facility: &FacilityRepository{
			referrals: newCollection(ds.Referrals, func(r *facility.Referral) uuid.UUID { return r.ID }, shallow[facility.Referral]),
			programs:  newCollection(ds.HealthPrograms, func(p *facility.HealthProgram) uuid.UUID { return p.ID }, shallow[facility.HealthProgram]),
			equipment: newCollection(ds.Equipment, func(e *facility.Equipment) uuid.UUID { return e.ID }, shallow[facility.Equipment]),
			lat:       lat,
		},
		Users: &UserRepository{
			c:   newCollection(ds.Users, func(u *domain.User) uuid.UUID { return u.ID }, shallow[domain.User]),
			lat: lat,
		},
		Audit: &AuditRepository{
			c:   newCollection[domain.AuditLog](nil, func(l *domain.AuditLog) uuid.UUID { return l.ID }, shallow[domain.AuditLog]),
			now: o.now,
		},
	}
}
