package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/seed"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *seed.Dataset) {
	t.Helper()
	ds := seed.Build(1, fixedNow)
	return New(ds, Latency{}, WithClock(func() time.Time { return fixedNow })), ds
}

func newPatient(name string) *patient.Patient {
	return &patient.Patient{
		FullName:     name,
		DateOfBirth:  domain.MustDate("1990-01-01"),
		Gender:       patient.GenderOther,
		ContactPhone: "+233 55 000 0000",
		Address:      "1 Test Street",
		NextOfKin:    patient.NextOfKin{Name: "Kin Name", Relationship: "Friend", Contact: "+233 55 000 0001"},
	}
}

func TestPatientRepository_CreateAppends(t *testing.T) {
	s, ds := newTestStore(t)
	ctx := context.Background()

	const n = 4
	seen := map[uuid.UUID]bool{}
	for _, p := range ds.Patients {
		seen[p.ID] = true
	}

	for i := range n {
		p := newPatient("New Patient")
		require.NoError(t, s.Patients.Create(ctx, p))
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.False(t, seen[p.ID], "id reused on create %d", i)
		seen[p.ID] = true
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
		assert.Equal(t, fixedNow, p.CreatedAt)
	}

	all, err := s.Patients.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(ds.Patients)+n)
	// Seeded records keep their position ahead of new ones.
	assert.Equal(t, ds.Patients[0].ID, all[0].ID)
}

func TestPatientRepository_GetByID(t *testing.T) {
	s, ds := newTestStore(t)
	ctx := context.Background()

	got, err := s.Patients.GetByID(ctx, ds.Patients[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ds.Patients[2].FullName, got.FullName)

	missing, err := s.Patients.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPatientRepository_UpdatePatchesOnlyGivenFields(t *testing.T) {
	s, ds := newTestStore(t)
	ctx := context.Background()
	target := ds.Patients[1]

	phone := "+233 20 000 1234"
	updated, err := s.Patients.Update(ctx, target.ID, &patient.UpdatePatientCommand{ContactPhone: &phone})
	require.NoError(t, err)

	assert.Equal(t, phone, updated.ContactPhone)
	assert.Equal(t, target.FullName, updated.FullName)
	assert.Equal(t, target.Email, updated.Email)
	assert.Equal(t, target.CreatedAt, updated.CreatedAt)
	assert.Equal(t, fixedNow, updated.UpdatedAt)

	all, err := s.Patients.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, target.ID, all[1].ID, "update must replace in place")
	assert.Equal(t, phone, all[1].ContactPhone)
}

func TestPatientRepository_UpdateMissing(t *testing.T) {
	s, _ := newTestStore(t)
	name := "Nobody Here"

	_, err := s.Patients.Update(context.Background(), uuid.New(), &patient.UpdatePatientCommand{FullName: &name})
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestPatientRepository_ListSearch(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Patients.List(context.Background(), &patient.ListPatientsQuery{Search: "MENSAH"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Akosua Mensah", got[0].FullName)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s, ds := newTestStore(t)
	ctx := context.Background()

	got, err := s.Patients.GetByID(ctx, ds.Patients[0].ID)
	require.NoError(t, err)
	got.FullName = "Mutated"

	again, err := s.Patients.GetByID(ctx, ds.Patients[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ds.Patients[0].FullName, again.FullName)

	records, err := s.MedicalRecords.List(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	records[0].Prescriptions[0] = "tampered"

	fresh, err := s.MedicalRecords.GetByID(ctx, records[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", fresh.Prescriptions[0])
}

func TestLabTestRepository_UpdateAnyTransition(t *testing.T) {
	s, ds := newTestStore(t)
	ctx := context.Background()

	p := ds.Patients[0]
	lt := &labtest.LabTest{PatientID: p.ID, PatientName: p.FullName, RequestedBy: "Dr. Test", TestType: "ecg", Status: labtest.StatusCompleted}
	require.NoError(t, s.LabTests.Create(ctx, lt))

	back := labtest.StatusRequested
	updated, err := s.LabTests.Update(ctx, lt.ID, &labtest.UpdateLabTestCommand{Status: &back})
	require.NoError(t, err)
	assert.Equal(t, labtest.StatusRequested, updated.Status)

	_, err = s.LabTests.Update(ctx, uuid.New(), &labtest.UpdateLabTestCommand{Status: &back})
	assert.ErrorIs(t, err, labtest.ErrLabTestNotFound)
}

func TestMedicationRepository_LowStockFilter(t *testing.T) {
	s, ds := newTestStore(t)

	want := 0
	for _, m := range ds.Medications {
		if m.CurrentStock <= m.MinimumStock {
			want++
		}
	}

	low, err := s.Medications.List(context.Background(), &medication.ListMedicationsQuery{LowStockOnly: true})
	require.NoError(t, err)
	assert.Len(t, low, want)
	for _, m := range low {
		assert.True(t, m.IsLowStock())
	}
}

func TestUserRepository_GetByEmailIgnoresCase(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	u, err := s.Users.GetByEmail(ctx, "  ADOBEA.Odame@ashesi.edu.gh ")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	none, err := s.Users.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestLatency_HonoursContext(t *testing.T) {
	ds := seed.Build(1, fixedNow)
	s := New(ds, Latency{List: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.Patients.List(ctx, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLatency_Waits(t *testing.T) {
	ds := seed.Build(1, fixedNow)
	s := New(ds, Latency{Get: 20 * time.Millisecond})

	start := time.Now()
	_, err := s.Patients.GetByID(context.Background(), ds.Patients[0].ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestAuditRepository_Entries(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Audit.Create(ctx, &domain.AuditLog{Action: domain.ActionLogin, ResourceType: "user"}))
	require.NoError(t, s.Audit.Create(ctx, &domain.AuditLog{Action: domain.ActionRead, ResourceType: "patient"}))

	assert.Len(t, s.Audit.Entries(""), 2)
	logins := s.Audit.Entries(domain.ActionLogin)
	require.Len(t, logins, 1)
	assert.Equal(t, fixedNow, logins[0].OccurredAt)
}

func TestStore_Count(t *testing.T) {
	s, ds := newTestStore(t)

	counts := s.Count()
	assert.Equal(t, len(ds.Patients), counts["patients"])
	assert.Equal(t, len(ds.MedicalRecords), counts["medical_records"])
	assert.Equal(t, len(ds.Equipment), counts["equipment"])
}
