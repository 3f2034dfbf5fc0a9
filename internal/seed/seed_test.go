package seed

import (
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestBuild_FixedSamples(t *testing.T) {
	ds := Build(7, testNow)

	assert.Len(t, ds.Patients, 5)
	assert.Len(t, ds.Staff, 5)
	assert.Len(t, ds.Doctors(), 2)
	assert.Len(t, ds.Appointments, 5)
	assert.Len(t, ds.Medications, 10)
	assert.Len(t, ds.Users, 5)
	assert.NotEmpty(t, ds.Referrals)
	assert.NotEmpty(t, ds.HealthPrograms)
	assert.NotEmpty(t, ds.Equipment)

	ids := map[uuid.UUID]bool{}
	for _, p := range ds.Patients {
		assert.False(t, ids[p.ID], "duplicate patient id")
		ids[p.ID] = true
	}

	// Appointment names are copies of the referenced records.
	byID := map[uuid.UUID]string{}
	for _, p := range ds.Patients {
		byID[p.ID] = p.FullName
	}
	for _, s := range ds.Staff {
		byID[s.ID] = s.Name
	}
	for _, a := range ds.Appointments {
		assert.Equal(t, byID[a.PatientID], a.PatientName)
		assert.Equal(t, byID[a.DoctorID], a.DoctorName)
	}
}

func TestGenerator_MedicalRecords(t *testing.T) {
	ds := Build(11, testNow)
	today := domain.DateOf(testNow)

	perPatient := map[uuid.UUID]int{}
	doctors := map[uuid.UUID]string{}
	for _, d := range ds.Doctors() {
		doctors[d.ID] = d.Name
	}

	for _, r := range ds.MedicalRecords {
		perPatient[r.PatientID]++

		name, ok := doctors[r.AttendingDoctorID]
		require.True(t, ok, "record attended by a non-doctor")
		assert.Equal(t, name, r.AttendingDoctorName)

		assert.False(t, r.DateOfVisit.After(today))
		assert.True(t, r.DateOfVisit.After(today.AddDate(-1, 0, -1)))
		assert.NotEmpty(t, r.Prescriptions)
		assert.Contains(t, []string{"", "Follow up in 2 weeks"}, r.FollowUpInstructions)
	}

	for _, p := range ds.Patients {
		n := perPatient[p.ID]
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 3)
	}
}

func TestGenerator_LabTests(t *testing.T) {
	for _, s := range []uint64{1, 2, 3, 99, 12345} {
		ds := Build(s, testNow)
		today := domain.DateOf(testNow)

		perPatient := map[uuid.UUID]int{}
		for _, lt := range ds.LabTests {
			perPatient[lt.PatientID]++

			assert.True(t, labtest.IsKnownType(lt.TestType))
			assert.True(t, lt.Status.IsValid())
			assert.False(t, lt.RequestDate.After(today))
			assert.True(t, lt.RequestDate.After(today.AddDate(0, 0, -31)))

			if lt.Status == labtest.StatusCompleted {
				require.NotNil(t, lt.ResultDate)
				assert.NotEmpty(t, lt.Results)
				days := int(lt.ResultDate.Sub(lt.RequestDate).Hours() / 24)
				assert.GreaterOrEqual(t, days, 1)
				assert.LessOrEqual(t, days, 7)
			} else {
				assert.Nil(t, lt.ResultDate)
				assert.Empty(t, lt.Results)
			}
		}
		for _, n := range perPatient {
			assert.LessOrEqual(t, n, 2)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := Build(2024, testNow)
	b := Build(2024, testNow)

	require.Len(t, b.MedicalRecords, len(a.MedicalRecords))
	for i := range a.MedicalRecords {
		assert.Equal(t, a.MedicalRecords[i].Diagnosis, b.MedicalRecords[i].Diagnosis)
		assert.Equal(t, a.MedicalRecords[i].DateOfVisit, b.MedicalRecords[i].DateOfVisit)
	}
	require.Len(t, b.LabTests, len(a.LabTests))
	for i := range a.LabTests {
		assert.Equal(t, a.LabTests[i].TestType, b.LabTests[i].TestType)
		assert.Equal(t, a.LabTests[i].Status, b.LabTests[i].Status)
	}
}

func TestGenerator_NoDoctors(t *testing.T) {
	g := NewGenerator(5, testNow)
	ds := Build(5, testNow)

	assert.Nil(t, g.MedicalRecords(ds.Patients, nil))
	assert.Nil(t, g.LabTests(ds.Patients, nil))
}

func TestBuild_StableIDs(t *testing.T) {
	a := Build(2024, testNow)
	b := Build(2024, testNow)

	ids := func(ds *Dataset) []uuid.UUID {
		var out []uuid.UUID
		for _, p := range ds.Patients {
			out = append(out, p.ID)
		}
		for _, s := range ds.Staff {
			out = append(out, s.ID)
		}
		for _, u := range ds.Users {
			out = append(out, u.ID)
		}
		for _, ap := range ds.Appointments {
			out = append(out, ap.ID)
		}
		for _, m := range ds.Medications {
			out = append(out, m.ID)
		}
		for _, r := range ds.Referrals {
			out = append(out, r.ID)
		}
		for _, hp := range ds.HealthPrograms {
			out = append(out, hp.ID)
		}
		for _, e := range ds.Equipment {
			out = append(out, e.ID)
		}
		for _, r := range ds.MedicalRecords {
			out = append(out, r.ID)
		}
		for _, lt := range ds.LabTests {
			out = append(out, lt.ID)
		}
		return out
	}

	first := ids(a)
	assert.Equal(t, first, ids(b))

	seen := map[uuid.UUID]bool{}
	for _, id := range first {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
