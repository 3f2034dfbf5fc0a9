package service

import (
	"testing"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Summary(t *testing.T) {
	f := newFixture(t)

	var completed int
	for _, lt := range f.ds.LabTests {
		if lt.Status == labtest.StatusCompleted {
			completed++
		}
	}

	d, err := f.dashboard.Summary(bg)
	require.NoError(t, err)

	assert.Equal(t, len(f.ds.Patients), d.Stats.TotalPatients)
	assert.Equal(t, len(f.ds.Appointments), d.Stats.TotalAppointments)
	assert.Equal(t, completed, d.Stats.CompletedTests)
	assert.Equal(t, len(f.ds.LabTests)-completed, d.Stats.PendingTests)
	assert.Equal(t, 5, d.Stats.MedicationAlerts)
	assert.Equal(t, 1, d.Stats.UpcomingHealthPrograms)

	require.LessOrEqual(t, len(d.RecentAppointments), recentAppointmentsLimit)
	for i := 1; i < len(d.RecentAppointments); i++ {
		prev, cur := d.RecentAppointments[i-1], d.RecentAppointments[i]
		assert.False(t, cur.StartsAt().After(prev.StartsAt()), "newest first")
	}
}

func TestDashboardService_AppointmentsToday(t *testing.T) {
	f := newFixture(t)

	before, err := f.dashboard.Summary(bg)
	require.NoError(t, err)

	_, err = f.appointments.ScheduleAppointment(bg, &appointment.CreateAppointmentCommand{
		PatientID: f.ds.Patients[4].ID,
		DoctorID:  f.ds.Doctors()[0].ID,
		Date:      domain.NewDate(testNow),
		Time:      "23:59",
		Reason:    "Walk-in",
	}, f.caller(domain.RoleReceptionist))
	require.NoError(t, err)

	after, err := f.dashboard.Summary(bg)
	require.NoError(t, err)
	assert.Equal(t, before.Stats.AppointmentsToday+1, after.Stats.AppointmentsToday)
	assert.Equal(t, "Walk-in", after.RecentAppointments[0].Reason)
}

func TestReportService_Summary(t *testing.T) {
	f := newFixture(t)

	r, err := f.reports.Summary(bg)
	require.NoError(t, err)

	assert.Equal(t, len(f.ds.MedicalRecords), total(r.VisitsPerMonth))
	assert.Equal(t, len(f.ds.MedicalRecords), total(r.DiagnosisDistribution))
	assert.Equal(t, len(f.ds.Patients), total(r.NewPatientsPerMonth))
	assert.Equal(t, len(f.ds.LabTests), total(r.LabTestsByStatus))
	assert.Equal(t, len(f.ds.LabTests), total(r.LabTestsByType))

	for i := 1; i < len(r.VisitsPerMonth); i++ {
		assert.Less(t, r.VisitsPerMonth[i-1].Label, r.VisitsPerMonth[i].Label)
	}
	for i := 1; i < len(r.DiagnosisDistribution); i++ {
		assert.GreaterOrEqual(t, r.DiagnosisDistribution[i-1].Count, r.DiagnosisDistribution[i].Count)
	}
	for _, b := range r.MedicationDistribution {
		assert.NotContains(t, b.Label, " - ")
	}
}

func TestCounterOrdering(t *testing.T) {
	c := newCounter()
	for _, l := range []string{"b", "a", "c", "a", "", "c"} {
		c.add(l)
	}

	assert.Equal(t, []Bucket{{"a", 2}, {"c", 2}, {"b", 1}}, c.byCount())
	assert.Equal(t, []Bucket{{"a", 2}, {"b", 1}, {"c", 2}}, c.byLabel())
}

func total(buckets []Bucket) int {
	var n int
	for _, b := range buckets {
		n += b.Count
	}
	return n
}
