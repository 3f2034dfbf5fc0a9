package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/facility"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"golang.org/x/sync/errgroup"
)

const recentAppointmentsLimit = 5

type DashboardStats struct {
	TotalPatients          int `json:"total_patients"`
	TotalAppointments      int `json:"total_appointments"`
	AppointmentsToday      int `json:"appointments_today"`
	CompletedTests         int `json:"completed_tests"`
	PendingTests           int `json:"pending_tests"`
	MedicationAlerts       int `json:"medication_alerts"`
	UpcomingHealthPrograms int `json:"upcoming_health_programs"`
}

type Dashboard struct {
	Stats              DashboardStats             `json:"stats"`
	RecentAppointments []*appointment.Appointment `json:"recent_appointments"`
}

type DashboardService struct {
	patients     patient.Repository
	appointments appointment.Repository
	labTests     labtest.Repository
	medications  medication.Repository
	facility     facility.Repository
	now          func() time.Time
}

func NewDashboardService(
	patients patient.Repository,
	appointments appointment.Repository,
	labTests labtest.Repository,
	medications medication.Repository,
	facility facility.Repository,
) *DashboardService {
	return &DashboardService{
		patients:     patients,
		appointments: appointments,
		labTests:     labTests,
		medications:  medications,
		facility:     facility,
		now:          time.Now,
	}
}

// Summary loads every collection the home page counts from, in parallel.
func (s *DashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	var (
		patients []*patient.Patient
		appts    []*appointment.Appointment
		tests    []*labtest.LabTest
		lowStock []*medication.Medication
		programs []*facility.HealthProgram
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patients, err = s.patients.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		appts, err = s.appointments.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		tests, err = s.labTests.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		lowStock, err = s.medications.List(gctx, &medication.ListMedicationsQuery{LowStockOnly: true})
		return err
	})
	g.Go(func() (err error) {
		programs, err = s.facility.ListHealthPrograms(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}

	today := domain.DateOf(s.now())
	stats := DashboardStats{
		TotalPatients:     len(patients),
		TotalAppointments: len(appts),
		MedicationAlerts:  len(lowStock),
	}
	for _, a := range appts {
		if a.Date.Equal(today) {
			stats.AppointmentsToday++
		}
	}
	for _, t := range tests {
		if t.IsPending() {
			stats.PendingTests++
		} else {
			stats.CompletedTests++
		}
	}
	for _, p := range programs {
		if p.Status == facility.ProgramUpcoming {
			stats.UpcomingHealthPrograms++
		}
	}

	return &Dashboard{
		Stats:              stats,
		RecentAppointments: mostRecent(appts, recentAppointmentsLimit),
	}, nil
}

// mostRecent sorts newest first without touching the caller's slice.
func mostRecent(appts []*appointment.Appointment, n int) []*appointment.Appointment {
	sorted := slices.Clone(appts)
	slices.SortStableFunc(sorted, func(a, b *appointment.Appointment) int {
		return b.StartsAt().Compare(a.StartsAt())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
