package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	mr "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"golang.org/x/sync/errgroup"
)

// Bucket is one bar of a chart.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Report struct {
	VisitsPerMonth         []Bucket `json:"visits_per_month"`
	DiagnosisDistribution  []Bucket `json:"diagnosis_distribution"`
	MedicationDistribution []Bucket `json:"medication_distribution"`
	NewPatientsPerMonth    []Bucket `json:"new_patients_per_month"`
	LabTestsByStatus       []Bucket `json:"lab_tests_by_status"`
	LabTestsByType         []Bucket `json:"lab_tests_by_type"`
}

type ReportService struct {
	patients patient.Repository
	records  mr.Repository
	labTests labtest.Repository
}

func NewReportService(patients patient.Repository, records mr.Repository, labTests labtest.Repository) *ReportService {
	return &ReportService{patients: patients, records: records, labTests: labTests}
}

func (s *ReportService) Summary(ctx context.Context) (*Report, error) {
	var (
		patients []*patient.Patient
		records  []*mr.MedicalRecord
		tests    []*labtest.LabTest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patients, err = s.patients.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.records.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		tests, err = s.labTests.List(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading report data: %w", err)
	}

	visits := newCounter()
	diagnoses := newCounter()
	meds := newCounter()
	for _, r := range records {
		visits.add(monthLabel(r.DateOfVisit))
		diagnoses.add(r.Diagnosis)
		for _, p := range r.Prescriptions {
			name, _, _ := strings.Cut(p, " - ")
			meds.add(strings.TrimSpace(name))
		}
	}

	newPatients := newCounter()
	for _, p := range patients {
		newPatients.add(monthLabel(p.CreatedAt))
	}

	byStatus := newCounter()
	byType := newCounter()
	for _, t := range tests {
		byStatus.add(string(t.Status))
		byType.add(t.TestType)
	}

	return &Report{
		VisitsPerMonth:         visits.byLabel(),
		DiagnosisDistribution:  diagnoses.byCount(),
		MedicationDistribution: meds.byCount(),
		NewPatientsPerMonth:    newPatients.byLabel(),
		LabTestsByStatus:       byStatus.byCount(),
		LabTestsByType:         byType.byCount(),
	}, nil
}

// "2006-01" sorts chronologically as a string.
func monthLabel(t time.Time) string {
	return t.UTC().Format("2006-01")
}

type counter map[string]int

func newCounter() counter { return counter{} }

func (c counter) add(label string) {
	if label != "" {
		c[label]++
	}
}

func (c counter) buckets() []Bucket {
	out := make([]Bucket, 0, len(c))
	for label, n := range c {
		out = append(out, Bucket{Label: label, Count: n})
	}
	return out
}

func (c counter) byLabel() []Bucket {
	out := c.buckets()
	slices.SortFunc(out, func(a, b Bucket) int { return cmp.Compare(a.Label, b.Label) })
	return out
}

// byCount orders the largest bucket first; ties break on label.
func (c counter) byCount() []Bucket {
	out := c.buckets()
	slices.SortFunc(out, func(a, b Bucket) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}
