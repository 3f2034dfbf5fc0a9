package seed

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/google/uuid"
)

var (
	symptoms = []string{
		"Fever, cough, and fatigue",
		"Headache and dizziness",
		"Shortness of breath",
		"Chest pain",
		"Abdominal pain",
		"Joint pain and stiffness",
		"Skin rash",
		"Nausea and vomiting",
	}

	diagnoses = []string{
		"Common cold",
		"Hypertension",
		"Type 2 diabetes",
		"Bronchitis",
		"Migraine",
		"Gastroenteritis",
		"Arthritis",
		"Urinary tract infection",
	}

	treatments = []string{
		"Rest and hydration",
		"Regular exercise and diet changes",
		"Blood pressure monitoring",
		"Regular blood glucose monitoring",
		"Physical therapy",
		"Avoid certain foods",
		"Apply topical cream",
		"Follow-up in 2 weeks",
	}

	prescriptionSets = [][]string{
		{"Paracetamol - 500mg twice daily"},
		{"Ibuprofen - 400mg three times daily"},
		{"Amoxicillin - 250mg three times daily for 7 days"},
		{"Metformin - 500mg once daily"},
		{"Amlodipine - 5mg once daily"},
		{"Cetirizine - 10mg once daily"},
		{"Omeprazole - 20mg once daily before breakfast", "Paracetamol - 500mg as needed"},
	}

	labStatuses = []labtest.Status{
		labtest.StatusRequested,
		labtest.StatusInProgress,
		labtest.StatusCompleted,
	}

	resultTemplates = []string{
		"All values within normal range.",
		"Slightly elevated white blood cell count, suggesting possible infection.",
		"Abnormal readings detected, recommend follow-up examination.",
		"Results indicate need for additional specialized testing.",
		"Test completed successfully, no abnormalities detected.",
	}
)

const (
	followUpText       = "Follow up in 2 weeks"
	recordLookbackDays = 365
	labLookbackDays    = 30
	labTestChance      = 0.7
)

// Generator synthesizes medical records and lab tests from the fixed patient
// and doctor lists. It is not safe for concurrent use.
type Generator struct {
	rnd   *rand.Rand
	today time.Time
}

// NewGenerator seeds the PRNG with randomSeed; zero picks a seed from the clock.
func NewGenerator(randomSeed uint64, now time.Time) *Generator {
	if randomSeed == 0 {
		randomSeed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		rnd:   rand.New(rand.NewPCG(randomSeed, randomSeed>>1|1)),
		today: domain.DateOf(now),
	}
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// childID names the n-th generated row of a kind under its patient.
func childID(parent uuid.UUID, kind string, n int) uuid.UUID {
	return uuid.NewSHA1(parent, []byte(kind+"/"+strconv.Itoa(n)))
}

// MedicalRecords emits one to three visits per patient within the past year.
func (g *Generator) MedicalRecords(patients []*patient.Patient, doctors []*staff.StaffMember) []*medical_record.MedicalRecord {
	if len(doctors) == 0 {
		return nil
	}

	var records []*medical_record.MedicalRecord
	for _, p := range patients {
		count := g.rnd.IntN(3) + 1
		for i := range count {
			doctor := pick(g.rnd, doctors)
			visit := g.today.AddDate(0, 0, -g.rnd.IntN(recordLookbackDays))

			var followUp string
			if g.rnd.Float64() > 0.5 {
				followUp = followUpText
			}

			records = append(records, &medical_record.MedicalRecord{
				ID:                   childID(p.ID, "record", i),
				PatientID:            p.ID,
				DateOfVisit:          visit,
				Symptoms:             pick(g.rnd, symptoms),
				Diagnosis:            pick(g.rnd, diagnoses),
				Prescriptions:        append([]string(nil), pick(g.rnd, prescriptionSets)...),
				TreatmentPlan:        pick(g.rnd, treatments),
				FollowUpInstructions: followUp,
				AttendingDoctorID:    doctor.ID,
				AttendingDoctorName:  doctor.Name,
			})
		}
	}
	return records
}

// LabTests gives roughly 70% of patients one or two tests from the past 30
// days. Only completed tests carry results and a result date.
func (g *Generator) LabTests(patients []*patient.Patient, doctors []*staff.StaffMember) []*labtest.LabTest {
	if len(doctors) == 0 {
		return nil
	}

	var tests []*labtest.LabTest
	for _, p := range patients {
		if g.rnd.Float64() >= labTestChance {
			continue
		}
		count := g.rnd.IntN(2) + 1
		for i := range count {
			doctor := pick(g.rnd, doctors)
			t := &labtest.LabTest{
				ID:          childID(p.ID, "lab", i),
				PatientID:   p.ID,
				PatientName: p.FullName,
				RequestedBy: doctor.Name,
				TestType:    pick(g.rnd, labtest.TestTypes),
				RequestDate: g.today.AddDate(0, 0, -g.rnd.IntN(labLookbackDays)),
				Status:      pick(g.rnd, labStatuses),
			}
			if t.Status == labtest.StatusCompleted {
				resultDate := t.RequestDate.AddDate(0, 0, g.rnd.IntN(7)+1)
				t.ResultDate = &resultDate
				t.Results = pick(g.rnd, resultTemplates)
			}
			tests = append(tests, t)
		}
	}
	return tests
}
