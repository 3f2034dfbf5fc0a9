package service

import (
	"testing"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	mr "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordCommand(f *fixture) *mr.CreateRecordCommand {
	return &mr.CreateRecordCommand{
		PatientID:         f.ds.Patients[2].ID,
		AttendingDoctorID: f.ds.Doctors()[1].ID,
		Symptoms:          "Chest tightness",
		Diagnosis:         "Angina",
		Prescriptions: []mr.PrescriptionItem{
			{Medication: "Aspirin", Dosage: "75mg daily"},
			{Medication: "Atorvastatin ", Dosage: " 20mg nightly"},
		},
		TreatmentPlan: "Lifestyle changes and review in two weeks",
	}
}

func TestMedicalRecordService_Create(t *testing.T) {
	f := newFixture(t)
	cmd := recordCommand(f)

	out, err := f.records.CreateRecord(bg, cmd, f.caller(domain.RoleDoctor))
	require.NoError(t, err)
	require.NotNil(t, out.Record)
	assert.Nil(t, out.LabTest)

	r := out.Record
	assert.Equal(t, domain.DateOf(testNow), r.DateOfVisit)
	assert.Equal(t, []string{"Aspirin - 75mg daily", "Atorvastatin - 20mg nightly"}, r.Prescriptions)
	assert.Equal(t, "Dr. Kwame Owusu", r.AttendingDoctorName)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.MedicalRecordsCreated))

	got, err := f.records.GetRecord(bg, r.ID, f.caller(domain.RoleNurse))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, r.Diagnosis, got.Diagnosis)
}

func TestMedicalRecordService_CreateWithLabTest(t *testing.T) {
	f := newFixture(t)
	cmd := recordCommand(f)
	cmd.RequestLabTest = true
	cmd.LabTestType = "ecg"

	out, err := f.records.CreateRecord(bg, cmd, f.caller(domain.RoleDoctor))
	require.NoError(t, err)
	require.NotNil(t, out.LabTest)

	lt := out.LabTest
	assert.Equal(t, labtest.StatusRequested, lt.Status)
	assert.Equal(t, "ecg", lt.TestType)
	assert.Equal(t, cmd.PatientID, lt.PatientID)
	assert.Equal(t, "Dr. Kwame Owusu", lt.RequestedBy)
	assert.Equal(t, domain.DateOf(testNow), lt.RequestDate)

	stored, err := f.labTests.GetLabTest(bg, lt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.LabTestsRequested))
}

func TestMedicalRecordService_CreateRejected(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		mutate  func(*mr.CreateRecordCommand)
		wantErr error
		fields  []string
	}{
		{name: "receptionist", role: domain.RoleReceptionist, wantErr: ErrForbidden},
		{name: "lab technician", role: domain.RoleLabTechnician, wantErr: ErrForbidden},
		{
			name: "no prescriptions", role: domain.RoleDoctor,
			mutate: func(c *mr.CreateRecordCommand) { c.Prescriptions = nil },
			fields: []string{"prescriptions is required"},
		},
		{
			name: "blank dosage", role: domain.RoleNurse,
			mutate: func(c *mr.CreateRecordCommand) { c.Prescriptions[0].Dosage = "" },
			fields: []string{"prescriptions[0].dosage is required"},
		},
		{
			name: "lab test without type", role: domain.RoleDoctor,
			mutate: func(c *mr.CreateRecordCommand) { c.RequestLabTest = true },
			fields: []string{"lab_test_type is required"},
		},
		{
			name: "unknown lab test type", role: domain.RoleDoctor,
			mutate: func(c *mr.CreateRecordCommand) { c.RequestLabTest = true; c.LabTestType = "dna" },
			fields: []string{"lab_test_type must be one of: blood_test, urine_analysis, x_ray, mri, ct_scan, ultrasound, ecg"},
		},
		{
			name: "unknown patient", role: domain.RoleAdmin,
			mutate:  func(c *mr.CreateRecordCommand) { c.PatientID = uuid.New() },
			wantErr: patient.ErrPatientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cmd := recordCommand(f)
			if tt.mutate != nil {
				tt.mutate(cmd)
			}

			_, err := f.records.CreateRecord(bg, cmd, f.caller(tt.role))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				requireValidation(t, err, tt.fields...)
			}

			all, err := f.records.ListRecords(bg, nil)
			require.NoError(t, err)
			assert.Len(t, all, len(f.ds.MedicalRecords))
		})
	}
}

func TestLabTestService_Request(t *testing.T) {
	f := newFixture(t)
	p := f.ds.Patients[0]

	lt, err := f.labTests.RequestLabTest(bg, &labtest.RequestLabTestCommand{PatientID: p.ID, TestType: "x_ray"}, f.caller(domain.RoleNurse))
	require.NoError(t, err)
	assert.Equal(t, "Test nurse", lt.RequestedBy)
	assert.Equal(t, p.FullName, lt.PatientName)

	lt, err = f.labTests.RequestLabTest(bg, &labtest.RequestLabTestCommand{PatientID: p.ID, TestType: "mri", RequestedBy: "Dr. Visiting"}, f.caller(domain.RoleNurse))
	require.NoError(t, err)
	assert.Equal(t, "Dr. Visiting", lt.RequestedBy)

	_, err = f.labTests.RequestLabTest(bg, &labtest.RequestLabTestCommand{PatientID: p.ID, TestType: "pet_scan"}, f.caller(domain.RoleNurse))
	requireValidation(t, err, "test_type must be one of: blood_test, urine_analysis, x_ray, mri, ct_scan, ultrasound, ecg")
}

func TestLabTestService_RecordResults(t *testing.T) {
	f := newFixture(t)
	target := f.ds.LabTests[0]
	cmd := &labtest.RecordResultsCommand{Results: " Normal sinus rhythm ", Comments: "No follow-up"}

	_, err := f.labTests.RecordResults(bg, target.ID, cmd, f.caller(domain.RoleReceptionist))
	assert.ErrorIs(t, err, ErrForbidden)

	lt, err := f.labTests.RecordResults(bg, target.ID, cmd, f.caller(domain.RoleLabTechnician))
	require.NoError(t, err)
	assert.Equal(t, labtest.StatusCompleted, lt.Status)
	assert.Equal(t, "Normal sinus rhythm", lt.Results)
	assert.Equal(t, "No follow-up", lt.Comments)
	require.NotNil(t, lt.ResultDate)
	assert.Equal(t, domain.DateOf(testNow), *lt.ResultDate)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.LabResultsRecorded))

	_, err = f.labTests.RecordResults(bg, target.ID, &labtest.RecordResultsCommand{}, f.caller(domain.RoleDoctor))
	requireValidation(t, err, "results is required")

	_, err = f.labTests.RecordResults(bg, uuid.New(), cmd, f.caller(domain.RoleDoctor))
	assert.ErrorIs(t, err, labtest.ErrLabTestNotFound)

	entries := f.flushAudit(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionUpdate, entries[0].Action)
	assert.Equal(t, domain.RoleLabTechnician, entries[0].UserRole)
}

func TestLabTestService_RecordResultsBlank(t *testing.T) {
	f := newFixture(t)
	target := f.ds.LabTests[0]
	before := *target

	_, err := f.labTests.RecordResults(bg, target.ID, &labtest.RecordResultsCommand{Results: "   ", Comments: "x"}, f.caller(domain.RoleLabTechnician))
	requireValidation(t, err, "results is required")

	lt, err := f.labTests.GetLabTest(bg, target.ID)
	require.NoError(t, err)
	require.NotNil(t, lt)
	assert.Equal(t, before.Status, lt.Status)
	assert.Equal(t, before.Results, lt.Results)
	assert.Zero(t, testutil.ToFloat64(f.m.LabResultsRecorded))
}

func TestLabTestService_UpdateClearsResultDate(t *testing.T) {
	f := newFixture(t)
	target := f.ds.LabTests[0]

	lt, err := f.labTests.RecordResults(bg, target.ID, &labtest.RecordResultsCommand{Results: "Normal"}, f.caller(domain.RoleDoctor))
	require.NoError(t, err)
	require.NotNil(t, lt.ResultDate)

	requested := labtest.StatusRequested
	lt, err = f.labTests.UpdateLabTest(bg, target.ID, &labtest.UpdateLabTestCommand{Status: &requested, ResultDate: &domain.Date{}}, f.caller(domain.RoleDoctor))
	require.NoError(t, err)
	assert.Equal(t, labtest.StatusRequested, lt.Status)
	assert.Nil(t, lt.ResultDate)
}

func TestMedicationService_Add(t *testing.T) {
	f := newFixture(t)

	m, err := f.medications.AddMedication(bg, &medication.CreateMedicationCommand{
		Name:         " Azithromycin ",
		Dosage:       "250mg tablets",
		CurrentStock: 20,
		MinimumStock: 40,
		ExpiryDate:   domain.NewDate(domain.MustDate("2026-01-31")),
	}, f.caller(domain.RoleAdmin))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, "Azithromycin", m.Name)
	assert.True(t, m.IsLowStock())

	all, err := f.medications.ListMedications(bg, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(f.ds.Medications)+1)
	assert.Equal(t, m.ID, all[len(all)-1].ID)

	low, err := f.medications.LowStock(bg)
	require.NoError(t, err)
	assert.Len(t, low, 6)

	_, err = f.medications.AddMedication(bg, &medication.CreateMedicationCommand{MinimumStock: -1}, f.caller(domain.RoleAdmin))
	requireValidation(t, err, "name is required", "dosage is required", "minimum_stock must be 0 or more", "expiry_date is required")

	entries := f.flushAudit(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionCreate, entries[0].Action)
	assert.Equal(t, "medication", entries[0].ResourceType)
}

func TestMedicationService_StockAlerts(t *testing.T) {
	f := newFixture(t)

	low, err := f.medications.LowStock(bg)
	require.NoError(t, err)
	require.Len(t, low, 5)
	for _, m := range low {
		assert.LessOrEqual(t, m.CurrentStock, m.MinimumStock, m.Name)
	}

	_, err = f.medications.ListMedications(bg, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(5), testutil.ToFloat64(f.m.LowStockMedications))

	paracetamol := f.ds.Medications[0]
	stock := 100 // equal to the minimum counts as low
	m, err := f.medications.UpdateMedication(bg, paracetamol.ID, &medication.UpdateMedicationCommand{CurrentStock: &stock}, f.caller(domain.RoleAdmin))
	require.NoError(t, err)
	assert.True(t, m.IsLowStock())

	low, err = f.medications.LowStock(bg)
	require.NoError(t, err)
	assert.Len(t, low, 6)

	negative := -1
	_, err = f.medications.UpdateMedication(bg, paracetamol.ID, &medication.UpdateMedicationCommand{CurrentStock: &negative}, f.caller(domain.RoleAdmin))
	requireValidation(t, err, "current_stock must be 0 or more")
}
