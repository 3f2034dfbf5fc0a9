package medical_record

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Once created, records cannot be edited or deleted.
type MedicalRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	DateOfVisit time.Time `gorm:"column:date_of_visit;type:date;not null;index" json:"date_of_visit"`

	Symptoms      string   `gorm:"column:symptoms;type:text;not null" json:"symptoms"`
	Diagnosis     string   `gorm:"column:diagnosis;type:text;not null;index" json:"diagnosis"`
	Prescriptions []string `gorm:"column:prescriptions;serializer:json" json:"prescriptions"`
	TreatmentPlan string   `gorm:"column:treatment_plan;type:text;not null" json:"treatment_plan"`

	FollowUpInstructions string `gorm:"column:follow_up_instructions;type:text" json:"follow_up_instructions,omitempty"`

	// Snapshot of the doctor at the time of the visit
	AttendingDoctorID   uuid.UUID `gorm:"column:attending_doctor_id;type:uuid;not null;index" json:"attending_doctor_id"`
	AttendingDoctorName string    `gorm:"column:attending_doctor_name;type:varchar(200);not null" json:"attending_doctor_name"`
}

func (MedicalRecord) TableName() string {
	return "clinical.medical_records"
}

// Clone copies the record including its prescription list.
func (r MedicalRecord) Clone() MedicalRecord {
	r.Prescriptions = append([]string(nil), r.Prescriptions...)
	return r
}

type PrescriptionItem struct {
	Medication string `json:"medication" validate:"required"`
	Dosage     string `json:"dosage" validate:"required"`
}

// String renders the item the way it is stored on the record.
func (p PrescriptionItem) String() string {
	return fmt.Sprintf("%s - %s", strings.TrimSpace(p.Medication), strings.TrimSpace(p.Dosage))
}

type CreateRecordCommand struct {
	PatientID            uuid.UUID          `json:"patient_id" validate:"required"`
	AttendingDoctorID    uuid.UUID          `json:"attending_doctor_id" validate:"required"`
	Symptoms             string             `json:"symptoms" validate:"required,min=3"`
	Diagnosis            string             `json:"diagnosis" validate:"required,min=3"`
	Prescriptions        []PrescriptionItem `json:"prescriptions" validate:"required,min=1,dive"`
	TreatmentPlan        string             `json:"treatment_plan" validate:"required,min=3"`
	FollowUpInstructions string             `json:"follow_up_instructions"`

	// Optional lab work ordered during the visit
	RequestLabTest bool   `json:"request_lab_test"`
	LabTestType    string `json:"lab_test_type" validate:"required_if=RequestLabTest true"`
}

type ListRecordsQuery struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

func (q *ListRecordsQuery) Matches(r *MedicalRecord) bool {
	if q == nil {
		return true
	}
	if q.PatientID != nil && r.PatientID != *q.PatientID {
		return false
	}
	if q.DoctorID != nil && r.AttendingDoctorID != *q.DoctorID {
		return false
	}
	return true
}
