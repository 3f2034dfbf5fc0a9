package labtest

import (
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/google/uuid"
)

type Status string

const (
	StatusRequested  Status = "requested"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Test types offered by the laboratory.
var TestTypes = []string{
	"blood_test",
	"urine_analysis",
	"x_ray",
	"mri",
	"ct_scan",
	"ultrasound",
	"ecg",
}

func IsKnownType(testType string) bool {
	return slices.Contains(TestTypes, testType)
}

type LabTest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	PatientName string    `gorm:"column:patient_name;type:varchar(200);not null" json:"patient_name"`
	RequestedBy string    `gorm:"column:requested_by;type:varchar(200);not null" json:"requested_by"`
	TestType    string    `gorm:"column:test_type;type:varchar(50);not null;index" json:"test_type"`
	RequestDate time.Time `gorm:"column:request_date;type:date;not null;index" json:"request_date"`
	Status      Status    `gorm:"column:status;type:varchar(20);not null;default:'requested';index" json:"status"`

	Results    string     `gorm:"column:results;type:text" json:"results,omitempty"`
	ResultDate *time.Time `gorm:"column:result_date;type:date" json:"result_date,omitempty"`
	Comments   string     `gorm:"column:comments;type:text" json:"comments,omitempty"`
}

func (LabTest) TableName() string {
	return "clinical.lab_tests"
}

func (t *LabTest) IsPending() bool {
	return t.Status != StatusCompleted
}

func (t *LabTest) Apply(cmd *UpdateLabTestCommand) {
	if cmd.Status != nil {
		t.Status = *cmd.Status
	}
	if cmd.Results != nil {
		t.Results = *cmd.Results
	}
	if cmd.ResultDate != nil {
		if cmd.ResultDate.IsZero() {
			t.ResultDate = nil
		} else {
			d := cmd.ResultDate.Time
			t.ResultDate = &d
		}
	}
	if cmd.Comments != nil {
		t.Comments = *cmd.Comments
	}
}

type RequestLabTestCommand struct {
	PatientID   uuid.UUID `json:"patient_id" validate:"required"`
	RequestedBy string    `json:"requested_by"` // Defaults to the caller's name
	TestType    string    `json:"test_type" validate:"required,oneof=blood_test urine_analysis x_ray mri ct_scan ultrasound ecg"`
}

type UpdateLabTestCommand struct {
	Status     *Status      `json:"status" validate:"omitempty,oneof=requested in_progress completed"`
	Results    *string      `json:"results"`
	ResultDate *domain.Date `json:"result_date"`
	Comments   *string      `json:"comments"`
}

type RecordResultsCommand struct {
	Results  string `json:"results" validate:"required"`
	Comments string `json:"comments"`
}

type ListLabTestsQuery struct {
	PatientID *uuid.UUID
	Status    *Status
}

func (q *ListLabTestsQuery) Matches(t *LabTest) bool {
	if q == nil {
		return true
	}
	if q.PatientID != nil && t.PatientID != *q.PatientID {
		return false
	}
	if q.Status != nil && t.Status != *q.Status {
		return false
	}
	return true
}

func (t LabTest) Clone() LabTest {
	if t.ResultDate != nil {
		d := *t.ResultDate
		t.ResultDate = &d
	}
	return t
}
