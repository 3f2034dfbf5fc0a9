package appointment

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// Appointment keeps PatientName and DoctorName as they were when it was booked.
// Renaming a patient or doctor later does not touch existing appointments.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PatientID   uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	PatientName string    `gorm:"column:patient_name;type:varchar(200);not null" json:"patient_name"`
	DoctorID    uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index" json:"doctor_id"`
	DoctorName  string    `gorm:"column:doctor_name;type:varchar(200);not null" json:"doctor_name"`

	Date   time.Time         `gorm:"column:date;type:date;not null;index" json:"date"`
	Time   string            `gorm:"column:time;type:varchar(5);not null" json:"time"` // HH:MM
	Reason string            `gorm:"column:reason;type:text;not null" json:"reason"`
	Status AppointmentStatus `gorm:"column:status;type:varchar(30);not null;default:'scheduled';index" json:"status"`
	Notes  string            `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

// StartsAt combines Date and Time. Falls back to midnight when Time is malformed.
func (a *Appointment) StartsAt() time.Time {
	clock, err := time.Parse("15:04", a.Time)
	if err != nil {
		return a.Date
	}
	return a.Date.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}

func (a *Appointment) Apply(cmd *UpdateAppointmentCommand) {
	if cmd.Date != nil {
		a.Date = cmd.Date.Time
	}
	if cmd.Time != nil {
		a.Time = *cmd.Time
	}
	if cmd.Reason != nil {
		a.Reason = *cmd.Reason
	}
	if cmd.Status != nil {
		a.Status = *cmd.Status
	}
	if cmd.Notes != nil {
		a.Notes = *cmd.Notes
	}
}

type CreateAppointmentCommand struct {
	PatientID uuid.UUID   `json:"patient_id" validate:"required"`
	DoctorID  uuid.UUID   `json:"doctor_id" validate:"required"`
	Date      domain.Date `json:"date" validate:"required"`
	Time      string      `json:"time" validate:"required,datetime=15:04"`
	Reason    string      `json:"reason" validate:"required,min=3"`
	Notes     string      `json:"notes"`
}

type UpdateAppointmentCommand struct {
	Date   *domain.Date       `json:"date"`
	Time   *string            `json:"time" validate:"omitempty,datetime=15:04"`
	Reason *string            `json:"reason" validate:"omitempty,min=3"`
	Status *AppointmentStatus `json:"status" validate:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	Notes  *string            `json:"notes"`
}

type ListAppointmentsQuery struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *AppointmentStatus
	Date      *time.Time
}

func (q *ListAppointmentsQuery) Matches(a *Appointment) bool {
	if q == nil {
		return true
	}
	if q.PatientID != nil && a.PatientID != *q.PatientID {
		return false
	}
	if q.DoctorID != nil && a.DoctorID != *q.DoctorID {
		return false
	}
	if q.Status != nil && a.Status != *q.Status {
		return false
	}
	if q.Date != nil && !a.Date.Equal(*q.Date) {
		return false
	}
	return true
}
