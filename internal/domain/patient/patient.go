package patient

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type NextOfKin struct {
	Name         string `json:"name" validate:"required,min=3"`
	Relationship string `json:"relationship" validate:"required,min=2"`
	Contact      string `json:"contact" validate:"required,min=8"`
}

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	FullName     string    `gorm:"column:full_name;type:varchar(200);not null;index" json:"full_name"`
	DateOfBirth  time.Time `gorm:"column:date_of_birth;type:date;not null" json:"date_of_birth"`
	Gender       Gender    `gorm:"column:gender;type:varchar(20);not null" json:"gender"`
	ContactPhone string    `gorm:"column:contact_phone;type:varchar(30);not null" json:"contact_phone"`
	Email        string    `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Address      string    `gorm:"column:address;type:text;not null" json:"address"`

	NextOfKin NextOfKin `gorm:"column:next_of_kin;serializer:json" json:"next_of_kin"`

	MedicalHistory string `gorm:"column:medical_history;type:text" json:"medical_history,omitempty"` // PHI
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		years--
	}
	return years
}

// Apply copies every non-nil field of cmd onto p. Timestamps are left to the repository.
func (p *Patient) Apply(cmd *UpdatePatientCommand) {
	if cmd.FullName != nil {
		p.FullName = strings.TrimSpace(*cmd.FullName)
	}
	if cmd.DateOfBirth != nil {
		p.DateOfBirth = cmd.DateOfBirth.Time
	}
	if cmd.Gender != nil {
		p.Gender = *cmd.Gender
	}
	if cmd.ContactPhone != nil {
		p.ContactPhone = strings.TrimSpace(*cmd.ContactPhone)
	}
	if cmd.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*cmd.Email))
	}
	if cmd.Address != nil {
		p.Address = *cmd.Address
	}
	if cmd.NextOfKin != nil {
		p.NextOfKin = *cmd.NextOfKin
	}
	if cmd.MedicalHistory != nil {
		p.MedicalHistory = *cmd.MedicalHistory
	}
}

type CreatePatientCommand struct {
	FullName       string      `json:"full_name" validate:"required,min=3"`
	DateOfBirth    domain.Date `json:"date_of_birth" validate:"required"`
	Gender         Gender      `json:"gender" validate:"required,oneof=male female other"`
	ContactPhone   string      `json:"contact_phone" validate:"required,min=8"`
	Email          string      `json:"email" validate:"omitempty,email"`
	Address        string      `json:"address" validate:"required,min=5"`
	NextOfKin      NextOfKin   `json:"next_of_kin"`
	MedicalHistory string      `json:"medical_history"`
}

type UpdatePatientCommand struct {
	FullName       *string      `json:"full_name" validate:"omitempty,min=3"`
	DateOfBirth    *domain.Date `json:"date_of_birth"`
	Gender         *Gender      `json:"gender" validate:"omitempty,oneof=male female other"`
	ContactPhone   *string      `json:"contact_phone" validate:"omitempty,min=8"`
	Email          *string      `json:"email" validate:"omitempty,email"`
	Address        *string      `json:"address" validate:"omitempty,min=5"`
	NextOfKin      *NextOfKin   `json:"next_of_kin"`
	MedicalHistory *string      `json:"medical_history"`
}

// ListPatientsQuery filters the registry table.
type ListPatientsQuery struct {
	Search string // Case-insensitive match on name, phone or email
}

func (q *ListPatientsQuery) Matches(p *Patient) bool {
	if q == nil || strings.TrimSpace(q.Search) == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	return strings.Contains(strings.ToLower(p.FullName), needle) ||
		strings.Contains(p.ContactPhone, needle) ||
		strings.Contains(strings.ToLower(p.Email), needle)
}
