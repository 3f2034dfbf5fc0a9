package staff

import (
	"errors"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/google/uuid"
)

var ErrStaffMemberNotFound = errors.New("staff member not found")

// Schedule holds the working hours per weekday, e.g. "8:00 AM - 4:00 PM" or "Off".
type Schedule struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday,omitempty"`
	Sunday    string `json:"sunday,omitempty"`
}

type StaffMember struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string      `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Role           domain.Role `gorm:"column:role;type:varchar(30);not null;index" json:"role"`
	Specialization string      `gorm:"column:specialization;type:varchar(100)" json:"specialization,omitempty"`
	ContactPhone   string      `gorm:"column:contact_phone;type:varchar(30)" json:"contact_phone"`
	Email          string      `gorm:"column:email;type:varchar(255)" json:"email"`
	Schedule       Schedule    `gorm:"column:schedule;serializer:json" json:"schedule"`
}

func (StaffMember) TableName() string {
	return "clinical.staff"
}

func (s *StaffMember) IsDoctor() bool {
	return s.Role == domain.RoleDoctor
}

type ListStaffQuery struct {
	Role *domain.Role
}

func (q *ListStaffQuery) Matches(s *StaffMember) bool {
	return q == nil || q.Role == nil || s.Role == *q.Role
}
