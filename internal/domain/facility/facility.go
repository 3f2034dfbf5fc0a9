// Package facility groups the read-only registers shown in the side menu:
// referrals, community health programs and equipment.
package facility

import (
	"time"

	"github.com/google/uuid"
)

type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralCompleted ReferralStatus = "completed"
)

type Referral struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID      `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	PatientName string         `gorm:"column:patient_name;type:varchar(200);not null" json:"patient_name"`
	ReferredTo  string         `gorm:"column:referred_to;type:varchar(200);not null" json:"referred_to"`
	ReferredBy  string         `gorm:"column:referred_by;type:varchar(200);not null" json:"referred_by"`
	Reason      string         `gorm:"column:reason;type:text;not null" json:"reason"`
	Date        time.Time      `gorm:"column:date;type:date;not null" json:"date"`
	Status      ReferralStatus `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	Notes       string         `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (Referral) TableName() string {
	return "clinical.referrals"
}

type ProgramStatus string

const (
	ProgramUpcoming  ProgramStatus = "upcoming"
	ProgramOngoing   ProgramStatus = "ongoing"
	ProgramCompleted ProgramStatus = "completed"
)

type HealthProgram struct {
	ID                uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string        `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Description       string        `gorm:"column:description;type:text" json:"description"`
	StartDate         time.Time     `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate           time.Time     `gorm:"column:end_date;type:date;not null" json:"end_date"`
	Location          string        `gorm:"column:location;type:varchar(200)" json:"location"`
	Coordinator       string        `gorm:"column:coordinator;type:varchar(200)" json:"coordinator"`
	ParticipantsCount int           `gorm:"column:participants_count" json:"participants_count"`
	Status            ProgramStatus `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
}

func (HealthProgram) TableName() string {
	return "outreach.health_programs"
}

type EquipmentStatus string

const (
	EquipmentOperational         EquipmentStatus = "operational"
	EquipmentMaintenanceRequired EquipmentStatus = "maintenance_required"
	EquipmentOutOfService        EquipmentStatus = "out_of_service"
)

type Equipment struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string          `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Model               string          `gorm:"column:model;type:varchar(100)" json:"model"`
	SerialNumber        string          `gorm:"column:serial_number;type:varchar(100);uniqueIndex" json:"serial_number"`
	PurchaseDate        time.Time       `gorm:"column:purchase_date;type:date" json:"purchase_date"`
	LastMaintenanceDate time.Time       `gorm:"column:last_maintenance_date;type:date" json:"last_maintenance_date"`
	NextMaintenanceDate time.Time       `gorm:"column:next_maintenance_date;type:date;index" json:"next_maintenance_date"`
	Status              EquipmentStatus `gorm:"column:status;type:varchar(30);not null;index" json:"status"`
}

func (Equipment) TableName() string {
	return "facility.equipment"
}

// MaintenanceDue reports whether servicing is overdue or already flagged.
func (e *Equipment) MaintenanceDue(now time.Time) bool {
	return e.Status == EquipmentMaintenanceRequired || !now.Before(e.NextMaintenanceDate)
}
