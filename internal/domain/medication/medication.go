package medication

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/google/uuid"
)

// Medication is a pharmacy inventory line. Dispensing does not decrement stock.
type Medication struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(150);not null;index" json:"name"`
	Dosage       string    `gorm:"column:dosage;type:varchar(100);not null" json:"dosage"` // e.g. "500mg tablets"
	CurrentStock int       `gorm:"column:current_stock;not null" json:"current_stock"`
	MinimumStock int       `gorm:"column:minimum_stock;not null" json:"minimum_stock"`
	ExpiryDate   time.Time `gorm:"column:expiry_date;type:date;not null;index" json:"expiry_date"`
}

func (Medication) TableName() string {
	return "pharmacy.medications"
}

// IsLowStock reports whether stock has reached the reorder threshold.
func (m *Medication) IsLowStock() bool {
	return m.CurrentStock <= m.MinimumStock
}

func (m *Medication) Apply(cmd *UpdateMedicationCommand) {
	if cmd.Name != nil {
		m.Name = *cmd.Name
	}
	if cmd.Dosage != nil {
		m.Dosage = *cmd.Dosage
	}
	if cmd.CurrentStock != nil {
		m.CurrentStock = *cmd.CurrentStock
	}
	if cmd.MinimumStock != nil {
		m.MinimumStock = *cmd.MinimumStock
	}
	if cmd.ExpiryDate != nil {
		m.ExpiryDate = cmd.ExpiryDate.Time
	}
}

type CreateMedicationCommand struct {
	Name         string      `json:"name" validate:"required,min=2"`
	Dosage       string      `json:"dosage" validate:"required"`
	CurrentStock int         `json:"current_stock" validate:"gte=0"`
	MinimumStock int         `json:"minimum_stock" validate:"gte=0"`
	ExpiryDate   domain.Date `json:"expiry_date" validate:"required"`
}

type UpdateMedicationCommand struct {
	Name         *string      `json:"name" validate:"omitempty,min=2"`
	Dosage       *string      `json:"dosage" validate:"omitempty,min=1"`
	CurrentStock *int         `json:"current_stock" validate:"omitempty,gte=0"`
	MinimumStock *int         `json:"minimum_stock" validate:"omitempty,gte=0"`
	ExpiryDate   *domain.Date `json:"expiry_date"`
}

type ListMedicationsQuery struct {
	LowStockOnly bool
}

func (q *ListMedicationsQuery) Matches(m *Medication) bool {
	if q == nil || !q.LowStockOnly {
		return true
	}
	return m.IsLowStock()
}
