package medication

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, q *ListMedicationsQuery) ([]*Medication, error)

	// GetByID returns nil without an error when no medication has that id.
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)

	Create(ctx context.Context, m *Medication) error

	// Update returns ErrMedicationNotFound if id is unknown.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateMedicationCommand) (*Medication, error)
}
