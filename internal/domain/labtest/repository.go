package labtest

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, q *ListLabTestsQuery) ([]*LabTest, error)

	// GetByID returns nil without an error when no test has that id.
	GetByID(ctx context.Context, id uuid.UUID) (*LabTest, error)

	Create(ctx context.Context, t *LabTest) error

	// Update patches any subset of fields; status transitions are not checked here.
	// Returns ErrLabTestNotFound if id is unknown.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateLabTestCommand) (*LabTest, error)
}
