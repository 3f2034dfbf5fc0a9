package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// List returns patients in registration order, filtered by q when it is non-nil.
	List(ctx context.Context, q *ListPatientsQuery) ([]*Patient, error)

	// GetByID returns nil without an error when no patient has that id.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// Create assigns the id and both timestamps, then appends the patient.
	Create(ctx context.Context, p *Patient) error

	// Update applies the non-nil fields of cmd. Returns ErrPatientNotFound if id is unknown.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePatientCommand) (*Patient, error)
}
