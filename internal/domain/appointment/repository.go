package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, q *ListAppointmentsQuery) ([]*Appointment, error)

	// GetByID returns nil without an error when no appointment has that id.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	Create(ctx context.Context, a *Appointment) error

	// Update returns ErrAppointmentNotFound if id is unknown.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateAppointmentCommand) (*Appointment, error)
}
