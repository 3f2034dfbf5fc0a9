package staff

import (
	"context"

	"github.com/google/uuid"
)

// Repository is read-only: staff are maintained outside this service.
type Repository interface {
	List(ctx context.Context, q *ListStaffQuery) ([]*StaffMember, error)

	// GetByID returns nil without an error when no staff member has that id.
	GetByID(ctx context.Context, id uuid.UUID) (*StaffMember, error)
}
