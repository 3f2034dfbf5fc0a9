package medical_record

import (
	"context"

	"github.com/google/uuid"
)

// Records are append-only: there is no Update or Delete.
type Repository interface {
	List(ctx context.Context, q *ListRecordsQuery) ([]*MedicalRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	Create(ctx context.Context, r *MedicalRecord) error
}
