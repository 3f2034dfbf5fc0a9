package facility

import "context"

type Repository interface {
	ListReferrals(ctx context.Context) ([]*Referral, error)
	ListHealthPrograms(ctx context.Context) ([]*HealthProgram, error)
	ListEquipment(ctx context.Context) ([]*Equipment, error)
}
