package beneficiary

import (
	"context"

	"bayanihan/internal/core/id"
)

// Repository defines persistence operations for beneficiaries.
type Repository interface {
	Create(ctx context.Context, b *Beneficiary) error
	Update(ctx context.Context, b *Beneficiary) error
	GetByID(ctx context.Context, beneficiaryID id.ID) (*Beneficiary, error)

	// FindByIdentity matches the exact (name, barangay, purok) triple.
	FindByIdentity(ctx context.Context, fullName, barangay, purok string) (*Beneficiary, error)

	GetAll(ctx context.Context) ([]*Beneficiary, error)
	Delete(ctx context.Context, beneficiaryID id.ID) error
}
