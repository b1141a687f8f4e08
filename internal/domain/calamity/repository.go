package calamity

import (
	"context"

	"bayanihan/internal/core/id"
)

// Repository defines persistence operations for calamities.
type Repository interface {
	Create(ctx context.Context, c *Calamity) error
	Update(ctx context.Context, c *Calamity) error

	// SaveItems replaces the template item set for a calamity.
	SaveItems(ctx context.Context, calamityID id.ID, items []TemplateItem) error

	GetByID(ctx context.Context, calamityID id.ID) (*Calamity, error)

	// GetByName does an exact, case-sensitive match.
	GetByName(ctx context.Context, name string) (*Calamity, error)

	GetItems(ctx context.Context, calamityID id.ID) ([]TemplateItem, error)
	GetAll(ctx context.Context) ([]*Calamity, error)

	// Delete removes the calamity; template items cascade.
	Delete(ctx context.Context, calamityID id.ID) error

	// ReferencedByDistribution reports whether any distribution is grouped
	// under this calamity.
	ReferencedByDistribution(ctx context.Context, calamityID id.ID) (bool, error)
}
