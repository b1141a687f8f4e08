package distribution

import (
	"context"
	"time"

	"bayanihan/internal/core/id"
)

// Repository defines persistence operations for distributions.
type Repository interface {
	// Create inserts the distribution header.
	Create(ctx context.Context, d *Distribution) error

	// SaveLines inserts the line set for a distribution.
	SaveLines(ctx context.Context, distributionID id.ID, lines []Line) error

	// GetByID retrieves the header without lines.
	GetByID(ctx context.Context, distributionID id.ID) (*Distribution, error)

	// GetLines retrieves lines in insertion order.
	GetLines(ctx context.Context, distributionID id.ID) ([]Line, error)

	// Delete removes the header; lines go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, distributionID id.ID) error

	List(ctx context.Context, filter ListFilter) ([]*Distribution, error)
}

// ListFilter narrows distribution queries.
type ListFilter struct {
	BeneficiaryID *id.ID
	CalamityID    *id.ID
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}
