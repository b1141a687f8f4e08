// Package distribution provides the distribution engine: recording the act
// of giving relief goods to a beneficiary, and voiding it.
package distribution

import (
	"context"
	"time"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
)

// Distribution is one recorded act of giving a set of inventory items to one
// beneficiary. It is created atomically with its lines, the inventory
// decrements and the ledger entries; voiding removes it while restoring
// inventory. Void is terminal.
type Distribution struct {
	ID id.ID `db:"id" json:"id"`

	BeneficiaryID id.ID  `db:"beneficiary_id" json:"beneficiaryId"`
	CalamityID    *id.ID `db:"calamity_id" json:"calamityId,omitempty"`

	Date time.Time `db:"distribution_date" json:"date"`

	// DistributedBy is the acting user; nil for system-initiated runs.
	DistributedBy *id.ID `db:"distributed_by" json:"distributedBy,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`

	Lines []Line `db:"-" json:"lines"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Line is one (item, quantity) pair within a distribution. Lines are owned
// exclusively by their distribution and deleted with it.
type Line struct {
	ID       id.ID `db:"id" json:"id"`
	ItemID   id.ID `db:"inventory_id" json:"itemId"`
	Quantity int64 `db:"quantity" json:"quantity"`
}

// New creates a distribution for a beneficiary with generated id and date.
func New(beneficiaryID id.ID) *Distribution {
	now := time.Now().UTC()
	return &Distribution{
		ID:            id.New(),
		BeneficiaryID: beneficiaryID,
		Date:          now,
		CreatedAt:     now,
		Lines:         make([]Line, 0),
	}
}

// AddLine appends an (item, quantity) pair.
func (d *Distribution) AddLine(itemID id.ID, quantity int64) {
	d.Lines = append(d.Lines, Line{
		ID:       id.New(),
		ItemID:   itemID,
		Quantity: quantity,
	})
}

// Validate checks shape invariants. Stock-level validation happens in the
// engine under row locks.
func (d *Distribution) Validate(ctx context.Context) error {
	if id.IsNil(d.BeneficiaryID) {
		return apperror.NewValidation("beneficiary is required").
			WithDetail("field", "beneficiaryId")
	}

	if len(d.Lines) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "lines")
	}

	for i, line := range d.Lines {
		if id.IsNil(line.ItemID) {
			return apperror.NewValidation("item is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// TotalQuantity sums all line quantities.
func (d *Distribution) TotalQuantity() int64 {
	var total int64
	for _, line := range d.Lines {
		total += line.Quantity
	}
	return total
}
