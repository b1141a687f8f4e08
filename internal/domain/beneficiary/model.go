// Package beneficiary provides the relief recipient catalog.
package beneficiary

import (
	"context"
	"strings"
	"time"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
)

// Beneficiary is one relief recipient record.
type Beneficiary struct {
	ID id.ID `db:"id" json:"id"`

	FullName string `db:"full_name" json:"fullName"`

	// Barangay/Purok locate the household. Together with the name they
	// form the duplicate-detection identity (exact match, case-sensitive).
	Barangay string `db:"barangay" json:"barangay"`
	Purok    string `db:"purok" json:"purok"`

	FamilySize int    `db:"family_size" json:"familySize"`
	Contact    string `db:"contact" json:"contact,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a beneficiary with generated id and timestamps.
func New(fullName, barangay, purok string, familySize int) *Beneficiary {
	now := time.Now().UTC()
	return &Beneficiary{
		ID:         id.New(),
		FullName:   fullName,
		Barangay:   barangay,
		Purok:      purok,
		FamilySize: familySize,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch updates the UpdatedAt timestamp.
func (b *Beneficiary) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// Validate checks beneficiary invariants.
func (b *Beneficiary) Validate(ctx context.Context) error {
	if strings.TrimSpace(b.FullName) == "" {
		return apperror.NewValidation("beneficiary name is required").
			WithDetail("field", "fullName")
	}

	if strings.TrimSpace(b.Barangay) == "" {
		return apperror.NewValidation("barangay is required").
			WithDetail("field", "barangay")
	}

	if b.FamilySize < 1 {
		return apperror.NewValidation("family size must be at least 1").
			WithDetail("field", "familySize")
	}

	return nil
}
