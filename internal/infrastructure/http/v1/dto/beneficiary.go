package dto

import (
	"time"

	"bayanihan/internal/domain/beneficiary"
)

// CreateBeneficiaryRequest registers a relief recipient.
type CreateBeneficiaryRequest struct {
	FullName   string `json:"fullName" binding:"required"`
	Barangay   string `json:"barangay" binding:"required"`
	Purok      string `json:"purok"`
	FamilySize int    `json:"familySize" binding:"required,min=1"`
	Contact    string `json:"contact"`
}

// ToEntity converts the request to a domain beneficiary.
func (r CreateBeneficiaryRequest) ToEntity() *beneficiary.Beneficiary {
	b := beneficiary.New(r.FullName, r.Barangay, r.Purok, r.FamilySize)
	b.Contact = r.Contact
	return b
}

// UpdateBeneficiaryRequest modifies beneficiary fields.
type UpdateBeneficiaryRequest struct {
	FullName   *string `json:"fullName"`
	Barangay   *string `json:"barangay"`
	Purok      *string `json:"purok"`
	FamilySize *int    `json:"familySize"`
	Contact    *string `json:"contact"`
}

// ApplyTo applies non-nil fields to the beneficiary.
func (r UpdateBeneficiaryRequest) ApplyTo(b *beneficiary.Beneficiary) {
	if r.FullName != nil {
		b.FullName = *r.FullName
	}
	if r.Barangay != nil {
		b.Barangay = *r.Barangay
	}
	if r.Purok != nil {
		b.Purok = *r.Purok
	}
	if r.FamilySize != nil {
		b.FamilySize = *r.FamilySize
	}
	if r.Contact != nil {
		b.Contact = *r.Contact
	}
}

// BeneficiaryResponse is the API shape of a beneficiary.
type BeneficiaryResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Barangay   string    `json:"barangay"`
	Purok      string    `json:"purok,omitempty"`
	FamilySize int       `json:"familySize"`
	Contact    string    `json:"contact,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FromBeneficiary creates BeneficiaryResponse from a domain beneficiary.
func FromBeneficiary(b *beneficiary.Beneficiary) *BeneficiaryResponse {
	return &BeneficiaryResponse{
		ID:         b.ID.String(),
		FullName:   b.FullName,
		Barangay:   b.Barangay,
		Purok:      b.Purok,
		FamilySize: b.FamilySize,
		Contact:    b.Contact,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromBeneficiaries maps a slice of domain beneficiaries.
func FromBeneficiaries(beneficiaries []*beneficiary.Beneficiary) []*BeneficiaryResponse {
	out := make([]*BeneficiaryResponse, len(beneficiaries))
	for i, b := range beneficiaries {
		out[i] = FromBeneficiary(b)
	}
	return out
}
