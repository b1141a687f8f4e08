package dto

import (
	"time"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/distribution"
)

// DistributionLineRequest is one (item, quantity) pair in a request.
type DistributionLineRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

// CreateDistributionRequest records one act of giving goods to a beneficiary.
type CreateDistributionRequest struct {
	BeneficiaryID string                    `json:"beneficiaryId" binding:"required"`
	CalamityID    *string                   `json:"calamityId"`
	Notes         string                    `json:"notes"`
	Lines         []DistributionLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts the request to a domain distribution.
func (r CreateDistributionRequest) ToEntity(distributedBy *id.ID) (*distribution.Distribution, error) {
	beneficiaryID, err := id.Parse(r.BeneficiaryID)
	if err != nil {
		return nil, apperror.NewValidation("invalid beneficiary id").
			WithDetail("beneficiaryId", r.BeneficiaryID)
	}

	d := distribution.New(beneficiaryID)
	d.DistributedBy = distributedBy
	d.Notes = r.Notes

	if r.CalamityID != nil && *r.CalamityID != "" {
		calamityID, err := id.Parse(*r.CalamityID)
		if err != nil {
			return nil, apperror.NewValidation("invalid calamity id").
				WithDetail("calamityId", *r.CalamityID)
		}
		d.CalamityID = &calamityID
	}

	for _, line := range r.Lines {
		itemID, err := id.Parse(line.ItemID)
		if err != nil {
			return nil, apperror.NewValidation("invalid item id").
				WithDetail("itemId", line.ItemID)
		}
		d.AddLine(itemID, line.Quantity)
	}

	return d, nil
}

// BatchDistributionRequest distributes the same line set to many beneficiaries.
type BatchDistributionRequest struct {
	BeneficiaryIDs []string                  `json:"beneficiaryIds" binding:"required,min=1"`
	CalamityID     *string                   `json:"calamityId"`
	Notes          string                    `json:"notes"`
	Lines          []DistributionLineRequest `json:"lines" binding:"required,min=1"`
}

// ToBatchRequest converts the request to a domain batch request.
func (r BatchDistributionRequest) ToBatchRequest(distributedBy *id.ID) (distribution.BatchRequest, error) {
	req := distribution.BatchRequest{
		DistributedBy: distributedBy,
		Notes:         r.Notes,
	}

	for _, raw := range r.BeneficiaryIDs {
		beneficiaryID, err := id.Parse(raw)
		if err != nil {
			return req, apperror.NewValidation("invalid beneficiary id").
				WithDetail("beneficiaryId", raw)
		}
		req.BeneficiaryIDs = append(req.BeneficiaryIDs, beneficiaryID)
	}

	if r.CalamityID != nil && *r.CalamityID != "" {
		calamityID, err := id.Parse(*r.CalamityID)
		if err != nil {
			return req, apperror.NewValidation("invalid calamity id").
				WithDetail("calamityId", *r.CalamityID)
		}
		req.CalamityID = &calamityID
	}

	for _, line := range r.Lines {
		itemID, err := id.Parse(line.ItemID)
		if err != nil {
			return req, apperror.NewValidation("invalid item id").
				WithDetail("itemId", line.ItemID)
		}
		req.Lines = append(req.Lines, distribution.Line{ItemID: itemID, Quantity: line.Quantity})
	}

	return req, nil
}

// DistributionLineResponse is one line of a distribution.
type DistributionLineResponse struct {
	ID       string `json:"id"`
	ItemID   string `json:"itemId"`
	Quantity int64  `json:"quantity"`
}

// DistributionResponse is the API shape of a distribution.
type DistributionResponse struct {
	ID            string                     `json:"id"`
	BeneficiaryID string                     `json:"beneficiaryId"`
	CalamityID    *string                    `json:"calamityId,omitempty"`
	Date          time.Time                  `json:"date"`
	DistributedBy *string                    `json:"distributedBy,omitempty"`
	Notes         string                     `json:"notes,omitempty"`
	Lines         []DistributionLineResponse `json:"lines,omitempty"`
	TotalQuantity int64                      `json:"totalQuantity"`
	CreatedAt     time.Time                  `json:"createdAt"`
}

// FromDistribution creates DistributionResponse from a domain distribution.
func FromDistribution(d *distribution.Distribution) *DistributionResponse {
	resp := &DistributionResponse{
		ID:            d.ID.String(),
		BeneficiaryID: d.BeneficiaryID.String(),
		Date:          d.Date,
		Notes:         d.Notes,
		TotalQuantity: d.TotalQuantity(),
		CreatedAt:     d.CreatedAt,
	}
	if d.CalamityID != nil {
		s := d.CalamityID.String()
		resp.CalamityID = &s
	}
	if d.DistributedBy != nil {
		s := d.DistributedBy.String()
		resp.DistributedBy = &s
	}
	for _, line := range d.Lines {
		resp.Lines = append(resp.Lines, DistributionLineResponse{
			ID:       line.ID.String(),
			ItemID:   line.ItemID.String(),
			Quantity: line.Quantity,
		})
	}
	return resp
}

// FromDistributions maps a slice of domain distributions.
func FromDistributions(distributions []*distribution.Distribution) []*DistributionResponse {
	out := make([]*DistributionResponse, len(distributions))
	for i, d := range distributions {
		out[i] = FromDistribution(d)
	}
	return out
}

// VoidResponse reports the outcome of a void.
type VoidResponse struct {
	Voided   bool `json:"voided"`
	Restored bool `json:"restored"`
}
