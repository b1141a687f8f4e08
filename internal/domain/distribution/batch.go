package distribution

import (
	"context"
	"time"

	"bayanihan/internal/core/id"
	"bayanihan/pkg/logger"
)

// BatchRequest distributes the same line set to many beneficiaries.
type BatchRequest struct {
	BeneficiaryIDs []id.ID
	CalamityID     *id.ID
	Lines          []Line
	DistributedBy  *id.ID
	Notes          string
}

// BatchResult reports the outcome for one beneficiary.
type BatchResult struct {
	BeneficiaryID  id.ID  `json:"beneficiaryId"`
	DistributionID *id.ID `json:"distributionId,omitempty"`
	Succeeded      bool   `json:"succeeded"`
	Error          string `json:"error,omitempty"`
}

// BatchReport aggregates per-beneficiary outcomes.
type BatchReport struct {
	Results   []BatchResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// DistributeBatch runs an independent Create per beneficiary, best-effort.
// A failure for one beneficiary does not roll back the others; the report
// carries each outcome. Stops early only when the context is cancelled.
func (s *Service) DistributeBatch(ctx context.Context, req BatchRequest) (*BatchReport, error) {
	report := &BatchReport{
		Results: make([]BatchResult, 0, len(req.BeneficiaryIDs)),
	}

	for _, beneficiaryID := range req.BeneficiaryIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		d := New(beneficiaryID)
		d.CalamityID = req.CalamityID
		d.DistributedBy = req.DistributedBy
		d.Notes = req.Notes
		d.Date = time.Now().UTC()
		for _, line := range req.Lines {
			d.AddLine(line.ItemID, line.Quantity)
		}

		result := BatchResult{BeneficiaryID: beneficiaryID}
		if err := s.Create(ctx, d); err != nil {
			result.Error = err.Error()
			report.Failed++
			logger.Warn(ctx, "batch distribution failed for beneficiary",
				"beneficiary_id", beneficiaryID,
				"error", err,
			)
		} else {
			distID := d.ID
			result.DistributionID = &distID
			result.Succeeded = true
			report.Succeeded++
		}
		report.Results = append(report.Results, result)
	}

	logger.Info(ctx, "batch distribution finished",
		"beneficiaries", len(req.BeneficiaryIDs),
		"succeeded", report.Succeeded,
		"failed", report.Failed,
	)
	return report, nil
}
