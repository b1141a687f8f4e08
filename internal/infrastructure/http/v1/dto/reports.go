package dto

import (
	"time"

	"bayanihan/internal/domain/reports"
)

// BeneficiaryStatsResponse summarizes one beneficiary's history.
type BeneficiaryStatsResponse struct {
	BeneficiaryID      string     `json:"beneficiaryId"`
	DistributionCount  int64      `json:"distributionCount"`
	TotalItemsReceived int64      `json:"totalItemsReceived"`
	LastDistributionAt *time.Time `json:"lastDistributionAt,omitempty"`
}

// FromBeneficiaryStats creates the response from domain stats.
func FromBeneficiaryStats(s *reports.BeneficiaryStats) *BeneficiaryStatsResponse {
	return &BeneficiaryStatsResponse{
		BeneficiaryID:      s.BeneficiaryID.String(),
		DistributionCount:  s.DistributionCount,
		TotalItemsReceived: s.TotalItemsReceived,
		LastDistributionAt: s.LastDistributionAt,
	}
}

// LowStockItemResponse is one row of the low-stock report.
type LowStockItemResponse struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Threshold int64  `json:"threshold"`
	Unit      string `json:"unit"`
}

// FromLowStockItems maps low-stock report rows.
func FromLowStockItems(items []reports.LowStockItem) []LowStockItemResponse {
	out := make([]LowStockItemResponse, len(items))
	for i, item := range items {
		out[i] = LowStockItemResponse{
			ItemID:    item.ItemID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Threshold: item.Threshold,
			Unit:      item.Unit,
		}
	}
	return out
}

// TopItemResponse is one row of the top-items rollup.
type TopItemResponse struct {
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// FromTopItems maps top-item rows.
func FromTopItems(items []reports.TopItem) []TopItemResponse {
	out := make([]TopItemResponse, len(items))
	for i, item := range items {
		out[i] = TopItemResponse{
			ItemID:        item.ItemID.String(),
			Name:          item.Name,
			TotalQuantity: item.TotalQuantity,
		}
	}
	return out
}

// TopCalamityResponse is one row of the top-calamities rollup.
type TopCalamityResponse struct {
	CalamityID        string `json:"calamityId"`
	Name              string `json:"name"`
	DistributionCount int64  `json:"distributionCount"`
	TotalQuantity     int64  `json:"totalQuantity"`
}

// FromTopCalamities maps top-calamity rows.
func FromTopCalamities(calamities []reports.TopCalamity) []TopCalamityResponse {
	out := make([]TopCalamityResponse, len(calamities))
	for i, c := range calamities {
		out[i] = TopCalamityResponse{
			CalamityID:        c.CalamityID.String(),
			Name:              c.Name,
			DistributionCount: c.DistributionCount,
			TotalQuantity:     c.TotalQuantity,
		}
	}
	return out
}
