// Package reports provides read-only aggregations over distributions and
// inventory, computed on demand with no cached or incremental state.
package reports

import (
	"time"

	"bayanihan/internal/core/id"
)

// BeneficiaryStats summarizes what one beneficiary has received.
type BeneficiaryStats struct {
	BeneficiaryID      id.ID      `json:"beneficiaryId"`
	DistributionCount  int64      `json:"distributionCount"`
	TotalItemsReceived int64      `json:"totalItemsReceived"`
	LastDistributionAt *time.Time `json:"lastDistributionAt,omitempty"`
}

// LowStockItem is one row of the low-stock report.
type LowStockItem struct {
	ItemID    id.ID  `db:"id" json:"itemId"`
	Name      string `db:"item_name" json:"name"`
	Quantity  int64  `db:"quantity" json:"quantity"`
	Threshold int64  `db:"low_stock_threshold" json:"threshold"`
	Unit      string `db:"unit" json:"unit"`
}

// TopItem is one row of the top-distributed-items rollup.
type TopItem struct {
	ItemID        id.ID  `db:"inventory_id" json:"itemId"`
	Name          string `db:"item_name" json:"name"`
	TotalQuantity int64  `db:"total_quantity" json:"totalQuantity"`
}

// TopCalamity is one row of the top-calamities rollup.
type TopCalamity struct {
	CalamityID        id.ID  `db:"calamity_id" json:"calamityId"`
	Name              string `db:"name" json:"name"`
	DistributionCount int64  `db:"distribution_count" json:"distributionCount"`
	TotalQuantity     int64  `db:"total_quantity" json:"totalQuantity"`
}
