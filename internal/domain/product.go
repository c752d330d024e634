package domain

import "time"

// Product is an inventory item. PhoneType is the free-text category key the
// demand ranker matches against; it is compared in normalized form only.
type Product struct {
	ID                string
	PhoneType         string
	StockQuantity     int
	LowStockThreshold *int
	IsArchived        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock reports whether the product sits at or below its low-stock
// threshold. Products without a threshold are excluded from the metric.
func (p *Product) IsLowStock() bool {
	if p.LowStockThreshold == nil {
		return false
	}
	return p.StockQuantity <= *p.LowStockThreshold
}
