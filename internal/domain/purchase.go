package domain

import "time"

// Purchase is one procurement transaction for an inventory item. Its deletion
// must reverse the stock increase it caused.
type Purchase struct {
	ID                 string        `json:"id"`
	ItemID             string        `json:"item_id"`
	Supplier           string        `json:"supplier"`
	Quantity           int           `json:"quantity"`
	PurchasePriceCents int64         `json:"purchase_price_cents"` // total, not per-unit
	PurchaseDate       string        `json:"purchase_date"`        // yyyy-mm-dd
	PaymentStatus      PaymentStatus `json:"payment_status"`
	CreatedOn          time.Time     `json:"created_on"`
}
