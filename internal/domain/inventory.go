package domain

import "time"

type ItemCategory string

const (
	CategoryFrame     ItemCategory = "FRAME"
	CategoryTube      ItemCategory = "TUBE"
	CategoryCoupler   ItemCategory = "COUPLER"
	CategoryPlank     ItemCategory = "PLANK"
	CategoryStair     ItemCategory = "STAIR"
	CategorySafety    ItemCategory = "SAFETY"
	CategoryAccessory ItemCategory = "ACCESSORY"
)

// InventoryItem is one fleet asset type. The quantity counters partition the
// fleet: availableQuantity + units out on active/overdue rentals +
// damagedQuantity == totalQuantity. MissingQuantity is a lifetime loss
// counter; lost units are subtracted from totalQuantity when recorded and are
// not part of the partition.
type InventoryItem struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Category          ItemCategory `json:"category"`
	TotalQuantity     int          `json:"total_quantity"`
	AvailableQuantity int          `json:"available_quantity"`
	DamagedQuantity   int          `json:"damaged_quantity"`
	MissingQuantity   int          `json:"missing_quantity"`
	DailyPriceCents   int64        `json:"daily_price_cents"`
	MonthlyPriceCents int64        `json:"monthly_price_cents"`
	LastMaintenance   string       `json:"last_maintenance,omitempty"` // yyyy-mm-dd
	CreatedOn         time.Time    `json:"created_on"`
	UpdatedOn         time.Time    `json:"updated_on"`
}
