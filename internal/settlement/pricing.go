package settlement

import (
	"github.com/shopspring/decimal"

	"scaffoldrent-backend/internal/domain"
)

// daysPerBlock is the size of one monthly billing block in daily-prorated mode.
const daysPerBlock = 30

// Rate is the billing rate card for one item: cost per unit-day and per
// unit-month. A zero monthly rate means the item bills purely daily.
type Rate struct {
	DailyCents   int64
	MonthlyCents int64
}

// RateOf extracts the rate card from an inventory item record.
func RateOf(item *domain.InventoryItem) Rate {
	return Rate{DailyCents: item.DailyPriceCents, MonthlyCents: item.MonthlyPriceCents}
}

// Line is one priced rental line item.
type Line struct {
	ItemID   string
	Quantity int
	Rate     Rate
}

// DailyProratedCost computes the cost of renting quantity units for an
// integer day count. Every full 30-day block bills at the monthly rate; the
// remainder bills daily but is capped at one more month's price, so a 29-day
// remainder never costs more than a 30-day block. With no monthly rate the
// cost is purely daily.
func DailyProratedCost(rate Rate, quantity, days int) int64 {
	if quantity <= 0 || days <= 0 {
		return 0
	}
	if rate.MonthlyCents <= 0 {
		return rate.DailyCents * int64(quantity) * int64(days)
	}

	blocks := int64(days / daysPerBlock)
	remainingDays := int64(days % daysPerBlock)

	remainderCost := remainingDays * rate.DailyCents
	if remainderCost > rate.MonthlyCents {
		remainderCost = rate.MonthlyCents
	}

	return (blocks*rate.MonthlyCents + remainderCost) * int64(quantity)
}

// FixedMonthlyCost computes cost under fixed-monthly billing: the monthly
// rate scales linearly with an explicit, possibly fractional, month count.
// No proration; the caller supplies the exact month count. The result is
// rounded to whole cents.
func FixedMonthlyCost(rate Rate, quantity int, months decimal.Decimal) int64 {
	if quantity <= 0 || months.Sign() <= 0 {
		return 0
	}
	cost := decimal.NewFromInt(rate.MonthlyCents).
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(months)
	return cost.Round(0).IntPart()
}

// LinesCost sums DailyProratedCost across rental lines for one day count.
func LinesCost(lines []Line, days int) int64 {
	var total int64
	for _, line := range lines {
		total += DailyProratedCost(line.Rate, line.Quantity, days)
	}
	return total
}

// AggregateLines merges duplicate item entries, preserving first-seen order.
// Rentals store at most one line per distinct item.
func AggregateLines(lines []domain.RentalLine) []domain.RentalLine {
	merged := make([]domain.RentalLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ItemID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ItemID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}
