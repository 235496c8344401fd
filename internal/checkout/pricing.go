package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
)

type resolvedLine struct {
	product  *models.Product
	quantity int
}

type pricedTotals struct {
	items              []models.CartItem
	subtotal           decimal.Decimal
	discount           decimal.Decimal
	packagingCharge    decimal.Decimal
	totalQuantity      int
	totalPayableAmount decimal.Decimal
}

// priceBlock computes the per-vendor totals for one cart block.
//
// The promotional price is normalized first: it only counts as set when
// present and strictly positive. After that, the discount accrues when the
// promotion undercuts the list price, while the charged unit price uses the
// promotion whenever it is set. The two conditions differ, so a promotion at
// or above the list price is still charged but yields no discount. That
// asymmetry is the established billing behavior and is pinned by tests; do
// not merge the two predicates.
func priceBlock(vendor *models.Vendor, lines []resolvedLine) pricedTotals {
	totals := pricedTotals{
		items:           make([]models.CartItem, 0, len(lines)),
		subtotal:        decimal.Zero,
		discount:        decimal.Zero,
		packagingCharge: decimal.Zero,
	}

	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.quantity))
		mainPrice := line.product.MainPrice

		var specialPrice *decimal.Decimal
		if line.product.SpecialPrice != nil && line.product.SpecialPrice.IsPositive() {
			value := *line.product.SpecialPrice
			specialPrice = &value
		}

		totals.subtotal = totals.subtotal.Add(mainPrice.Mul(qty))

		if specialPrice != nil && specialPrice.LessThan(mainPrice) {
			totals.discount = totals.discount.Add(mainPrice.Sub(*specialPrice).Mul(qty))
		}

		effectivePrice := mainPrice
		if specialPrice != nil && specialPrice.IsPositive() {
			effectivePrice = *specialPrice
		}
		itemTotal := effectivePrice.Mul(qty)

		totals.packagingCharge = totals.packagingCharge.Add(line.product.PackagingCharge.Mul(qty))
		totals.totalQuantity += line.quantity

		totals.items = append(totals.items, models.CartItem{
			ProductID:    line.product.ID,
			Name:         line.product.Name,
			Quantity:     line.quantity,
			MainPrice:    mainPrice,
			SpecialPrice: specialPrice,
			ItemTotal:    itemTotal,
		})
	}

	totals.packagingCharge = totals.packagingCharge.Add(vendor.PackagingCharge)
	totals.totalPayableAmount = totals.subtotal.
		Sub(totals.discount).
		Add(totals.packagingCharge).
		Add(vendor.DeliveryCharge).
		Add(vendor.ConvenienceCharge)

	return totals
}
