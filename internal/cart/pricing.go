package cart

import (
	"math"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice applies a percentage discount to a unit price. A missing or
// zero discount leaves the price unchanged; out-of-range discounts are clamped
// to [0, 100].
func EffectivePrice(price decimal.Decimal, discount *int) decimal.Decimal {
	if discount == nil {
		return price
	}

	d := min(max(*discount, 0), 100)
	if d == 0 {
		return price
	}

	return price.Mul(decimal.NewFromInt(int64(100 - d))).Div(hundred)
}

// SpecialOffers returns up to limit discounted products in catalog order. A
// negative limit yields no offers.
func SpecialOffers(products []models.Product, limit int) []models.Product {
	limit = max(limit, 0)
	offers := make([]models.Product, 0, min(limit, len(products)))
	for _, p := range products {
		if len(offers) >= limit {
			break
		}
		if p.HasDiscount() {
			offers = append(offers, p)
		}
	}
	return offers
}

type Summary struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

func summarize(subtotal decimal.Decimal, count int, taxRate decimal.Decimal) Summary {
	tax := subtotal.Mul(taxRate).Round(2)
	return Summary{
		ItemCount: count,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
	}
}

func (l *Ledger) Summarize(taxRate decimal.Decimal) Summary {
	return summarize(l.Subtotal(), l.ItemCount(), taxRate)
}

// OrderSummary totals a placed order from its stored line items.
func OrderSummary(items []models.OrderItem, taxRate decimal.Decimal) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
		if item.Quantity > 0 {
			count = min(count, math.MaxInt-item.Quantity) + item.Quantity
		}
	}
	return summarize(subtotal, count, taxRate)
}
