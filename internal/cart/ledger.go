// Package cart holds the in-memory shopping cart of a single browsing
// session and the pricing rules derived from it.
//
// Every operation is total: malformed input degrades to a no-op or to the
// nearest valid state, never to an error.
package cart

import (
	"math"
	"slices"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// Line is one distinct product in the cart. Name, description and unit price
// are captured when the product is first added.
type Line struct {
	ProductID   models.ID       `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger is an ordered list of cart lines, at most one per product, each with
// a quantity of at least one. The zero value is an empty cart.
//
// A Ledger is not safe for concurrent use; its owner serializes access.
type Ledger struct {
	lines []Line
}

func New() *Ledger {
	return &Ledger{}
}

func (l *Ledger) index(id models.ID) int {
	return slices.IndexFunc(l.lines, func(line Line) bool { return line.ProductID == id })
}

// AddItem increments the product's quantity, or appends a new line with
// quantity 1. Stock is not consulted and quantities saturate at math.MaxInt.
func (l *Ledger) AddItem(p models.Product) {
	if i := l.index(p.ID); i >= 0 {
		if l.lines[i].Quantity < math.MaxInt {
			l.lines[i].Quantity++
		}
		return
	}

	l.lines = append(l.lines, Line{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.Price,
		Quantity:    1,
	})
}

func (l *Ledger) RemoveItem(id models.ID) {
	if i := l.index(id); i >= 0 {
		l.lines = slices.Delete(l.lines, i, i+1)
	}
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero or
// less removes the line; an unknown product is ignored.
func (l *Ledger) SetQuantity(id models.ID, quantity int) {
	if quantity <= 0 {
		l.RemoveItem(id)
		return
	}

	if i := l.index(id); i >= 0 {
		l.lines[i].Quantity = quantity
	}
}

func (l *Ledger) Clear() {
	l.lines = nil
}

// Settle subtracts submitted order lines from the cart. Lines that were not
// touched since submission disappear; anything added meanwhile stays.
func (l *Ledger) Settle(submitted []models.OrderLine) {
	for _, s := range submitted {
		if s.Quantity <= 0 {
			continue
		}
		if i := l.index(s.ProductID); i >= 0 {
			l.SetQuantity(s.ProductID, l.lines[i].Quantity-s.Quantity)
		}
	}
}

func (l *Ledger) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		total = total.Add(line.Total())
	}
	return total
}

// ItemCount is the number of units in the cart, not the number of lines. It
// saturates at math.MaxInt.
func (l *Ledger) ItemCount() int {
	count := 0
	for _, line := range l.lines {
		if line.Quantity > math.MaxInt-count {
			return math.MaxInt
		}
		count += line.Quantity
	}
	return count
}

func (l *Ledger) Len() int {
	return len(l.lines)
}

// Lines returns a copy of the lines in insertion order.
func (l *Ledger) Lines() []Line {
	return slices.Clone(l.lines)
}

func (l *Ledger) OrderLines() []models.OrderLine {
	out := make([]models.OrderLine, 0, len(l.lines))
	for _, line := range l.lines {
		out = append(out, models.OrderLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}

// Snapshot is a read-only view of the cart for rendering or JSON polling.
type Snapshot struct {
	Lines   []Line  `json:"lines"`
	Summary Summary `json:"summary"`
}

func (l *Ledger) Snapshot(taxRate decimal.Decimal) Snapshot {
	lines := l.Lines()
	if lines == nil {
		lines = []Line{}
	}
	return Snapshot{Lines: lines, Summary: l.Summarize(taxRate)}
}
