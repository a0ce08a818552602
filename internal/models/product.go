package models

import "github.com/shopspring/decimal"

// Product is owned by the store API; the storefront only reads it.
type Product struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Discount    *int            `json:"discount,omitempty"`
}

func (p Product) HasDiscount() bool {
	return p.Discount != nil && *p.Discount > 0
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// CreateProductRequest is sent by the admin dashboard.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Discount    int             `json:"discount" validate:"gte=0,lte=100"`
}
