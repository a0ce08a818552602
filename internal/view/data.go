package view

import (
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
)

type HomeData struct {
	Offers []models.Product
}

type ProductsData struct {
	Products []models.Product
}

type CartData struct {
	Cart     cart.Snapshot
	SignedIn bool
	TaxLabel string
}

type OrdersData struct {
	Orders   []service.OrderView
	TaxLabel string
}

type LoginData struct {
	Username string
}

type SignupData struct {
	Form models.RegisterRequest
}

type AdminData struct {
	Orders   []service.OrderView
	Statuses []models.OrderStatus
}

type ErrorData struct {
	Status  int
	Message string
}
