package models

type AddItemRequest struct {
	ProductID ID `json:"product_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
