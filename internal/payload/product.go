package payload

import (
	"time"

	"github.com/mernventory/inventory-api/internal/model"
)

type CreateProductRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Category    string   `json:"category"    validate:"required"`
	Quantity    *int64   `json:"quantity"    validate:"required,min=0"`
	Price       *float64 `json:"price"       validate:"required,min=0"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Quantity    *int64   `json:"quantity"    validate:"omitempty,min=0"`
	Price       *float64 `json:"price"       validate:"omitempty,min=0"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

type ProductResponse struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Quantity    int64     `json:"quantity"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.Hex(),
		UserID:      product.UserID.Hex(),
		Name:        product.Name,
		SKU:         product.SKU,
		Category:    product.Category,
		Quantity:    product.Quantity,
		Price:       product.Price,
		Description: product.Description,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func NewProductListResponse(products []*model.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, NewProductResponse(product))
	}
	return responses
}
