package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mernventory/inventory-api/internal/model"
	"github.com/mernventory/inventory-api/internal/repository"
)

// ProductUsecase defines the business logic for product and inventory
// operations. Every operation that touches an existing product re-checks that
// the caller owns it.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, userID string, params CreateProductParams) (*model.Product, error)
	GetProduct(ctx context.Context, userID, productID string) (*model.Product, error)
	ListProducts(ctx context.Context, userID string) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, userID, productID string, params UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, userID, productID string) error
	GetInventoryStats(ctx context.Context, userID string) (*InventoryStats, error)
}

// CreateProductParams defines the parameters for creating a product.
type CreateProductParams struct {
	Name        string
	Category    string
	Quantity    int64
	Price       float64
	Description string
	Image       string
}

// UpdateProductParams defines the optional parameters for updating a product.
type UpdateProductParams struct {
	Name        *string
	Category    *string
	Quantity    *int64
	Price       *float64
	Description *string
	Image       *string
}

// InventoryStats aggregates a user's inventory.
type InventoryStats struct {
	TotalProducts   int     `json:"totalProducts"`
	TotalStoreValue float64 `json:"totalStoreValue"`
	OutOfStock      int     `json:"outOfStock"`
	Categories      int     `json:"categories"`
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotProductOwner = errors.New("not authorized")
)

type productUsecase struct {
	productRepo repository.ProductRepository
}

// NewProductUsecase creates a new instance of ProductUsecase.
func NewProductUsecase(productRepo repository.ProductRepository) ProductUsecase {
	return &productUsecase{productRepo: productRepo}
}

func (u *productUsecase) CreateProduct(
	ctx context.Context,
	userID string,
	params CreateProductParams,
) (*model.Product, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	description := params.Description
	if description == "" {
		description = model.DefaultProductDescription
	}

	image := params.Image
	if image == "" {
		image = model.DefaultProductImage
	}

	return u.productRepo.CreateProduct(ctx, &model.Product{
		UserID:      ownerID,
		Name:        params.Name,
		SKU:         generateSKU(),
		Category:    params.Category,
		Quantity:    params.Quantity,
		Price:       params.Price,
		Description: description,
		Image:       image,
	})
}

func (u *productUsecase) GetProduct(ctx context.Context, userID, productID string) (*model.Product, error) {
	return u.loadOwnedProduct(ctx, userID, productID)
}

func (u *productUsecase) ListProducts(ctx context.Context, userID string) ([]*model.Product, error) {
	return u.productRepo.ListProductsByUser(ctx, userID)
}

func (u *productUsecase) UpdateProduct(
	ctx context.Context,
	userID, productID string,
	params UpdateProductParams,
) (*model.Product, error) {
	product, err := u.loadOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if params == (UpdateProductParams{}) {
		return product, nil
	}

	return u.productRepo.UpdateProduct(ctx, productID, repository.UpdateProductParams{
		Name:        params.Name,
		Category:    params.Category,
		Quantity:    params.Quantity,
		Price:       params.Price,
		Description: params.Description,
		Image:       params.Image,
	})
}

func (u *productUsecase) DeleteProduct(ctx context.Context, userID, productID string) error {
	if _, err := u.loadOwnedProduct(ctx, userID, productID); err != nil {
		return err
	}

	return u.productRepo.DeleteProduct(ctx, productID)
}

func (u *productUsecase) GetInventoryStats(ctx context.Context, userID string) (*InventoryStats, error) {
	products, err := u.productRepo.ListProductsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &InventoryStats{
		TotalProducts: len(products),
	}

	categories := make(map[string]struct{})
	for _, p := range products {
		stats.TotalStoreValue += p.Price * float64(p.Quantity)
		if p.Quantity == 0 {
			stats.OutOfStock++
		}
		categories[p.Category] = struct{}{}
	}
	stats.Categories = len(categories)

	return stats, nil
}

// loadOwnedProduct loads a product and verifies the requesting user owns it.
// The ownership check runs on every call and is never cached.
func (u *productUsecase) loadOwnedProduct(ctx context.Context, userID, productID string) (*model.Product, error) {
	product, err := u.productRepo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	if product.UserID.Hex() != userID {
		return nil, ErrNotProductOwner
	}

	return product, nil
}

func generateSKU() string {
	return fmt.Sprintf("SKU-%s", strings.ToUpper(uuid.NewString()[:8]))
}
