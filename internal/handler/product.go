package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mernventory/inventory-api/internal/httputil"
	"github.com/mernventory/inventory-api/internal/middleware"
	"github.com/mernventory/inventory-api/internal/model"
	"github.com/mernventory/inventory-api/internal/payload"
	"github.com/mernventory/inventory-api/internal/usecase"
	"github.com/mernventory/inventory-api/internal/validation"
)

// ProductHandler serves the product CRUD and inventory statistics endpoints.
// All of them sit behind the authenticator middleware.
type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

// NewProductHandler creates a new ProductHandler instance.
func NewProductHandler(
	productUsecase usecase.ProductUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req payload.CreateProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productUsecase.CreateProduct(r.Context(), user.ID.Hex(), usecase.CreateProductParams{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, payload.NewProductResponse(product))
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	products, err := h.productUsecase.ListProducts(r.Context(), user.ID.Hex())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payload.NewProductListResponse(products))
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	product, err := h.productUsecase.GetProduct(r.Context(), user.ID.Hex(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondProductError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payload.NewProductResponse(product))
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req payload.UpdateProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productUsecase.UpdateProduct(
		r.Context(),
		user.ID.Hex(),
		chi.URLParam(r, "id"),
		usecase.UpdateProductParams{
			Name:        req.Name,
			Category:    req.Category,
			Quantity:    req.Quantity,
			Price:       req.Price,
			Description: req.Description,
			Image:       req.Image,
		},
	)
	if err != nil {
		h.respondProductError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payload.NewProductResponse(product))
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	err := h.productUsecase.DeleteProduct(r.Context(), user.ID.Hex(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondProductError(w, r, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Product deleted successfully")
}

func (h *ProductHandler) GetInventoryStats(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.productUsecase.GetInventoryStats(r.Context(), user.ID.Hex())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}

func (h *ProductHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authorized, please login")
		return nil, false
	}
	return user, true
}

func (h *ProductHandler) respondProductError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, usecase.ErrNotProductOwner):
		httputil.RespondError(w, http.StatusUnauthorized, "Not authorized")
	default:
		h.internalError(w, r, err)
	}
}

func (h *ProductHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

func (h *ProductHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
	httputil.RespondError(w, http.StatusInternalServerError, "something went wrong")
}
