package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
	"github.com/BhautikKhunt0/resin-store/internal/repository"
)

type CatalogHandler struct {
	catalog repository.CatalogRepository
	timeout time.Duration
}

func NewCatalogHandler(catalog repository.CatalogRepository, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductRequestDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Sizes       []string `json:"sizes,omitempty"`
	ImageURL    string   `json:"image_url"`
	CategoryID  int64    `json:"category_id"`
	Subcategory string   `json:"subcategory,omitempty"`
	InStock     bool     `json:"in_stock"`
}

type CategoryRequestDTO struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories,omitempty"`
}

type BannerRequestDTO struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link,omitempty"`
	Active   bool   `json:"active"`
}

func (dto *ProductRequestDTO) toDomain(w http.ResponseWriter) (*domain.Product, bool) {
	if dto.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return nil, false
	}
	price, err := decimal.NewFromString(dto.Price)
	if err != nil || price.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative decimal string")
		return nil, false
	}
	return &domain.Product{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       price,
		Sizes:       dto.Sizes,
		ImageURL:    dto.ImageURL,
		CategoryID:  dto.CategoryID,
		Subcategory: dto.Subcategory,
		InStock:     dto.InStock,
	}, true
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var dto ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	product, ok := dto.toDomain(w)
	if !ok {
		return
	}

	created, err := h.catalog.CreateProduct(ctx, product)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var dto ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	product, ok := dto.toDomain(w)
	if !ok {
		return
	}
	product.ID = id

	if err := h.catalog.UpdateProduct(ctx, product); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var dto CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if dto.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return
	}

	created, err := h.catalog.CreateCategory(ctx, &domain.Category{
		Name:          dto.Name,
		Subcategories: dto.Subcategories,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var dto CategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	category := &domain.Category{ID: id, Name: dto.Name, Subcategories: dto.Subcategories}
	if err := h.catalog.UpdateCategory(ctx, category); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(ctx, id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBanners serves only active banners to the storefront; the admin
// variant includes inactive ones.
func (h *CatalogHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	h.listBanners(w, r, true)
}

func (h *CatalogHandler) ListAllBanners(w http.ResponseWriter, r *http.Request) {
	h.listBanners(w, r, false)
}

func (h *CatalogHandler) listBanners(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	banners, err := h.catalog.ListBanners(ctx, activeOnly)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, banners)
}

func (h *CatalogHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var dto BannerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if dto.Title == "" || dto.ImageURL == "" {
		respondError(w, http.StatusBadRequest, "invalid_banner", "title and image_url are required")
		return
	}

	created, err := h.catalog.CreateBanner(ctx, &domain.Banner{
		Title:    dto.Title,
		ImageURL: dto.ImageURL,
		Link:     dto.Link,
		Active:   dto.Active,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var dto BannerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	banner := &domain.Banner{ID: id, Title: dto.Title, ImageURL: dto.ImageURL, Link: dto.Link, Active: dto.Active}
	if err := h.catalog.UpdateBanner(ctx, banner); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, banner)
}

func (h *CatalogHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteBanner(ctx, id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
