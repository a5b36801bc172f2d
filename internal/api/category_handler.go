package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CategoryHandler")
	}
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger.With(slog.String("component", "category_handler")),
	}
}

// Routes mounts the category endpoints on r.
func (h *CategoryHandler) Routes(r chi.Router) {
	r.Get("/", h.ListCategories)
	r.Post("/", h.CreateCategory)
	r.Get("/{categoryId}", h.GetCategory)
	r.Put("/{categoryId}", h.UpdateCategory)
	r.Delete("/{categoryId}", h.DeleteCategory)
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mapSlice(categories, categoryToResponse))
}

// GetCategory handles GET /api/categories/{categoryId}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getPathInt(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), categoryID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(*category))
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, categoryToResponse(*category))
}

// UpdateCategory handles PUT /api/categories/{categoryId}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getPathInt(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CategoryRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), categoryID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(*category))
}

// DeleteCategory handles DELETE /api/categories/{categoryId}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getPathInt(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
