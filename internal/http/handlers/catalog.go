package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aitbenali/autoparts-backend/internal/http/response"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
	"github.com/aitbenali/autoparts-backend/internal/services"
)

type CatalogHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewCatalogHandler(baseLog *logger.Logger, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:     baseLog.With("handler", "CatalogHandler"),
		catalog: catalog,
	}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_categories_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"categories": cats})
}

func (h *CatalogHandler) ProductsByCategory(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_slug", nil)
		return
	}
	products, err := h.catalog.ProductsByCategorySlug(c.Request.Context(), slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.RespondError(c, http.StatusNotFound, "category_not_found", err)
		return
	}
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "products_by_category_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"products": products})
}

func (h *CatalogHandler) SearchVehicles(c *gin.Context) {
	brand := strings.TrimSpace(c.Query("brand"))
	model := strings.TrimSpace(c.Query("model"))
	vehicles, err := h.catalog.SearchVehicles(c.Request.Context(), brand, model)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "search_vehicles_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"vehicles": vehicles})
}

func (h *CatalogHandler) ProductsByVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_vehicle_id", err)
		return
	}
	products, err := h.catalog.ProductsByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "products_by_vehicle_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"products": products})
}

func (h *CatalogHandler) ProductByReference(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("reference"))
	if ref == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_reference", nil)
		return
	}
	product, err := h.catalog.ProductByReference(c.Request.Context(), ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.RespondError(c, http.StatusNotFound, "product_not_found", err)
		return
	}
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "product_by_reference_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"product": product})
}
