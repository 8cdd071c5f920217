package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/dicreate/mall-api/internal/catalog"
	"github.com/dicreate/mall-api/internal/events"
	"github.com/dicreate/mall-api/internal/logging"
	"github.com/dicreate/mall-api/internal/models"
	"github.com/dicreate/mall-api/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer Publisher
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Error("get_product_failed", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		l.Warn("get_product_failed", "status", 404, "reason", "product not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}

// GetProducts loads the catalog wholesale and runs the filter/sort/page
// pipeline over it in memory.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	page, size = util.Normalize(page, size)

	var products []models.Product
	if err := h.DB.Order("id ASC").Find(&products).Error; err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot load catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load catalog")
	}

	res := catalog.Query(products, catalog.Params{
		Category: c.QueryParam("category"),
		Keyword:  c.QueryParam("keyword"),
		SortBy:   c.QueryParam("sort"),
		Page:     page,
		PageSize: size,
	})

	l.Info("get_products_success", "total", res.Total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Items,
		"meta": map[string]any{
			"page":        page,
			"size":        size,
			"total":       res.Total,
			"total_pages": (res.Total + size - 1) / size,
			"has_prev":    page > 1,
			"has_next":    page*size < res.Total,
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req models.Product
	if err := c.Bind(&req); err != nil {
		l.Error("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Price < 0 {
		l.Error("product_create_failed", "status", 400, "reason", "negative price")
		return echo.NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	req.ID = 0
	if err := h.DB.Create(&req).Error; err != nil {
		l.Error("product_create_failed", "status", 500, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	Publish(c, h.Producer, events.TopicProductEvents, map[string]any{
		"type":      "product_created",
		"userID":    c.Get("userID"),
		"productID": req.ID,
		"name":      req.Name,
	})
	l.Info("create_product_success", "productID", req.ID)
	return c.JSON(http.StatusCreated, req)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Error("product_patch_failed", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	var req models.Product
	if err := c.Bind(&req); err != nil {
		l.Error("product_patch_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Price < 0 {
		l.Error("product_patch_failed", "status", 400, "reason", "negative price")
		return echo.NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		l.Warn("product_patch_failed", "status", 404, "reason", "product not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	req.ID = prod.ID
	if err := h.DB.Save(&req).Error; err != nil {
		l.Error("product_patch_failed", "status", 500, "reason", "cannot update product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	Publish(c, h.Producer, events.TopicProductEvents, map[string]any{
		"type":      "product_updated",
		"userID":    c.Get("userID"),
		"productID": req.ID,
		"name":      req.Name,
	})
	l.Info("patch_product_success", "productID", req.ID)
	return c.JSON(http.StatusOK, req)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Error("product_delete_failed", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}
	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		l.Error("product_delete_failed", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	Publish(c, h.Producer, events.TopicProductEvents, map[string]any{
		"type":      "product_deleted",
		"userID":    c.Get("userID"),
		"productID": id,
	})
	l.Info("delete_product_success", "productID", id)
	return c.NoContent(http.StatusNoContent)
}
