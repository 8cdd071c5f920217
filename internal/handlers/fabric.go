package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/dicreate/mall-api/internal/catalog"
	"github.com/dicreate/mall-api/internal/logging"
	"github.com/dicreate/mall-api/internal/models"
	"github.com/dicreate/mall-api/internal/util"
)

// FabricHandler serves the resource library. Listing reuses the catalog
// query pipeline, filtering on material instead of product category.
type FabricHandler struct {
	DB *gorm.DB
}

func (h *FabricHandler) GetFabrics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "fabric.get_fabrics")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	page, size = util.Normalize(page, size)

	var fabrics []models.Fabric
	if err := h.DB.Order("id ASC").Find(&fabrics).Error; err != nil {
		l.Error("get_fabrics_failed", "status", 500, "reason", "cannot load fabrics", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load fabrics")
	}

	res := catalog.Query(fabrics, catalog.Params{
		Category: c.QueryParam("material"),
		Keyword:  c.QueryParam("keyword"),
		SortBy:   c.QueryParam("sort"),
		Page:     page,
		PageSize: size,
	})

	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Items,
		"meta": map[string]any{
			"page":  page,
			"size":  size,
			"total": res.Total,
		},
	})
}

func (h *FabricHandler) GetFabric(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "fabric.get_fabric")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Error("get_fabric_failed", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	var fabric models.Fabric
	if err := h.DB.First(&fabric, id).Error; err != nil {
		l.Warn("get_fabric_failed", "status", 404, "reason", "fabric not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "fabric not found")
	}

	return c.JSON(http.StatusOK, fabric)
}
