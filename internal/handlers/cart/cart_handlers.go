package cart

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	cartsvc "github.com/dicreate/mall-api/internal/cart"
	"github.com/dicreate/mall-api/internal/events"
	"github.com/dicreate/mall-api/internal/handlers"
	"github.com/dicreate/mall-api/internal/logging"
	"github.com/dicreate/mall-api/internal/models"
)

type CartHandler struct {
	DB       *gorm.DB
	Carts    *cartsvc.Manager
	Producer handlers.Publisher
}

type cartResponse struct {
	Items  []cartsvc.LineItem `json:"items"`
	Totals cartsvc.Totals     `json:"totals"`
}

func userID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}

func (h *CartHandler) respond(c echo.Context, svc *cartsvc.Service) error {
	return c.JSON(http.StatusOK, cartResponse{Items: svc.Items(), Totals: svc.Totals()})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	return h.respond(c, h.Carts.For(id))
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req struct {
		cartsvc.LineItem
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	svc := h.Carts.For(id)
	if err := svc.AddItem(req.LineItem, req.Quantity); err != nil {
		if errors.Is(err, cartsvc.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	handlers.Publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":     "cart_item_added",
		"userID":   id,
		"itemID":   req.LineItem.ID,
		"quantity": svc.ItemQuantity(req.LineItem.ID),
	})
	return h.respond(c, svc)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	itemID := c.Param("id")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	svc := h.Carts.For(id)
	svc.UpdateQuantity(itemID, req.Quantity)

	handlers.Publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":     "cart_quantity_updated",
		"userID":   id,
		"itemID":   itemID,
		"quantity": svc.ItemQuantity(itemID),
	})
	return h.respond(c, svc)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	itemID := c.Param("id")

	svc := h.Carts.For(id)
	svc.RemoveItem(itemID)

	handlers.Publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":   "cart_item_removed",
		"userID": id,
		"itemID": itemID,
	})
	return h.respond(c, svc)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	svc := h.Carts.For(id)
	svc.Clear()

	handlers.Publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":   "cart_cleared",
		"userID": id,
	})
	return h.respond(c, svc)
}

// MakeOrder turns the cart into an order inside one transaction and clears
// the cart afterwards.
func (h *CartHandler) MakeOrder(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.make_order")

	svc := h.Carts.For(id)
	items := svc.Items()
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
	}
	totals := svc.Totals()

	var (
		order      models.Order
		orderItems []models.OrderItem
	)
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			Number:    uuid.NewString(),
			UserID:    id,
			Total:     totals.TotalPrice,
			Status:    "new",
			CreatedAt: time.Now().Unix(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems = make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			oi := models.OrderItem{
				OrderID:  order.ID,
				UserID:   id,
				ItemID:   it.ID,
				Name:     it.Name,
				Price:    it.Price,
				Quantity: it.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}
		return nil
	})
	if txErr != nil {
		l.Error("make_order_failed", "error", txErr)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	svc.Clear()

	handlers.Publish(c, h.Producer, events.TopicCartEvents, map[string]any{
		"type":    "order_created",
		"userID":  id,
		"orderID": order.ID,
		"number":  order.Number,
	})
	l.Info("make_order_success", "orderID", order.ID, "total", order.Total)

	return c.JSON(http.StatusOK, map[string]any{
		"order_id": order.ID,
		"number":   order.Number,
		"total":    order.Total,
		"status":   order.Status,
		"items":    orderItems,
	})
}
