package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/dicreate/mall-api/internal/handlers"
	"github.com/dicreate/mall-api/internal/handlers/cart"
	"github.com/dicreate/mall-api/internal/service/token"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	FabricHandler  *handlers.FabricHandler
	SearchHandler  *handlers.SearchHandler
	CartHandler    *cart.CartHandler
	TokenService   *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.LogOut, d.TokenService.AutoRefreshMiddleware)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := v1.Group("/admin", d.TokenService.AdminOnlyMiddleware)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	fabrics := v1.Group("/fabrics")
	fabrics.GET("", d.FabricHandler.GetFabrics)
	fabrics.GET("/:id", d.FabricHandler.GetFabric)

	userCart := v1.Group("/cart", d.TokenService.AutoRefreshMiddleware)
	userCart.GET("", d.CartHandler.GetCart)
	userCart.POST("", d.CartHandler.AddToCart)
	userCart.POST("/order", d.CartHandler.MakeOrder)
	userCart.PATCH("/:id", d.CartHandler.UpdateQuantity)
	userCart.DELETE("", d.CartHandler.ClearCart)
	userCart.DELETE("/:id", d.CartHandler.RemoveFromCart)
}
