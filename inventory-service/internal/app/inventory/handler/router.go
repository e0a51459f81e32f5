package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inventorystore/pkg/logger"
	"inventorystore/pkg/metrics"
)

const serviceName = "inventory-service"

// Handlers набор обработчиков для регистрации маршрутов
type Handlers struct {
	Products  *ProductHandler
	Suppliers *SupplierHandler
	Orders    *OrderHandler
	Users     *UserHandler
}

func SetupRoutes(h Handlers, allowOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(corsConfig(allowOrigins)))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Inventory Store API is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	products := api.Group("/products")
	{
		products.GET("", h.Products.ListProducts)
		products.GET("/:id", h.Products.GetProduct)
		products.POST("", h.Products.CreateProduct)
		products.PUT("/:id", h.Products.UpdateProduct)
		products.DELETE("/:id", h.Products.DeleteProduct)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("", h.Suppliers.ListSuppliers)
		suppliers.GET("/:id", h.Suppliers.GetSupplier)
		suppliers.POST("", h.Suppliers.CreateSupplier)
		suppliers.PUT("/:id", h.Suppliers.UpdateSupplier)
		suppliers.DELETE("/:id", h.Suppliers.DeleteSupplier)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", h.Orders.ListOrders)
		orders.GET("/:id", h.Orders.GetOrder)
		orders.POST("", h.Orders.CreateOrder)
		orders.PUT("/:id", h.Orders.UpdateOrder)
		orders.PATCH("/:id/status", h.Orders.UpdateOrderStatus)
		orders.DELETE("/:id", h.Orders.DeleteOrder)
	}

	users := api.Group("/users")
	{
		users.GET("", h.Users.ListUsers)
		users.POST("", h.Users.CreateUser)
	}

	router.NoRoute(func(c *gin.Context) {
		respondFailure(c, http.StatusNotFound, "Route not found")
	})

	return router
}

// corsConfig без списка источников или со звездочкой разрешает любые источники
func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        300 * time.Second,
	}

	for _, origin := range allowOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = allowOrigins
	return cfg
}
