package routes

import (
	adminControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/admin"
	orderControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/order"
	productControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/product"
	"github.com/FakrulHasanSajib/Ecom-pro/middleware"
	"github.com/FakrulHasanSajib/Ecom-pro/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, store *settings.Store) {
	admin := r.Group("/admin", middleware.ValidateAPIKey)
	{
		// Order management
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		admin.PUT("/orders/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
		admin.DELETE("/orders/:orderID", orderControllers.DeleteOrderHandler(db))

		// Real-time order feed for the admin dashboard
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

		// Fulfillment status catalog
		admin.GET("/order-statuses", orderControllers.ListOrderStatusesHandler(db))
		admin.POST("/order-statuses", orderControllers.CreateOrderStatusHandler(db))
		admin.DELETE("/order-statuses/:id", orderControllers.DeleteOrderStatusHandler(db))

		// Catalog management
		admin.POST("/products", productControllers.CreateProduct(db))
		admin.PUT("/products/:id", productControllers.UpdateProduct(db))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(db))

		// Runtime settings (gateway credentials, frontend URL)
		admin.GET("/settings", adminControllers.GetSettingsHandler(store))
		admin.POST("/settings", adminControllers.UpdateSettingsHandler(store))
	}
}
