package routes

import (
	paymentControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/payment"
	"github.com/FakrulHasanSajib/Ecom-pro/middleware"
	"github.com/FakrulHasanSajib/Ecom-pro/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupPaymentRoutes wires the asynchronous gateway callbacks. These are
// browser redirects from SSLCommerz, form-encoded, and respond with a 302 to
// the storefront rather than JSON.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, store *settings.Store) {
	payment := r.Group("/payment", middleware.GatewayCallbackAuth(store))
	{
		payment.POST("/success", paymentControllers.PaymentSuccessHandler(db, store))
		payment.POST("/fail", paymentControllers.PaymentFailHandler(db, store))
		payment.POST("/cancel", paymentControllers.PaymentCancelHandler(db, store))
	}
}
