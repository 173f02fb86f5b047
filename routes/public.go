package routes

import (
	checkoutControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/checkout"
	couponControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/coupon"
	paymentControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/payment"
	productControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/product"
	"github.com/FakrulHasanSajib/Ecom-pro/middleware"
	"github.com/FakrulHasanSajib/Ecom-pro/tracking"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, gateway *paymentControllers.Gateway, notifier *tracking.Notifier) {
	public := r.Group("/public")
	{
		// Checkout accepts both guests and token-carrying customers
		public.POST("/checkout",
			middleware.OptionalAuth,
			checkoutControllers.CheckoutHandler(db, gateway, notifier),
		)

		public.GET("/orders/:uuid", checkoutControllers.GetOrderByUUIDHandler(db))
		public.POST("/apply-coupon", couponControllers.ApplyCouponHandler(db))

		public.GET("/products", productControllers.GetProducts(db))
		public.GET("/products/:slug", productControllers.GetProductBySlug(db))
		public.GET("/categories", productControllers.GetCategories(db))
	}
}
