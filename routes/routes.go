package routes

import (
	paymentControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/payment"
	"github.com/FakrulHasanSajib/Ecom-pro/settings"
	"github.com/FakrulHasanSajib/Ecom-pro/tracking"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public storefront,
// payment callback, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store *settings.Store, gateway *paymentControllers.Gateway, notifier *tracking.Notifier) {
	// Public storefront routes (guest accessible)
	SetupPublicRoutes(r, db, gateway, notifier)

	// Payment gateway callback routes (form-encoded, signature-checked)
	SetupPaymentRoutes(r, db, store)

	// Admin routes (API-key protected)
	SetupAdminRoutes(r, db, store)
}
