package couponControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ApplyCouponRequest struct {
	Code      string  `json:"code" binding:"required"`
	CartTotal float64 `json:"cart_total" binding:"required"`
}

// ApplyCouponHandler validates a coupon against the cart total and returns the
// discount amount. The coupon is not consumed here; used_count is incremented
// at order time by the admin flow.
func ApplyCouponHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ApplyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var coupon models.Coupon
		if err := db.Where("code = ? AND is_active = ?", req.Code, true).First(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Invalid coupon code."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if coupon.ExpiresAt != nil && time.Now().After(*coupon.ExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon has expired."})
			return
		}
		if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon usage limit reached."})
			return
		}
		if coupon.MinSpend != nil && req.CartTotal < *coupon.MinSpend {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Minimum spend not met for this coupon."})
			return
		}

		var discount float64
		switch coupon.Type {
		case "fixed":
			discount = coupon.Value
		case "percent":
			discount = req.CartTotal * coupon.Value / 100
		}

		c.JSON(http.StatusOK, gin.H{
			"status":          "success",
			"message":         "Coupon applied successfully!",
			"discount_amount": discount,
			"coupon_code":     coupon.Code,
		})
	}
}
