package paymentControllers

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"

	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"github.com/FakrulHasanSajib/Ecom-pro/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Gateway callbacks are browser redirects driven by SSLCommerz, so every path
// ends in a 302 to a frontend page rather than a JSON body.

// PaymentSuccessHandler reconciles a success callback. The amount check plus
// the already-paid guard make replayed callbacks a no-op.
func PaymentSuccessHandler(db *gorm.DB, store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tranID := c.PostForm("tran_id")
		amount, _ := strconv.ParseFloat(c.PostForm("amount"), 64)

		var txn models.Transaction
		var order models.Order
		if err := db.Where("transaction_id = ?", tranID).First(&txn).Error; err != nil {
			log.Printf("❌ Payment success: transaction not found for %q", tranID)
			c.JSON(http.StatusNotFound, gin.H{"status": "Order Not Found"})
			return
		}
		if err := db.Where("order_number = ?", tranID).First(&order).Error; err != nil {
			log.Printf("❌ Payment success: order not found for %q", tranID)
			c.JSON(http.StatusNotFound, gin.H{"status": "Order Not Found"})
			return
		}

		if math.Abs(order.GrandTotal-amount) >= 0.01 || order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusBadRequest, gin.H{"status": "Validation Failed"})
			return
		}

		// one transaction so the txn never reads success with the order unpaid
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&txn).Updates(map[string]interface{}{
				"status":          models.TransactionStatusSuccess,
				"payment_details": rawPayload(c),
			}).Error; err != nil {
				return err
			}
			return tx.Model(&order).Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"status":         "Processing",
				"payment_method": "sslcommerz",
			}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reconcile payment"})
			return
		}

		c.Redirect(http.StatusFound, frontendURL(store)+"/order-success?order_number="+order.OrderNumber)
	}
}

// PaymentFailHandler marks the attempt failed. No amount validation is needed
// since no money changed hands.
func PaymentFailHandler(db *gorm.DB, store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tranID := c.PostForm("tran_id")
		markTerminal(db, tranID, models.TransactionStatusFailed, models.PaymentStatusFailed, rawPayload(c))
		c.Redirect(http.StatusFound, frontendURL(store)+"/payment-failed?order_number="+tranID)
	}
}

// PaymentCancelHandler handles the customer abandoning the gateway page.
func PaymentCancelHandler(db *gorm.DB, store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tranID := c.PostForm("tran_id")
		markTerminal(db, tranID, models.TransactionStatusCancelled, models.PaymentStatusCancelled, rawPayload(c))
		c.Redirect(http.StatusFound, frontendURL(store)+"/cart")
	}
}

func markTerminal(db *gorm.DB, tranID string, txnStatus models.TransactionStatus, payStatus models.PaymentStatus, payload []byte) {
	if tranID == "" {
		return
	}
	if err := db.Model(&models.Transaction{}).Where("transaction_id = ?", tranID).Updates(map[string]interface{}{
		"status":          txnStatus,
		"payment_details": payload,
	}).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ Payment callback: failed to update transaction %s: %v", tranID, err)
	}
	if err := db.Model(&models.Order{}).Where("order_number = ?", tranID).
		Update("payment_status", payStatus).Error; err != nil {
		log.Printf("❌ Payment callback: failed to update order %s: %v", tranID, err)
	}
}

// rawPayload keeps the entire gateway form body for audit.
func rawPayload(c *gin.Context) []byte {
	_ = c.Request.ParseForm()
	payload := map[string]string{}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	data, _ := json.Marshal(payload)
	return data
}

func frontendURL(store *settings.Store) string {
	def := os.Getenv("FRONTEND_URL")
	if def == "" {
		def = "http://localhost:3000"
	}
	return store.Get("frontend_url", def)
}
