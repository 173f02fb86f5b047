package checkoutControllers

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	orderControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/order"
	paymentControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/payment"
	"github.com/FakrulHasanSajib/Ecom-pro/fraud"
	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"github.com/FakrulHasanSajib/Ecom-pro/tracking"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultShippingCharge = 60

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("stock not available")
)

// -------- Request Structs --------

type CheckoutItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Items          []CheckoutItem    `json:"items" binding:"required,min=1,dive"`
	PaymentMethod  string            `json:"payment_method" binding:"required"`
	ShippingCharge *float64          `json:"shipping_charge"`
	Name           string            `json:"name" binding:"required"`
	Phone          string            `json:"phone" binding:"required"`
	Address        string            `json:"address" binding:"required"`
	Area           string            `json:"area"`
	TotalAmount    float64           `json:"total_amount"`
	TrackingInfo   map[string]string `json:"tracking_info"`
	UTMSource      string            `json:"utm_source"`
}

// RequestMeta carries the client attributes snapshotted onto the order.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// -------- Helpers --------

const orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a uuid slice
		return uuid.NewString()[:n]
	}
	for i, b := range buf {
		buf[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}
	return string(buf)
}

// generateOrderNumber returns a public order number unique across all orders.
func generateOrderNumber(db *gorm.DB) string {
	for i := 0; i < 5; i++ {
		candidate := "ORD-" + randomToken(8)
		var count int64
		db.Model(&models.Order{}).Where("order_number = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
	}
	return "ORD-" + randomToken(16)
}

// lockForUpdate takes a row lock on supporting dialects; sqlite (tests) has
// no row locks and serializes writers itself.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// -------- Core Logic --------

// CreateOrder assembles the order aggregate inside a single transaction:
// header first, then per line a locked stock check + decrement and a
// name/price snapshot, then the totals. Any failure rolls everything back, so
// no partial decrement ever survives.
func CreateOrder(db *gorm.DB, userID *uint, req CheckoutRequest, meta RequestMeta) (*models.Order, error) {
	shippingCharge := float64(defaultShippingCharge)
	if req.ShippingCharge != nil {
		shippingCharge = *req.ShippingCharge
	}

	var trackingInfo []byte
	if len(req.TrackingInfo) > 0 {
		trackingInfo, _ = json.Marshal(req.TrackingInfo)
	}

	order := models.Order{
		UUID:           uuid.NewString(),
		OrderNumber:    generateOrderNumber(db),
		UserID:         userID,
		Name:           req.Name,
		Phone:          req.Phone,
		Address:        req.Address,
		Area:           req.Area,
		SubTotal:       0, // calculated after the lines commit
		GrandTotal:     0,
		ShippingCharge: shippingCharge,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         "Pending",
		TrackingInfo:   trackingInfo,
		UTMSource:      req.UTMSource,
		IPAddress:      meta.IP,
		UserAgent:      meta.UserAgent,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var subTotal float64
		for _, item := range req.Items {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrProductNotFound, item.ProductID)
				}
				return err
			}

			if product.TotalStock < item.Quantity {
				return fmt.Errorf("%w for: %s", ErrOutOfStock, product.Name)
			}

			product.TotalStock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			price := product.SellingPrice()
			orderItem := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name, // snapshot
				Price:       price,
				Quantity:    item.Quantity,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			order.Items = append(order.Items, orderItem)
			subTotal += price * float64(item.Quantity)
		}

		order.SubTotal = subTotal
		order.GrandTotal = subTotal + order.ShippingCharge
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"sub_total":   order.SubTotal,
				"grand_total": order.GrandTotal,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// CheckoutHandler runs the full checkout pipeline: fraud check, atomic order
// assembly, optional gateway session, and the fire-and-forget purchase event.
func CheckoutHandler(db *gorm.DB, gateway *paymentControllers.Gateway, notifier *tracking.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid checkout payload", "error_detail": err.Error()})
			return
		}

		userID, email := requestIdentity(c)

		// Fraud check runs before any order row exists
		fraudItems := make([]fraud.Item, 0, len(req.Items))
		for _, item := range req.Items {
			fraudItems = append(fraudItems, fraud.Item{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		verdict := fraud.Check(db, fraud.Request{Email: email, IP: c.ClientIP(), Items: fraudItems})
		if verdict.IsFraud {
			log.Printf("⚠️ Fraud order blocked: ip=%s score=%d", c.ClientIP(), verdict.Score)
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Order rejected due to security risk.",
				"reasons": verdict.Reasons,
			})
			return
		}

		order, err := CreateOrder(db, userID, req, RequestMeta{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":       "error",
				"message":      "Order failed to place.",
				"error_detail": err.Error(),
			})
			return
		}

		// Both side channels are best-effort and never touch the response
		notifier.NotifyPurchase(*order, email)
		orderControllers.Broadcast(*order)

		if req.PaymentMethod != "cod" {
			paymentURL, err := gateway.InitiatePayment(order, email)
			if err != nil {
				// The order stays in place with payment pending so the
				// customer can retry payment without re-ordering.
				log.Printf("❌ Gateway init failed for %s: %v", order.OrderNumber, err)
				c.JSON(http.StatusBadGateway, gin.H{
					"status":       "error",
					"message":      "Payment gateway error",
					"error_detail": err.Error(),
					"order_number": order.OrderNumber,
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "success", "payment_url": paymentURL, "order_number": order.OrderNumber})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "Order placed successfully!",
			"data": gin.H{
				"order_number": order.OrderNumber,
				"grand_total":  order.GrandTotal,
				"status":       order.Status,
			},
		})
	}
}

// GetOrderByUUIDHandler returns one order with its items for the customer
// facing invoice page.
func GetOrderByUUIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("uuid")
		var order models.Order
		if err := db.Preload("Items").Where("uuid = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// requestIdentity reads the optional bearer identity set by middleware.
// Both values stay zero for guest checkouts.
func requestIdentity(c *gin.Context) (*uint, string) {
	var userID *uint
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			userID = &id
		}
	}
	email := ""
	if v, ok := c.Get("user_email"); ok {
		if s, ok := v.(string); ok {
			email = s
		}
	}
	return userID, email
}
