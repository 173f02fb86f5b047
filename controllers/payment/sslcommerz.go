package paymentControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"github.com/FakrulHasanSajib/Ecom-pro/settings"
	"gorm.io/gorm"
)

const (
	sandboxBaseURL = "https://sandbox.sslcommerz.com"
	liveBaseURL    = "https://securepay.sslcommerz.com"
	sessionPath    = "/gwprocess/v4/api.php"
)

var ErrGateway = errors.New("payment gateway error")

// Config holds the SSLCommerz credentials, resolved from the settings store
// with environment defaults so credentials are changeable without a redeploy.
type Config struct {
	StoreID       string
	StorePassword string
	Sandbox       bool
}

func LoadConfig(store *settings.Store) Config {
	return Config{
		StoreID:       store.Get("ssl_store_id", os.Getenv("SSL_STORE_ID")),
		StorePassword: store.Get("ssl_store_password", os.Getenv("SSL_STORE_PASSWORD")),
		Sandbox:       store.GetBool("ssl_sandbox_mode", os.Getenv("SSL_SANDBOX_MODE") != "false"),
	}
}

// Gateway initiates hosted-payment-page sessions with SSLCommerz.
type Gateway struct {
	db           *gorm.DB
	settings     *settings.Store
	client       *http.Client
	callbackBase string // public base URL of this API for the gateway callbacks

	// BaseURL overrides the sandbox/live endpoint selection when set (tests).
	BaseURL string
}

func NewGateway(db *gorm.DB, store *settings.Store) *Gateway {
	callbackBase := os.Getenv("APP_URL")
	if callbackBase == "" {
		callbackBase = "http://localhost:8080"
	}
	return &Gateway{
		db:       db,
		settings: store,
		// the init call blocks the checkout response, so it must not hang
		client:       &http.Client{Timeout: 15 * time.Second},
		callbackBase: callbackBase,
	}
}

func (g *Gateway) apiBase(cfg Config) string {
	if g.BaseURL != "" {
		return g.BaseURL
	}
	if cfg.Sandbox {
		return sandboxBaseURL
	}
	return liveBaseURL
}

// InitiatePayment opens a hosted payment session for the order and returns the
// redirect URL. A pending Transaction row keyed by the order number is written
// before the outbound call so a crash mid-call still leaves an auditable record.
func (g *Gateway) InitiatePayment(order *models.Order, email string) (string, error) {
	cfg := LoadConfig(g.settings)
	if cfg.StoreID == "" || cfg.StorePassword == "" {
		return "", fmt.Errorf("%w: credentials not configured", ErrGateway)
	}

	if err := g.recordPendingTransaction(order); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("store_id", cfg.StoreID)
	form.Set("store_passwd", cfg.StorePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", order.GrandTotal))
	form.Set("currency", "BDT")
	form.Set("tran_id", order.OrderNumber)
	form.Set("success_url", g.callbackBase+"/payment/success")
	form.Set("fail_url", g.callbackBase+"/payment/fail")
	form.Set("cancel_url", g.callbackBase+"/payment/cancel")
	form.Set("cus_name", order.Name)
	form.Set("cus_email", email)
	form.Set("cus_add1", order.Address)
	form.Set("cus_city", order.Area)
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", order.Phone)
	form.Set("shipping_method", "NO")
	form.Set("product_name", "Order #"+order.OrderNumber)
	form.Set("product_category", "General")
	form.Set("product_profile", "general")

	resp, err := g.client.PostForm(g.apiBase(cfg)+sessionPath, form)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result struct {
		Status         string `json:"status"`
		FailedReason   string `json:"failedreason"`
		GatewayPageURL string `json:"GatewayPageURL"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("❌ SSLCommerz returned malformed response: %s", string(body))
		return "", fmt.Errorf("%w: malformed gateway response", ErrGateway)
	}

	if result.Status != "SUCCESS" || result.GatewayPageURL == "" {
		log.Printf("❌ SSLCommerz init failed: %s", string(body))
		reason := result.FailedReason
		if reason == "" {
			reason = "Unknown Error"
		}
		return "", fmt.Errorf("%w: %s", ErrGateway, reason)
	}

	return result.GatewayPageURL, nil
}

// recordPendingTransaction creates or resets the Transaction row for the order
// number. Re-initiating payment for the same order reuses the row.
func (g *Gateway) recordPendingTransaction(order *models.Order) error {
	details, _ := json.Marshal(map[string]string{
		"initiated_at": time.Now().Format(time.RFC3339),
	})

	var txn models.Transaction
	err := g.db.Where("transaction_id = ?", order.OrderNumber).First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		txn = models.Transaction{
			UserID:         order.UserID,
			OrderID:        order.ID,
			TransactionID:  order.OrderNumber,
			Gateway:        "sslcommerz",
			Amount:         order.GrandTotal,
			Status:         models.TransactionStatusPending,
			PaymentDetails: details,
		}
		return g.db.Create(&txn).Error
	}
	if err != nil {
		return err
	}

	txn.Amount = order.GrandTotal
	txn.Status = models.TransactionStatusPending
	txn.PaymentDetails = details
	return g.db.Save(&txn).Error
}
