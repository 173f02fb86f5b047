package checkoutControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	paymentControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/payment"
	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"github.com/FakrulHasanSajib/Ecom-pro/settings"
	"github.com/FakrulHasanSajib/Ecom-pro/tracking"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatus{},
		&models.Transaction{},
		&models.FraudLog{},
		&models.Setting{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, basePrice float64, salePrice *float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Slug:       strings.ToLower(strings.ReplaceAll(name, " ", "-")) + "-" + uuid.NewString()[:8],
		BasePrice:  basePrice,
		SalePrice:  salePrice,
		TotalStock: stock,
		Status:     "active",
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func floatPtr(v float64) *float64 { return &v }

func checkoutRequest(product models.Product, qty int) CheckoutRequest {
	return CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: product.ID, Quantity: qty}},
		PaymentMethod: "cod",
		Name:          "Rahim Uddin",
		Phone:         "01712345678",
		Address:       "House 12, Road 5, Dhanmondi",
		Area:          "Dhaka",
	}
}

func TestCreateOrderTotals(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Cotton Panjabi", 100, nil, 10)

	req := checkoutRequest(product, 2)
	req.ShippingCharge = floatPtr(60)

	order, err := CreateOrder(db, nil, req, RequestMeta{IP: "203.0.113.9", UserAgent: "test-agent"})
	require.NoError(t, err)

	assert.Equal(t, 200.0, order.SubTotal)
	assert.Equal(t, 260.0, order.GrandTotal)
	assert.Equal(t, order.SubTotal+order.ShippingCharge, order.GrandTotal)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Len(t, order.OrderNumber, 12)
	_, err = uuid.Parse(order.UUID)
	assert.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Cotton Panjabi", order.Items[0].ProductName)
	assert.Equal(t, 100.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// stock decremented exactly once per unit
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 8, reloaded.TotalStock)

	// attribution snapshot
	var persisted models.Order
	require.NoError(t, db.First(&persisted, order.ID).Error)
	assert.Equal(t, "203.0.113.9", persisted.IPAddress)
	assert.Equal(t, "test-agent", persisted.UserAgent)
}

func TestCreateOrderUsesSalePriceWhenSet(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Leather Sandal", 900, floatPtr(750), 5)

	order, err := CreateOrder(db, nil, checkoutRequest(product, 1), RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, 750.0, order.Items[0].Price)
	assert.Equal(t, 750.0, order.SubTotal)
}

func TestCreateOrderSnapshotSurvivesPriceChange(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Silk Saree", 100, nil, 5)

	order, err := CreateOrder(db, nil, checkoutRequest(product, 1), RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("base_price", 999).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, 100.0, item.Price)
}

func TestCreateOrderOutOfStockRollsBackEverything(t *testing.T) {
	db := openTestDB(t)
	inStock := seedProduct(t, db, "Denim Shirt", 500, nil, 10)
	scarce := seedProduct(t, db, "Limited Tote", 300, nil, 1)

	req := CheckoutRequest{
		Items: []CheckoutItem{
			{ProductID: inStock.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 3},
		},
		PaymentMethod: "cod",
		Name:          "Karim",
		Phone:         "01812345678",
		Address:       "Chattogram",
	}

	_, err := CreateOrder(db, nil, req, RequestMeta{})
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Contains(t, err.Error(), "Limited Tote")

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	// the already-processed line must be rolled back too
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, inStock.ID).Error)
	assert.Equal(t, 10, reloaded.TotalStock)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := openTestDB(t)

	req := CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: 424242, Quantity: 1}},
		PaymentMethod: "cod",
		Name:          "Karim",
		Phone:         "01812345678",
		Address:       "Sylhet",
	}
	_, err := CreateOrder(db, nil, req, RequestMeta{})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateOrderCompetingForStock(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Festival Kurta", 100, nil, 5)

	first, err := CreateOrder(db, nil, checkoutRequest(product, 3), RequestMeta{})
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = CreateOrder(db, nil, checkoutRequest(product, 3), RequestMeta{})
	require.ErrorIs(t, err, ErrOutOfStock)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 2, reloaded.TotalStock)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 1, orders)
}

func TestCreateOrderDefaultShippingCharge(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Wool Scarf", 200, nil, 5)

	order, err := CreateOrder(db, nil, checkoutRequest(product, 1), RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, 60.0, order.ShippingCharge)
	assert.Equal(t, 260.0, order.GrandTotal)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Everyday Tee", 50, nil, 1000)

	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		order, err := CreateOrder(db, nil, checkoutRequest(product, 1), RequestMeta{})
		require.NoError(t, err)
		assert.False(t, seen[order.OrderNumber], "duplicate order number %s", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

// -------- Handler tests --------

func newCheckoutRouter(t *testing.T, db *gorm.DB, gatewayURL string) *gin.Engine {
	t.Helper()
	require.NoError(t, settings.Seed(db))
	store := settings.NewStore(db)
	gateway := paymentControllers.NewGateway(db, store)
	gateway.BaseURL = gatewayURL
	notifier := tracking.NewNotifier("", "", "test")
	t.Cleanup(notifier.Close)

	r := gin.New()
	r.POST("/public/checkout", CheckoutHandler(db, gateway, notifier))
	return r
}

func postCheckout(r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/public/checkout", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandlerCOD(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Gift Box", 100, nil, 10)
	r := newCheckoutRouter(t, db, "")

	w := postCheckout(r, gin.H{
		"items":          []gin.H{{"product_id": product.ID, "quantity": 2}},
		"payment_method": "cod",
		"name":           "Rahim Uddin",
		"phone":          "01712345678",
		"address":        "Dhanmondi, Dhaka",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			OrderNumber string  `json:"order_number"`
			GrandTotal  float64 `json:"grand_total"`
			Status      string  `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.True(t, strings.HasPrefix(resp.Data.OrderNumber, "ORD-"))
	assert.Equal(t, 260.0, resp.Data.GrandTotal)
	assert.Equal(t, "Pending", resp.Data.Status)
}

func TestCheckoutHandlerValidation(t *testing.T) {
	db := openTestDB(t)
	r := newCheckoutRouter(t, db, "")

	// missing phone/address
	w := postCheckout(r, gin.H{
		"items":          []gin.H{{"product_id": 1, "quantity": 1}},
		"payment_method": "cod",
		"name":           "Rahim",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error_detail")
}

func TestCheckoutHandlerFraudRejected(t *testing.T) {
	db := openTestDB(t)
	// a pricey cart (+30) combined with a hot IP (+50) crosses the block threshold
	product := seedProduct(t, db, "Premium Adapter Bundle", 6000, nil, 50)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Order{
			UUID:        uuid.NewString(),
			OrderNumber: fmt.Sprintf("ORD-SEED%04d", i),
			IPAddress:   "192.0.2.1", // httptest default client IP
			SubTotal:    10,
			GrandTotal:  70,
		}).Error)
	}
	r := newCheckoutRouter(t, db, "")

	w := postCheckout(r, gin.H{
		"items":          []gin.H{{"product_id": product.ID, "quantity": 2}},
		"payment_method": "cod",
		"name":           "Suspicious Buyer",
		"phone":          "01900000000",
		"address":        "Nowhere",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "security risk")
	assert.Contains(t, w.Body.String(), "High frequency orders from same IP")

	// rejection happens before order creation: still only the 3 seeded rows
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.EqualValues(t, 3, orders)
}

func TestCheckoutHandlerGatewayRedirect(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Table Lamp", 1200, nil, 4)

	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "BDT", r.Form.Get("currency"))
		assert.True(t, strings.HasPrefix(r.Form.Get("tran_id"), "ORD-"))
		_ = json.NewEncoder(w).Encode(gin.H{
			"status":         "SUCCESS",
			"GatewayPageURL": "https://sandbox.sslcommerz.com/pay/abc123",
		})
	}))
	defer fake.Close()

	r := newCheckoutRouter(t, db, fake.URL)
	w := postCheckout(r, gin.H{
		"items":          []gin.H{{"product_id": product.ID, "quantity": 1}},
		"payment_method": "sslcommerz",
		"name":           "Rahim Uddin",
		"phone":          "01712345678",
		"address":        "Dhaka",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://sandbox.sslcommerz.com/pay/abc123")

	// a pending transaction row exists, keyed by the order number
	var txn models.Transaction
	require.NoError(t, db.First(&txn).Error)
	assert.Equal(t, models.TransactionStatusPending, txn.Status)
	assert.Equal(t, 1260.0, txn.Amount)
}

func TestCheckoutHandlerGatewayFailureKeepsOrder(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Ceramic Mug", 350, nil, 8)

	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(gin.H{"status": "FAILED", "failedreason": "store credential mismatch"})
	}))
	defer fake.Close()

	r := newCheckoutRouter(t, db, fake.URL)
	w := postCheckout(r, gin.H{
		"items":          []gin.H{{"product_id": product.ID, "quantity": 1}},
		"payment_method": "sslcommerz",
		"name":           "Karim",
		"phone":          "01812345678",
		"address":        "Khulna",
	})

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "store credential mismatch")

	// the order survives with payment pending so payment alone can be retried
	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}
