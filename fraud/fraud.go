package fraud

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"gorm.io/gorm"
)

const (
	// Score >= BlockThreshold rejects the checkout outright.
	BlockThreshold = 80

	scoreHighFrequencyIP = 50
	scoreDisposableEmail = 80
	scoreHighValueOrder  = 30

	// Orders above this looked-up catalog value (BDT) get flagged for manual review.
	highValueLimit = 10000.0
)

// disposableDomains is the static denylist of throwaway email providers.
var disposableDomains = []string{
	"tempmail.com",
	"mailinator.com",
	"disposable.com",
	"10minutemail.com",
	"guerrillamail.com",
}

type Item struct {
	ProductID uint
	Quantity  int
}

// Request is the slice of an incoming checkout the evaluator needs. Email is
// empty for guest checkouts; the email rule is simply skipped then, while the
// IP and value rules always run.
type Request struct {
	Email string
	IP    string
	Items []Item
}

type Verdict struct {
	IsFraud bool     `json:"is_fraud"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Check scores the request against all rules (additive, no short-circuit) and
// persists a FraudLog row for any non-zero score so suspicious-but-allowed
// requests stay auditable. It runs before order creation, so the log carries
// no order reference.
func Check(db *gorm.DB, req Request) Verdict {
	score := 0
	var reasons []string

	// 1. High frequency: 3 or more orders from the same IP within the last hour
	var recentOrders int64
	if err := db.Model(&models.Order{}).
		Where("ip_address = ? AND created_at >= ?", req.IP, time.Now().Add(-time.Hour)).
		Count(&recentOrders).Error; err != nil {
		log.Printf("fraud: IP frequency lookup failed: %v", err)
	}
	if recentOrders >= 3 {
		score += scoreHighFrequencyIP
		reasons = append(reasons, "High frequency orders from same IP")
	}

	// 2. High value: sum the requested items at current catalog prices
	var totalValue float64
	for _, item := range req.Items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			continue // missing products fail later in the assembler
		}
		totalValue += product.SellingPrice() * float64(item.Quantity)
	}
	if totalValue > highValueLimit {
		score += scoreHighValueOrder
		reasons = append(reasons, "High value order requires manual review")
	}

	// 3. Disposable email domains
	if req.Email != "" {
		at := strings.LastIndex(req.Email, "@")
		if at >= 0 {
			domain := strings.ToLower(req.Email[at+1:])
			for _, bad := range disposableDomains {
				if domain == bad {
					score += scoreDisposableEmail
					reasons = append(reasons, "Disposable email detected")
					break
				}
			}
		}
	}

	// Keep a log row for any non-zero score, blocked or not
	if score > 0 {
		reasonsJSON, _ := json.Marshal(reasons)
		entry := models.FraudLog{
			OrderID:   nil, // no order exists yet at evaluation time
			IPAddress: req.IP,
			RiskScore: score,
			Reasons:   reasonsJSON,
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("fraud: failed to write fraud log: %v", err)
		}
	}

	return Verdict{
		IsFraud: score >= BlockThreshold,
		Score:   score,
		Reasons: reasons,
	}
}
