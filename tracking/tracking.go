package tracking

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/FakrulHasanSajib/Ecom-pro/models"
)

const (
	defaultEndpoint = "https://graph.facebook.com/v19.0"
	maxAttempts     = 3
	queueSize       = 64
)

// Notifier reports purchase conversions to the Facebook Conversions API.
// Delivery is fully detached from the checkout request: events are handed to a
// buffered channel drained by a single worker goroutine, and every failure is
// logged and dropped, never surfaced to the customer.
type Notifier struct {
	pixelID     string
	accessToken string
	endpoint    string
	environment string
	client      *http.Client
	events      chan purchaseEvent
	done        chan struct{}
}

type purchaseEvent struct {
	OrderNumber string
	GrandTotal  float64
	Email       string
	Phone       string
	IPAddress   string
	UserAgent   string
	FBP         string
	FBC         string
}

func NewNotifier(pixelID, accessToken, environment string) *Notifier {
	n := &Notifier{
		pixelID:     pixelID,
		accessToken: accessToken,
		endpoint:    defaultEndpoint,
		environment: environment,
		client:      &http.Client{Timeout: 10 * time.Second},
		events:      make(chan purchaseEvent, queueSize),
		done:        make(chan struct{}),
	}
	go n.run()
	return n
}

// NotifyPurchase enqueues a conversion event for the given order. It never
// blocks: when the queue is full the event is dropped with a log line.
func (n *Notifier) NotifyPurchase(order models.Order, email string) {
	ev := purchaseEvent{
		OrderNumber: order.OrderNumber,
		GrandTotal:  order.GrandTotal,
		Email:       email,
		Phone:       order.Phone,
		IPAddress:   order.IPAddress,
		UserAgent:   order.UserAgent,
	}
	if len(order.TrackingInfo) > 0 {
		var info map[string]string
		if err := json.Unmarshal(order.TrackingInfo, &info); err == nil {
			ev.FBP = info["fbp"]
			ev.FBC = info["fbc"]
		}
	}
	select {
	case n.events <- ev:
	default:
		log.Printf("tracking: queue full, dropping purchase event for %s", ev.OrderNumber)
	}
}

// Close stops the worker after draining queued events.
func (n *Notifier) Close() {
	close(n.events)
	<-n.done
}

func (n *Notifier) run() {
	defer close(n.done)
	for ev := range n.events {
		if n.environment != "production" {
			log.Printf("tracking: %s environment, skipped purchase event for %s", n.environment, ev.OrderNumber)
			continue
		}
		var err error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err = n.send(ev); err == nil {
				break
			}
			log.Printf("tracking: attempt %d for %s failed: %v", attempt, ev.OrderNumber, err)
			time.Sleep(time.Duration(attempt) * time.Second)
		}
		if err != nil {
			log.Printf("tracking: giving up on purchase event for %s", ev.OrderNumber)
		}
	}
}

func (n *Notifier) send(ev purchaseEvent) error {
	userData := map[string]string{
		"client_ip_address": ev.IPAddress,
		"client_user_agent": ev.UserAgent,
	}
	// PII must be SHA-256 hashed before transmission
	if ev.Email != "" {
		userData["em"] = hashField(ev.Email)
	}
	if ev.Phone != "" {
		userData["ph"] = hashField(ev.Phone)
	}
	if ev.FBP != "" {
		userData["fbp"] = ev.FBP
	}
	if ev.FBC != "" {
		userData["fbc"] = ev.FBC
	}

	payload := map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"event_name":    "Purchase",
				"event_time":    time.Now().Unix(),
				"action_source": "website",
				"user_data":     userData,
				"custom_data": map[string]interface{}{
					"currency": "BDT",
					"value":    ev.GrandTotal,
					"order_id": ev.OrderNumber,
				},
				// event_id deduplicates repeated deliveries on the FB side
				"event_id":     ev.OrderNumber,
				"access_token": n.accessToken,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s/events", n.endpoint, n.pixelID)
	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("conversions API returned %d", resp.StatusCode)
	}
	return nil
}

func hashField(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}
