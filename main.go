package main

import (
	"fmt"
	"log"
	"os"
	"time"

	paymentControllers "github.com/FakrulHasanSajib/Ecom-pro/controllers/payment"
	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"github.com/FakrulHasanSajib/Ecom-pro/routes"
	"github.com/FakrulHasanSajib/Ecom-pro/settings"
	"github.com/FakrulHasanSajib/Ecom-pro/tracking"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatus{},
		&models.Transaction{},
		&models.FraudLog{},
		&models.Coupon{},
		&models.Setting{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Seed default settings (gateway sandbox credentials, frontend URL)
	if err := settings.Seed(db); err != nil {
		log.Fatalf("❌ Settings seed failed: %v", err)
	}
	store := settings.NewStore(db)

	gateway := paymentControllers.NewGateway(db, store)
	notifier := tracking.NewNotifier(
		os.Getenv("FACEBOOK_PIXEL_ID"),
		os.Getenv("FACEBOOK_ACCESS_TOKEN"),
		os.Getenv("APP_ENV"),
	)
	defer notifier.Close()

	// Gin setup
	gin.EnableJsonDecoderDisallowUnknownFields()
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, store, gateway, notifier)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
