package settings

import (
	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"gorm.io/gorm"
)

// defaults seeded on first boot so a fresh deployment can reach the sandbox
// gateway without manual setup.
var defaults = []models.Setting{
	{Group: "general", Key: "site_name", Value: "Ecom Pro", Type: "text"},
	{Group: "general", Key: "frontend_url", Value: "http://localhost:3000", Type: "text"},
	{Group: "payment", Key: "ssl_store_id", Value: "testbox", Type: "text"},
	{Group: "payment", Key: "ssl_store_password", Value: "qwerty", Type: "password"},
	{Group: "payment", Key: "ssl_sandbox_mode", Value: "1", Type: "boolean"},
}

// Seed inserts the default settings rows that are not present yet.
func Seed(db *gorm.DB) error {
	for _, def := range defaults {
		var count int64
		if err := db.Model(&models.Setting{}).Where("key = ?", def.Key).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&def).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
