package adminControllers

import (
	"net/http"

	"github.com/FakrulHasanSajib/Ecom-pro/settings"
	"github.com/gin-gonic/gin"
)

// GetSettingsHandler lists all settings rows, password values masked.
func GetSettingsHandler(store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": store.All()})
	}
}

// UpdateSettingsHandler upserts the posted key/value pairs and refreshes the
// in-process cache, so gateway credentials change without a redeploy.
func UpdateSettingsHandler(store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var values map[string]string
		if err := c.ShouldBindJSON(&values); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(values) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no settings provided"})
			return
		}
		if err := store.Update(values); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Settings updated successfully"})
	}
}
