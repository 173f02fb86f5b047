package orderControllers

import (
	"net/http"

	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateOrderStatusRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	ColorClass string `json:"color_class"`
}

func ListOrderStatusesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var statuses []models.OrderStatus
		if err := db.Order("id").Find(&statuses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": statuses})
	}
}

func CreateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.ColorClass == "" {
			req.ColorClass = "text-slate-800"
		}
		status := models.OrderStatus{Name: req.Name, ColorClass: req.ColorClass}
		if err := db.Create(&status).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status already exists"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Status added successfully", "data": status})
	}
}

func DeleteOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Where("id = ?", c.Param("id")).Delete(&models.OrderStatus{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "status not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Status deleted successfully"})
	}
}
