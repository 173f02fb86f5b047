package productControllers

import (
	"errors"
	"net/http"

	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductInput struct {
	CategoryID  *uint    `json:"category_id"`
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"base_price" binding:"required"`
	SalePrice   *float64 `json:"sale_price"`
	TotalStock  int      `json:"total_stock"`
	Status      string   `json:"status"`
	Thumbnail   string   `json:"thumbnail"`
}

// CreateProduct adds a product to the catalog (admin).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Status == "" {
			input.Status = "active"
		}
		product := models.Product{
			CategoryID:  input.CategoryID,
			Name:        input.Name,
			Slug:        input.Slug,
			SKU:         input.SKU,
			Description: input.Description,
			BasePrice:   input.BasePrice,
			SalePrice:   input.SalePrice,
			TotalStock:  input.TotalStock,
			Status:      input.Status,
			Thumbnail:   input.Thumbnail,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product (duplicate slug?)"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct replaces the editable fields of a product (admin).
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product.CategoryID = input.CategoryID
		product.Name = input.Name
		product.Slug = input.Slug
		product.SKU = input.SKU
		product.Description = input.Description
		product.BasePrice = input.BasePrice
		product.SalePrice = input.SalePrice
		product.TotalStock = input.TotalStock
		if input.Status != "" {
			product.Status = input.Status
		}
		product.Thumbnail = input.Thumbnail

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProduct soft-deletes a product (admin).
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Where("id = ?", c.Param("id")).Delete(&models.Product{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
