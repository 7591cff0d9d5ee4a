package handlers

import (
	"net/http"

	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// replaceProductIngredients implements the only supported update mode for
// product-ingredient associations: drop the product's entire set and insert
// the provided one. Partial edits are not supported.
func replaceProductIngredients(tx *gorm.DB, productID uint, lines []IngredientLineRequest) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductIngredient{}).Error; err != nil {
		return err
	}
	for _, line := range lines {
		link := models.ProductIngredient{
			ProductID:    productID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetProductIngredients lists a product's ingredient associations
func (h *Handler) GetProductIngredients(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var links []models.ProductIngredient
	if err := h.db.Preload("Ingredient").
		Where("product_id = ?", product.ID).Find(&links).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list product ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": links})
}

type SetProductIngredientsRequest struct {
	Ingredients []IngredientLineRequest `json:"ingredients" binding:"required,dive"`
}

// SetProductIngredients replaces a product's whole ingredient set
func (h *Handler) SetProductIngredients(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req SetProductIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		return replaceProductIngredients(tx, product.ID, req.Ingredients)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product ingredients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Ingredients updated successfully",
		"product_id": product.ID,
	})
}

type CreateIngredientRequest struct {
	Name         string `json:"name" binding:"required"`
	Stock        int    `json:"stock" binding:"min=0"`
	Unit         string `json:"unit" binding:"required"`
	MinimumStock int    `json:"minimum_stock" binding:"min=0"`
}

// CreateIngredient adds a stock item (admin only)
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient := models.Ingredient{
		Name:         req.Name,
		Stock:        req.Stock,
		Unit:         req.Unit,
		MinimumStock: req.MinimumStock,
	}
	if err := h.db.Create(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ingredient"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Ingredient created successfully", "ingredient": ingredient})
}

// ListIngredients returns all stock items
func (h *Handler) ListIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := h.db.Order("name asc").Find(&ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// ListLowStockIngredients returns items at or under their minimum stock
func (h *Handler) ListLowStockIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := h.db.Where("stock <= minimum_stock").Find(&ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

type UpdateIngredientRequest struct {
	Name         *string `json:"name"`
	Stock        *int    `json:"stock"`
	Unit         *string `json:"unit"`
	MinimumStock *int    `json:"minimum_stock"`
}

// UpdateIngredient edits a stock item (admin only)
func (h *Handler) UpdateIngredient(c *gin.Context) {
	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	var req UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		ingredient.Name = *req.Name
	}
	if req.Stock != nil {
		ingredient.Stock = *req.Stock
	}
	if req.Unit != nil {
		ingredient.Unit = *req.Unit
	}
	if req.MinimumStock != nil {
		ingredient.MinimumStock = *req.MinimumStock
	}

	if err := h.db.Save(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ingredient"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient updated successfully", "ingredient": ingredient})
}

// DeleteIngredient removes a stock item (admin only)
func (h *Handler) DeleteIngredient(c *gin.Context) {
	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	if err := h.db.Delete(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ingredient"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted successfully"})
}
