package handlers

import (
	"net/http"
	"strings"

	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IngredientLineRequest struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	Unit         string  `json:"unit"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	ProductType string  `json:"product_type" binding:"required"`

	// DISH payload
	DishType        string `json:"dish_type"`
	PreparationTime int    `json:"preparation_time"`
	// DRINK payload
	DrinkType string `json:"drink_type"`
	Volume    int    `json:"volume"`

	Ingredients []IngredientLineRequest `json:"ingredients"`
}

// ListProducts returns the combined active catalog, paginated, with search
// and type filter (public)
func (h *Handler) ListProducts(c *gin.Context) {
	page, perPage, ok := pageParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	query := h.db.Model(&models.Product{}).
		Preload("Dish").Preload("Drink").
		Where("is_active = ?", true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("name LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if kind := strings.ToUpper(strings.TrimSpace(c.Query("type"))); kind != "" {
		if kind != string(models.TypeDish) && kind != string(models.TypeDrink) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product type. Use DISH or DRINK"})
			return
		}
		query = query.Where("type = ?", kind)
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	query.Order("name asc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&products)

	c.JSON(http.StatusOK, paginated(total, page, perPage, products))
}

// GetProduct returns one catalog entry with its variant payload
func (h *Handler) GetProduct(c *gin.Context) {
	var product models.Product
	if err := h.db.Preload("Dish").Preload("Drink").
		First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct adds a dish or drink: one product row plus exactly one
// specialization row, and the optional ingredient set, in one transaction
// (admin only)
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	switch strings.ToUpper(req.ProductType) {
	case string(models.TypeDish):
		dishType := strings.ToUpper(req.DishType)
		if !models.IsValidDishType(dishType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish type. Use one of: APPETIZER, MAIN, DESSERT"})
			return
		}
		product.Type = models.TypeDish
		product.Dish = &models.DishDetail{
			DishType:        models.DishType(dishType),
			PreparationTime: req.PreparationTime,
		}
	case string(models.TypeDrink):
		drinkType := strings.ToUpper(req.DrinkType)
		if !models.IsValidDrinkType(drinkType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drink type. Use one of: SODA, NATURAL, BEER, SPIRITS"})
			return
		}
		product.Type = models.TypeDrink
		product.Drink = &models.DrinkDetail{
			DrinkType: models.DrinkType(drinkType),
			Volume:    req.Volume,
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product type. Use DISH or DRINK"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return replaceProductIngredients(tx, product.ID, req.Ingredients)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`

	DishType        *string `json:"dish_type"`
	PreparationTime *int    `json:"preparation_time"`
	DrinkType       *string `json:"drink_type"`
	Volume          *int    `json:"volume"`

	Ingredients []IngredientLineRequest `json:"ingredients"`
}

// UpdateProduct edits a catalog entry and, when an ingredient set is
// supplied, replaces the whole association set (admin only)
func (h *Handler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := h.db.Preload("Dish").Preload("Drink").
		First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if product.Type == models.TypeDish && product.Dish != nil {
		if req.DishType != nil {
			dishType := strings.ToUpper(*req.DishType)
			if !models.IsValidDishType(dishType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish type. Use one of: APPETIZER, MAIN, DESSERT"})
				return
			}
			product.Dish.DishType = models.DishType(dishType)
		}
		if req.PreparationTime != nil {
			product.Dish.PreparationTime = *req.PreparationTime
		}
	}
	if product.Type == models.TypeDrink && product.Drink != nil {
		if req.DrinkType != nil {
			drinkType := strings.ToUpper(*req.DrinkType)
			if !models.IsValidDrinkType(drinkType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drink type. Use one of: SODA, NATURAL, BEER, SPIRITS"})
				return
			}
			product.Drink.DrinkType = models.DrinkType(drinkType)
		}
		if req.Volume != nil {
			product.Drink.Volume = *req.Volume
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error; err != nil {
			return err
		}
		if req.Ingredients != nil {
			return replaceProductIngredients(tx, product.ID, req.Ingredients)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// DeleteProduct removes a product with its specialization row and
// ingredient associations (admin only)
func (h *Handler) DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.DishDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.DrinkDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetTopSellingProducts returns the five products with the most order lines
func (h *Handler) GetTopSellingProducts(c *gin.Context) {
	type topProduct struct {
		ID           uint    `json:"id"`
		Name         string  `json:"name"`
		TotalSold    int64   `json:"total_sold"`
		TotalRevenue float64 `json:"total_revenue"`
	}

	var results []topProduct
	err := h.db.Model(&models.OrderDetail{}).
		Select("products.id AS id, products.name AS name, COUNT(order_details.id) AS total_sold, SUM(order_details.quantity * order_details.unit_price) AS total_revenue").
		Joins("JOIN products ON products.id = COALESCE(order_details.dish_id, order_details.drink_id)").
		Group("products.id").
		Order("total_sold DESC").
		Limit(5).
		Scan(&results).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute top sellers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": results})
}
