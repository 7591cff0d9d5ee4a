package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderLineRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Products []OrderLineRequest `json:"products" binding:"required,min=1,dive"`
	TableID  *uint              `json:"table_id"`
	TakeAway bool               `json:"take_away"`
}

// buildOrderLines resolves each requested product and snapshots its name and
// the submitted price into detail rows. The returned total is the exact sum
// of unit_price x quantity with 2dp rounding at the line level.
func buildOrderLines(tx *gorm.DB, lines []OrderLineRequest) ([]models.OrderDetail, float64, error) {
	var details []models.OrderDetail
	var total float64

	for _, line := range lines {
		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			return nil, 0, err
		}

		detail := models.OrderDetail{
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price,
		}
		id := product.ID
		if product.Type == models.TypeDish {
			detail.DishID = &id
		} else {
			detail.DrinkID = &id
		}

		total += detail.Subtotal()
		details = append(details, detail)
	}

	return details, math.Round(total*100) / 100, nil
}

// serializeOrder loads an order with its relationships. When relationship
// loading fails unexpectedly the scalar fields are still returned with
// placeholder text instead of failing the request.
func (h *Handler) serializeOrder(orderID uint) (map[string]any, bool) {
	var order models.Order
	err := h.db.
		Preload("User").Preload("Creator").Preload("Table").Preload("Details").
		First(&order, orderID).Error
	if err == nil {
		return order.Serialize(), true
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false
	}

	// Degraded path: relations failed to resolve, keep the scalars
	if err := h.db.First(&order, orderID).Error; err != nil {
		return nil, false
	}
	return order.SerializeDegraded(), true
}

func serializeOrders(orders []models.Order) []map[string]any {
	out := make([]map[string]any, 0, len(orders))
	for i := range orders {
		out = append(out, orders[i].Serialize())
	}
	return out
}

// ListOrders returns all orders, paginated, searchable by customer email and
// filterable by status
func (h *Handler) ListOrders(c *gin.Context) {
	page, perPage, ok := pageParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	query := h.db.Model(&models.Order{}).
		Preload("User").Preload("Creator").Preload("Table").Preload("Details")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.
			Joins("JOIN users ON users.id = orders.user_id").
			Where("users.email LIKE ?", "%"+search+"%")
	}

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		if !models.IsValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Invalid status",
				"valid_statuses": orderStatusNames(),
			})
			return
		}
		query = query.Where("orders.status = ?", status)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	query.Order("orders.created_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&orders)

	c.JSON(http.StatusOK, paginated(total, page, perPage, serializeOrders(orders)))
}

// CreateOrder opens a new PENDING order for the caller
func (h *Handler) CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		OrderCode: models.NewOrderCode(time.Now()),
		UserID:    &userID,
		CreatorID: userID,
		TableID:   req.TableID,
		Status:    models.StatusPending,
		TakeAway:  req.TakeAway,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		details, total, err := buildOrderLines(tx, req.Products)
		if err != nil {
			return err
		}
		order.Total = total
		order.Details = details
		return tx.Create(&order).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	body, _ := h.serializeOrder(order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": body})
}

// GetOrder returns a single order
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	body, found := h.serializeOrder(uint(id))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": body})
}

type UpdateOrderRequest struct {
	Status   string `json:"status" binding:"required"`
	TakeAway *bool  `json:"take_away"`
}

// UpdateOrder applies a status transition under the role-aware policy:
// KITCHEN callers are bound to the kitchen transition table, every other
// role is unrestricted
func (h *Handler) UpdateOrder(c *gin.Context) {
	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := strings.ToUpper(req.Status)
	if !models.IsValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Invalid status",
			"valid_statuses": orderStatusNames(),
		})
		return
	}
	newStatus := models.OrderStatus(status)

	if err := statemachine.CanTransition(middleware.GetRole(c), order.Status, newStatus); err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error":             err.Error(),
			"current_status":    order.Status,
			"requested":         newStatus,
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	updates := map[string]any{"status": newStatus}
	if req.TakeAway != nil {
		updates["take_away"] = *req.TakeAway
	}
	if err := h.db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	body, _ := h.serializeOrder(order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully", "order": body})
}

// DeleteOrder removes an order and its detail lines; a held table reverts
// to FREE in the same transaction
func (h *Handler) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if order.TableID != nil {
			if err := tx.Model(&models.Table{}).Where("id = ?", *order.TableID).
				Update("status", models.TableFree).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// GetUserOrders returns the caller's own orders, paginated
func (h *Handler) GetUserOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, perPage, ok := pageParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	query := h.db.Model(&models.Order{}).
		Preload("User").Preload("Creator").Preload("Table").Preload("Details").
		Where("user_id = ?", userID)

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" && status != "ALL" {
		if !models.IsValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Invalid status",
				"valid_statuses": orderStatusNames(),
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	query.Order("created_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&orders)

	c.JSON(http.StatusOK, paginated(total, page, perPage, serializeOrders(orders)))
}
