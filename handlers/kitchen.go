package handlers

import (
	"net/http"
	"strings"

	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetKitchenOrders returns the paginated, status-filterable order queue for
// kitchen staff
func (h *Handler) GetKitchenOrders(c *gin.Context) {
	page, perPage, ok := pageParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	query := h.db.Model(&models.Order{}).
		Preload("User").Preload("Creator").Preload("Table").Preload("Details")

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
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

type KitchenStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateKitchenOrderStatus applies a kitchen state transition. Anything
// outside the kitchen transition table is rejected with no state change.
func (h *Handler) UpdateKitchenOrderStatus(c *gin.Context) {
	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req KitchenStatusRequest
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

	if err := h.db.Model(&order).Update("status", newStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	body, _ := h.serializeOrder(order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": body})
}

// GetPendingOrdersCount counts orders that are pending or in progress
func (h *Handler) GetPendingOrdersCount(c *gin.Context) {
	var count int64
	if err := h.db.Model(&models.Order{}).
		Where("status IN ?", []models.OrderStatus{models.StatusPending, models.StatusInProgress}).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
