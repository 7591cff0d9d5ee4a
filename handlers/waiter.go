package handlers

import (
	"errors"
	"net/http"
	"time"

	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errTableNotAvailable = errors.New("table is not available")

// GetWaiterOrders returns all orders for floor staff, paginated
func (h *Handler) GetWaiterOrders(c *gin.Context) {
	page, perPage, ok := pageParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	query := h.db.Model(&models.Order{}).
		Preload("User").Preload("Creator").Preload("Table").Preload("Details")

	var total int64
	query.Count(&total)

	var orders []models.Order
	query.Order("created_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&orders)

	c.JSON(http.StatusOK, paginated(total, page, perPage, serializeOrders(orders)))
}

type WaiterOrderRequest struct {
	TableID  uint               `json:"table_id" binding:"required"`
	Products []OrderLineRequest `json:"products" binding:"required,min=1,dive"`
}

// CreateWaiterOrder opens an order against a FREE table. The table check,
// the order insert and the FREE -> OCCUPIED flip share one transaction so a
// failure leaves no side effects.
func (h *Handler) CreateWaiterOrder(c *gin.Context) {
	waiterID := middleware.GetUserID(c)

	var req WaiterOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		OrderCode: models.NewOrderCode(time.Now()),
		UserID:    &waiterID,
		CreatorID: waiterID,
		TableID:   &req.TableID,
		Status:    models.StatusPending,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, req.TableID).Error; err != nil {
			return err
		}
		if table.Status != models.TableFree {
			return errTableNotAvailable
		}

		details, total, err := buildOrderLines(tx, req.Products)
		if err != nil {
			return err
		}
		order.Total = total
		order.Details = details

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Model(&table).Update("status", models.TableOccupied).Error
	})

	switch {
	case errors.Is(err, errTableNotAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": errTableNotAvailable.Error()})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Table or product not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	body, _ := h.serializeOrder(order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": body})
}

// GetFreeTables lists tables a waiter can seat
func (h *Handler) GetFreeTables(c *gin.Context) {
	var tables []models.Table
	if err := h.db.Where("status = ?", models.TableFree).Find(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

// PayOrder marks a READY order delivered and frees its table in the same
// transaction. Any other source state is rejected with no change.
func (h *Handler) PayOrder(c *gin.Context) {
	var order models.Order
	if err := h.db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status != models.StatusReady {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only orders that are ready can be marked as paid"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if order.TableID != nil {
			if err := tx.Model(&models.Table{}).Where("id = ?", *order.TableID).
				Update("status", models.TableFree).Error; err != nil {
				return err
			}
		}
		return tx.Model(&order).Update("status", models.StatusDelivered).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark order as paid"})
		return
	}

	body, _ := h.serializeOrder(order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order marked as paid and table freed", "order": body})
}
