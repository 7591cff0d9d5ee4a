package handlers

import (
	"net/http"
	"time"

	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

type dailySales struct {
	Date   string  `json:"date"`
	Orders int64   `json:"orders"`
	Sales  float64 `json:"sales"`
}

// GetSalesAnalytics returns per-day order counts and revenue for the
// last 30 days (admin only).
func (h *Handler) GetSalesAnalytics(c *gin.Context) {
	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -30)

	var rows []dailySales
	if err := h.db.Model(&models.Order{}).
		Select("date(created_at) AS date, count(id) AS orders, coalesce(sum(total), 0) AS sales").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("date(created_at)").
		Order("date(created_at)").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sales data"})
		return
	}

	if rows == nil {
		rows = []dailySales{}
	}
	c.JSON(http.StatusOK, rows)
}

// GetStats returns the dashboard counters: order volume, revenue and
// catalog size (admin only).
func (h *Handler) GetStats(c *gin.Context) {
	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Select("coalesce(sum(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	averageOrder := 0.0
	if totalOrders > 0 {
		averageOrder = totalRevenue / float64(totalOrders)
	}

	var totalProducts int64
	h.db.Model(&models.Product{}).Count(&totalProducts)

	c.JSON(http.StatusOK, gin.H{
		"totalOrders":       totalOrders,
		"totalRevenue":      totalRevenue,
		"averageOrderValue": averageOrder,
		"totalProducts":     totalProducts,
	})
}
