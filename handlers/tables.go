package handlers

import (
	"net/http"
	"strings"

	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

type CreateTableRequest struct {
	Number int `json:"number" binding:"required"`
	Chairs int `json:"chairs" binding:"required,min=1"`
}

// CreateTable adds a new table, starting FREE (admin only)
func (h *Handler) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table := models.Table{
		Number: req.Number,
		Chairs: req.Chairs,
		Status: models.TableFree,
	}
	if err := h.db.Create(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Table created successfully", "table": table})
}

// ListTables returns every table with its current status
func (h *Handler) ListTables(c *gin.Context) {
	var tables []models.Table
	if err := h.db.Order("number asc").Find(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

type UpdateTableRequest struct {
	Number *int    `json:"number"`
	Chairs *int    `json:"chairs"`
	Status *string `json:"status"`
}

// UpdateTable edits a table (admin only)
func (h *Handler) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := h.db.First(&table, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Number != nil {
		table.Number = *req.Number
	}
	if req.Chairs != nil {
		table.Chairs = *req.Chairs
	}
	if req.Status != nil {
		status := strings.ToUpper(*req.Status)
		if !models.IsValidTableStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Use one of: FREE, RESERVED, OCCUPIED"})
			return
		}
		table.Status = models.TableStatus(status)
	}

	if err := h.db.Save(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table updated successfully", "table": table})
}

// DeleteTable removes a table (admin only)
func (h *Handler) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := h.db.First(&table, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	if err := h.db.Delete(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully"})
}
