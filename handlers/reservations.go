package handlers

import (
	"net/http"
	"strings"
	"time"

	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const reservationTimeLayout = "2006-01-02 15:04:05"

type CreateReservationRequest struct {
	UserID            *uint  `json:"user_id"`
	GuestName         string `json:"guest_name" binding:"required"`
	GuestPhone        string `json:"guest_phone" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Quantity          int    `json:"quantity" binding:"required,min=1"`
	TableID           *uint  `json:"table_id"`
	Status            string `json:"status"`
	StartDateTime     string `json:"start_date_time" binding:"required"`
	AdditionalDetails string `json:"additional_details"`
}

// CreateReservation stores a reservation request. A table assigned while the
// reservation is pre-arrival (PENDING or CONFIRMED) is marked RESERVED in
// the same transaction. Notification mail is best-effort.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := strings.ToUpper(req.Status)
	if status == "" {
		status = string(models.ReservationPending)
	}
	if !models.IsValidReservationStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Invalid status",
			"valid_statuses": reservationStatusNames(),
		})
		return
	}

	startAt, err := time.Parse(reservationTimeLayout, req.StartDateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD HH:MM:SS"})
		return
	}

	reservation := models.Reservation{
		UserID:            req.UserID,
		GuestName:         req.GuestName,
		GuestPhone:        req.GuestPhone,
		Email:             req.Email,
		Quantity:          req.Quantity,
		TableID:           req.TableID,
		Status:            models.ReservationStatus(status),
		StartDateTime:     startAt,
		AdditionalDetails: req.AdditionalDetails,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		if reservation.TableID != nil &&
			(reservation.Status == models.ReservationPending || reservation.Status == models.ReservationConfirmed) {
			return tx.Model(&models.Table{}).Where("id = ?", *reservation.TableID).
				Update("status", models.TableReserved).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	// Delivery failure never rolls back the reservation
	emailSent := h.mail.SendReservation(&reservation)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created successfully",
		"reservation": reservation,
		"email_sent":  emailSent,
	})
}

// ListReservations returns reservations, paginated, searchable by guest
// name or email and filterable by status and date
func (h *Handler) ListReservations(c *gin.Context) {
	page, perPage, ok := pageParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	query := h.db.Model(&models.Reservation{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("guest_name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		if !models.IsValidReservationStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Invalid status",
				"valid_statuses": reservationStatusNames(),
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	if date := strings.TrimSpace(c.Query("date")); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		query = query.Where("start_date_time >= ? AND start_date_time < ?", day, day.AddDate(0, 0, 1))
	}

	var total int64
	query.Count(&total)

	var reservations []models.Reservation
	query.Order("start_date_time desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&reservations)

	c.JSON(http.StatusOK, paginated(total, page, perPage, reservations))
}

type UpdateReservationRequest struct {
	GuestName         *string `json:"guest_name"`
	GuestPhone        *string `json:"guest_phone"`
	Email             *string `json:"email"`
	Quantity          *int    `json:"quantity"`
	Status            *string `json:"status"`
	StartDateTime     *string `json:"start_date_time"`
	AdditionalDetails *string `json:"additional_details"`
}

// UpdateReservation edits a reservation and keeps its table's status in
// step: CONFIRMED marks the table RESERVED, PENDING marks it OCCUPIED,
// COMPLETED and CANCELLED free it.
func (h *Handler) UpdateReservation(c *gin.Context) {
	var reservation models.Reservation
	if err := h.db.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.GuestName != nil {
		reservation.GuestName = *req.GuestName
	}
	if req.GuestPhone != nil {
		reservation.GuestPhone = *req.GuestPhone
	}
	if req.Email != nil {
		reservation.Email = *req.Email
	}
	if req.Quantity != nil {
		reservation.Quantity = *req.Quantity
	}
	if req.AdditionalDetails != nil {
		reservation.AdditionalDetails = *req.AdditionalDetails
	}
	if req.Status != nil {
		status := strings.ToUpper(*req.Status)
		if !models.IsValidReservationStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Invalid status",
				"valid_statuses": reservationStatusNames(),
			})
			return
		}
		reservation.Status = models.ReservationStatus(status)
	}
	if req.StartDateTime != nil {
		startAt, err := time.Parse(reservationTimeLayout, *req.StartDateTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD HH:MM:SS"})
			return
		}
		reservation.StartDateTime = startAt
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		if reservation.TableID == nil {
			return nil
		}

		var tableStatus models.TableStatus
		switch reservation.Status {
		case models.ReservationConfirmed:
			tableStatus = models.TableReserved
		case models.ReservationPending:
			tableStatus = models.TableOccupied
		case models.ReservationCompleted, models.ReservationCancelled:
			tableStatus = models.TableFree
		default:
			return nil
		}
		return tx.Model(&models.Table{}).Where("id = ?", *reservation.TableID).
			Update("status", tableStatus).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation updated successfully", "reservation": reservation})
}

// DeleteReservation removes a reservation, freeing its table unconditionally
func (h *Handler) DeleteReservation(c *gin.Context) {
	var reservation models.Reservation
	if err := h.db.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if reservation.TableID != nil {
			if err := tx.Model(&models.Table{}).Where("id = ?", *reservation.TableID).
				Update("status", models.TableFree).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&reservation).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reservation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}
