package handlers

import (
	"strconv"

	"restaurant-api/config"
	"restaurant-api/mailer"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler carries the application context: every route gets its persistence
// and notification access through this struct instead of package globals.
type Handler struct {
	db   *gorm.DB
	cfg  *config.Config
	mail mailer.Sender
}

func New(db *gorm.DB, cfg *config.Config, mail mailer.Sender) *Handler {
	return &Handler{db: db, cfg: cfg, mail: mail}
}

// pageParams reads the 1-based page and per_page query parameters
func pageParams(c *gin.Context) (page, perPage int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, false
	}
	perPage, err = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		return 0, 0, false
	}
	return page, perPage, true
}

// paginated builds the standard list envelope
func paginated(total int64, page, perPage int, items any) gin.H {
	pages := (int(total) + perPage - 1) / perPage
	return gin.H{
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"pages":    pages,
		"items":    items,
	}
}

func orderStatusNames() []string {
	statuses := models.ValidOrderStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}

func reservationStatusNames() []string {
	statuses := models.ValidReservationStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}
