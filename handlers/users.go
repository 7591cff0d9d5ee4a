package handlers

import (
	"net/http"
	"strings"

	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ListUsers returns a paginated user listing with optional filters
// (is_active, role, email substring) (admin only)
func (h *Handler) ListUsers(c *gin.Context) {
	page, perPage, ok := pageParams(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	query := h.db.Model(&models.User{})

	if isActive := c.Query("is_active"); isActive != "" {
		switch strings.ToLower(isActive) {
		case "true":
			query = query.Where("is_active = ?", true)
		case "false":
			query = query.Where("is_active = ?", false)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_active parameter must be 'true' or 'false'"})
			return
		}
	}

	if role := strings.ToUpper(c.Query("role")); role != "" {
		if !models.IsValidRole(role) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "Invalid role",
				"valid_roles": models.ValidRoles(),
			})
			return
		}
		query = query.Where("role = ?", role)
	}

	if email := strings.TrimSpace(c.Query("email")); email != "" {
		query = query.Where("email LIKE ?", "%"+email+"%")
	}

	var total int64
	query.Count(&total)

	var users []models.User
	query.Order("created_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users)

	c.JSON(http.StatusOK, paginated(total, page, perPage, users))
}

// GetUser returns a single user by id
func (h *Handler) GetUser(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
}

// UpdateUser edits any account (admin only)
func (h *Handler) UpdateUser(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		var existing models.User
		if err := h.db.Where("email = ? AND id != ?", *req.Email, user.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
			return
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		role := strings.ToUpper(*req.Role)
		if !models.IsValidRole(role) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "Invalid role",
				"valid_roles": models.ValidRoles(),
			})
			return
		}
		user.Role = models.UserRole(role)
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

type DeleteUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// DeleteUser removes an account by email, cascading to its owned orders
// (admin only).
func (h *Handler) DeleteUser(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var orders []models.Order
		if err := tx.Where("user_id = ?", user.ID).Find(&orders).Error; err != nil {
			return err
		}
		for i := range orders {
			if err := tx.Where("order_id = ?", orders[i].ID).Delete(&models.OrderDetail{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User " + req.Email + " deleted successfully"})
}
