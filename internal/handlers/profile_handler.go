// kmapin-logistics/internal/handlers/profile_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"kmapin-logistics/config"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GetProfileHandler возвращает профиль текущего пользователя.
func GetProfileHandler(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var user models.User
	if err := config.DB.Preload("Roles").First(&user, *userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfileInput - данные формы редактирования профиля.
type UpdateProfileInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password"` // новый пароль, если нужно сменить
}

// UpdateProfileHandler обновляет профиль текущего пользователя.
func UpdateProfileHandler(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, *userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	user.Phone = input.Phone

	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.Password = string(hashedPassword)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// Сбрасываем кэш, чтобы изменения применились сразу.
	if config.RDB != nil {
		config.RDB.Del(config.Ctx, fmt.Sprintf("user:%d:data", user.ID))
	}

	c.JSON(http.StatusOK, user)
}
