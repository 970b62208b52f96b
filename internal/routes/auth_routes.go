package routes

import (
	"kmapin-logistics/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes регистрирует публичные маршруты.
// Эти маршруты не требуют middleware для проверки токена.
func RegisterAuthRoutes(r *gin.Engine) {
	// Обработка формы входа.
	r.POST("/login", handlers.LoginHandler)

	// Выход пользователя из системы.
	r.GET("/logout", handlers.LogoutHandler)

	// Регистрация нового пользователя (роли назначает администратор).
	r.POST("/register", handlers.RegisterHandler)

	// Публичный трекинг отгрузки по номеру — для клиентов без учётной записи.
	r.GET("/track/:number", handlers.TrackShipmentHandler)
}
