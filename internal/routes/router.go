package routes

import (
	"kmapin-logistics/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes инициализирует все маршруты приложения.
func SetupRoutes(r *gin.Engine) {
	// --- Публичные маршруты ---
	// Вход, регистрация и публичный трекинг отгрузок не требуют аутентификации.
	RegisterAuthRoutes(r)

	// --- Защищенная группа маршрутов ---
	// Middleware `AuthMiddleware` проверяет наличие и валидность JWT токена.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
