// kmapin-logistics/main.go
package main

import (
	"log/slog"
	"os"

	"kmapin-logistics/config"
	"kmapin-logistics/internal/handlers"
	"kmapin-logistics/internal/routes"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
)

func main() {
	// Структурированный логгер в JSON — единый для всего приложения.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config.ConnectDB()
	config.ConnectRedis()

	// Gemini нужен только для классификации грузов — приложение работает и без него.
	if err := config.InitGoogleServices(); err != nil {
		slog.Warn("Gemini client not initialized, cargo classification disabled", "error", err)
	}

	// Автомиграция всех моделей.
	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Country{},
		&models.Client{},
		&models.Quote{},
		&models.QuotePackage{},
		&models.Shipment{},
		&models.PickupRequest{},
		&models.PricingRule{},
		&models.ActivityLog{},
	)
	if err != nil {
		slog.Error("Ошибка автомиграции", "error", err)
		os.Exit(1)
	}

	// Хаб рассылает события бэк-офиса подключённым по WebSocket пользователям.
	go handlers.GlobalHub.Run()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("Запуск сервера", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Сервер остановлен с ошибкой", "error", err)
		os.Exit(1)
	}
}
