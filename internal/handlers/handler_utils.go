package handlers

import (
	"encoding/json"
	"log/slog"
	"strings"

	"kmapin-logistics/config"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// newQuoteReference генерирует уникальный номер котировки вида Q-1A2B3C4D.
func newQuoteReference() string {
	return "Q-" + strings.ToUpper(uuid.NewString()[:8])
}

// newTrackingNumber генерирует трек-номер отгрузки вида KMP-1A2B3C4D.
func newTrackingNumber() string {
	return "KMP-" + strings.ToUpper(uuid.NewString()[:8])
}

// currentUserID возвращает ID пользователя из контекста запроса (0, если его нет).
func currentUserID(c *gin.Context) *uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// logActivity сохраняет запись в журнал событий и рассылает её
// подключённым по WebSocket пользователям бэк-офиса.
func logActivity(c *gin.Context, entityType string, entityID uint, action, details string) {
	entry := models.ActivityLog{
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     currentUserID(c),
		Action:     action,
		Details:    details,
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		slog.Error("Failed to write activity log", "error", err, "entity", entityType, "entity_id", entityID)
		return
	}

	config.DB.Preload("User").First(&entry, entry.ID)

	payload, err := json.Marshal(EventMessage{Type: "activity", Payload: entry})
	if err != nil {
		slog.Error("Failed to marshal activity event", "error", err)
		return
	}
	GlobalHub.Broadcast(payload)
}
