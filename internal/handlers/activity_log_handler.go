// kmapin-logistics/internal/handlers/activity_log_handler.go
package handlers

import (
	"net/http"

	"kmapin-logistics/config"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
)

// listEntityHistory возвращает таймлайн событий для сущности из URL (:id).
// Общий код для /quotes/:id/history, /shipments/:id/history и т.д.
func listEntityHistory(c *gin.Context, entityType string) {
	var logs []models.ActivityLog
	err := config.DB.Preload("User").
		Where("entity_type = ? AND entity_id = ?", entityType, c.Param("id")).
		Order("created_at desc").
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch history"})
		return
	}

	if logs == nil {
		logs = make([]models.ActivityLog, 0)
	}
	c.JSON(http.StatusOK, logs)
}

// ListActivityHandler возвращает последние события по всему бэк-офису
// (источник данных для общей ленты активности).
func ListActivityHandler(c *gin.Context) {
	var logs []models.ActivityLog
	query := config.DB.Preload("User").Order("created_at desc")
	countQuery := config.DB.Model(&models.ActivityLog{})

	if entityType := c.Query("entityType"); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
		countQuery = countQuery.Where("entity_type = ?", entityType)
	}

	var totalRows int64
	countQuery.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch activity"})
		return
	}

	if logs == nil {
		logs = make([]models.ActivityLog, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, logs, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}
