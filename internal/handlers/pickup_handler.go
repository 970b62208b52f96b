// kmapin-logistics/internal/handlers/pickup_handler.go
// Обработчики заявок на забор груза: CRUD и workflow
// new -> in_progress -> completed/cancelled.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"kmapin-logistics/config"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
)

// PickupInput определяет структуру для создания/обновления заявки на забор.
type PickupInput struct {
	ClientID         uint       `json:"clientId" binding:"required"`
	Address          string     `json:"address" binding:"required"`
	City             string     `json:"city"`
	ContactName      string     `json:"contactName"`
	ContactPhone     string     `json:"contactPhone"`
	ScheduledDate    *time.Time `json:"scheduledDate"`
	CargoDescription string     `json:"cargoDescription"`
	Comments         string     `json:"comments"`
}

// ListPickupsHandler возвращает список заявок с пагинацией и фильтрами.
func ListPickupsHandler(c *gin.Context) {
	var pickups []models.PickupRequest
	query := config.DB.Preload("Client").Order("scheduled_date asc, created_at desc")
	countQuery := config.DB.Model(&models.PickupRequest{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
		countQuery = countQuery.Where("client_id = ?", clientID)
	}

	var totalRows int64
	countQuery.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&pickups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch pickup requests"})
		return
	}

	if pickups == nil {
		pickups = make([]models.PickupRequest, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, pickups, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}

// GetPickupHandler получает одну заявку по ID.
func GetPickupHandler(c *gin.Context) {
	id := c.Param("id")
	var pickup models.PickupRequest
	if err := config.DB.Preload("Client").First(&pickup, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup request not found"})
		return
	}
	c.JSON(http.StatusOK, pickup)
}

// CreatePickupHandler создает новую заявку на забор груза.
func CreatePickupHandler(c *gin.Context) {
	var input PickupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client
	if err := config.DB.First(&client, input.ClientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	pickup := models.PickupRequest{
		ClientID:         input.ClientID,
		Address:          input.Address,
		City:             input.City,
		ContactName:      input.ContactName,
		ContactPhone:     input.ContactPhone,
		ScheduledDate:    input.ScheduledDate,
		CargoDescription: input.CargoDescription,
		Status:           models.PickupStatusNew,
		Comments:         input.Comments,
	}

	if err := config.DB.Create(&pickup).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pickup request"})
		return
	}

	logActivity(c, "pickup", pickup.ID, "created", "Заявка на забор груза создана для "+client.CompanyName)
	c.JSON(http.StatusCreated, pickup)
}

// UpdatePickupHandler обновляет заявку. Завершённые и отменённые не редактируются.
func UpdatePickupHandler(c *gin.Context) {
	id := c.Param("id")
	var pickup models.PickupRequest
	if err := config.DB.First(&pickup, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup request not found"})
		return
	}

	if pickup.Status == models.PickupStatusCompleted || pickup.Status == models.PickupStatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Completed or cancelled pickup requests cannot be edited"})
		return
	}

	var input PickupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pickup.ClientID = input.ClientID
	pickup.Address = input.Address
	pickup.City = input.City
	pickup.ContactName = input.ContactName
	pickup.ContactPhone = input.ContactPhone
	pickup.ScheduledDate = input.ScheduledDate
	pickup.CargoDescription = input.CargoDescription
	pickup.Comments = input.Comments

	if err := config.DB.Save(&pickup).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pickup request"})
		return
	}

	logActivity(c, "pickup", pickup.ID, "updated", "Заявка на забор груза обновлена")
	c.JSON(http.StatusOK, pickup)
}

// DeletePickupHandler мягко удаляет заявку.
func DeletePickupHandler(c *gin.Context) {
	id := c.Param("id")
	if result := config.DB.Delete(&models.PickupRequest{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pickup request"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup request not found"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Pickup request deleted successfully"})
	}
}

// transitionPickup переводит заявку в новый статус с проверкой допустимости.
func transitionPickup(c *gin.Context, newStatus, action, details string) {
	id := c.Param("id")
	var pickup models.PickupRequest
	if err := config.DB.First(&pickup, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pickup request not found"})
		return
	}

	if !models.PickupCanTransition(pickup.Status, newStatus) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Переход статуса %s -> %s недопустим", pickup.Status, newStatus),
		})
		return
	}

	pickup.Status = newStatus
	if err := config.DB.Save(&pickup).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pickup status"})
		return
	}

	logActivity(c, "pickup", pickup.ID, action, details)
	c.JSON(http.StatusOK, pickup)
}

// StartPickupHandler берёт заявку в работу.
func StartPickupHandler(c *gin.Context) {
	transitionPickup(c, models.PickupStatusInProgress, "started", "Заявка взята в работу")
}

// CompletePickupHandler завершает заявку.
func CompletePickupHandler(c *gin.Context) {
	transitionPickup(c, models.PickupStatusCompleted, "completed", "Груз забран")
}

// CancelPickupHandler отменяет заявку.
func CancelPickupHandler(c *gin.Context) {
	transitionPickup(c, models.PickupStatusCancelled, "cancelled", "Заявка отменена")
}

// GetPickupHistoryHandler возвращает таймлайн событий по заявке.
func GetPickupHistoryHandler(c *gin.Context) {
	listEntityHistory(c, "pickup")
}
