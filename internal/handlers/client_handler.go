// FILE: internal/handlers/client_handler.go
// Описание: обработчики CRUD-операций над клиентами (компаниями-заказчиками).
package handlers

import (
	"net/http"

	"kmapin-logistics/config"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
)

// ClientInput определяет структуру для создания/обновления клиента.
type ClientInput struct {
	CompanyName   string `json:"companyName" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	CountryID     *uint  `json:"countryId"`
	TaxNumber     string `json:"taxNumber"`
	Status        string `json:"status"`
	Comments      string `json:"comments"`
}

// ListClientsHandler возвращает список клиентов с пагинацией.
// Поддерживает `?all=true` для выпадающих списков, `?search=` и `?status=`.
func ListClientsHandler(c *gin.Context) {
	var clients []models.Client
	query := config.DB.Preload("Country").Order("company_name asc")
	countQuery := config.DB.Model(&models.Client{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		filter := "company_name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ?"
		query = query.Where(filter, like, like, like)
		countQuery = countQuery.Where(filter, like, like, like)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}

	if c.Query("all") == "true" {
		if err := query.Find(&clients).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch clients"})
			return
		}
		c.JSON(http.StatusOK, clients)
		return
	}

	var totalRows int64
	countQuery.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch clients"})
		return
	}

	if clients == nil {
		clients = make([]models.Client, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, clients, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}

// GetClientHandler получает одного клиента по ID.
func GetClientHandler(c *gin.Context) {
	id := c.Param("id")
	var client models.Client
	if err := config.DB.Preload("Country").First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClientHandler создает нового клиента.
func CreateClientHandler(c *gin.Context) {
	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := input.Status
	if status == "" {
		status = "active"
	}

	client := models.Client{
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		City:          input.City,
		CountryID:     input.CountryID,
		TaxNumber:     input.TaxNumber,
		Status:        status,
		Comments:      input.Comments,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	logActivity(c, "client", client.ID, "created", "Клиент "+client.CompanyName+" создан")
	c.JSON(http.StatusCreated, client)
}

// UpdateClientHandler обновляет существующего клиента.
func UpdateClientHandler(c *gin.Context) {
	id := c.Param("id")
	var client models.Client
	if err := config.DB.First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client.CompanyName = input.CompanyName
	client.ContactPerson = input.ContactPerson
	client.Email = input.Email
	client.Phone = input.Phone
	client.Address = input.Address
	client.City = input.City
	client.CountryID = input.CountryID
	client.TaxNumber = input.TaxNumber
	if input.Status != "" {
		client.Status = input.Status
	}
	client.Comments = input.Comments

	if err := config.DB.Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	logActivity(c, "client", client.ID, "updated", "Данные клиента обновлены")
	c.JSON(http.StatusOK, client)
}

// DeleteClientHandler мягко удаляет клиента.
// Клиент с котировками или отгрузками не удаляется.
func DeleteClientHandler(c *gin.Context) {
	id := c.Param("id")

	var count int64
	config.DB.Model(&models.Quote{}).Where("client_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete client: quotes reference it"})
		return
	}
	config.DB.Model(&models.Shipment{}).Where("client_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete client: shipments reference it"})
		return
	}

	if result := config.DB.Delete(&models.Client{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
	}
}

// GetClientHistoryHandler возвращает таймлайн событий по клиенту.
func GetClientHistoryHandler(c *gin.Context) {
	listEntityHistory(c, "client")
}
