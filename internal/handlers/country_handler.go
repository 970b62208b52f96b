// FILE: internal/handlers/country_handler.go
// Описание: обработчики CRUD-операций над справочником стран.
package handlers

import (
	"net/http"
	"strings"

	"kmapin-logistics/config"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
)

// CountryInput определяет структуру для создания/обновления страны.
type CountryInput struct {
	Code     string `json:"code" binding:"required,len=2"`
	Name     string `json:"name" binding:"required"`
	Zone     string `json:"zone" binding:"required"`
	Currency string `json:"currency"`
	Active   *bool  `json:"active"`
}

// ListCountriesHandler возвращает список стран.
// Supports `?all=true` for dropdowns.
func ListCountriesHandler(c *gin.Context) {
	var countries []models.Country
	query := config.DB.Order("name asc")

	if c.Query("active") == "true" {
		query = query.Where("active = true")
	}

	if c.Query("all") == "true" {
		if err := query.Find(&countries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch countries"})
			return
		}
		c.JSON(http.StatusOK, countries)
		return
	}

	var totalRows int64
	config.DB.Model(&models.Country{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&countries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch countries"})
		return
	}

	if countries == nil {
		countries = make([]models.Country, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, countries, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}

// GetCountryHandler получает одну страну по ID.
func GetCountryHandler(c *gin.Context) {
	id := c.Param("id")
	var country models.Country
	if err := config.DB.First(&country, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
		return
	}
	c.JSON(http.StatusOK, country)
}

// CreateCountryHandler создает новую страну.
func CreateCountryHandler(c *gin.Context) {
	var input CountryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country := models.Country{
		Code:     strings.ToUpper(input.Code),
		Name:     input.Name,
		Zone:     input.Zone,
		Currency: strings.ToUpper(input.Currency),
		Active:   input.Active,
	}

	if err := config.DB.Create(&country).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create country (duplicate code or name?)"})
		return
	}
	c.JSON(http.StatusCreated, country)
}

// UpdateCountryHandler обновляет существующую страну.
func UpdateCountryHandler(c *gin.Context) {
	id := c.Param("id")
	var country models.Country
	if err := config.DB.First(&country, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
		return
	}

	var input CountryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country.Code = strings.ToUpper(input.Code)
	country.Name = input.Name
	country.Zone = input.Zone
	country.Currency = strings.ToUpper(input.Currency)
	if input.Active != nil {
		country.Active = input.Active
	}

	if err := config.DB.Save(&country).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update country"})
		return
	}
	c.JSON(http.StatusOK, country)
}

// DeleteCountryHandler удаляет страну.
// Страна, на которую ссылаются клиенты или котировки, не удаляется.
func DeleteCountryHandler(c *gin.Context) {
	id := c.Param("id")

	var count int64
	config.DB.Model(&models.Client{}).Where("country_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete country: it is assigned to clients"})
		return
	}
	config.DB.Model(&models.Quote{}).
		Where("origin_country_id = ? OR destination_country_id = ?", id, id).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete country: quotes reference it"})
		return
	}

	if result := config.DB.Delete(&models.Country{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete country"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Country deleted successfully"})
	}
}
