// kmapin-logistics/internal/handlers/pricing_rule_handler.go
// Обработчики правил надбавок ценового движка.
// Формула проверяется при сохранении, чтобы битое правило не сломало расчёт.
package handlers

import (
	"net/http"

	"kmapin-logistics/config"
	"kmapin-logistics/internal/pricing"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
)

// PricingRuleInput определяет структуру для создания/обновления правила.
type PricingRuleInput struct {
	Name          string `json:"name" binding:"required"`
	TransportMode string `json:"transportMode" binding:"required"`
	Formula       string `json:"formula" binding:"required"`
	SortOrder     int    `json:"sortOrder"`
	Active        *bool  `json:"active"`
}

// ListPricingRulesHandler возвращает все правила надбавок.
func ListPricingRulesHandler(c *gin.Context) {
	var rules []models.PricingRule
	query := config.DB.Order("transport_mode, sort_order")

	if mode := c.Query("transportMode"); mode != "" {
		query = query.Where("transport_mode = ? OR transport_mode = 'all'", mode)
	}

	if err := query.Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch pricing rules"})
		return
	}

	if rules == nil {
		rules = make([]models.PricingRule, 0)
	}
	c.JSON(http.StatusOK, rules)
}

// GetPricingRuleHandler получает одно правило по ID.
func GetPricingRuleHandler(c *gin.Context) {
	id := c.Param("id")
	var rule models.PricingRule
	if err := config.DB.First(&rule, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pricing rule not found"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// CreatePricingRuleHandler создает новое правило надбавки.
func CreatePricingRuleHandler(c *gin.Context) {
	var input PricingRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pricing.ValidateFormula(input.Formula); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка в формуле: " + err.Error()})
		return
	}

	rule := models.PricingRule{
		Name:          input.Name,
		TransportMode: input.TransportMode,
		Formula:       input.Formula,
		SortOrder:     input.SortOrder,
		Active:        input.Active,
	}

	if err := config.DB.Create(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pricing rule"})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// UpdatePricingRuleHandler обновляет правило надбавки.
func UpdatePricingRuleHandler(c *gin.Context) {
	id := c.Param("id")
	var rule models.PricingRule
	if err := config.DB.First(&rule, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pricing rule not found"})
		return
	}

	var input PricingRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pricing.ValidateFormula(input.Formula); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка в формуле: " + err.Error()})
		return
	}

	rule.Name = input.Name
	rule.TransportMode = input.TransportMode
	rule.Formula = input.Formula
	rule.SortOrder = input.SortOrder
	if input.Active != nil {
		rule.Active = input.Active
	}

	if err := config.DB.Save(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pricing rule"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// DeletePricingRuleHandler удаляет правило надбавки.
func DeletePricingRuleHandler(c *gin.Context) {
	id := c.Param("id")
	if result := config.DB.Delete(&models.PricingRule{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pricing rule"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pricing rule not found"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Pricing rule deleted successfully"})
	}
}
