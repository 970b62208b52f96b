// kmapin-logistics/internal/handlers/quote_handler.go
// Обработчики котировок: CRUD, расчёт стоимости, жизненный цикл
// draft -> submitted -> sent -> accepted/rejected и экспорт в Excel.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"kmapin-logistics/config"
	"kmapin-logistics/internal/pricing"
	"kmapin-logistics/models"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// QuotePackageInput - одна грузовая позиция в запросе.
type QuotePackageInput struct {
	CargoType   string  `json:"cargoType" binding:"required"`
	WeightKg    float64 `json:"weightKg" binding:"required,gt=0"`
	LengthCm    float64 `json:"lengthCm"`
	WidthCm     float64 `json:"widthCm"`
	HeightCm    float64 `json:"heightCm"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
}

// QuoteInput - данные формы создания/редактирования котировки.
type QuoteInput struct {
	ClientID             uint                `json:"clientId" binding:"required"`
	OriginCountryID      uint                `json:"originCountryId" binding:"required"`
	DestinationCountryID uint                `json:"destinationCountryId" binding:"required"`
	TransportMode        string              `json:"transportMode" binding:"required"`
	Priority             string              `json:"priority"`
	ValidUntil           *time.Time          `json:"validUntil"`
	Comments             string              `json:"comments"`
	Packages             []QuotePackageInput `json:"packages" binding:"required,min=1,dive"`
}

// EstimateInput - запрос на расчёт стоимости без сохранения котировки.
// Поле Currency задаёт валюту отображения, канонический расчёт остаётся в EUR.
type EstimateInput struct {
	OriginCountryID      uint                `json:"originCountryId" binding:"required"`
	DestinationCountryID uint                `json:"destinationCountryId" binding:"required"`
	TransportMode        string              `json:"transportMode" binding:"required"`
	Priority             string              `json:"priority"`
	Currency             string              `json:"currency"`
	Packages             []QuotePackageInput `json:"packages" binding:"required,min=1,dive"`
}

// loadSurchargeRules загружает активные правила надбавок для вида транспорта.
func loadSurchargeRules(mode string) []pricing.Rule {
	var dbRules []models.PricingRule
	config.DB.Where("active = true AND (transport_mode = ? OR transport_mode = 'all')", mode).
		Order("sort_order asc").
		Find(&dbRules)

	rules := make([]pricing.Rule, 0, len(dbRules))
	for _, r := range dbRules {
		rules = append(rules, pricing.Rule{Name: r.Name, Formula: r.Formula})
	}
	return rules
}

// computeEstimate считает котировку через ценовой движок по зонам стран.
func computeEstimate(originCountryID, destCountryID uint, mode, priority string, inputs []QuotePackageInput) (pricing.Estimate, error) {
	var origin, destination models.Country
	if err := config.DB.First(&origin, originCountryID).Error; err != nil {
		return pricing.Estimate{}, fmt.Errorf("страна отправления не найдена")
	}
	if err := config.DB.First(&destination, destCountryID).Error; err != nil {
		return pricing.Estimate{}, fmt.Errorf("страна назначения не найдена")
	}

	if priority == "" {
		priority = "standard"
	}

	packages := make([]pricing.Package, 0, len(inputs))
	for _, p := range inputs {
		packages = append(packages, pricing.Package{
			CargoType: p.CargoType,
			WeightKg:  p.WeightKg,
			LengthCm:  p.LengthCm,
			WidthCm:   p.WidthCm,
			HeightCm:  p.HeightCm,
			Quantity:  p.Quantity,
		})
	}

	return pricing.EstimateQuote(origin.Zone, destination.Zone, mode, priority, packages, loadSurchargeRules(mode))
}

// EstimateQuoteHandler рассчитывает стоимость перевозки без сохранения.
// Вызывается формой котировки при изменении полей.
func EstimateQuoteHandler(c *gin.Context) {
	var input EstimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := computeEstimate(input.OriginCountryID, input.DestinationCountryID, input.TransportMode, input.Priority, input.Packages)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"estimate": estimate}

	// Конвертация только для отображения: сохранённая сумма всегда в EUR.
	if input.Currency != "" && input.Currency != pricing.ReferenceCurrency {
		displayAmount, err := pricing.Convert(estimate.Total, input.Currency)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		response["displayAmount"] = displayAmount
		response["displayCurrency"] = input.Currency
	}

	c.JSON(http.StatusOK, response)
}

// ListQuotesHandler возвращает список котировок с пагинацией и фильтрами.
func ListQuotesHandler(c *gin.Context) {
	var quotes []models.Quote
	query := config.DB.
		Preload("Client").
		Preload("OriginCountry").
		Preload("DestinationCountry").
		Preload("Packages").
		Order("created_at desc")
	countQuery := config.DB.Model(&models.Quote{})

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

	if err := query.Scopes(Paginate(c)).Find(&quotes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch quotes"})
		return
	}

	if quotes == nil {
		quotes = make([]models.Quote, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, quotes, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}

// GetQuoteHandler получает одну котировку по ID со всеми связями.
func GetQuoteHandler(c *gin.Context) {
	id := c.Param("id")
	var quote models.Quote
	err := config.DB.
		Preload("Client").
		Preload("OriginCountry").
		Preload("DestinationCountry").
		Preload("Packages").
		First(&quote, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateQuoteHandler создает черновик котировки и сразу рассчитывает стоимость.
func CreateQuoteHandler(c *gin.Context) {
	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var client models.Client
	if err := config.DB.First(&client, input.ClientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	estimate, err := computeEstimate(input.OriginCountryID, input.DestinationCountryID, input.TransportMode, input.Priority, input.Packages)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = "standard"
	}

	quote := models.Quote{
		Reference:            newQuoteReference(),
		ClientID:             input.ClientID,
		OriginCountryID:      input.OriginCountryID,
		DestinationCountryID: input.DestinationCountryID,
		TransportMode:        input.TransportMode,
		Priority:             priority,
		Status:               models.QuoteStatusDraft,
		EstimatedAmount:      estimate.Total,
		Currency:             pricing.ReferenceCurrency,
		TotalWeight:          estimate.TotalWeight,
		DominantCargoType:    estimate.DominantCargoType,
		ValidUntil:           input.ValidUntil,
		Comments:             input.Comments,
	}

	for i, p := range input.Packages {
		quote.Packages = append(quote.Packages, models.QuotePackage{
			CargoType:      p.CargoType,
			WeightKg:       p.WeightKg,
			LengthCm:       p.LengthCm,
			WidthCm:        p.WidthCm,
			HeightCm:       p.HeightCm,
			Quantity:       estimate.Lines[i].Quantity,
			Description:    p.Description,
			EstimatedPrice: estimate.Lines[i].UnitPrice,
		})
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quote"})
		return
	}

	logActivity(c, "quote", quote.ID, "created", "Котировка "+quote.Reference+" создана")
	c.JSON(http.StatusCreated, quote)
}

// UpdateQuoteHandler обновляет котировку. Редактировать можно только черновик;
// позиции заменяются целиком, стоимость пересчитывается.
func UpdateQuoteHandler(c *gin.Context) {
	id := c.Param("id")
	var quote models.Quote
	if err := config.DB.Preload("Packages").First(&quote, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}

	if quote.Status != models.QuoteStatusDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "Only draft quotes can be edited"})
		return
	}

	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := computeEstimate(input.OriginCountryID, input.DestinationCountryID, input.TransportMode, input.Priority, input.Packages)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = "standard"
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Старые позиции удаляем и записываем новые.
		if err := tx.Unscoped().Where("quote_id = ?", quote.ID).Delete(&models.QuotePackage{}).Error; err != nil {
			return err
		}

		quote.ClientID = input.ClientID
		quote.OriginCountryID = input.OriginCountryID
		quote.DestinationCountryID = input.DestinationCountryID
		quote.TransportMode = input.TransportMode
		quote.Priority = priority
		quote.EstimatedAmount = estimate.Total
		quote.TotalWeight = estimate.TotalWeight
		quote.DominantCargoType = estimate.DominantCargoType
		quote.ValidUntil = input.ValidUntil
		quote.Comments = input.Comments

		quote.Packages = nil
		for i, p := range input.Packages {
			quote.Packages = append(quote.Packages, models.QuotePackage{
				QuoteID:        quote.ID,
				CargoType:      p.CargoType,
				WeightKg:       p.WeightKg,
				LengthCm:       p.LengthCm,
				WidthCm:        p.WidthCm,
				HeightCm:       p.HeightCm,
				Quantity:       estimate.Lines[i].Quantity,
				Description:    p.Description,
				EstimatedPrice: estimate.Lines[i].UnitPrice,
			})
		}

		return tx.Save(&quote).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quote: " + err.Error()})
		return
	}

	logActivity(c, "quote", quote.ID, "updated", "Котировка пересчитана и обновлена")
	c.JSON(http.StatusOK, quote)
}

// DeleteQuoteHandler мягко удаляет котировку. Принятую котировку удалить нельзя.
func DeleteQuoteHandler(c *gin.Context) {
	id := c.Param("id")
	var quote models.Quote
	if err := config.DB.First(&quote, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}

	if quote.Status == models.QuoteStatusAccepted {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete an accepted quote"})
		return
	}

	if err := config.DB.Delete(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quote"})
		return
	}

	logActivity(c, "quote", quote.ID, "deleted", "Котировка "+quote.Reference+" удалена")
	c.JSON(http.StatusOK, gin.H{"message": "Quote deleted successfully"})
}

// transitionQuote переводит котировку в новый статус с проверкой допустимости перехода.
func transitionQuote(c *gin.Context, newStatus, action, details string) {
	id := c.Param("id")
	var quote models.Quote
	if err := config.DB.First(&quote, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}

	if !models.QuoteCanTransition(quote.Status, newStatus) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Переход статуса %s -> %s недопустим", quote.Status, newStatus),
		})
		return
	}

	quote.Status = newStatus
	if err := config.DB.Save(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quote status"})
		return
	}

	logActivity(c, "quote", quote.ID, action, details)
	c.JSON(http.StatusOK, quote)
}

// SubmitQuoteHandler переводит черновик в статус submitted.
func SubmitQuoteHandler(c *gin.Context) {
	transitionQuote(c, models.QuoteStatusSubmitted, "submitted", "Котировка передана на проверку")
}

// SendQuoteHandler помечает котировку как отправленную клиенту.
func SendQuoteHandler(c *gin.Context) {
	transitionQuote(c, models.QuoteStatusSent, "sent", "Котировка отправлена клиенту")
}

// RejectQuoteHandler помечает котировку как отклонённую.
func RejectQuoteHandler(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Reason string `json:"reason"`
	}
	c.ShouldBindJSON(&body)

	var quote models.Quote
	if err := config.DB.First(&quote, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}

	if !models.QuoteCanTransition(quote.Status, models.QuoteStatusRejected) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Переход статуса %s -> rejected недопустим", quote.Status),
		})
		return
	}

	quote.Status = models.QuoteStatusRejected
	quote.RejectionReason = body.Reason
	if err := config.DB.Save(&quote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject quote"})
		return
	}

	logActivity(c, "quote", quote.ID, "rejected", "Котировка отклонена: "+body.Reason)
	c.JSON(http.StatusOK, quote)
}

// AcceptQuoteHandler принимает котировку и в той же транзакции создает отгрузку.
func AcceptQuoteHandler(c *gin.Context) {
	id := c.Param("id")
	var quote models.Quote
	if err := config.DB.First(&quote, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
		return
	}

	if !models.QuoteCanTransition(quote.Status, models.QuoteStatusAccepted) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Переход статуса %s -> accepted недопустим", quote.Status),
		})
		return
	}

	if quote.ValidUntil != nil && quote.ValidUntil.Before(time.Now()) {
		c.JSON(http.StatusConflict, gin.H{"error": "Срок действия котировки истёк"})
		return
	}

	shipment := models.Shipment{
		TrackingNumber: newTrackingNumber(),
		QuoteID:        quote.ID,
		ClientID:       quote.ClientID,
		Status:         models.ShipmentStatusPending,
		Amount:         quote.EstimatedAmount,
		Currency:       quote.Currency,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		quote.Status = models.QuoteStatusAccepted
		if err := tx.Save(&quote).Error; err != nil {
			return err
		}
		return tx.Create(&shipment).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept quote: " + err.Error()})
		return
	}

	logActivity(c, "quote", quote.ID, "accepted", "Котировка принята")
	logActivity(c, "shipment", shipment.ID, "created", "Отгрузка "+shipment.TrackingNumber+" создана из котировки "+quote.Reference)

	c.JSON(http.StatusOK, gin.H{"quote": quote, "shipment": shipment})
}

// GetQuoteHistoryHandler возвращает таймлайн событий по котировке.
func GetQuoteHistoryHandler(c *gin.Context) {
	listEntityHistory(c, "quote")
}

// ExportQuotesHandler выгружает котировки в Excel.
// Итоговая сумма дублируется прописью — так её печатают в документах.
func ExportQuotesHandler(c *gin.Context) {
	var quotes []models.Quote
	query := config.DB.
		Preload("Client").
		Preload("OriginCountry").
		Preload("DestinationCountry").
		Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&quotes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch quotes"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Котировки"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Номер", "Клиент", "Откуда", "Куда", "Транспорт", "Приоритет", "Статус", "Вес, кг", "Сумма, EUR", "Сумма прописью"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, q := range quotes {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), q.Reference)
		if q.Client != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), q.Client.CompanyName)
		}
		if q.OriginCountry != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), q.OriginCountry.Name)
		}
		if q.DestinationCountry != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), q.DestinationCountry.Name)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), q.TransportMode)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), q.Priority)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), q.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), q.TotalWeight)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), q.EstimatedAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), amountInWords(q.EstimatedAmount))
	}

	fileName := fmt.Sprintf("quotes_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

// amountInWords переводит сумму в EUR в текст: "1250.50" -> "one thousand two hundred fifty euro 50 cents".
func amountInWords(amount float64) string {
	euros := int(amount)
	cents := int(amount*100+0.5) - euros*100
	words := num2words.Convert(euros) + " euro"
	if cents > 0 {
		words += fmt.Sprintf(" %d cents", cents)
	}
	return words
}
