// kmapin-logistics/internal/handlers/shipment_handler.go
// Обработчики отгрузок. Отгрузки не создаются напрямую —
// только через принятие котировки (см. AcceptQuoteHandler).
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"kmapin-logistics/config"
	"kmapin-logistics/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ListShipmentsHandler возвращает список отгрузок с пагинацией и фильтрами.
func ListShipmentsHandler(c *gin.Context) {
	var shipments []models.Shipment
	query := config.DB.
		Preload("Client").
		Preload("Quote").
		Order("created_at desc")
	countQuery := config.DB.Model(&models.Shipment{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
		countQuery = countQuery.Where("client_id = ?", clientID)
	}
	if unpaid := c.Query("unpaid"); unpaid == "true" {
		query = query.Where("is_paid = false")
		countQuery = countQuery.Where("is_paid = false")
	}

	var totalRows int64
	countQuery.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&shipments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch shipments"})
		return
	}

	if shipments == nil {
		shipments = make([]models.Shipment, 0)
	}

	paginatedResponse := CreatePaginatedResponse(c, shipments, totalRows)
	c.JSON(http.StatusOK, paginatedResponse)
}

// GetShipmentHandler получает одну отгрузку по ID.
func GetShipmentHandler(c *gin.Context) {
	id := c.Param("id")
	var shipment models.Shipment
	err := config.DB.
		Preload("Client").
		Preload("Quote.Packages").
		Preload("Quote.OriginCountry").
		Preload("Quote.DestinationCountry").
		First(&shipment, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}
	c.JSON(http.StatusOK, shipment)
}

// UpdateShipmentStatusHandler переводит отгрузку в новый статус.
// Даты отправления/прибытия проставляются автоматически.
func UpdateShipmentStatusHandler(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var shipment models.Shipment
	if err := config.DB.First(&shipment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	if !models.ShipmentCanTransition(shipment.Status, body.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Переход статуса %s -> %s недопустим", shipment.Status, body.Status),
		})
		return
	}

	now := time.Now()
	shipment.Status = body.Status
	switch body.Status {
	case models.ShipmentStatusInTransit:
		shipment.DepartureDate = &now
	case models.ShipmentStatusDelivered:
		shipment.ArrivalDate = &now
	}

	if err := config.DB.Save(&shipment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shipment status"})
		return
	}

	logActivity(c, "shipment", shipment.ID, "status_changed", "Статус отгрузки: "+body.Status)
	c.JSON(http.StatusOK, shipment)
}

// MarkShipmentPaidHandler помечает отгрузку как оплаченную.
func MarkShipmentPaidHandler(c *gin.Context) {
	id := c.Param("id")
	var shipment models.Shipment
	if err := config.DB.First(&shipment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	if shipment.IsPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "Shipment is already paid"})
		return
	}

	now := time.Now()
	shipment.IsPaid = true
	shipment.PaidAt = &now

	if err := config.DB.Save(&shipment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark shipment as paid"})
		return
	}

	logActivity(c, "shipment", shipment.ID, "paid", "Отгрузка оплачена")
	c.JSON(http.StatusOK, shipment)
}

// TrackShipmentHandler - публичный поиск отгрузки по трек-номеру.
// Наружу отдаётся только статус и даты, без данных клиента.
func TrackShipmentHandler(c *gin.Context) {
	number := c.Param("number")
	var shipment models.Shipment
	if err := config.DB.Where("tracking_number = ?", number).First(&shipment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trackingNumber": shipment.TrackingNumber,
		"status":         shipment.Status,
		"departureDate":  shipment.DepartureDate,
		"arrivalDate":    shipment.ArrivalDate,
	})
}

// GetShipmentHistoryHandler возвращает таймлайн событий по отгрузке.
func GetShipmentHistoryHandler(c *gin.Context) {
	listEntityHistory(c, "shipment")
}

// ExportShipmentsHandler выгружает отгрузки в Excel.
func ExportShipmentsHandler(c *gin.Context) {
	var shipments []models.Shipment
	query := config.DB.Preload("Client").Preload("Quote").Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&shipments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch shipments"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Отгрузки"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Трек-номер", "Клиент", "Котировка", "Статус", "Сумма, EUR", "Оплачено", "Отправлено", "Доставлено"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, s := range shipments {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.TrackingNumber)
		if s.Client != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), s.Client.CompanyName)
		}
		if s.Quote != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), s.Quote.Reference)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), s.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), s.Amount)
		if s.IsPaid {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), "Да")
		} else {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), "Нет")
		}
		if s.DepartureDate != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), s.DepartureDate.Format("02.01.2006"))
		}
		if s.ArrivalDate != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), s.ArrivalDate.Format("02.01.2006"))
		}
	}

	fileName := fmt.Sprintf("shipments_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
