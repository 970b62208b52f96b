// kmapin-logistics/models/shipment.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы отгрузки.
const (
	ShipmentStatusPending   = "pending"
	ShipmentStatusInTransit = "in_transit"
	ShipmentStatusDelivered = "delivered"
	ShipmentStatusCancelled = "cancelled"
)

var shipmentTransitions = map[string][]string{
	ShipmentStatusPending:   {ShipmentStatusInTransit, ShipmentStatusCancelled},
	ShipmentStatusInTransit: {ShipmentStatusDelivered, ShipmentStatusCancelled},
}

// ShipmentCanTransition проверяет допустимость перехода статуса отгрузки.
// Доставленную или отменённую отгрузку менять уже нельзя.
func ShipmentCanTransition(from, to string) bool {
	for _, next := range shipmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Shipment - подтверждённый транспортный заказ, созданный из принятой котировки.
type Shipment struct {
	gorm.Model
	TrackingNumber string     `json:"trackingNumber" gorm:"unique;not null"`
	QuoteID        uint       `json:"quoteId" gorm:"unique;not null"` // одна отгрузка на котировку
	ClientID       uint       `json:"clientId" gorm:"not null"`
	Status         string     `json:"status" gorm:"default:'pending'"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency" gorm:"size:3;default:'EUR'"`
	IsPaid         bool       `json:"isPaid" gorm:"default:false"`
	PaidAt         *time.Time `json:"paidAt"`
	DepartureDate  *time.Time `json:"departureDate"`
	ArrivalDate    *time.Time `json:"arrivalDate"`
	Comments       string     `json:"comments"`

	Quote  *Quote  `json:"quote,omitempty" gorm:"foreignKey:QuoteID"`
	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}
