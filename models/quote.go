// kmapin-logistics/models/quote.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы котировки. Черновик можно редактировать, остальные — нет.
const (
	QuoteStatusDraft     = "draft"
	QuoteStatusSubmitted = "submitted"
	QuoteStatusSent      = "sent"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusRejected  = "rejected"
)

// quoteTransitions описывает допустимые переходы статусов котировки.
var quoteTransitions = map[string][]string{
	QuoteStatusDraft:     {QuoteStatusSubmitted},
	QuoteStatusSubmitted: {QuoteStatusSent, QuoteStatusRejected},
	QuoteStatusSent:      {QuoteStatusAccepted, QuoteStatusRejected},
}

// QuoteCanTransition проверяет, допустим ли переход котировки из статуса from в to.
func QuoteCanTransition(from, to string) bool {
	for _, next := range quoteTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Quote представляет котировку (ценовое предложение) на перевозку.
// Канонический расчёт всегда хранится в EUR, конвертация валют — только для отображения.
type Quote struct {
	gorm.Model
	Reference            string     `json:"reference" gorm:"unique;not null"`
	ClientID             uint       `json:"clientId" gorm:"not null"`
	OriginCountryID      uint       `json:"originCountryId" gorm:"not null"`
	DestinationCountryID uint       `json:"destinationCountryId" gorm:"not null"`
	TransportMode        string     `json:"transportMode" gorm:"not null"` // road | rail | sea | air
	Priority             string     `json:"priority" gorm:"default:'standard'"`
	Status               string     `json:"status" gorm:"default:'draft'"`
	EstimatedAmount      float64    `json:"estimatedAmount"`
	Currency             string     `json:"currency" gorm:"size:3;default:'EUR'"`
	TotalWeight          float64    `json:"totalWeight"`
	DominantCargoType    string     `json:"dominantCargoType"`
	ValidUntil           *time.Time `json:"validUntil"`
	RejectionReason      string     `json:"rejectionReason"`
	Comments             string     `json:"comments"`

	Client             *Client        `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	OriginCountry      *Country       `json:"originCountry,omitempty" gorm:"foreignKey:OriginCountryID"`
	DestinationCountry *Country       `json:"destinationCountry,omitempty" gorm:"foreignKey:DestinationCountryID"`
	Packages           []QuotePackage `json:"packages" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// QuotePackage представляет одну грузовую позицию котировки.
type QuotePackage struct {
	gorm.Model
	QuoteID        uint    `json:"quoteId" gorm:"not null"`
	CargoType      string  `json:"cargoType" gorm:"not null"` // documents | general | fragile | perishable | dangerous
	WeightKg       float64 `json:"weightKg" gorm:"not null"`
	LengthCm       float64 `json:"lengthCm"`
	WidthCm        float64 `json:"widthCm"`
	HeightCm       float64 `json:"heightCm"`
	Quantity       int     `json:"quantity" gorm:"default:1"`
	Description    string  `json:"description"`
	EstimatedPrice float64 `json:"estimatedPrice"` // цена за одну единицу, EUR
}
