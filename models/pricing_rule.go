// kmapin-logistics/models/pricing_rule.go
package models

import "gorm.io/gorm"

// PricingRule - надбавка к цене позиции, заданная формулой govaluate.
// Формула вычисляется с параметрами Base, Weight и Quantity,
// например "Base * 0.12" (топливный сбор) или "Weight * 0.05".
type PricingRule struct {
	gorm.Model
	Name          string `json:"name" gorm:"not null"`
	TransportMode string `json:"transportMode" gorm:"not null"` // road | rail | sea | air | all
	Formula       string `json:"formula" gorm:"not null"`
	SortOrder     int    `json:"sortOrder" gorm:"default:0"`
	Active        *bool  `json:"active" gorm:"default:true"`
}
