// kmapin-logistics/models/pickup_request.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы заявки на забор груза: new -> in_progress -> completed/cancelled.
const (
	PickupStatusNew        = "new"
	PickupStatusInProgress = "in_progress"
	PickupStatusCompleted  = "completed"
	PickupStatusCancelled  = "cancelled"
)

var pickupTransitions = map[string][]string{
	PickupStatusNew:        {PickupStatusInProgress, PickupStatusCancelled},
	PickupStatusInProgress: {PickupStatusCompleted, PickupStatusCancelled},
}

// PickupCanTransition проверяет допустимость перехода статуса заявки на забор.
func PickupCanTransition(from, to string) bool {
	for _, next := range pickupTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PickupRequest - запланированный забор груза с адреса клиента.
type PickupRequest struct {
	gorm.Model
	ClientID         uint       `json:"clientId" gorm:"not null"`
	Address          string     `json:"address" gorm:"not null"`
	City             string     `json:"city"`
	ContactName      string     `json:"contactName"`
	ContactPhone     string     `json:"contactPhone"`
	ScheduledDate    *time.Time `json:"scheduledDate"`
	CargoDescription string     `json:"cargoDescription"`
	Status           string     `json:"status" gorm:"default:'new'"`
	Comments         string     `json:"comments"`

	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}
