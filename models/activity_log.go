// kmapin-logistics/models/activity_log.go
package models

import "time"

// ActivityLog - запись журнала событий по сущности.
// Из этих записей строятся таймлайны истории и лента событий по WebSocket.
type ActivityLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EntityType string    `json:"entityType" gorm:"not null;index:idx_activity_entity"` // quote | shipment | pickup | client
	EntityID   uint      `json:"entityId" gorm:"not null;index:idx_activity_entity"`
	UserID     *uint     `json:"userId"`
	Action     string    `json:"action" gorm:"not null"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
