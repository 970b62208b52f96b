// File: models/permission.go
package models

import "kmapin-logistics/config"

// Permission представляет модель права доступа в базе данных.
type Permission struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"not null"` // Категория для группировки (e.g., "Котировки", "Отгрузки")
}

// GetUserPermissions получает все уникальные права доступа для пользователя через его роли.
func GetUserPermissions(userID uint) ([]Permission, error) {
	var user User
	db := config.DB

	// Находим пользователя и предзагружаем его роли вместе с правами доступа
	if err := db.Preload("Roles.Permissions").First(&user, userID).Error; err != nil {
		return nil, err
	}

	// Карта нужна, чтобы не вернуть одно и то же право дважды
	permissionMap := make(map[uint]Permission)
	for _, role := range user.Roles {
		for _, permission := range role.Permissions {
			permissionMap[permission.ID] = permission
		}
	}

	permissions := make([]Permission, 0, len(permissionMap))
	for _, permission := range permissionMap {
		permissions = append(permissions, permission)
	}

	return permissions, nil
}
