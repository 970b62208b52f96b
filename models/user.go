// kmapin-logistics/models/user.go
package models

import "gorm.io/gorm"

// User представляет модель сотрудника бэк-офиса в базе данных.
type User struct {
	gorm.Model
	Login    string `json:"login" gorm:"unique;not null"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"unique"`
	Phone    string `json:"phone"`
	Status   string `json:"status" gorm:"default:'active'"`
	PhotoURL string `json:"photoUrl"`

	Roles []Role `json:"roles" gorm:"many2many:user_roles;"`
}
