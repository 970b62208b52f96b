package models

// Country представляет страну в справочнике направлений.
// Поле Zone связывает страну с тарифной зоной ценового движка.
type Country struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Code     string `json:"code" gorm:"unique;not null;size:2"` // ISO 3166-1 alpha-2
	Name     string `json:"name" gorm:"unique;not null"`
	Zone     string `json:"zone" gorm:"not null"`
	Currency string `json:"currency" gorm:"size:3"`
	Active   *bool  `json:"active" gorm:"default:true"`
}
