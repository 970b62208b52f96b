// kmapin-logistics/models/client.go

package models

import "gorm.io/gorm"

// Client represents a freight customer (company) in the database.
type Client struct {
	gorm.Model
	CompanyName   string `json:"companyName" gorm:"not null"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" gorm:"unique"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	CountryID     *uint  `json:"countryId"`
	TaxNumber     string `json:"taxNumber"`
	Status        string `json:"status" gorm:"default:'active'"` // active | inactive
	Comments      string `json:"comments"`

	Country *Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
}
