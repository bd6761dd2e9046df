package models

import "time"

// Volunteer is a person registered to help the NGO, with their area of
// expertise and availability.
type Volunteer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Area         string    `gorm:"size:255" json:"area"`
	Availability string    `gorm:"size:255" json:"availability"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Volunteer) TableName() string { return "voluntarios" }
