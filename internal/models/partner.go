package models

import "time"

// Partner is an organization that supports the NGO, displayed with its logo
// on the public partners page.
type Partner struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Website     string    `gorm:"size:255" json:"website"`
	LogoPath    string    `gorm:"size:512" json:"logo_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Partner) TableName() string { return "parceiros" }
