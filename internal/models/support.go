package models

import "time"

// SupportOption describes one way visitors can support the NGO (donations,
// campaigns, recurring help), shown on the "como apoiar" page.
type SupportOption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImagePath   string    `gorm:"size:255" json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SupportOption) TableName() string { return "apoios" }
