package models

import "time"

// Banner is a homepage carousel slide. Ordering is explicit: lower Order
// values come first, ties broken by newest creation.
type Banner struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:512" json:"description"`
	Order       int       `gorm:"column:display_order;not null;default:0" json:"order"`
	ImagePath   string    `gorm:"size:512;not null" json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Banner) TableName() string { return "banners" }
