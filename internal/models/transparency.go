package models

import "time"

// TransparencyDoc is a published accountability document (reports, balance
// sheets) available for download on the transparency page.
type TransparencyDoc struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	FilePath    string    `gorm:"size:512;not null" json:"file_path"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TransparencyDoc) TableName() string { return "transparencia" }
