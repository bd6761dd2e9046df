package models

import "time"

// Text is an institutional text section of the site (who we are, projects,
// contact info, and so on). Reserved slugs are fixed by the content registry
// and cannot be renamed or deleted; free slugs behave like ordinary pages.
type Text struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Summary   string    `gorm:"size:512" json:"summary"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImagePath string    `gorm:"size:512" json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Text) TableName() string { return "textos" }
