package models

import "time"

// Testimonial is a video statement from someone touched by the NGO's work.
// VideoPath points at an uploaded file under the video folder.
type Testimonial struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoPath   string    `gorm:"size:255;not null" json:"video_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string { return "depoimentos" }
