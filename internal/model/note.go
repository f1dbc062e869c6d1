package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a user's note with optional image and audio attachments.
// ImageURL and AudioURL are nil when the slot is empty.
type Note struct {
	ID         string    `json:"_id" gorm:"type:char(36);primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	ImageURL   *string   `json:"image_url" gorm:"size:1024"`
	AudioURL   *string   `json:"audio_url" gorm:"size:1024"`
	UserID     string    `json:"user_id" gorm:"size:64;not null;index"`
	IsFavorite bool      `json:"is_favorite" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
