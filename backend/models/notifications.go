package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	RecipientID uint       `gorm:"index" json:"recipient_id"`
	SenderID    *uint      `json:"sender_id"`
	Title       string     `gorm:"not null" json:"title"`
	Body        string     `json:"body"`
	URL         string     `json:"url"`
	Level       string     `gorm:"default:info" json:"level"` // info, success, warning, error
	IsRead      bool       `gorm:"default:false" json:"is_read"`
	ReadAt      *time.Time `json:"read_at"`
}
