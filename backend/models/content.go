package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `json:"description"`
}

type Post struct {
	gorm.Model
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	ImageURL    string     `json:"image_url"`
	CategoryID  uint       `json:"category_id"`
	AuthorID    uint       `json:"author_id"`
	Status      string     `gorm:"default:draft" json:"status"` // draft, published
	Featured    bool       `gorm:"default:false" json:"featured"`
	Views       uint       `gorm:"default:0" json:"views"`
	PublishedAt *time.Time `json:"published_at"`
}

type Event struct {
	gorm.Model
	Title           string     `gorm:"not null" json:"title"`
	Slug            string     `gorm:"uniqueIndex" json:"slug"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Date            time.Time  `json:"date"`
	EndDate         *time.Time `json:"end_date"`
	ImageURL        string     `json:"image_url"`
	RegistrationURL string     `json:"registration_url"`
	IsFeatured      bool       `gorm:"default:false" json:"is_featured"`
	MaxAttendees    *uint      `json:"max_attendees"`
}

type MediaItem struct {
	gorm.Model
	Title        string `gorm:"not null" json:"title"`
	Description  string `json:"description"`
	MediaType    string `json:"media_type"` // video, audio, image, document
	FileURL      string `json:"file_url"`
	ExternalURL  string `json:"external_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	CategoryID   *uint  `json:"category_id"`
	Tags         string `json:"tags"` // comma-separated
	Views        uint   `gorm:"default:0" json:"views"`
}

type PrayerRequest struct {
	gorm.Model
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Category    string `json:"category"` // personal, family, health, work, spiritual, community, other
	Request     string `gorm:"not null" json:"request"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`
	IsUrgent    bool   `gorm:"default:false" json:"is_urgent"`
	IsAnswered  bool   `gorm:"default:false" json:"is_answered"`
}

type Announcement struct {
	gorm.Model
	Title    string     `gorm:"not null" json:"title"`
	Body     string     `json:"body"`
	SentAt   *time.Time `json:"sent_at"`
	SentByID *uint      `json:"sent_by_id"`
}

type LessonLike struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex:idx_user_lesson_like" json:"user_id"`
	LessonID uint `gorm:"uniqueIndex:idx_user_lesson_like" json:"lesson_id"`
}

type LessonComment struct {
	gorm.Model
	UserID     uint   `gorm:"index" json:"user_id"`
	LessonID   uint   `gorm:"index" json:"lesson_id"`
	Body       string `gorm:"not null" json:"body"`
	IsApproved bool   `gorm:"default:true" json:"is_approved"`
}
