package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `gorm:"default:member" json:"role"` // member, admin
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}

type Profile struct {
	gorm.Model
	UserID               uint   `gorm:"uniqueIndex" json:"user_id"`
	PhoneNumber          string `json:"phone_number"`
	Country              string `json:"country"`
	EmailVerified        bool   `gorm:"default:false" json:"email_verified"`
	ReceiveNotifications bool   `gorm:"default:true" json:"receive_notifications"`
}

type LoginHistory struct {
	gorm.Model
	UserID    uint      `json:"user_id"`
	LoginTime time.Time `json:"login_time"`
	IPAddress string    `json:"ip_address"`
}

type UserActivity struct {
	gorm.Model
	UserID       uint   `gorm:"index" json:"user_id"`
	ActivityType string `json:"activity_type"` // login, lesson_complete, mission_report, baptism_record, group_join, certificate_earned
	Description  string `json:"description"`
	IPAddress    string `json:"ip_address"`
	UserAgent    string `json:"user_agent"`
}
