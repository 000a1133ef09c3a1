package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral activation methods.
const (
	ActivationManual      = "manual"
	ActivationEmail       = "email"
	ActivationEmailLevel1 = "email+level1"
)

// RewardEvent kinds.
const (
	EventSignup            = "signup"
	EventLevel1Complete    = "level1_complete"
	EventBaptism           = "baptism"
	EventAllLevelsComplete = "all_levels_complete"
	EventBecomesMentor     = "becomes_mentor"
)

// Referral is a mentor's shareable code. Created inactive at registration and
// flipped active by an admin or by the activation policy evaluator.
type Referral struct {
	gorm.Model
	MentorID         uint       `gorm:"uniqueIndex" json:"mentor_id"`
	Code             string     `gorm:"uniqueIndex" json:"code"`
	IsActive         bool       `gorm:"default:false" json:"is_active"`
	ActivationMethod string     `json:"activation_method"` // manual, email, email+level1
	ActivatedAt      *time.Time `json:"activated_at"`
}

// Mentorship links a mentee to exactly one mentor.
type Mentorship struct {
	gorm.Model
	MentorID uint `gorm:"index" json:"mentor_id"`
	MenteeID uint `gorm:"uniqueIndex" json:"mentee_id"`
}

// RewardEvent awards points to a mentor for a mentee milestone. The unique
// (mentor, mentee, event) triple makes awarding idempotent under retries.
type RewardEvent struct {
	gorm.Model
	MentorID uint   `gorm:"uniqueIndex:idx_mentor_mentee_event" json:"mentor_id"`
	MenteeID uint   `gorm:"uniqueIndex:idx_mentor_mentee_event" json:"mentee_id"`
	Event    string `gorm:"uniqueIndex:idx_mentor_mentee_event" json:"event"`
	Points   int    `gorm:"default:0" json:"points"`
}
