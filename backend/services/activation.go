package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
)

// Activation policies for referral codes.
const (
	PolicyManual         = "manual"
	PolicyAutoEmail      = "auto_email"
	PolicyAutoEmailLevel = "auto_email_and_level1"
	PolicyHybrid         = "hybrid"
)

func IsEmailVerified(db *gorm.DB, userID uint) bool {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return false
	}
	return profile.EmailVerified
}

// HasCompletedLevel1 reports whether the user has a completed LevelProgress
// for any level with order 1.
func HasCompletedLevel1(db *gorm.DB, userID uint) bool {
	var count int64
	db.Model(&models.LevelProgress{}).
		Joins("JOIN levels ON levels.id = level_progresses.level_id").
		Where("level_progresses.user_id = ? AND level_progresses.status = ? AND levels.\"order\" = ?",
			userID, models.ProgressCompleted, 1).
		Count(&count)
	return count > 0
}

// TryActivateReferral activates the user's referral code if the configured
// policy allows it. Called on login, on email verification, and on first
// Level 1 completion. Returns true only when the referral was newly activated.
func TryActivateReferral(db *gorm.DB, cfg *config.Config, userID uint) bool {
	var referral models.Referral
	if err := db.Where("mentor_id = ?", userID).First(&referral).Error; err != nil {
		return false
	}
	if referral.IsActive {
		return false
	}

	policy := strings.ToLower(cfg.ReferralActivationPolicy)
	emailOK := IsEmailVerified(db, userID)
	levelOK := HasCompletedLevel1(db, userID)

	now := time.Now()

	// Prefer the stronger email+level1 method when both criteria are met.
	if emailOK && levelOK && (policy == PolicyAutoEmailLevel || policy == PolicyHybrid) {
		referral.IsActive = true
		referral.ActivationMethod = models.ActivationEmailLevel1
		referral.ActivatedAt = &now
		db.Save(&referral)
		AwardForMenteeEvent(db, userID, models.EventBecomesMentor)
		return true
	}

	if emailOK && (policy == PolicyAutoEmail || policy == PolicyHybrid) {
		referral.IsActive = true
		referral.ActivationMethod = models.ActivationEmail
		referral.ActivatedAt = &now
		db.Save(&referral)
		AwardForMenteeEvent(db, userID, models.EventBecomesMentor)
		return true
	}

	return false
}
