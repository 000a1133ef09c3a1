package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
)

var (
	ErrInvalidReferralCode = errors.New("referral code is invalid or inactive")
	ErrSelfReferral        = errors.New("you cannot refer yourself")
)

// GenerateReferralCode builds a short shareable code, e.g. GC365-3FA9C1.
func GenerateReferralCode(prefix string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return prefix + strings.ToUpper(token)
}

// EnsureReferral creates the user's (inactive) referral record if missing.
// Every user is a potential mentor, so this runs at registration.
func EnsureReferral(db *gorm.DB, cfg *config.Config, userID uint) (*models.Referral, error) {
	var referral models.Referral
	err := db.Where("mentor_id = ?", userID).First(&referral).Error
	if err == nil {
		return &referral, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code := GenerateReferralCode(cfg.ReferralCodePrefix)
	for {
		var count int64
		db.Model(&models.Referral{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			break
		}
		code = GenerateReferralCode(cfg.ReferralCodePrefix)
	}

	referral = models.Referral{MentorID: userID, Code: code, IsActive: false}
	if err := db.Create(&referral).Error; err != nil {
		return nil, err
	}
	return &referral, nil
}

// AttachReferral links a mentee to the mentor behind an active referral code.
// A mentee keeps their first mentor; attaching again is a no-op.
func AttachReferral(db *gorm.DB, code string, menteeID uint) (*models.Mentorship, error) {
	var referral models.Referral
	err := db.Where("code = ? AND is_active = ?", code, true).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReferralCode
		}
		return nil, err
	}

	if referral.MentorID == menteeID {
		return nil, ErrSelfReferral
	}

	var existing models.Mentorship
	err = db.Where("mentee_id = ?", menteeID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	mentorship := models.Mentorship{MentorID: referral.MentorID, MenteeID: menteeID}
	if err := db.Create(&mentorship).Error; err != nil {
		return nil, err
	}
	return &mentorship, nil
}
