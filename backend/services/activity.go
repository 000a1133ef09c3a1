package services

import (
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

// RecordActivity appends to the user's activity feed. Best-effort: feed
// writes never fail the action that caused them.
func RecordActivity(db *gorm.DB, userID uint, activityType, description string) {
	db.Create(&models.UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
	})
}
