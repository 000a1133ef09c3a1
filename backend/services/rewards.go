package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

// DefaultPoints maps reward events to the points a mentor earns for them.
var DefaultPoints = map[string]int{
	models.EventSignup:            10,
	models.EventLevel1Complete:    20,
	models.EventBaptism:           50,
	models.EventAllLevelsComplete: 100,
	models.EventBecomesMentor:     30,
}

// AwardForMenteeEvent credits the mentee's mentor for a milestone. A mentee
// without a mentor is a silent no-op, not an error. The unique
// (mentor, mentee, event) constraint makes repeated calls idempotent.
func AwardForMenteeEvent(db *gorm.DB, menteeID uint, event string) (*models.RewardEvent, error) {
	var mentorship models.Mentorship
	err := db.Where("mentee_id = ?", menteeID).First(&mentorship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	points := DefaultPoints[event]
	if points <= 0 {
		return nil, nil
	}

	reward := models.RewardEvent{
		MentorID: mentorship.MentorID,
		MenteeID: menteeID,
		Event:    event,
		Points:   points,
	}
	err = db.Where(
		"mentor_id = ? AND mentee_id = ? AND event = ?",
		mentorship.MentorID, menteeID, event,
	).FirstOrCreate(&reward).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}
