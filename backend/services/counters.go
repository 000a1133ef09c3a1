package services

import (
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

// GlobalCounter loads the singleton aggregate row, creating it on first use.
func GlobalCounter(db *gorm.DB) (*models.GlobalSoulsCounter, error) {
	counter := models.GlobalSoulsCounter{ID: 1}
	if err := db.FirstOrCreate(&counter, models.GlobalSoulsCounter{ID: 1}).Error; err != nil {
		return nil, err
	}
	return &counter, nil
}

// RecordVerifiedMission bumps the counter when a mission report transitions
// from unverified to verified. Callers are responsible for only invoking this
// on that transition.
func RecordVerifiedMission(db *gorm.DB, report *models.MissionReport) error {
	counter, err := GlobalCounter(db)
	if err != nil {
		return err
	}
	counter.TotalSoulsReached += report.SoulsReached
	counter.TotalBaptisms += report.BaptismsPerformed
	counter.TotalMissionReports++
	return db.Save(counter).Error
}

// RecordBaptism bumps the baptism count for a newly created record.
func RecordBaptism(db *gorm.DB) error {
	counter, err := GlobalCounter(db)
	if err != nil {
		return err
	}
	counter.TotalBaptisms++
	return db.Save(counter).Error
}

// RecordNewGroup bumps the group count for a newly created active group.
func RecordNewGroup(db *gorm.DB) error {
	counter, err := GlobalCounter(db)
	if err != nil {
		return err
	}
	counter.TotalBibleStudyGroups++
	return db.Save(counter).Error
}

// RefreshGlobalCounter recomputes the derived counts from base tables:
// active missionaries (completed missionary-path enrollments) and active
// bible study groups.
func RefreshGlobalCounter(db *gorm.DB) (*models.GlobalSoulsCounter, error) {
	counter, err := GlobalCounter(db)
	if err != nil {
		return nil, err
	}

	var missionaries int64
	db.Model(&models.PathEnrollment{}).
		Joins("JOIN paths ON paths.id = path_enrollments.path_id").
		Where("paths.stage = ? AND path_enrollments.completed_at IS NOT NULL", models.StageMissionary).
		Count(&missionaries)

	var groups int64
	db.Model(&models.BibleStudyGroup{}).Where("is_active = ?", true).Count(&groups)

	counter.ActiveMissionaries = int(missionaries)
	counter.TotalBibleStudyGroups = int(groups)
	if err := db.Save(counter).Error; err != nil {
		return nil, err
	}
	return counter, nil
}
