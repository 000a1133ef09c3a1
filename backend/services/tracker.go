package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
)

// StartLesson lazily creates the ledger row and moves it to in_progress.
// Completed lessons are left untouched.
func StartLesson(db *gorm.DB, userID uint, lesson *models.Lesson) (*models.LessonProgress, error) {
	now := time.Now()

	var progress models.LessonProgress
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.LessonProgress{
			UserID:    userID,
			LessonID:  lesson.ID,
			Status:    models.ProgressInProgress,
			StartedAt: &now,
		}
		if err := db.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}

	if progress.Status == models.ProgressNotStarted {
		progress.Status = models.ProgressInProgress
		if progress.StartedAt == nil {
			progress.StartedAt = &now
		}
		if err := db.Save(&progress).Error; err != nil {
			return nil, err
		}
	}
	return &progress, nil
}

// MarkLessonComplete records a lesson completion and runs the downstream
// chain: level completion check, enrollment update, reward triggers and the
// system-wide completion check. Idempotent: completing an already-completed
// lesson returns the existing record without side effects repeating.
func MarkLessonComplete(db *gorm.DB, cfg *config.Config, userID uint, lesson *models.Lesson, score int) (*models.LessonProgress, error) {
	var progress *models.LessonProgress

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var entry models.LessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.LessonProgress{
				UserID:      userID,
				LessonID:    lesson.ID,
				Status:      models.ProgressCompleted,
				Score:       &score,
				StartedAt:   &now,
				CompletedAt: &now,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else if entry.Status != models.ProgressCompleted {
			entry.Status = models.ProgressCompleted
			entry.Score = &score
			entry.CompletedAt = &now
			if entry.StartedAt == nil {
				entry.StartedAt = &now
			}
			if err := tx.Save(&entry).Error; err != nil {
				return err
			}
		}
		progress = &entry

		var level models.Level
		if err := tx.First(&level, lesson.LevelID).Error; err != nil {
			return err
		}

		if err := checkLevelComplete(tx, cfg, userID, &level, now); err != nil {
			return err
		}
		if err := updateEnrollment(tx, userID, &level, now); err != nil {
			return err
		}
		return checkAllLessonsComplete(tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// checkLevelComplete creates the LevelProgress row the first time every
// published lesson in the level is completed, and fires the Level 1 triggers
// on that first creation only.
func checkLevelComplete(tx *gorm.DB, cfg *config.Config, userID uint, level *models.Level, now time.Time) error {
	var total, done int64
	tx.Model(&models.Lesson{}).
		Where("level_id = ? AND is_published = ?", level.ID, true).
		Count(&total)
	if total == 0 {
		return nil
	}

	tx.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.level_id = ? AND lessons.is_published = ? AND lesson_progresses.status = ?",
			userID, level.ID, true, models.ProgressCompleted).
		Count(&done)
	if done < total {
		return nil
	}

	lp := models.LevelProgress{
		UserID:      userID,
		LevelID:     level.ID,
		Status:      models.ProgressCompleted,
		CompletedAt: now,
	}
	res := tx.Where("user_id = ? AND level_id = ?", userID, level.ID).FirstOrCreate(&lp)
	if res.Error != nil {
		return res.Error
	}
	created := res.RowsAffected > 0

	if created && level.Order == 1 {
		if _, err := AwardForMenteeEvent(tx, userID, models.EventLevel1Complete); err != nil {
			return err
		}
		TryActivateReferral(tx, cfg, userID)
	}
	return nil
}

// updateEnrollment keeps the user's PathEnrollment in sync: forward-only
// current level pointer, recomputed percentage, completion stamp at 100%.
func updateEnrollment(tx *gorm.DB, userID uint, level *models.Level, now time.Time) error {
	var path models.Path
	if err := tx.First(&path, level.PathID).Error; err != nil {
		return err
	}

	var enrollment models.PathEnrollment
	err := tx.Where("user_id = ? AND path_id = ?", userID, path.ID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		levelID := level.ID
		enrollment = models.PathEnrollment{
			UserID:         userID,
			PathID:         path.ID,
			CurrentLevelID: &levelID,
			EnrolledAt:     now,
			IsActive:       true,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	// Advance the pointer only forward, never back.
	if enrollment.CurrentLevelID == nil {
		levelID := level.ID
		enrollment.CurrentLevelID = &levelID
	} else {
		var current models.Level
		if err := tx.First(&current, *enrollment.CurrentLevelID).Error; err == nil {
			if current.Order <= level.Order {
				levelID := level.ID
				enrollment.CurrentLevelID = &levelID
			}
		}
	}

	var total, done int64
	tx.Model(&models.Lesson{}).
		Joins("JOIN levels ON levels.id = lessons.level_id").
		Where("levels.path_id = ? AND lessons.is_published = ?", path.ID, true).
		Count(&total)
	tx.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Joins("JOIN levels ON levels.id = lessons.level_id").
		Where("levels.path_id = ? AND lessons.is_published = ? AND lesson_progresses.user_id = ? AND lesson_progresses.status = ?",
			path.ID, true, userID, models.ProgressCompleted).
		Count(&done)

	if total == 0 {
		enrollment.ProgressPercentage = 0
	} else {
		enrollment.ProgressPercentage = int(done * 100 / total)
	}

	if enrollment.ProgressPercentage >= 100 && enrollment.CompletedAt == nil {
		enrollment.CompletedAt = &now
		if path.Stage == models.StageMissionary {
			if err := issueMissionaryCertificate(tx, userID); err != nil {
				return err
			}
		}
	}

	return tx.Save(&enrollment).Error
}

// checkAllLessonsComplete awards the all_levels_complete event once the user
// has completed every published lesson in the system.
func checkAllLessonsComplete(tx *gorm.DB, userID uint) error {
	var total, done int64
	tx.Model(&models.Lesson{}).Where("is_published = ?", true).Count(&total)
	if total == 0 {
		return nil
	}

	tx.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.is_published = ? AND lesson_progresses.status = ?",
			userID, true, models.ProgressCompleted).
		Count(&done)
	if done != total {
		return nil
	}

	_, err := AwardForMenteeEvent(tx, userID, models.EventAllLevelsComplete)
	return err
}

func issueMissionaryCertificate(tx *gorm.DB, userID uint) error {
	cert := models.Certificate{
		UserID:            userID,
		CertificateType:   "missionary_license",
		Title:             "Certified Missionary License",
		Description:       "Awarded for completing the God Cares 365 Missionary Training Program",
		CertificateNumber: fmt.Sprintf("GC365-M%06d", userID),
	}
	return tx.Where("certificate_number = ?", cert.CertificateNumber).FirstOrCreate(&cert).Error
}

// LevelCompletionPercent returns floor(done/total*100) for one level, 0 when
// the level has no published lessons.
func LevelCompletionPercent(db *gorm.DB, userID, levelID uint) int {
	var total int64
	db.Model(&models.Lesson{}).
		Where("level_id = ? AND is_published = ?", levelID, true).
		Count(&total)
	if total == 0 {
		return 0
	}

	var done int64
	db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.level_id = ? AND lessons.is_published = ? AND lesson_progresses.status = ?",
			userID, levelID, true, models.ProgressCompleted).
		Count(&done)

	return int(done * 100 / total)
}

// OverallCompletion returns (done, total, percent) across every published
// lesson in the system.
func OverallCompletion(db *gorm.DB, userID uint) (int, int, int) {
	var total int64
	db.Model(&models.Lesson{}).Where("is_published = ?", true).Count(&total)
	if total == 0 {
		return 0, 0, 0
	}

	var done int64
	db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.is_published = ? AND lesson_progresses.status = ?",
			userID, true, models.ProgressCompleted).
		Count(&done)

	return int(done), int(total), int(done * 100 / total)
}
