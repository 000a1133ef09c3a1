package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress statuses.
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// LessonProgress is the per-user ledger entry for one lesson. Rows are
// created lazily on first interaction and mutated in place, never deleted.
type LessonProgress struct {
	gorm.Model
	UserID      uint       `gorm:"uniqueIndex:idx_user_lesson;index:idx_user_status" json:"user_id"`
	LessonID    uint       `gorm:"uniqueIndex:idx_user_lesson" json:"lesson_id"`
	Status      string     `gorm:"default:not_started;index:idx_user_status" json:"status"`
	Score       *int       `json:"score"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// LevelProgress is created exactly once, the moment every published lesson in
// the level has a completed LessonProgress for the user. It is never updated
// or retracted afterwards, even if lessons are later added to the level.
type LevelProgress struct {
	gorm.Model
	UserID      uint      `gorm:"uniqueIndex:idx_user_level" json:"user_id"`
	LevelID     uint      `gorm:"uniqueIndex:idx_user_level" json:"level_id"`
	Status      string    `gorm:"default:completed" json:"status"`
	CompletedAt time.Time `json:"completed_at"`
}

type PathEnrollment struct {
	gorm.Model
	UserID             uint       `gorm:"uniqueIndex:idx_user_path" json:"user_id"`
	PathID             uint       `gorm:"uniqueIndex:idx_user_path" json:"path_id"`
	CurrentLevelID     *uint      `json:"current_level_id"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	ProgressPercentage int        `gorm:"default:0" json:"progress_percentage"`
}
