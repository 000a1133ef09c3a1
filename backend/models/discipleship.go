package models

import (
	"time"

	"gorm.io/gorm"
)

// Discipleship stages, in journey order: seeker -> scholar -> missionary.
const (
	StageSeeker     = "seeker"
	StageScholar    = "scholar"
	StageMissionary = "missionary"
)

type Path struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Stage       string  `gorm:"index" json:"stage"` // seeker, scholar, missionary
	Slug        string  `gorm:"uniqueIndex" json:"slug"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Order       int     `gorm:"default:0" json:"order"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	Levels      []Level `json:"levels,omitempty"`
}

type Level struct {
	gorm.Model
	PathID        uint     `gorm:"uniqueIndex:idx_path_level_slug" json:"path_id"`
	Name          string   `gorm:"not null" json:"name"`
	Slug          string   `gorm:"uniqueIndex:idx_path_level_slug" json:"slug"`
	Description   string   `json:"description"`
	Order         int      `gorm:"default:0" json:"order"`
	RequiredScore int      `gorm:"default:0" json:"required_score"`
	IsActive      bool     `gorm:"default:true" json:"is_active"`
	Lessons       []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	gorm.Model
	LevelID         uint   `gorm:"uniqueIndex:idx_level_lesson_slug" json:"level_id"`
	Title           string `gorm:"not null" json:"title"`
	Slug            string `gorm:"uniqueIndex:idx_level_lesson_slug" json:"slug"`
	Description     string `json:"description"`
	Content         string `json:"content"`
	VideoURL        string `json:"video_url"`
	AudioURL        string `json:"audio_url"`
	PDFURL          string `json:"pdf_url"`
	DurationMinutes int    `gorm:"default:0" json:"duration_minutes"`
	BibleReferences string `json:"bible_references"`
	Order           int    `gorm:"default:0" json:"order"`
	PointsValue     int    `gorm:"default:10" json:"points_value"`
	IsPublished     bool   `gorm:"default:true" json:"is_published"`
}

type Quiz struct {
	gorm.Model
	LessonID         uint           `gorm:"uniqueIndex" json:"lesson_id"`
	Title            string         `gorm:"not null" json:"title"`
	Description      string         `json:"description"`
	PassingScore     int            `gorm:"default:70" json:"passing_score"`
	TimeLimitMinutes int            `gorm:"default:30" json:"time_limit_minutes"`
	MaxAttempts      int            `gorm:"default:3" json:"max_attempts"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	Questions        []QuizQuestion `json:"questions,omitempty"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID       uint         `gorm:"index" json:"quiz_id"`
	QuestionType string       `json:"question_type"` // multiple_choice, true_false, short_answer
	QuestionText string       `gorm:"not null" json:"question_text"`
	Explanation  string       `json:"explanation"`
	Order        int          `gorm:"default:0" json:"order"`
	Points       int          `gorm:"default:1" json:"points"`
	Choices      []QuizChoice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

type QuizChoice struct {
	gorm.Model
	QuestionID uint   `gorm:"index" json:"question_id"`
	ChoiceText string `gorm:"not null" json:"choice_text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
	Order      int    `gorm:"default:0" json:"order"`
}

type QuizAttempt struct {
	gorm.Model
	UserID           uint       `gorm:"index" json:"user_id"`
	QuizID           uint       `gorm:"index" json:"quiz_id"`
	Score            int        `gorm:"default:0" json:"score"`
	Passed           bool       `gorm:"default:false" json:"passed"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeSpentMinutes int        `gorm:"default:0" json:"time_spent_minutes"`
	Answers          string     `json:"answers"` // raw submitted answers, JSON
}
