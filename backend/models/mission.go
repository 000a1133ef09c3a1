package models

import (
	"time"

	"gorm.io/gorm"
)

type MissionReport struct {
	gorm.Model
	MissionaryID      uint       `gorm:"index" json:"missionary_id"`
	Title             string     `gorm:"not null" json:"title"`
	Description       string     `json:"description"`
	Location          string     `json:"location"`
	SoulsReached      int        `gorm:"default:0" json:"souls_reached"`
	BaptismsPerformed int        `gorm:"default:0" json:"baptisms_performed"`
	ReportDate        time.Time  `json:"report_date"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerifiedByID      *uint      `json:"verified_by_id"`
	VerifiedAt        *time.Time `json:"verified_at"`
}

type BibleStudyGroup struct {
	gorm.Model
	LeaderID        uint   `gorm:"index" json:"leader_id"`
	Name            string `gorm:"not null" json:"name"`
	Location        string `json:"location"`
	MeetingDay      string `json:"meeting_day"`
	MemberCount     int    `gorm:"default:0" json:"member_count"`
	CurrentLessonID *uint  `json:"current_lesson_id"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`
}

type BaptismRecord struct {
	gorm.Model
	MissionaryID  uint      `gorm:"index" json:"missionary_id"`
	CandidateName string    `gorm:"not null" json:"candidate_name"`
	BaptismDate   time.Time `json:"baptism_date"`
	Location      string    `json:"location"`
	Notes         string    `json:"notes"`
}

type Certificate struct {
	gorm.Model
	UserID            uint   `gorm:"index" json:"user_id"`
	CertificateType   string `json:"certificate_type"` // missionary_license, level_completion
	Title             string `json:"title"`
	Description       string `json:"description"`
	CertificateNumber string `gorm:"uniqueIndex" json:"certificate_number"`
	IssuedByID        *uint  `json:"issued_by_id"`
}

// GlobalSoulsCounter is a singleton aggregate row (pk=1), incremented by
// verification and record-creation events and periodically recomputed.
type GlobalSoulsCounter struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	TotalSoulsReached     int       `gorm:"default:0" json:"total_souls_reached"`
	TotalBaptisms         int       `gorm:"default:0" json:"total_baptisms"`
	TotalMissionReports   int       `gorm:"default:0" json:"total_mission_reports"`
	TotalBibleStudyGroups int       `gorm:"default:0" json:"total_bible_study_groups"`
	ActiveMissionaries    int       `gorm:"default:0" json:"active_missionaries"`
	LastUpdated           time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}
