package utils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch cfg.DBDriver {
	case "sqlite":
		// DBName doubles as the file path; ":memory:" for tests.
		return gorm.Open(sqlite.Open(cfg.DBName), gormCfg)
	default:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.LoginHistory{},
		&models.UserActivity{},
		&models.Category{},
		&models.Post{},
		&models.Event{},
		&models.MediaItem{},
		&models.PrayerRequest{},
		&models.Announcement{},
		&models.LessonLike{},
		&models.LessonComment{},
		&models.Path{},
		&models.Level{},
		&models.Lesson{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizChoice{},
		&models.QuizAttempt{},
		&models.LessonProgress{},
		&models.LevelProgress{},
		&models.PathEnrollment{},
		&models.Referral{},
		&models.Mentorship{},
		&models.RewardEvent{},
		&models.MissionReport{},
		&models.BibleStudyGroup{},
		&models.BaptismRecord{},
		&models.Certificate{},
		&models.GlobalSoulsCounter{},
		&models.ProductCategory{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
}
