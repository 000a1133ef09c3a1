package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type DiscipleshipController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDiscipleshipController(db *gorm.DB, cfg *config.Config) *DiscipleshipController {
	return &DiscipleshipController{DB: db, Cfg: cfg}
}

func (dc *DiscipleshipController) GetPaths(c *fiber.Ctx) error {
	var paths []models.Path
	if err := dc.DB.Where("is_active = ?", true).
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("\"order\" asc")
		}).
		Order("\"order\" asc").
		Find(&paths).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch paths",
		})
	}
	return c.JSON(paths)
}

func (dc *DiscipleshipController) GetPath(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var path models.Path
	if err := dc.DB.Where("slug = ? AND is_active = ?", slug, true).
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("\"order\" asc")
		}).
		Preload("Levels.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("\"order\" asc")
		}).
		First(&path).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Path not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch path",
		})
	}
	return c.JSON(path)
}

func (dc *DiscipleshipController) GetLevel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid level ID",
		})
	}

	var level models.Level
	if err := dc.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_published = ?", true).Order("\"order\" asc")
	}).First(&level, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Level not found",
		})
	}
	return c.JSON(level)
}

func (dc *DiscipleshipController) GetLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var lesson models.Lesson
	if err := dc.DB.Where("is_published = ?", true).First(&lesson, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	}

	var likes int64
	dc.DB.Model(&models.LessonLike{}).Where("lesson_id = ?", lesson.ID).Count(&likes)

	var hasQuiz bool
	var quiz models.Quiz
	if err := dc.DB.Where("lesson_id = ? AND is_active = ?", lesson.ID, true).
		First(&quiz).Error; err == nil {
		hasQuiz = true
	}

	return c.JSON(fiber.Map{
		"lesson":   lesson,
		"likes":    likes,
		"has_quiz": hasQuiz,
	})
}

// --- Admin CRUD ---

func (dc *DiscipleshipController) CreatePath(c *fiber.Ctx) error {
	var path models.Path
	if err := c.BodyParser(&path); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if path.Name == "" || path.Stage == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and stage are required",
		})
	}
	if path.Slug == "" {
		path.Slug = utils.UniqueSlug(dc.DB, "paths", path.Name)
	}
	if err := dc.DB.Create(&path).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create path",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(path)
}

func (dc *DiscipleshipController) CreateLevel(c *fiber.Ctx) error {
	var level models.Level
	if err := c.BodyParser(&level); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if level.Name == "" || level.PathID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and path_id are required",
		})
	}

	var path models.Path
	if err := dc.DB.First(&path, level.PathID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Path not found",
		})
	}
	if level.Slug == "" {
		level.Slug = utils.UniqueSlug(dc.DB, "levels", level.Name)
	}
	if err := dc.DB.Create(&level).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create level",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(level)
}

func (dc *DiscipleshipController) CreateLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := c.BodyParser(&lesson); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if lesson.Title == "" || lesson.LevelID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and level_id are required",
		})
	}

	var level models.Level
	if err := dc.DB.First(&level, lesson.LevelID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Level not found",
		})
	}
	if lesson.Slug == "" {
		lesson.Slug = utils.UniqueSlug(dc.DB, "lessons", lesson.Title)
	}
	if err := dc.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create lesson",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func (dc *DiscipleshipController) UpdateLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var lesson models.Lesson
	if err := dc.DB.First(&lesson, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	}

	type UpdateInput struct {
		Title           *string `json:"title"`
		Description     *string `json:"description"`
		Content         *string `json:"content"`
		VideoURL        *string `json:"video_url"`
		AudioURL        *string `json:"audio_url"`
		PDFURL          *string `json:"pdf_url"`
		DurationMinutes *int    `json:"duration_minutes"`
		BibleReferences *string `json:"bible_references"`
		Order           *int    `json:"order"`
		PointsValue     *int    `json:"points_value"`
		IsPublished     *bool   `json:"is_published"`
	}
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != nil {
		lesson.Title = *input.Title
	}
	if input.Description != nil {
		lesson.Description = *input.Description
	}
	if input.Content != nil {
		lesson.Content = *input.Content
	}
	if input.VideoURL != nil {
		lesson.VideoURL = *input.VideoURL
	}
	if input.AudioURL != nil {
		lesson.AudioURL = *input.AudioURL
	}
	if input.PDFURL != nil {
		lesson.PDFURL = *input.PDFURL
	}
	if input.DurationMinutes != nil {
		lesson.DurationMinutes = *input.DurationMinutes
	}
	if input.BibleReferences != nil {
		lesson.BibleReferences = *input.BibleReferences
	}
	if input.Order != nil {
		lesson.Order = *input.Order
	}
	if input.PointsValue != nil {
		lesson.PointsValue = *input.PointsValue
	}
	if input.IsPublished != nil {
		lesson.IsPublished = *input.IsPublished
	}

	if err := dc.DB.Save(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lesson",
		})
	}
	return c.JSON(lesson)
}

func (dc *DiscipleshipController) DeleteLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}
	if err := dc.DB.Delete(&models.Lesson{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete lesson",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Lesson deleted",
	})
}

// Enroll records the user on a path; enrolling twice is a no-op.
func (dc *DiscipleshipController) Enroll(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	pathID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid path ID",
		})
	}

	var path models.Path
	if err := dc.DB.Where("is_active = ?", true).First(&path, pathID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Path not found",
		})
	}

	enrollment := models.PathEnrollment{UserID: userID, PathID: path.ID}
	res := dc.DB.Where(models.PathEnrollment{UserID: userID, PathID: path.ID}).
		Attrs(models.PathEnrollment{EnrolledAt: time.Now()}).
		FirstOrCreate(&enrollment)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not enroll",
		})
	}

	return c.JSON(enrollment)
}
