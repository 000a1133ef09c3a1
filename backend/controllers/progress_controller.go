package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/services"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

func (pc *ProgressController) StartLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var lesson models.Lesson
	if err := pc.DB.Where("is_published = ?", true).First(&lesson, lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	}

	progress, err := services.StartLesson(pc.DB, userID, &lesson)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not start lesson",
		})
	}
	return c.JSON(progress)
}

// CompleteLesson marks a lesson done. The score field is coerced permissively:
// numbers, numeric strings, or absent (treated as 100).
func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var lesson models.Lesson
	if err := pc.DB.Where("is_published = ?", true).First(&lesson, lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	}

	type CompleteInput struct {
		Score interface{} `json:"score"`
	}
	var input CompleteInput
	c.BodyParser(&input)

	score := 100
	switch v := input.Score.(type) {
	case float64:
		score = int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			score = n
		}
	}

	progress, err := services.MarkLessonComplete(pc.DB, pc.Cfg, userID, &lesson, score)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete lesson",
		})
	}

	services.RecordActivity(pc.DB, userID, "lesson_complete", lesson.Title)

	return c.JSON(fiber.Map{
		"progress":      progress,
		"level_percent": services.LevelCompletionPercent(pc.DB, userID, lesson.LevelID),
	})
}

func (pc *ProgressController) GetLessonProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var progress models.LessonProgress
	if err := pc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error; err != nil {
		return c.JSON(fiber.Map{
			"status": models.ProgressNotStarted,
		})
	}
	return c.JSON(progress)
}

func (pc *ProgressController) GetMyProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	return pc.progressSnapshot(c, userID)
}

// GetMenteeProgress lets a mentor view a mentee's snapshot. Anyone else gets
// a 403.
func (pc *ProgressController) GetMenteeProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	menteeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid mentee ID",
		})
	}

	var mentorship models.Mentorship
	if err := pc.DB.Where("mentor_id = ? AND mentee_id = ?", userID, menteeID).
		First(&mentorship).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not your mentee",
		})
	}

	return pc.progressSnapshot(c, uint(menteeID))
}

// progressSnapshot builds the journey overview: per-enrollment summary,
// per-level percentages and the completed lesson IDs.
func (pc *ProgressController) progressSnapshot(c *fiber.Ctx, userID uint) error {
	var enrollments []models.PathEnrollment
	pc.DB.Where("user_id = ?", userID).Find(&enrollments)

	paths := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var path models.Path
		if err := pc.DB.First(&path, enrollment.PathID).Error; err != nil {
			continue
		}

		var levels []models.Level
		pc.DB.Where("path_id = ? AND is_active = ?", path.ID, true).
			Order("\"order\" asc").Find(&levels)

		levelSummaries := make([]fiber.Map, 0, len(levels))
		for _, level := range levels {
			var completed int64
			pc.DB.Model(&models.LevelProgress{}).
				Where("user_id = ? AND level_id = ?", userID, level.ID).
				Count(&completed)

			levelSummaries = append(levelSummaries, fiber.Map{
				"id":        level.ID,
				"name":      level.Name,
				"order":     level.Order,
				"percent":   services.LevelCompletionPercent(pc.DB, userID, level.ID),
				"completed": completed > 0,
			})
		}

		paths = append(paths, fiber.Map{
			"path": fiber.Map{
				"id":    path.ID,
				"name":  path.Name,
				"stage": path.Stage,
				"slug":  path.Slug,
			},
			"current_level_id":    enrollment.CurrentLevelID,
			"progress_percentage": enrollment.ProgressPercentage,
			"completed_at":        enrollment.CompletedAt,
			"levels":              levelSummaries,
		})
	}

	var completedLessons []uint
	pc.DB.Model(&models.LessonProgress{}).
		Where("user_id = ? AND status = ?", userID, models.ProgressCompleted).
		Pluck("lesson_id", &completedLessons)

	done, total, pct := services.OverallCompletion(pc.DB, userID)

	return c.JSON(fiber.Map{
		"paths":             paths,
		"completed_lessons": completedLessons,
		"summary": fiber.Map{
			"lessons_completed": done,
			"lessons_total":     total,
			"percent":           pct,
		},
	})
}
