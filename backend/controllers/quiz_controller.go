package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/services"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type QuizController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizController(db *gorm.DB, cfg *config.Config) *QuizController {
	return &QuizController{DB: db, Cfg: cfg}
}

// GetQuiz returns the quiz for a lesson. Correct answers are never exposed:
// QuizChoice serializes without its is_correct flag.
func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var quiz models.Quiz
	if err := qc.DB.Where("lesson_id = ? AND is_active = ?", lessonID, true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		First(&quiz).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quiz not found",
		})
	}

	return c.JSON(quiz)
}

func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	type SubmitInput struct {
		Answers          map[string]interface{} `json:"answers"`
		TimeSpentMinutes int                    `json:"time_spent_minutes"`
	}
	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var quiz models.Quiz
	if err := qc.DB.Where("is_active = ?", true).
		Preload("Questions.Choices").
		First(&quiz, quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quiz not found",
		})
	}

	if quiz.MaxAttempts > 0 {
		var attempts int64
		qc.DB.Model(&models.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ?", userID, quiz.ID).
			Count(&attempts)
		if attempts >= int64(quiz.MaxAttempts) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Maximum attempts reached",
			})
		}
	}

	score := services.GradeQuiz(&quiz, input.Answers)
	passed := score >= quiz.PassingScore

	rawAnswers, _ := json.Marshal(input.Answers)
	now := time.Now()
	attempt := models.QuizAttempt{
		UserID:           userID,
		QuizID:           quiz.ID,
		Score:            score,
		Passed:           passed,
		CompletedAt:      &now,
		TimeSpentMinutes: input.TimeSpentMinutes,
		Answers:          string(rawAnswers),
	}
	if err := qc.DB.Create(&attempt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record attempt",
		})
	}

	// A passing score completes the lesson and runs the progression chain.
	if passed {
		var lesson models.Lesson
		if err := qc.DB.First(&lesson, quiz.LessonID).Error; err == nil {
			services.MarkLessonComplete(qc.DB, qc.Cfg, userID, &lesson, score)
		}
	}

	return c.JSON(fiber.Map{
		"score":         score,
		"passed":        passed,
		"passing_score": quiz.PassingScore,
		"attempt_id":    attempt.ID,
	})
}

func (qc *QuizController) GetMyAttempts(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	var attempts []models.QuizAttempt
	if err := qc.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch attempts",
		})
	}
	return c.JSON(attempts)
}

// --- Admin CRUD ---

func (qc *QuizController) CreateQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := c.BodyParser(&quiz); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if quiz.Title == "" || quiz.LessonID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and lesson_id are required",
		})
	}

	var lesson models.Lesson
	if err := qc.DB.First(&lesson, quiz.LessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	}
	if err := qc.DB.Create(&quiz).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create quiz, lesson may already have one",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func (qc *QuizController) CreateQuestion(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quiz ID",
		})
	}

	type ChoiceInput struct {
		ChoiceText string `json:"choice_text"`
		IsCorrect  bool   `json:"is_correct"`
		Order      int    `json:"order"`
	}
	type QuestionInput struct {
		QuestionType string        `json:"question_type"`
		QuestionText string        `json:"question_text"`
		Explanation  string        `json:"explanation"`
		Order        int           `json:"order"`
		Points       int           `json:"points"`
		Choices      []ChoiceInput `json:"choices"`
	}
	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.QuestionText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question text is required",
		})
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quiz not found",
		})
	}

	question := models.QuizQuestion{
		QuizID:       quiz.ID,
		QuestionType: input.QuestionType,
		QuestionText: input.QuestionText,
		Explanation:  input.Explanation,
		Order:        input.Order,
		Points:       input.Points,
	}
	if question.Points == 0 {
		question.Points = 1
	}
	for _, choice := range input.Choices {
		question.Choices = append(question.Choices, models.QuizChoice{
			ChoiceText: choice.ChoiceText,
			IsCorrect:  choice.IsCorrect,
			Order:      choice.Order,
		})
	}

	if err := qc.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create question",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}
