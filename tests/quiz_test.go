package tests

import (
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

// seedQuiz builds a two-question quiz (multiple choice + true/false) worth one
// point each and returns it with choices loaded.
func seedQuiz(t *testing.T, slugPrefix string, maxAttempts int) (models.Lesson, models.Quiz) {
	t.Helper()

	_, lessons := seedJourney(slugPrefix, models.StageMissionary)
	lesson := lessons[0]

	quiz := models.Quiz{
		LessonID:     lesson.ID,
		Title:        slugPrefix + " quiz",
		PassingScore: 70,
		MaxAttempts:  maxAttempts,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&quiz).Error)

	mc := models.QuizQuestion{
		QuizID:       quiz.ID,
		QuestionType: "multiple_choice",
		QuestionText: "Which are gospels?",
		Points:       1,
		Choices: []models.QuizChoice{
			{ChoiceText: "Mark", IsCorrect: true},
			{ChoiceText: "John", IsCorrect: true},
			{ChoiceText: "Acts"},
		},
	}
	require.NoError(t, db.Create(&mc).Error)

	tf := models.QuizQuestion{
		QuizID:       quiz.ID,
		QuestionType: "true_false",
		QuestionText: "There are four gospels.",
		Points:       1,
		Choices: []models.QuizChoice{
			{ChoiceText: "True", IsCorrect: true},
			{ChoiceText: "False"},
		},
	}
	require.NoError(t, db.Create(&tf).Error)

	require.NoError(t, db.Preload("Questions.Choices").First(&quiz, quiz.ID).Error)
	require.Len(t, quiz.Questions, 2)
	require.Len(t, quiz.Questions[0].Choices, 3)
	require.Len(t, quiz.Questions[1].Choices, 2)
	return lesson, quiz
}

func testSubmitQuiz(t *testing.T) {
	user := createUser("quiztaker", "quiztaker@example.com", "member")
	token := tokenFor(user)
	lesson, quiz := seedQuiz(t, "quiztaker", 3)

	mc := quiz.Questions[0]
	tf := quiz.Questions[1]
	correctIDs := []uint{}
	for _, choice := range mc.Choices {
		if choice.IsCorrect {
			correctIDs = append(correctIDs, choice.ID)
		}
	}

	// The quiz endpoint must not leak correct answers.
	resp := doRequest(t, "GET", lessonPath(lesson.ID, "quiz"), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw := decodeBody(t, resp)
	firstChoice := raw["questions"].([]interface{})[0].(map[string]interface{})["choices"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, firstChoice, "is_correct")

	// Full marks: lesson gets completed by the passing attempt.
	resp = doRequest(t, "POST", "/api/quizzes/"+strconv.Itoa(int(quiz.ID))+"/submit", token,
		map[string]interface{}{
			"answers": map[string]interface{}{
				strconv.Itoa(int(mc.ID)): correctIDs,
				strconv.Itoa(int(tf.ID)): "true",
			},
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.Equal(t, float64(100), result["score"])
	assert.Equal(t, true, result["passed"])

	var progress models.LessonProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).
		First(&progress).Error)
	assert.Equal(t, models.ProgressCompleted, progress.Status)

	// Half marks fails a 70% threshold and leaves no new completion.
	user2 := createUser("quiztaker2", "quiztaker2@example.com", "member")
	token2 := tokenFor(user2)
	resp = doRequest(t, "POST", "/api/quizzes/"+strconv.Itoa(int(quiz.ID))+"/submit", token2,
		map[string]interface{}{
			"answers": map[string]interface{}{
				strconv.Itoa(int(tf.ID)): "true",
			},
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeBody(t, resp)
	assert.Equal(t, float64(50), result["score"])
	assert.Equal(t, false, result["passed"])

	var count int64
	db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ? AND status = ?", user2.ID, lesson.ID, models.ProgressCompleted).
		Count(&count)
	assert.Equal(t, int64(0), count)
}

func testMaxAttempts(t *testing.T) {
	user := createUser("retaker", "retaker@example.com", "member")
	token := tokenFor(user)
	_, quiz := seedQuiz(t, "retaker", 2)

	submit := func() int {
		resp := doRequest(t, "POST", "/api/quizzes/"+strconv.Itoa(int(quiz.ID))+"/submit", token,
			map[string]interface{}{"answers": map[string]interface{}{}})
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, submit())
	assert.Equal(t, fiber.StatusOK, submit())
	assert.Equal(t, fiber.StatusForbidden, submit())

	var attempts int64
	db.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).
		Count(&attempts)
	assert.Equal(t, int64(2), attempts)
}
