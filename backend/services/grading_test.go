package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func quizFixture() *models.Quiz {
	return &models.Quiz{
		Questions: []models.QuizQuestion{
			{
				Model:        gormModel(1),
				QuestionType: "multiple_choice",
				Points:       2,
				Choices: []models.QuizChoice{
					{Model: gormModel(10), IsCorrect: true},
					{Model: gormModel(11), IsCorrect: true},
					{Model: gormModel(12)},
				},
			},
			{
				Model:        gormModel(2),
				QuestionType: "true_false",
				Points:       1,
				Choices: []models.QuizChoice{
					{Model: gormModel(20), ChoiceText: "True", IsCorrect: true},
					{Model: gormModel(21), ChoiceText: "False"},
				},
			},
			{
				Model:        gormModel(3),
				QuestionType: "short_answer",
				Points:       1,
			},
		},
	}
}

func TestGradeQuizFullMarks(t *testing.T) {
	quiz := quizFixture()

	// Short answer is never auto-scored, so 3 of 4 points is the ceiling.
	score := GradeQuiz(quiz, map[string]interface{}{
		"1": []interface{}{float64(10), float64(11)},
		"2": "true",
		"3": "anything",
	})
	assert.Equal(t, 75, score)
}

func TestGradeQuizPartialChoiceSetFails(t *testing.T) {
	quiz := quizFixture()

	// One of two correct choices earns nothing; the set must match exactly.
	score := GradeQuiz(quiz, map[string]interface{}{
		"1": []interface{}{float64(10)},
		"2": "true",
	})
	assert.Equal(t, 25, score)

	// Extra wrong choice also fails.
	score = GradeQuiz(quiz, map[string]interface{}{
		"1": []interface{}{float64(10), float64(11), float64(12)},
	})
	assert.Equal(t, 0, score)
}

func TestGradeQuizTrueFalseVariants(t *testing.T) {
	quiz := quizFixture()

	for _, truthy := range []interface{}{"true", "T", "1", "yes", true} {
		score := GradeQuiz(quiz, map[string]interface{}{"2": truthy})
		assert.Equal(t, 25, score, "answer %v should be treated as true", truthy)
	}
	for _, falsy := range []interface{}{"false", "F", "0", "no", "garbage"} {
		score := GradeQuiz(quiz, map[string]interface{}{"2": falsy})
		assert.Equal(t, 0, score, "answer %v should not match", falsy)
	}
}

func TestGradeQuizMissingAnswers(t *testing.T) {
	quiz := quizFixture()

	assert.Equal(t, 0, GradeQuiz(quiz, map[string]interface{}{}))
	assert.Equal(t, 0, GradeQuiz(quiz, map[string]interface{}{"2": nil}))
}

func TestGradeQuizEmptyQuiz(t *testing.T) {
	assert.Equal(t, 0, GradeQuiz(&models.Quiz{}, map[string]interface{}{}))
}

func TestGradeQuizRounding(t *testing.T) {
	// 1 of 3 points rounds 33.33 to 33, 2 of 3 rounds 66.67 to 67.
	quiz := &models.Quiz{
		Questions: []models.QuizQuestion{
			{
				Model:        gormModel(1),
				QuestionType: "true_false",
				Points:       1,
				Choices: []models.QuizChoice{
					{Model: gormModel(10), ChoiceText: "True", IsCorrect: true},
				},
			},
			{
				Model:        gormModel(2),
				QuestionType: "true_false",
				Points:       2,
				Choices: []models.QuizChoice{
					{Model: gormModel(20), ChoiceText: "True", IsCorrect: true},
				},
			},
		},
	}

	assert.Equal(t, 33, GradeQuiz(quiz, map[string]interface{}{"1": "true"}))
	assert.Equal(t, 67, GradeQuiz(quiz, map[string]interface{}{"2": "true"}))
}
