package services

import (
	"strconv"
	"strings"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

// GradeQuiz scores submitted answers against a quiz whose Questions and
// Choices are preloaded. Answers are keyed by question ID (as a string, the
// way JSON clients send them). Multiple choice requires the exact set of
// correct choices; true/false matches the truthiness of the answer against
// the correct choice; short answers are not auto-graded. Returns a 0..100
// percentage.
func GradeQuiz(quiz *models.Quiz, answers map[string]interface{}) int {
	totalPoints := 0
	for _, q := range quiz.Questions {
		totalPoints += q.Points
	}
	if totalPoints == 0 {
		return 0
	}

	scored := 0
	for _, question := range quiz.Questions {
		answer, ok := answers[strconv.FormatUint(uint64(question.ID), 10)]
		if !ok || answer == nil {
			continue
		}

		switch question.QuestionType {
		case "multiple_choice":
			if gradeMultipleChoice(&question, answer) {
				scored += question.Points
			}
		case "true_false":
			if gradeTrueFalse(&question, answer) {
				scored += question.Points
			}
		default:
			// short_answer: reviewed manually, never auto-scored
		}
	}

	percent := float64(scored) / float64(totalPoints) * 100
	return int(percent + 0.5)
}

func gradeMultipleChoice(question *models.QuizQuestion, answer interface{}) bool {
	var raw []interface{}
	if list, ok := answer.([]interface{}); ok {
		raw = list
	} else {
		raw = []interface{}{answer}
	}

	chosen := map[uint]bool{}
	for _, v := range raw {
		if id, ok := toUint(v); ok {
			chosen[id] = true
		}
	}

	correct := map[uint]bool{}
	for _, choice := range question.Choices {
		if choice.IsCorrect {
			correct[choice.ID] = true
		}
	}
	if len(correct) == 0 || len(chosen) != len(correct) {
		return false
	}
	for id := range correct {
		if !chosen[id] {
			return false
		}
	}
	return true
}

func gradeTrueFalse(question *models.QuizQuestion, answer interface{}) bool {
	answerStr := strings.ToLower(strings.TrimSpace(toString(answer)))

	var chosenTrue bool
	switch answerStr {
	case "true", "t", "1", "yes":
		chosenTrue = true
	case "false", "f", "0", "no":
		chosenTrue = false
	default:
		return false
	}

	for _, choice := range question.Choices {
		if choice.IsCorrect {
			correctIsTrue := strings.HasPrefix(strings.ToLower(strings.TrimSpace(choice.ChoiceText)), "t")
			return chosenTrue == correctIsTrue
		}
	}
	return false
}

func toUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case string:
		id, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(id), true
	default:
		return 0, false
	}
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
