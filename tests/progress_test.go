package tests

import (
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

func testLevelPercent(t *testing.T) {
	user := createUser("walker", "walker@example.com", "member")
	token := tokenFor(user)
	_, lessons := seedJourney("walker", models.StageSeeker)

	// Half the first level done.
	result := completeLesson(t, token, lessons[0].ID)
	assert.Equal(t, float64(50), result["level_percent"])

	// No level completion yet.
	var count int64
	db.Model(&models.LevelProgress{}).
		Where("user_id = ? AND level_id = ?", user.ID, lessons[0].LevelID).
		Count(&count)
	assert.Equal(t, int64(0), count)

	// Finishing the level creates the LevelProgress row.
	result = completeLesson(t, token, lessons[1].ID)
	assert.Equal(t, float64(100), result["level_percent"])

	db.Model(&models.LevelProgress{}).
		Where("user_id = ? AND level_id = ?", user.ID, lessons[0].LevelID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func testIdempotentCompletion(t *testing.T) {
	user := createUser("repeater", "repeater@example.com", "member")
	token := tokenFor(user)
	_, lessons := seedJourney("repeater", models.StageSeeker)

	completeLesson(t, token, lessons[0].ID)
	completeLesson(t, token, lessons[1].ID)
	completeLesson(t, token, lessons[0].ID)
	completeLesson(t, token, lessons[0].ID)

	var progressCount int64
	db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).
		Count(&progressCount)
	assert.Equal(t, int64(1), progressCount)

	var levelCount int64
	db.Model(&models.LevelProgress{}).
		Where("user_id = ? AND level_id = ?", user.ID, lessons[0].LevelID).
		Count(&levelCount)
	assert.Equal(t, int64(1), levelCount)
}

func testMentorRewardOnLevel1(t *testing.T) {
	mentor := createUser("pmentor", "pmentor@example.com", "member")
	mentee := createUser("pmentee", "pmentee@example.com", "member")
	db.Create(&models.Mentorship{MentorID: mentor.ID, MenteeID: mentee.ID})

	token := tokenFor(mentee)
	_, lessons := seedJourney("pmentor", models.StageSeeker)

	completeLesson(t, token, lessons[0].ID)
	completeLesson(t, token, lessons[1].ID)

	var reward models.RewardEvent
	require.NoError(t, db.Where("mentor_id = ? AND mentee_id = ? AND event = ?",
		mentor.ID, mentee.ID, models.EventLevel1Complete).First(&reward).Error)
	assert.Equal(t, 20, reward.Points)

	// Re-completing does not duplicate the reward.
	completeLesson(t, token, lessons[1].ID)

	var count int64
	db.Model(&models.RewardEvent{}).
		Where("mentor_id = ? AND mentee_id = ? AND event = ?",
			mentor.ID, mentee.ID, models.EventLevel1Complete).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func testNoMentorNoReward(t *testing.T) {
	user := createUser("orphan", "orphan@example.com", "member")
	token := tokenFor(user)
	_, lessons := seedJourney("orphan", models.StageSeeker)

	completeLesson(t, token, lessons[0].ID)
	completeLesson(t, token, lessons[1].ID)

	var count int64
	db.Model(&models.RewardEvent{}).Where("mentee_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func testEnrollmentRatchet(t *testing.T) {
	user := createUser("ratchet", "ratchet@example.com", "member")
	token := tokenFor(user)
	path, lessons := seedJourney("ratchet", models.StageSeeker)

	// Complete level 1, start level 2.
	completeLesson(t, token, lessons[0].ID)
	completeLesson(t, token, lessons[1].ID)
	completeLesson(t, token, lessons[2].ID)

	var enrollment models.PathEnrollment
	require.NoError(t, db.Where("user_id = ? AND path_id = ?", user.ID, path.ID).
		First(&enrollment).Error)
	require.NotNil(t, enrollment.CurrentLevelID)
	assert.Equal(t, lessons[2].LevelID, *enrollment.CurrentLevelID)
	assert.Equal(t, 75, enrollment.ProgressPercentage)

	// Revisiting an old lesson never moves the pointer back.
	completeLesson(t, token, lessons[0].ID)

	db.Where("user_id = ? AND path_id = ?", user.ID, path.ID).First(&enrollment)
	assert.Equal(t, lessons[2].LevelID, *enrollment.CurrentLevelID)

	// Finishing the path stamps completion.
	completeLesson(t, token, lessons[3].ID)

	db.Where("user_id = ? AND path_id = ?", user.ID, path.ID).First(&enrollment)
	assert.Equal(t, 100, enrollment.ProgressPercentage)
	assert.NotNil(t, enrollment.CompletedAt)
}

func testAllLessonsReward(t *testing.T) {
	mentor := createUser("fullmentor", "fullmentor@example.com", "member")
	mentee := createUser("fullmentee", "fullmentee@example.com", "member")
	db.Create(&models.Mentorship{MentorID: mentor.ID, MenteeID: mentee.ID})

	token := tokenFor(mentee)
	seedJourney("fullmentee", models.StageScholar)

	// Completing every published lesson in the system earns the final reward.
	var lessons []models.Lesson
	db.Where("is_published = ?", true).Find(&lessons)
	for _, lesson := range lessons {
		completeLesson(t, token, lesson.ID)
	}

	var count int64
	db.Model(&models.RewardEvent{}).
		Where("mentor_id = ? AND mentee_id = ? AND event = ?",
			mentor.ID, mentee.ID, models.EventAllLevelsComplete).
		Count(&count)
	assert.Equal(t, int64(1), count)

	// One more completion does not duplicate it.
	completeLesson(t, token, lessons[0].ID)
	db.Model(&models.RewardEvent{}).
		Where("mentor_id = ? AND mentee_id = ? AND event = ?",
			mentor.ID, mentee.ID, models.EventAllLevelsComplete).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func testMenteeProgressAuthorization(t *testing.T) {
	mentor := createUser("viewmentor", "viewmentor@example.com", "member")
	mentee := createUser("viewmentee", "viewmentee@example.com", "member")
	stranger := createUser("stranger", "stranger@example.com", "member")
	db.Create(&models.Mentorship{MentorID: mentor.ID, MenteeID: mentee.ID})

	menteePath := "/api/progress/mentees/" + strconv.Itoa(int(mentee.ID))

	resp := doRequest(t, "GET", menteePath, tokenFor(mentor), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, "GET", menteePath, tokenFor(stranger), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// The snapshot endpoint for the user themselves.
	resp = doRequest(t, "GET", "/api/progress", tokenFor(mentee), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.Contains(t, result, "summary")
	assert.Contains(t, result, "completed_lessons")
}
