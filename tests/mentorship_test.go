package tests

import (
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

func testReferralLifecycle(t *testing.T) {
	mentor := createUser("mentor1", "mentor1@example.com", "member")
	mentorToken := tokenFor(mentor)

	// The mentor sees their code, inactive at first.
	resp := doRequest(t, "GET", "/api/mentorship/referral", mentorToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	referral := result["referral"].(map[string]interface{})
	code := referral["code"].(string)
	assert.False(t, referral["is_active"].(bool))

	// An inactive code cannot be attached.
	mentee := createUser("mentee1", "mentee1@example.com", "member")
	menteeToken := tokenFor(mentee)
	resp = doRequest(t, "POST", "/api/mentorship/attach", menteeToken, map[string]string{"code": code})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Admin activates it manually.
	var ref models.Referral
	require.NoError(t, db.Where("mentor_id = ?", mentor.ID).First(&ref).Error)
	resp = doRequest(t, "PUT", "/api/admin/referrals/"+strconv.Itoa(int(ref.ID))+"/activate", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	db.First(&ref, ref.ID)
	assert.True(t, ref.IsActive)
	assert.Equal(t, models.ActivationManual, ref.ActivationMethod)
	assert.NotNil(t, ref.ActivatedAt)

	// Now the mentee can attach, which creates the mentorship and the signup
	// reward for the mentor.
	resp = doRequest(t, "POST", "/api/mentorship/attach", menteeToken, map[string]string{"code": code})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var mentorship models.Mentorship
	require.NoError(t, db.Where("mentee_id = ?", mentee.ID).First(&mentorship).Error)
	assert.Equal(t, mentor.ID, mentorship.MentorID)

	var reward models.RewardEvent
	require.NoError(t, db.Where("mentor_id = ? AND mentee_id = ? AND event = ?",
		mentor.ID, mentee.ID, models.EventSignup).First(&reward).Error)
	assert.Equal(t, 10, reward.Points)

	// The mentor's mentee list and reward totals reflect it.
	resp = doRequest(t, "GET", "/api/mentorship/mentees", mentorToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeBody(t, resp)
	assert.Equal(t, float64(1), result["count"])

	resp = doRequest(t, "GET", "/api/mentorship/rewards", mentorToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = decodeBody(t, resp)
	assert.Equal(t, float64(10), result["total_points"])
}

func testSelfReferralRejected(t *testing.T) {
	user := createUser("selfref", "selfref@example.com", "member")
	token := tokenFor(user)

	resp := doRequest(t, "GET", "/api/mentorship/referral", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	code := decodeBody(t, resp)["referral"].(map[string]interface{})["code"].(string)

	db.Model(&models.Referral{}).Where("mentor_id = ?", user.ID).Update("is_active", true)

	resp = doRequest(t, "POST", "/api/mentorship/attach", token, map[string]string{"code": code})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func testMenteeKeepsFirstMentor(t *testing.T) {
	mentorA := createUser("mentorA", "mentorA@example.com", "member")
	mentorB := createUser("mentorB", "mentorB@example.com", "member")
	mentee := createUser("loyalmentee", "loyalmentee@example.com", "member")
	menteeToken := tokenFor(mentee)

	codeA := activeReferralCode(t, mentorA.ID)
	codeB := activeReferralCode(t, mentorB.ID)

	resp := doRequest(t, "POST", "/api/mentorship/attach", menteeToken, map[string]string{"code": codeA})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Attaching a second code is a no-op, not an error.
	resp = doRequest(t, "POST", "/api/mentorship/attach", menteeToken, map[string]string{"code": codeB})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var mentorship models.Mentorship
	require.NoError(t, db.Where("mentee_id = ?", mentee.ID).First(&mentorship).Error)
	assert.Equal(t, mentorA.ID, mentorship.MentorID)

	var count int64
	db.Model(&models.Mentorship{}).Where("mentee_id = ?", mentee.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

// activeReferralCode ensures the user has an active referral and returns its code.
func activeReferralCode(t *testing.T, userID uint) string {
	t.Helper()

	token, _ := tokenForID(userID)
	resp := doRequest(t, "GET", "/api/mentorship/referral", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	code := decodeBody(t, resp)["referral"].(map[string]interface{})["code"].(string)

	db.Model(&models.Referral{}).Where("mentor_id = ?", userID).Update("is_active", true)
	return code
}

func tokenForID(userID uint) (string, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return "", err
	}
	return tokenFor(user), nil
}
