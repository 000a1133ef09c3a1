package tests

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FidelisKagashe26/GodCares/backend/cache"
	"github.com/FidelisKagashe26/GodCares/backend/models"
)

func testRegister(t *testing.T) {
	resp := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"username":   "firstuser",
		"email":      "firstuser@example.com",
		"password":   "password123",
		"first_name": "First",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["user"])

	// Registration creates a profile and an inactive referral code.
	var user models.User
	require.NoError(t, db.Where("username = ?", "firstuser").First(&user).Error)

	var profile models.Profile
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)

	var referral models.Referral
	require.NoError(t, db.Where("mentor_id = ?", user.ID).First(&referral).Error)
	assert.False(t, referral.IsActive)
	assert.Contains(t, referral.Code, cfg.ReferralCodePrefix)
}

func testRegisterDuplicate(t *testing.T) {
	resp := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "firstuser",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func testLogin(t *testing.T) {
	resp := doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "firstuser",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.NotEmpty(t, result["token"])

	var user models.User
	require.NoError(t, db.Where("username = ?", "firstuser").First(&user).Error)

	var history models.LoginHistory
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&history).Error)
}

func testLoginWrongPassword(t *testing.T) {
	resp := doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "firstuser",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func testVerifyEmail(t *testing.T) {
	user := createUser("verifyme", "verifyme@example.com", "member")

	tokens := cache.NewTokenCache(store)
	token, err := tokens.CreateVerificationToken(context.Background(), user.ID)
	require.NoError(t, err)

	resp := doRequest(t, "GET", "/api/auth/verify-email?token="+token, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.True(t, profile.EmailVerified)

	// Tokens are single use.
	resp = doRequest(t, "GET", "/api/auth/verify-email?token="+token, "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
