package tests

import (
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/services"
)

func testVerifyReportBumpsCounter(t *testing.T) {
	missionary := createUser("fieldworker", "fieldworker@example.com", "member")
	token := tokenFor(missionary)

	before, err := services.GlobalCounter(db)
	require.NoError(t, err)

	resp := doRequest(t, "POST", "/api/missions/reports", token, map[string]interface{}{
		"title":              "Village outreach",
		"location":           "Mwanza",
		"souls_reached":      12,
		"baptisms_performed": 3,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	report := decodeBody(t, resp)
	reportID := int(report["ID"].(float64))
	assert.Equal(t, false, report["is_verified"])

	// Unverified reports do not touch the counter.
	after, _ := services.GlobalCounter(db)
	assert.Equal(t, before.TotalSoulsReached, after.TotalSoulsReached)

	// Admin verification bumps it once.
	verifyPath := "/api/admin/missions/reports/" + strconv.Itoa(reportID) + "/verify"
	resp = doRequest(t, "PUT", verifyPath, adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	after, _ = services.GlobalCounter(db)
	assert.Equal(t, before.TotalSoulsReached+12, after.TotalSoulsReached)
	assert.Equal(t, before.TotalBaptisms+3, after.TotalBaptisms)
	assert.Equal(t, before.TotalMissionReports+1, after.TotalMissionReports)

	// Verifying again is a no-op.
	resp = doRequest(t, "PUT", verifyPath, adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	again, _ := services.GlobalCounter(db)
	assert.Equal(t, after.TotalSoulsReached, again.TotalSoulsReached)
	assert.Equal(t, after.TotalMissionReports, again.TotalMissionReports)

	// Members cannot verify.
	resp = doRequest(t, "PUT", verifyPath, token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var stored models.MissionReport
	require.NoError(t, db.First(&stored, reportID).Error)
	assert.True(t, stored.IsVerified)
	assert.Equal(t, adminUser.ID, *stored.VerifiedByID)
}

func testGlobalStatsPublic(t *testing.T) {
	missionary := createUser("grouplead", "grouplead@example.com", "member")
	token := tokenFor(missionary)

	before, _ := services.GlobalCounter(db)

	resp := doRequest(t, "POST", "/api/missions/groups", token, map[string]interface{}{
		"name":     "Tuesday Bible Study",
		"location": "Dodoma",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, "POST", "/api/missions/baptisms", token, map[string]interface{}{
		"candidate_name": "Neema",
		"location":       "Dodoma",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Stats are readable without authentication.
	resp = doRequest(t, "GET", "/api/stats", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	counter := result["counter"].(map[string]interface{})
	assert.Equal(t, float64(before.TotalBibleStudyGroups+1), counter["total_bible_study_groups"])
	assert.Equal(t, float64(before.TotalBaptisms+1), counter["total_baptisms"])
	assert.Contains(t, result, "journey")

	// Admin refresh recomputes derived counts from base tables.
	resp = doRequest(t, "POST", "/api/admin/stats/refresh", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var groups int64
	db.Model(&models.BibleStudyGroup{}).Where("is_active = ?", true).Count(&groups)
	refreshed := decodeBody(t, resp)
	assert.Equal(t, float64(groups), refreshed["total_bible_study_groups"])
}
