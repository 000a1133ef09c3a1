package tests

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdminSlugDisambiguation(t *testing.T) {
	resp := doRequest(t, "POST", "/api/admin/paths", adminToken, map[string]interface{}{
		"name":  "Foundations of Faith",
		"stage": "seeker",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	pathID := decodeBody(t, resp)["ID"].(float64)

	// Two levels with the same name get distinct slugs.
	createLevel := func() map[string]interface{} {
		resp := doRequest(t, "POST", "/api/admin/levels", adminToken, map[string]interface{}{
			"path_id": pathID,
			"name":    "New Believer",
			"order":   1,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		return decodeBody(t, resp)
	}
	first := createLevel()
	second := createLevel()
	assert.Equal(t, "new-believer", first["slug"])
	assert.Equal(t, "new-believer-2", second["slug"])

	// Same for lessons within a level.
	createLesson := func() map[string]interface{} {
		resp := doRequest(t, "POST", "/api/admin/lessons", adminToken, map[string]interface{}{
			"level_id": first["ID"],
			"title":    "Walking Daily",
			"order":    1,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		return decodeBody(t, resp)
	}
	assert.Equal(t, "walking-daily", createLesson()["slug"])
	assert.Equal(t, "walking-daily-2", createLesson()["slug"])
}
