package tests

import (
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

func testBroadcastAndRead(t *testing.T) {
	reader := createUser("reader", "reader@example.com", "member")
	readerToken := tokenFor(reader)

	// Only admins can broadcast.
	resp := doRequest(t, "POST", "/api/admin/announcements", readerToken, map[string]string{
		"title": "nope",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, "POST", "/api/admin/announcements", adminToken, map[string]string{
		"title": "Week of Prayer",
		"body":  "Join us every evening this week.",
		"level": "info",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.True(t, result["sent"].(float64) >= 1)

	// An announcement record was kept.
	var announcement models.Announcement
	require.NoError(t, db.Where("title = ?", "Week of Prayer").First(&announcement).Error)
	assert.NotNil(t, announcement.SentAt)

	// The reader got an in-app notification.
	resp = doRequest(t, "GET", "/api/notifications/unread-count", readerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	unread := decodeBody(t, resp)["unread"].(float64)
	require.True(t, unread >= 1)

	var notification models.Notification
	require.NoError(t, db.Where("recipient_id = ? AND title = ?", reader.ID, "Week of Prayer").
		First(&notification).Error)

	// Mark one read, then the rest.
	resp = doRequest(t, "PUT", "/api/notifications/"+strconv.Itoa(int(notification.ID))+"/read",
		readerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	db.First(&notification, notification.ID)
	assert.True(t, notification.IsRead)
	assert.NotNil(t, notification.ReadAt)

	resp = doRequest(t, "PUT", "/api/notifications/read-all", readerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, "GET", "/api/notifications/unread-count", readerToken, nil)
	assert.Equal(t, float64(0), decodeBody(t, resp)["unread"])
}
