package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/services"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type NotificationController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Notifier *services.Notifier
}

func NewNotificationController(db *gorm.DB, cfg *config.Config, notifier *services.Notifier) *NotificationController {
	return &NotificationController{DB: db, Cfg: cfg, Notifier: notifier}
}

func (nc *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, nc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	query := nc.DB.Where("recipient_id = ?", userID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").Limit(100).Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch notifications",
		})
	}
	return c.JSON(notifications)
}

func (nc *NotificationController) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, nc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var count int64
	nc.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count)

	return c.JSON(fiber.Map{
		"unread": count,
	})
}

func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, nc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification ID",
		})
	}

	var notification models.Notification
	if err := nc.DB.Where("recipient_id = ?", userID).First(&notification, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}

	if !notification.IsRead {
		now := time.Now()
		notification.IsRead = true
		notification.ReadAt = &now
		if err := nc.DB.Save(&notification).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update notification",
			})
		}
	}
	return c.JSON(notification)
}

func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, nc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	now := time.Now()
	res := nc.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update notifications",
		})
	}

	return c.JSON(fiber.Map{
		"marked": res.RowsAffected,
	})
}

// --- Admin ---

// Broadcast sends an announcement to every active user: an in-app notification
// plus email for those who opted in.
func (nc *NotificationController) Broadcast(c *fiber.Ctx) error {
	adminID, err := utils.ExtractUserIDFromToken(c, nc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type BroadcastInput struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		URL   string `json:"url"`
		Level string `json:"level"`
	}
	var input BroadcastInput
	if err := c.BodyParser(&input); err != nil || input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if input.Level == "" {
		input.Level = "info"
	}

	sent, err := nc.Notifier.Broadcast(input.Title, input.Body, input.URL, input.Level, &adminID, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not broadcast",
		})
	}

	now := time.Now()
	nc.DB.Create(&models.Announcement{
		Title:    input.Title,
		Body:     input.Body,
		SentAt:   &now,
		SentByID: &adminID,
	})

	return c.JSON(fiber.Map{
		"message": "Announcement sent",
		"sent":    sent,
	})
}

func (nc *NotificationController) GetAnnouncements(c *fiber.Ctx) error {
	var announcements []models.Announcement
	if err := nc.DB.Order("created_at desc").Find(&announcements).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch announcements",
		})
	}
	return c.JSON(announcements)
}
