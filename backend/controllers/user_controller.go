package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/services"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var profile models.Profile
	uc.DB.Where("user_id = ?", userID).First(&profile)

	var referral models.Referral
	uc.DB.Where("mentor_id = ?", userID).First(&referral)

	done, total, pct := services.OverallCompletion(uc.DB, userID)

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
		"referral": fiber.Map{
			"code":      referral.Code,
			"is_active": referral.IsActive,
		},
		"progress": fiber.Map{
			"lessons_completed": done,
			"lessons_total":     total,
			"percent":           pct,
		},
	})
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type UpdateInput struct {
		FirstName            *string `json:"first_name"`
		LastName             *string `json:"last_name"`
		PhoneNumber          *string `json:"phone_number"`
		Country              *string `json:"country"`
		ReceiveNotifications *bool   `json:"receive_notifications"`
	}

	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if err := uc.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update user",
		})
	}

	var profile models.Profile
	if err := uc.DB.Where(models.Profile{UserID: user.ID}).FirstOrCreate(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load profile",
		})
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = *input.PhoneNumber
	}
	if input.Country != nil {
		profile.Country = *input.Country
	}
	if input.ReceiveNotifications != nil {
		profile.ReceiveNotifications = *input.ReceiveNotifications
	}
	if err := uc.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

func (uc *UserController) GetActivity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var logins []models.LoginHistory
	uc.DB.Where("user_id = ?", userID).Order("login_time desc").Limit(20).Find(&logins)

	var activities []models.UserActivity
	uc.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(50).Find(&activities)

	return c.JSON(fiber.Map{
		"logins":     logins,
		"activities": activities,
	})
}
