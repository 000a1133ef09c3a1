package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/services"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type MentorshipController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMentorshipController(db *gorm.DB, cfg *config.Config) *MentorshipController {
	return &MentorshipController{DB: db, Cfg: cfg}
}

func (mc *MentorshipController) GetMyReferral(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	referral, err := services.EnsureReferral(mc.DB, mc.Cfg, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load referral",
		})
	}

	var menteeCount int64
	mc.DB.Model(&models.Mentorship{}).Where("mentor_id = ?", userID).Count(&menteeCount)

	return c.JSON(fiber.Map{
		"referral":     referral,
		"share_url":    mc.Cfg.FrontendURL + "/register?ref=" + referral.Code,
		"mentee_count": menteeCount,
	})
}

// AttachReferral links the authenticated user to the mentor behind a code.
// Used when the code was not supplied at registration.
func (mc *MentorshipController) AttachReferral(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type AttachInput struct {
		Code string `json:"code"`
	}
	var input AttachInput
	if err := c.BodyParser(&input); err != nil || input.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Referral code is required",
		})
	}

	mentorship, err := services.AttachReferral(mc.DB, input.Code, userID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReferralCode) || errors.Is(err, services.ErrSelfReferral) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not attach referral",
		})
	}

	services.AwardForMenteeEvent(mc.DB, userID, models.EventSignup)

	return c.JSON(mentorship)
}

func (mc *MentorshipController) GetMyMentees(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var mentorships []models.Mentorship
	mc.DB.Where("mentor_id = ?", userID).Order("created_at asc").Find(&mentorships)

	mentees := make([]fiber.Map, 0, len(mentorships))
	for _, m := range mentorships {
		var mentee models.User
		if err := mc.DB.First(&mentee, m.MenteeID).Error; err != nil {
			continue
		}

		done, total, pct := services.OverallCompletion(mc.DB, mentee.ID)

		mentees = append(mentees, fiber.Map{
			"id":         mentee.ID,
			"username":   mentee.Username,
			"first_name": mentee.FirstName,
			"last_name":  mentee.LastName,
			"joined_at":  m.CreatedAt,
			"progress": fiber.Map{
				"lessons_completed": done,
				"lessons_total":     total,
				"percent":           pct,
			},
		})
	}

	return c.JSON(fiber.Map{
		"mentees": mentees,
		"count":   len(mentees),
	})
}

func (mc *MentorshipController) GetMyRewards(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var rewards []models.RewardEvent
	mc.DB.Where("mentor_id = ?", userID).Order("created_at desc").Find(&rewards)

	total := 0
	for _, reward := range rewards {
		total += reward.Points
	}

	return c.JSON(fiber.Map{
		"rewards":      rewards,
		"total_points": total,
	})
}

// --- Admin ---

// ActivateReferral flips a referral active by hand, for the manual policy or
// exceptional cases under the automatic ones.
func (mc *MentorshipController) ActivateReferral(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid referral ID",
		})
	}

	var referral models.Referral
	if err := mc.DB.First(&referral, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Referral not found",
		})
	}

	if !referral.IsActive {
		now := time.Now()
		referral.IsActive = true
		referral.ActivationMethod = models.ActivationManual
		referral.ActivatedAt = &now
		if err := mc.DB.Save(&referral).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not activate referral",
			})
		}
		// Becoming a mentor is itself a milestone for this user's own mentor.
		services.AwardForMenteeEvent(mc.DB, referral.MentorID, models.EventBecomesMentor)
	}

	return c.JSON(referral)
}

func (mc *MentorshipController) GetReferrals(c *fiber.Ctx) error {
	var referrals []models.Referral
	if err := mc.DB.Order("created_at desc").Find(&referrals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch referrals",
		})
	}
	return c.JSON(referrals)
}
