package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/cache"
	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/services"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type AuthController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Tokens *cache.TokenCache
	Mailer services.Mailer
}

func NewAuthController(db *gorm.DB, cfg *config.Config, tokens *cache.TokenCache, mailer services.Mailer) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Tokens: tokens, Mailer: mailer}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		PhoneNumber  string `json:"phone_number"`
		ReferralCode string `json:"referral_code"`
	}

	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username, email and password are required",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create user, username or email may already be taken",
		})
	}

	ac.DB.Create(&models.Profile{UserID: user.ID, PhoneNumber: input.PhoneNumber})

	// Every user gets an inactive referral code of their own.
	if _, err := services.EnsureReferral(ac.DB, ac.Cfg, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create referral",
		})
	}

	// An invalid or inactive code is ignored; registration still succeeds.
	if input.ReferralCode != "" {
		if _, err := services.AttachReferral(ac.DB, input.ReferralCode, user.ID); err == nil {
			services.AwardForMenteeEvent(ac.DB, user.ID, models.EventSignup)
		}
	}

	// Email verification is best-effort; the account works without it.
	if token, err := ac.Tokens.CreateVerificationToken(c.Context(), user.ID); err == nil {
		ac.Mailer.Send(
			[]string{user.Email},
			"Verify your God Cares 365 account",
			"Welcome! Verify your email: "+ac.Cfg.FrontendURL+"/verify-email?token="+token,
		)
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	ac.DB.Create(&models.LoginHistory{
		UserID:    user.ID,
		LoginTime: time.Now(),
		IPAddress: c.IP(),
	})

	// Activation policy is re-checked on every login.
	services.TryActivateReferral(ac.DB, ac.Cfg, user.ID)

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing verification token",
		})
	}

	userID, err := ac.Tokens.ConsumeVerificationToken(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired verification token",
		})
	}

	var profile models.Profile
	if err := ac.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	if !profile.EmailVerified {
		profile.EmailVerified = true
		if err := ac.DB.Save(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update profile",
			})
		}
	}

	services.TryActivateReferral(ac.DB, ac.Cfg, userID)

	return c.JSON(fiber.Map{
		"message": "Email verified",
	})
}
