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

type MissionController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMissionController(db *gorm.DB, cfg *config.Config) *MissionController {
	return &MissionController{DB: db, Cfg: cfg}
}

// --- Mission reports ---

func (mc *MissionController) CreateMissionReport(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var report models.MissionReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if report.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	report.MissionaryID = userID
	report.IsVerified = false
	report.VerifiedByID = nil
	report.VerifiedAt = nil
	if report.ReportDate.IsZero() {
		report.ReportDate = time.Now()
	}

	if err := mc.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create mission report",
		})
	}

	services.RecordActivity(mc.DB, userID, "mission_report", report.Title)

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (mc *MissionController) GetMyMissionReports(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var reports []models.MissionReport
	mc.DB.Where("missionary_id = ?", userID).Order("report_date desc").Find(&reports)
	return c.JSON(reports)
}

func (mc *MissionController) GetMissionReports(c *fiber.Ctx) error {
	query := mc.DB.Model(&models.MissionReport{})
	if c.Query("unverified") == "true" {
		query = query.Where("is_verified = ?", false)
	}

	var reports []models.MissionReport
	if err := query.Order("report_date desc").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch mission reports",
		})
	}
	return c.JSON(reports)
}

// VerifyMissionReport marks a report verified. The global counter is bumped
// only on the unverified-to-verified transition, so re-verifying is safe.
func (mc *MissionController) VerifyMissionReport(c *fiber.Ctx) error {
	adminID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report ID",
		})
	}

	var report models.MissionReport
	if err := mc.DB.First(&report, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Mission report not found",
		})
	}

	if !report.IsVerified {
		now := time.Now()
		report.IsVerified = true
		report.VerifiedByID = &adminID
		report.VerifiedAt = &now
		if err := mc.DB.Save(&report).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not verify report",
			})
		}
		if err := services.RecordVerifiedMission(mc.DB, &report); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update global counter",
			})
		}
	}

	return c.JSON(report)
}

// --- Baptism records ---

func (mc *MissionController) CreateBaptismRecord(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var record models.BaptismRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if record.CandidateName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Candidate name is required",
		})
	}

	record.MissionaryID = userID
	if record.BaptismDate.IsZero() {
		record.BaptismDate = time.Now()
	}

	if err := mc.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create baptism record",
		})
	}

	services.RecordBaptism(mc.DB)
	services.RecordActivity(mc.DB, userID, "baptism_record", record.CandidateName)

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (mc *MissionController) GetMyBaptismRecords(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var records []models.BaptismRecord
	mc.DB.Where("missionary_id = ?", userID).Order("baptism_date desc").Find(&records)
	return c.JSON(records)
}

// --- Bible study groups ---

func (mc *MissionController) CreateGroup(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var group models.BibleStudyGroup
	if err := c.BodyParser(&group); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if group.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	group.LeaderID = userID
	group.IsActive = true

	if err := mc.DB.Create(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create group",
		})
	}

	services.RecordNewGroup(mc.DB)
	services.RecordActivity(mc.DB, userID, "group_created", group.Name)

	return c.Status(fiber.StatusCreated).JSON(group)
}

func (mc *MissionController) GetMyGroups(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var groups []models.BibleStudyGroup
	mc.DB.Where("leader_id = ?", userID).Find(&groups)
	return c.JSON(groups)
}

func (mc *MissionController) UpdateGroup(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var group models.BibleStudyGroup
	if err := mc.DB.First(&group, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}
	if group.LeaderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not your group",
		})
	}

	type UpdateInput struct {
		Name            *string `json:"name"`
		Location        *string `json:"location"`
		MeetingDay      *string `json:"meeting_day"`
		MemberCount     *int    `json:"member_count"`
		CurrentLessonID *uint   `json:"current_lesson_id"`
		IsActive        *bool   `json:"is_active"`
	}
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name != nil {
		group.Name = *input.Name
	}
	if input.Location != nil {
		group.Location = *input.Location
	}
	if input.MeetingDay != nil {
		group.MeetingDay = *input.MeetingDay
	}
	if input.MemberCount != nil {
		group.MemberCount = *input.MemberCount
	}
	if input.CurrentLessonID != nil {
		group.CurrentLessonID = input.CurrentLessonID
	}
	if input.IsActive != nil {
		group.IsActive = *input.IsActive
	}

	if err := mc.DB.Save(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update group",
		})
	}
	return c.JSON(group)
}

// --- Certificates ---

func (mc *MissionController) GetMyCertificates(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var certificates []models.Certificate
	mc.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&certificates)
	return c.JSON(certificates)
}

// --- Global stats ---

// GetGlobalStats is the public impact dashboard.
func (mc *MissionController) GetGlobalStats(c *fiber.Ctx) error {
	counter, err := services.GlobalCounter(mc.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load stats",
		})
	}

	var seekers, scholars, missionaries int64
	mc.DB.Model(&models.PathEnrollment{}).
		Joins("JOIN paths ON paths.id = path_enrollments.path_id").
		Where("paths.stage = ?", models.StageSeeker).Count(&seekers)
	mc.DB.Model(&models.PathEnrollment{}).
		Joins("JOIN paths ON paths.id = path_enrollments.path_id").
		Where("paths.stage = ?", models.StageScholar).Count(&scholars)
	mc.DB.Model(&models.PathEnrollment{}).
		Joins("JOIN paths ON paths.id = path_enrollments.path_id").
		Where("paths.stage = ?", models.StageMissionary).Count(&missionaries)

	return c.JSON(fiber.Map{
		"counter": counter,
		"journey": fiber.Map{
			"seekers":      seekers,
			"scholars":     scholars,
			"missionaries": missionaries,
		},
	})
}

// RefreshGlobalStats recomputes the derived counter fields from base tables.
func (mc *MissionController) RefreshGlobalStats(c *fiber.Ctx) error {
	counter, err := services.RefreshGlobalCounter(mc.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not refresh stats",
		})
	}
	return c.JSON(counter)
}
