package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type ContentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewContentController(db *gorm.DB, cfg *config.Config) *ContentController {
	return &ContentController{DB: db, Cfg: cfg}
}

// --- Categories ---

func (cc *ContentController) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := cc.DB.Order("name asc").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch categories",
		})
	}
	return c.JSON(categories)
}

func (cc *ContentController) CreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}
	if category.Slug == "" {
		category.Slug = utils.UniqueSlug(cc.DB, "categories", category.Name)
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// --- Posts ---

func (cc *ContentController) GetPosts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := cc.DB.Model(&models.Post{}).Where("status = ?", "published")

	if categorySlug := c.Query("category"); categorySlug != "" {
		var category models.Category
		if err := cc.DB.Where("slug = ?", categorySlug).First(&category).Error; err == nil {
			query = query.Where("category_id = ?", category.ID)
		}
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}

	var total int64
	query.Count(&total)

	var posts []models.Post
	if err := query.Order("published_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch posts",
		})
	}

	return utils.Paginate(c, posts, total, page, pageSize)
}

func (cc *ContentController) GetPost(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var post models.Post
	if err := cc.DB.Where("slug = ? AND status = ?", slug, "published").First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch post",
		})
	}

	cc.DB.Model(&post).UpdateColumn("views", gorm.Expr("views + 1"))

	return c.JSON(post)
}

func (cc *ContentController) CreatePost(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var post models.Post
	if err := c.BodyParser(&post); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if post.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	post.AuthorID = userID
	if post.Slug == "" {
		post.Slug = utils.UniqueSlug(cc.DB, "posts", post.Title)
	}
	if post.Status == "published" && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := cc.DB.Create(&post).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create post",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (cc *ContentController) UpdatePost(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var post models.Post
	if err := cc.DB.First(&post, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}

	var input models.Post
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Content != "" {
		post.Content = input.Content
	}
	if input.Excerpt != "" {
		post.Excerpt = input.Excerpt
	}
	if input.ImageURL != "" {
		post.ImageURL = input.ImageURL
	}
	if input.CategoryID != 0 {
		post.CategoryID = input.CategoryID
	}
	if input.Status != "" {
		if input.Status == "published" && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = input.Status
	}
	post.Featured = input.Featured

	if err := cc.DB.Save(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update post",
		})
	}
	return c.JSON(post)
}

func (cc *ContentController) DeletePost(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}
	if err := cc.DB.Delete(&models.Post{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete post",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// --- Events ---

func (cc *ContentController) GetEvents(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Event{})
	if c.Query("upcoming") == "true" {
		query = query.Where("date >= ?", time.Now())
	}

	var events []models.Event
	if err := query.Order("date asc").Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch events",
		})
	}
	return c.JSON(events)
}

func (cc *ContentController) GetEvent(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var event models.Event
	if err := cc.DB.Where("slug = ?", slug).First(&event).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}
	return c.JSON(event)
}

func (cc *ContentController) CreateEvent(c *fiber.Ctx) error {
	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if event.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if event.Slug == "" {
		event.Slug = utils.UniqueSlug(cc.DB, "events", event.Title)
	}
	if err := cc.DB.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create event",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// --- Media ---

func (cc *ContentController) GetMedia(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.MediaItem{})
	if mediaType := c.Query("type"); mediaType != "" {
		query = query.Where("media_type = ?", mediaType)
	}

	var items []models.MediaItem
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch media",
		})
	}
	return c.JSON(items)
}

func (cc *ContentController) CreateMedia(c *fiber.Ctx) error {
	var item models.MediaItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if item.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if err := cc.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create media item",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// --- Prayer requests ---

func (cc *ContentController) CreatePrayerRequest(c *fiber.Ctx) error {
	var request models.PrayerRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if request.Request == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Request text is required",
		})
	}
	if err := cc.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not submit prayer request",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Prayer request received",
	})
}

func (cc *ContentController) GetPrayerRequests(c *fiber.Ctx) error {
	var requests []models.PrayerRequest
	if err := cc.DB.Order("is_urgent desc, created_at desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch prayer requests",
		})
	}
	return c.JSON(requests)
}

func (cc *ContentController) MarkPrayerAnswered(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	var request models.PrayerRequest
	if err := cc.DB.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prayer request not found",
		})
	}
	request.IsAnswered = true
	if err := cc.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update prayer request",
		})
	}
	return c.JSON(request)
}

// --- Lesson likes and comments ---

func (cc *ContentController) LikeLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	}

	like := models.LessonLike{UserID: userID, LessonID: lesson.ID}
	if err := cc.DB.Where(like).FirstOrCreate(&like).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not like lesson",
		})
	}

	var count int64
	cc.DB.Model(&models.LessonLike{}).Where("lesson_id = ?", lesson.ID).Count(&count)

	return c.JSON(fiber.Map{
		"liked": true,
		"likes": count,
	})
}

func (cc *ContentController) UnlikeLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	cc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Delete(&models.LessonLike{})

	var count int64
	cc.DB.Model(&models.LessonLike{}).Where("lesson_id = ?", lessonID).Count(&count)

	return c.JSON(fiber.Map{
		"liked": false,
		"likes": count,
	})
}

func (cc *ContentController) GetLessonComments(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var comments []models.LessonComment
	if err := cc.DB.Where("lesson_id = ? AND is_approved = ?", lessonID, true).
		Order("created_at asc").Find(&comments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch comments",
		})
	}
	return c.JSON(comments)
}

func (cc *ContentController) CommentLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	type CommentInput struct {
		Body string `json:"body"`
	}
	var input CommentInput
	if err := c.BodyParser(&input); err != nil || input.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment body is required",
		})
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lesson not found",
		})
	}

	comment := models.LessonComment{
		UserID:   userID,
		LessonID: lesson.ID,
		Body:     input.Body,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create comment",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
