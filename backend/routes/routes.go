package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/cache"
	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/controllers"
	"github.com/FidelisKagashe26/GodCares/backend/middleware"
	"github.com/FidelisKagashe26/GodCares/backend/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, store cache.Store, mailer services.Mailer, log *zap.Logger) {
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg, cache.NewTokenCache(store), mailer)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/verify-email", authController.VerifyEmail)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)
	app.Get("/api/user/activity", authMiddleware, userController.GetActivity)

	// Content routes
	contentController := controllers.NewContentController(db, cfg)
	app.Get("/api/categories", contentController.GetCategories)
	app.Get("/api/posts", contentController.GetPosts)
	app.Get("/api/posts/:slug", contentController.GetPost)
	app.Get("/api/events", contentController.GetEvents)
	app.Get("/api/events/:slug", contentController.GetEvent)
	app.Get("/api/media", contentController.GetMedia)
	app.Post("/api/prayer-requests", contentController.CreatePrayerRequest)

	// Discipleship routes
	discipleshipController := controllers.NewDiscipleshipController(db, cfg)
	app.Get("/api/paths", discipleshipController.GetPaths)
	app.Get("/api/paths/:slug", discipleshipController.GetPath)
	app.Post("/api/paths/:id/enroll", authMiddleware, discipleshipController.Enroll)
	app.Get("/api/levels/:id", discipleshipController.GetLevel)

	lessons := app.Group("/api/lessons")
	lessons.Get("/:id", discipleshipController.GetLesson)
	lessons.Get("/:id/comments", contentController.GetLessonComments)
	lessons.Post("/:id/comments", authMiddleware, contentController.CommentLesson)
	lessons.Post("/:id/like", authMiddleware, contentController.LikeLesson)
	lessons.Delete("/:id/like", authMiddleware, contentController.UnlikeLesson)

	// Quiz routes
	quizController := controllers.NewQuizController(db, cfg)
	lessons.Get("/:id/quiz", authMiddleware, quizController.GetQuiz)
	app.Post("/api/quizzes/:id/submit", authMiddleware, quizController.SubmitQuiz)
	app.Get("/api/quizzes/:id/attempts", authMiddleware, quizController.GetMyAttempts)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	lessons.Post("/:id/start", authMiddleware, progressController.StartLesson)
	lessons.Post("/:id/complete", authMiddleware, progressController.CompleteLesson)
	lessons.Get("/:id/progress", authMiddleware, progressController.GetLessonProgress)
	app.Get("/api/progress", authMiddleware, progressController.GetMyProgress)
	app.Get("/api/progress/mentees/:id", authMiddleware, progressController.GetMenteeProgress)

	// Mentorship routes
	mentorshipController := controllers.NewMentorshipController(db, cfg)
	mentorship := app.Group("/api/mentorship", authMiddleware)
	mentorship.Get("/referral", mentorshipController.GetMyReferral)
	mentorship.Post("/attach", mentorshipController.AttachReferral)
	mentorship.Get("/mentees", mentorshipController.GetMyMentees)
	mentorship.Get("/rewards", mentorshipController.GetMyRewards)

	// Mission routes
	missionController := controllers.NewMissionController(db, cfg)
	app.Get("/api/stats", missionController.GetGlobalStats)

	missions := app.Group("/api/missions", authMiddleware)
	missions.Post("/reports", missionController.CreateMissionReport)
	missions.Get("/reports", missionController.GetMyMissionReports)
	missions.Post("/baptisms", missionController.CreateBaptismRecord)
	missions.Get("/baptisms", missionController.GetMyBaptismRecords)
	missions.Post("/groups", missionController.CreateGroup)
	missions.Get("/groups", missionController.GetMyGroups)
	missions.Put("/groups/:id", missionController.UpdateGroup)
	missions.Get("/certificates", missionController.GetMyCertificates)

	// Shop routes
	shopController := controllers.NewShopController(db, cfg, cache.NewCartStore(store))
	app.Get("/api/shop/categories", shopController.GetProductCategories)
	app.Get("/api/shop/products", shopController.GetProducts)
	app.Get("/api/shop/products/:slug", shopController.GetProduct)
	app.Get("/api/shop/cart", shopController.GetCart)
	app.Post("/api/shop/cart", shopController.AddToCart)
	app.Delete("/api/shop/cart/:id", shopController.RemoveFromCart)
	app.Post("/api/shop/checkout", shopController.Checkout)
	app.Get("/api/shop/orders", authMiddleware, shopController.GetMyOrders)

	// Notification routes
	notifier := services.NewNotifier(db, mailer, log)
	notificationController := controllers.NewNotificationController(db, cfg, notifier)
	notifications := app.Group("/api/notifications", authMiddleware)
	notifications.Get("/", notificationController.GetMyNotifications)
	notifications.Get("/unread-count", notificationController.GetUnreadCount)
	notifications.Put("/:id/read", notificationController.MarkRead)
	notifications.Put("/read-all", notificationController.MarkAllRead)
	app.Get("/api/announcements", notificationController.GetAnnouncements)

	// Admin routes
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)

	admin.Post("/categories", contentController.CreateCategory)
	admin.Post("/posts", contentController.CreatePost)
	admin.Put("/posts/:id", contentController.UpdatePost)
	admin.Delete("/posts/:id", contentController.DeletePost)
	admin.Post("/events", contentController.CreateEvent)
	admin.Post("/media", contentController.CreateMedia)
	admin.Get("/prayer-requests", contentController.GetPrayerRequests)
	admin.Put("/prayer-requests/:id/answered", contentController.MarkPrayerAnswered)

	admin.Post("/paths", discipleshipController.CreatePath)
	admin.Post("/levels", discipleshipController.CreateLevel)
	admin.Post("/lessons", discipleshipController.CreateLesson)
	admin.Put("/lessons/:id", discipleshipController.UpdateLesson)
	admin.Delete("/lessons/:id", discipleshipController.DeleteLesson)

	admin.Post("/quizzes", quizController.CreateQuiz)
	admin.Post("/quizzes/:id/questions", quizController.CreateQuestion)

	admin.Get("/referrals", mentorshipController.GetReferrals)
	admin.Put("/referrals/:id/activate", mentorshipController.ActivateReferral)

	admin.Get("/missions/reports", missionController.GetMissionReports)
	admin.Put("/missions/reports/:id/verify", missionController.VerifyMissionReport)
	admin.Post("/stats/refresh", missionController.RefreshGlobalStats)

	admin.Post("/shop/categories", shopController.CreateProductCategory)
	admin.Post("/shop/products", shopController.CreateProduct)
	admin.Put("/shop/products/:id", shopController.UpdateProduct)
	admin.Get("/shop/orders", shopController.GetOrders)
	admin.Put("/shop/orders/:id/status", shopController.UpdateOrderStatus)

	admin.Post("/announcements", notificationController.Broadcast)
}
