package routes

import (
	"vetorre/backend/config"
	"vetorre/backend/controllers"
	"vetorre/backend/feed"
	"vetorre/backend/gemini"
	"vetorre/backend/middleware"
	"vetorre/backend/models"
	"vetorre/backend/store"
	"vetorre/backend/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps carries the shared singletons the route handlers close over.
type Deps struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Store     store.ContentStore
	Tools     *store.Mirror[models.Tool]
	News      *store.Mirror[models.Article]
	Gemini    *gemini.Client
	Fetcher   *feed.Fetcher
	Converter *feed.Converter
	Publisher *workflow.Publisher
	Verifier  controllers.CheckoutVerifier
}

func SetupRoutes(app *fiber.App, deps Deps) {
	// Auth routes
	authController := controllers.NewAuthController(deps.DB, deps.Cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(deps.Cfg)
	adminMiddleware := middleware.AdminMiddleware(deps.DB, deps.Cfg)

	// User routes
	userController := controllers.NewUserController(deps.DB, deps.Cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Get("/api/user/usage", authMiddleware, userController.GetUsage)

	// Billing routes
	billingController := controllers.NewBillingController(deps.DB, deps.Cfg, deps.Verifier)
	app.Post("/api/billing/verify", authMiddleware, billingController.VerifyCheckout)

	// Public directory routes
	toolsController := controllers.NewToolsController(deps.Cfg, deps.Tools, deps.News, deps.Gemini)
	app.Get("/api/tools", toolsController.GetTools)
	app.Get("/api/tools/categories", toolsController.GetCategories)
	app.Get("/api/tools/:id", toolsController.GetTool)
	app.Get("/api/search", toolsController.Search)

	// Public news routes
	newsController := controllers.NewNewsController(deps.Cfg, deps.News)
	app.Get("/api/news", newsController.GetNews)
	app.Get("/api/news/:id", newsController.GetArticle)

	// Course routes
	courseController := controllers.NewCourseController(deps.Cfg, deps.Tools)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/:toolId", courseController.GetCourse)
	courses.Get("/:toolId/modules/:module/lessons/:lesson", courseController.GetLesson)
	courses.Get("/:toolId/progress", courseController.GetProgress)
	courses.Post("/:toolId/progress/toggle", courseController.ToggleItem)
	courses.Get("/:toolId/player", courseController.GetPlayer)
	courses.Post("/:toolId/player/next", courseController.PlayerNext)
	courses.Post("/:toolId/player/previous", courseController.PlayerPrevious)
	courses.Post("/:toolId/player/resources", courseController.PlayerResources)
	courses.Post("/:toolId/player/answer", courseController.AnswerQuiz)
	courses.Post("/:toolId/player/submit", courseController.SubmitQuiz)

	// Admin curation routes
	adminController := controllers.NewAdminController(
		deps.DB, deps.Cfg, deps.Gemini, deps.Fetcher, deps.Converter,
		deps.Publisher, deps.Tools, deps.News,
	)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)

	admin.Post("/generate/tools", adminController.GenerateTools)
	admin.Post("/generate/news", adminController.GenerateNews)
	admin.Post("/generate/tool", adminController.GenerateToolDetails)
	admin.Post("/generate/news-item", adminController.GenerateNewsDetails)

	admin.Get("/queue/tools", adminController.GetToolQueue)
	admin.Post("/queue/tools/publish-all", adminController.PublishAllTools)
	admin.Post("/queue/tools/:id/publish", adminController.PublishTool)
	admin.Put("/queue/tools/:id", adminController.UpdateToolDraft)
	admin.Delete("/queue/tools/:id", adminController.DiscardToolDraft)

	admin.Get("/queue/news", adminController.GetNewsQueue)
	admin.Post("/queue/news/publish-all", adminController.PublishAllNews)
	admin.Post("/queue/news/:id/publish", adminController.PublishNews)
	admin.Put("/queue/news/:id", adminController.UpdateNewsDraft)
	admin.Delete("/queue/news/:id", adminController.DiscardNewsDraft)

	admin.Post("/tools", adminController.CreateTool)
	admin.Put("/tools/:id", adminController.UpdateTool)
	admin.Delete("/tools/:id", adminController.DeleteTool)
	admin.Post("/tools/:id/slides", adminController.GenerateSlides)
	admin.Post("/tools/:id/tutorial", adminController.GenerateTutorial)
	admin.Post("/tools/:id/course", adminController.GenerateCourse)
	admin.Post("/tools/:id/podcast", adminController.GeneratePodcast)

	admin.Post("/news", adminController.CreateArticle)
	admin.Put("/news/:id", adminController.UpdateArticle)
	admin.Delete("/news/:id", adminController.DeleteArticle)

	admin.Post("/feed/import", adminController.ImportFeed)
	admin.Get("/feed/preview", adminController.PreviewFeed)
	admin.Post("/report", adminController.TrendReport)

	// Media studio routes
	mediaController := controllers.NewMediaController(deps.DB, deps.Cfg, deps.Gemini, adminController)
	admin.Post("/media/speech", mediaController.Speak)
	admin.Post("/media/conversation", mediaController.Conversation)
	admin.Post("/media/image-edit", mediaController.EditImage)
	admin.Post("/media/video", mediaController.StartVideo)
	admin.Get("/media/video", mediaController.PollVideo)
}
