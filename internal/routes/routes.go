package routes

import (
	"github.com/ajaybhatia/xync-server/internal/config"
	"github.com/ajaybhatia/xync-server/internal/handlers"
	"github.com/ajaybhatia/xync-server/internal/middleware"
	"github.com/ajaybhatia/xync-server/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(120))

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	userService := services.NewUserService(db)
	bookmarkService := services.NewBookmarkService(db)
	noteService := services.NewNoteService(db)
	categoryService := services.NewCategoryService(db)
	tagService := services.NewTagService(db)
	previewService := services.NewPreviewService()

	authHandler := handlers.NewAuthHandler(userService, tokenService)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService, previewService)
	noteHandler := handlers.NewNoteHandler(noteService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	tagHandler := handlers.NewTagHandler(tagService)
	healthHandler := handlers.NewHealthHandler(db)

	api := router.Group("/api")

	// Register and login are the only routes outside the auth middleware;
	// the exemption lives here, not in the handlers.
	public := api.Group("")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokenService))
	{
		user := protected.Group("/auth")
		{
			user.GET("/me", authHandler.GetMe)
		}

		bookmarks := protected.Group("/bookmarks")
		{
			bookmarks.GET("", bookmarkHandler.ListBookmarks)
			bookmarks.POST("", bookmarkHandler.CreateBookmark)
			bookmarks.POST("/preview", bookmarkHandler.FetchPreview)
			bookmarks.GET("/:id", bookmarkHandler.GetBookmark)
			bookmarks.PUT("/:id", bookmarkHandler.UpdateBookmark)
			bookmarks.DELETE("/:id", bookmarkHandler.DeleteBookmark)
		}

		notes := protected.Group("/notes")
		{
			notes.GET("", noteHandler.ListNotes)
			notes.POST("", noteHandler.CreateNote)
			notes.GET("/:id", noteHandler.GetNote)
			notes.PUT("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		tags := protected.Group("/tags")
		{
			tags.GET("", tagHandler.ListTags)
			tags.POST("", tagHandler.CreateTag)
			tags.GET("/:id", tagHandler.GetTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}
	}

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
