package routes

import (
	"studio-backend/config"
	authapi "studio-backend/internal/api/auth"
	contactapi "studio-backend/internal/api/contact"
	pagesapi "studio-backend/internal/api/pages"
	worksapi "studio-backend/internal/api/works"
	"studio-backend/internal/app/http/middleware"
	"studio-backend/internal/storage/uploads"
	"studio-backend/pkg/telegram"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Store *uploads.Storage
	Bot   *telegram.Bot
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	worksH := worksapi.NewHandler(d.DB, d.Store)
	pagesH := pagesapi.NewHandler(d.DB)
	authH := authapi.NewHandler(d.Cfg)

	var notifier contactapi.Notifier
	if d.Bot != nil {
		notifier = d.Bot
	}
	contactH := contactapi.NewHandler(d.DB, notifier)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded file names embed timestamp + random suffix, so they can
	// be cached forever.
	static := r.Group("/uploads", middleware.StaticCache())
	static.Static("/", d.Store.Dir())

	// Public
	public := r.Group("/api")
	public.GET("/pages/:page", pagesH.Get)
	public.GET("/portfolio", worksH.List)
	public.GET("/portfolio/:id", worksH.GetByID)
	public.POST("/login", authH.Login)

	sanitized := public.Group("/")
	sanitized.Use(middleware.SanitizeAndCleanInputMiddleware())
	sanitized.POST("/contact", contactH.Create)

	// Admin
	admin := r.Group("/api")
	admin.Use(middleware.AuthMiddleware(d.Cfg.JWTSecret), middleware.RequireRole("admin"))

	admin.POST("/portfolio", worksH.Create)
	admin.PUT("/portfolio/:id", worksH.Update)
	admin.DELETE("/portfolio/:id", worksH.Delete)
	admin.DELETE("/portfolio/:id/images", worksH.DeleteImage)

	admin.POST("/pages", pagesH.Create)
	admin.PUT("/pages/:page", pagesH.Update)

	admin.GET("/contact", contactH.List)

	admin.POST("/login/verify", authH.Verify)
	admin.GET("/login/protected", authH.Protected)
}
