package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"toyboard/internal/bootstrap"
	"toyboard/internal/transport/http/handler"
	"toyboard/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(cors.New(corsConfig(app.Config.CORS.AllowOrigins)))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	pages := handler.PageOptions{
		DefaultSize: app.Config.Page.DefaultSize,
		MaxSize:     app.Config.Page.MaxSize,
	}
	memberHandler := handler.NewMemberHandler(app.Members, pages)
	boardHandler := handler.NewBoardHandler(app.Boards, app.BoardQueries, pages)
	commentHandler := handler.NewCommentHandler(app.Comments)

	var revocations middleware.RevocationChecker
	if app.Revocations != nil {
		revocations = app.Revocations
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Authenticate(app.Config.Auth.JWTSecret, revocations))

	memberGroup := v1.Group("/members")
	memberGroup.POST("", memberHandler.Join)
	memberGroup.POST("/login", memberHandler.Login)
	memberGroup.GET("", memberHandler.Search)
	memberGroup.GET("/:id", memberHandler.Get)
	memberGroup.POST("/withdrawal", middleware.RequireMember(), memberHandler.Withdraw)

	boardGroup := v1.Group("/boards")
	boardGroup.GET("", boardHandler.List)
	boardGroup.GET("/search", boardHandler.Search)
	boardGroup.POST("", boardHandler.Create)
	boardGroup.GET("/:id", boardHandler.Get)
	boardGroup.GET("/:id/anonymous", boardHandler.IsAnonymous)
	boardGroup.PATCH("/:id", boardHandler.Update)
	boardGroup.DELETE("/:id", boardHandler.Delete)
	boardGroup.GET("/:id/comments", commentHandler.List)
	boardGroup.POST("/:id/comments", commentHandler.Create)

	commentGroup := v1.Group("/comments")
	commentGroup.PATCH("/:id", commentHandler.Update)
	commentGroup.DELETE("/:id", commentHandler.Delete)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
	}
	return cfg
}
