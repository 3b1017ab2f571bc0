package app

import (
	"net/http"

	"github.com/YukiKuroshima/Team-Large/internal/auth"
	"github.com/YukiKuroshima/Team-Large/internal/cache"
	"github.com/YukiKuroshima/Team-Large/internal/config"
	"github.com/YukiKuroshima/Team-Large/internal/dto"
	"github.com/YukiKuroshima/Team-Large/internal/handlers"
	"github.com/YukiKuroshima/Team-Large/internal/repo"
	"github.com/YukiKuroshima/Team-Large/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/ping", pingHandler())
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userCache := cache.NewUserCache(rdb, cfg.Redis.DefaultTTL.Duration())
	userSvc := service.NewUserService(userRepo, userCache)

	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	r.GET("/", authHandler.Landing)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/signup", authHandler.SignupForm)
	r.POST("/signup", authHandler.Signup)

	userHandler := handlers.NewUserHandler(userSvc)
	r.POST("/users", userHandler.Create)
	r.GET("/users", userHandler.List)

	protected := r.Group("", auth.RequireSession(sessionStore))
	protected.GET("/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.Profile)
}

// Ping godoc
// @Summary      Health ping
// @Tags         meta
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /ping [get]
func pingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.MessageResponse{Status: dto.StatusSuccess, Message: "pong!"})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
