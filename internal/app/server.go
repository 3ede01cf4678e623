package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/handlers"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/logger"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/service"
)

// NewServer wires the database, services, handlers and routes. The returned
// cleanup stops the reminder job and closes the database.
func NewServer(cfg Config, log *logger.Logger) (*gin.Engine, func(), error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.User{},
		&model.Subscriber{},
	); err != nil {
		return nil, nil, err
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.Middleware())
	r.Use(handlers.RateLimiter(cfg.RateLimitPerMinute))

	images, err := service.NewImageStore(cfg.UploadDir, log)
	if err != nil {
		return nil, nil, err
	}
	emailSvc := service.NewEmailService(service.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		From: cfg.SMTPFrom,
	})

	authSvc := service.NewAuthService(db, cfg.JWTSecret)
	userSvc := service.NewUserService(db, log)
	productSvc := service.NewProductService(db, images, log)
	categorySvc := service.NewCategoryService(db, images, log)
	orderSvc := service.NewOrderService(db, log)
	newsletterSvc := service.NewNewsletterService(db, emailSvc, log)

	reminder := service.NewReminder(db, emailSvc, cfg.ShopEmail, log)
	if err := reminder.Start(); err != nil {
		return nil, nil, err
	}

	authH := handlers.NewAuthHTTP(authSvc, userSvc)
	userH := handlers.NewUserHTTP(userSvc)
	productH := handlers.NewProductHTTP(productSvc, images)
	categoryH := handlers.NewCategoryHTTP(categorySvc, images)
	orderH := handlers.NewOrderHTTP(orderSvc)
	newsletterH := handlers.NewNewsletterHTTP(newsletterSvc)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.Static("/upload", cfg.UploadDir)

	api := r.Group("/api")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)
	api.GET("/auth/me", handlers.RequireAuth(authSvc), authH.Me)

	api.GET("/products", productH.List)
	api.GET("/products/:slug", productH.Get)
	api.GET("/categories", categoryH.List)
	api.GET("/categories/:slug", categoryH.Get)

	api.POST("/orders", orderH.Create)
	api.POST("/newsletter/subscribe", newsletterH.Subscribe)

	authed := api.Group("", handlers.RequireAuth(authSvc))
	authed.GET("/users/:username", userH.Get)
	authed.PATCH("/users/:username", userH.UpdateInfo)
	authed.PATCH("/users/:username/password", userH.UpdatePassword)

	admin := api.Group("", handlers.RequireAuth(authSvc), handlers.RequireAdmin())
	admin.POST("/products", productH.Create)
	admin.PATCH("/products/:slug", productH.Update)
	admin.DELETE("/products/:slug", productH.Delete)
	admin.POST("/categories", categoryH.Create)
	admin.PATCH("/categories/:slug", categoryH.Update)
	admin.DELETE("/categories/:slug", categoryH.Delete)
	admin.GET("/orders", orderH.List)
	admin.GET("/orders/:id", orderH.Get)
	admin.PATCH("/orders/:id", orderH.Update)
	admin.DELETE("/orders/:id", orderH.Delete)
	admin.POST("/orders/:id/restore-quantity", orderH.RestoreProductQuantity)
	admin.GET("/users", userH.List)
	admin.DELETE("/users/:username", userH.Delete)
	admin.GET("/newsletter/subscribers", newsletterH.List)

	cleanup := func() {
		reminder.Stop()
		if s, err := db.DB(); err == nil {
			_ = s.Close()
		}
	}
	return r, cleanup, nil
}
