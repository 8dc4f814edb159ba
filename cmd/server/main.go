package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nkym/gms-backend/internal/auth"
	"github.com/nkym/gms-backend/internal/config"
	"github.com/nkym/gms-backend/internal/events"
	"github.com/nkym/gms-backend/internal/firebase"
	"github.com/nkym/gms-backend/internal/gallery"
	"github.com/nkym/gms-backend/internal/logger"
	"github.com/nkym/gms-backend/internal/metrics"
	"github.com/nkym/gms-backend/internal/notifications"
	"github.com/nkym/gms-backend/internal/popup"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	log := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))

	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Firebase: Firestore + Cloud Messaging.
	fb, err := firebase.NewClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredJSON)
	if err != nil {
		log.Error("failed to initialize firebase", "error", err)
		os.Exit(1)
	}
	defer fb.Close()

	// Admin auth.
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Error("failed to initialize token issuer", "error", err)
		os.Exit(1)
	}
	authService := auth.NewService(cfg.AdminKey, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash, issuer)
	authHandler := auth.NewHandler(authService)
	adminMiddleware := auth.NewAdminMiddleware(issuer)

	// Notifications.
	tokenStore := notifications.NewFirestoreTokenStore(fb.Firestore, log)
	auditStore := notifications.NewFirestoreAuditStore(fb.Firestore, log)
	pusher := notifications.NewFCMPusher(fb.Messaging, log)
	notificationService := notifications.NewService(tokenStore, auditStore, pusher, log, cfg.PushNotificationsEnabled)
	notificationHandler := notifications.NewHandler(notificationService)

	// Events.
	eventStore := events.NewFirestoreStore(fb.Firestore, log)
	eventService := events.NewService(eventStore, notificationService, log, cfg.EventNotificationsEnabled)
	eventHandler := events.NewHandler(eventService)

	// Gallery.
	var uploader gallery.Uploader
	if cfg.CloudinaryURL != "" {
		uploader, err = gallery.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Error("failed to initialize cloudinary", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("CLOUDINARY_URL not set, gallery uploads disabled")
	}
	galleryStore := gallery.NewFirestoreStore(fb.Firestore, log)
	galleryHandler := gallery.NewHandler(galleryStore, uploader)

	// Popup banners.
	popupStore := popup.NewFirestoreStore(fb.Firestore, log)
	popupHandler := popup.NewHandler(popupStore)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	router.Use(metrics.Middleware())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the gms backend server!")
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")
	{
		api.POST("/verify-admin", authHandler.VerifyAdminKey)
		api.POST("/login", authHandler.Login)
	}

	// Mutating admin routes are gated behind the admin JWT only when
	// configured; the default keeps them open.
	admin := func() gin.HandlerFunc {
		if cfg.AdminAuthRequired {
			return adminMiddleware.RequireAdmin()
		}
		return func(c *gin.Context) { c.Next() }
	}()

	eventsGroup := router.Group("/events")
	{
		eventsGroup.POST("/create", admin, eventHandler.Create)
		eventsGroup.GET("/all", eventHandler.List)
		eventsGroup.PUT("/:id", admin, eventHandler.Update)
		eventsGroup.DELETE("/:id", admin, eventHandler.Delete)
	}

	galleryGroup := router.Group("/gallery")
	{
		galleryGroup.POST("/upload", admin, galleryHandler.Upload)
		galleryGroup.GET("/all", galleryHandler.List)
		galleryGroup.PUT("/:id", admin, galleryHandler.Update)
		galleryGroup.DELETE("/:id", admin, galleryHandler.Delete)
	}

	popupGroup := router.Group("/popup")
	{
		popupGroup.GET("/popup-content", popupHandler.ListEnabled)
		popupGroup.POST("/popup-content", admin, popupHandler.Add)
		popupGroup.POST("/popup-content/:id", admin, popupHandler.Toggle)
	}

	notificationsGroup := router.Group("/notifications")
	{
		notificationsGroup.POST("/save-token", notificationHandler.SaveToken)
		notificationsGroup.POST("/send-custom", admin, notificationHandler.SendCustom)
		notificationsGroup.GET("/logs", admin, notificationHandler.Logs)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}

// requestIDMiddleware tags every request with an ID for log correlation.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// corsMiddleware allows the configured origins. allowedOrigins is a
// comma-separated list; "*" allows everything.
func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	allowAll := allowedOrigins == "*"
	origins := strings.Split(allowedOrigins, ",")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			for _, allowed := range origins {
				if strings.TrimSpace(allowed) == origin {
					c.Header("Access-Control-Allow-Origin", origin)
					c.Header("Vary", "Origin")
					break
				}
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
