package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gihanotis/internal/config"
	"gihanotis/internal/handler"
	"gihanotis/internal/middleware"
	"gihanotis/internal/notifier"
	"gihanotis/internal/repository"
	"gihanotis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router   *gin.Engine
	db       *sqlx.DB
	cfg      *config.Config
	logger   *zap.Logger
	auth     service.AuthService
	telegram *notifier.Telegram
	access   *logrus.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger, auth service.AuthService, telegram *notifier.Telegram) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	s := &Server{
		router:   router,
		db:       db,
		cfg:      cfg,
		logger:   logger,
		auth:     auth,
		telegram: telegram,
		access:   logrus.New(),
	}

	router.Use(gin.Recovery())
	router.Use(s.accessLog())
	router.Use(middleware.RequestTimeout(time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second))

	// Setup routes
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Initialize repositories
	requestRepo := repository.NewRequestRepository(s.db, s.logger)
	responseRepo := repository.NewResponseRepository(s.db, s.logger)
	reconcileStore := repository.NewReconcileStore(s.db, s.logger)

	// Initialize services and handlers
	reconcileService := service.NewReconcileService(reconcileStore, s.logger)
	authHandler := handler.NewAuthHandler(s.auth, s.cfg, s.logger)
	requestHandler := handler.NewRequestHandler(requestRepo, responseRepo, s.logger)
	responseHandler := handler.NewResponseHandler(reconcileService, s.telegram, s.logger)
	publicHandler := handler.NewPublicHandler(requestRepo, responseRepo, s.telegram, s.logger)
	healthHandler := handler.NewHealthHandler(s.db, s.logger)

	s.router.GET("/health", healthHandler.Check)

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/status", authHandler.Status)

	// Admin routes
	admin := s.router.Group("/api")
	admin.Use(middleware.AdminAuth(s.auth, s.logger))
	{
		admin.GET("/requests", requestHandler.List)
		admin.POST("/requests", requestHandler.Create)
		admin.GET("/requests/:id", requestHandler.Get)
		admin.PUT("/requests/:id", requestHandler.Update)
		admin.DELETE("/requests/:id", requestHandler.Delete)

		admin.POST("/responses/:id/accept", responseHandler.Accept)
		admin.POST("/responses/:id/unaccept", responseHandler.Unaccept)
	}

	// Public routes
	public := s.router.Group("/api/public")
	{
		public.GET("/requests", publicHandler.ListRequests)
		public.GET("/requests/:id", publicHandler.GetRequest)
		public.POST("/requests/:id/responses", publicHandler.CreateResponse)
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.access.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}).Info("request")
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server shutdown failed", zap.Error(err))
	}
	s.logger.Info("Server stopped")
}
