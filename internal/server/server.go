package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"quill/internal/ai/component"
	"quill/internal/config"
	"quill/internal/handler"
	authHandler "quill/internal/handler/auth"
	bookHandler "quill/internal/handler/book"
	resourceHandler "quill/internal/handler/resource"
	"quill/internal/pkg/booktools"
	"quill/internal/pkg/booktools/providers"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/jwt"
	"quill/internal/pkg/mongodb"
	"quill/internal/pkg/storage"
	"quill/internal/pkg/storagefactory"
	"quill/internal/pkg/transcribe"
	"quill/internal/server/middleware"
	authService "quill/internal/service/auth"
	bookService "quill/internal/service/book"
	resourceService "quill/internal/service/resource"
	transcriptionService "quill/internal/service/transcription"
)

// Server is the HTTP server with its backing connections.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New builds the server: connections, services, routes. MongoDB is
// required; Redis, storage and the AI providers are optional and their
// endpoints degrade when unconfigured.
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	var store storage.Storage
	if cfg.Storage.Type != "" {
		st, err := storagefactory.NewStorage(context.Background(), &cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize storage, continuing without it")
		} else {
			store = st
			log.Info().Str("type", store.Type()).Msg("initialized storage")
		}
	}

	var generator booktools.TextGenerator
	if cfg.AI.APIKey != "" {
		chatModel, err := component.NewChatModel(context.Background(), &cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize chat model, continuing without it")
		} else {
			generator = providers.NewEinoGenerator(chatModel)
			log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("initialized chat model")
		}
	}

	var transcriber booktools.Transcriber
	transcribeKey := cfg.Transcription.APIKey
	if transcribeKey == "" {
		transcribeKey = cfg.AI.APIKey
	}
	if transcribeKey != "" {
		client, err := transcribe.NewClient(transcribe.Config{
			APIKey:  transcribeKey,
			Model:   cfg.Transcription.Model,
			BaseURL: cfg.Transcription.BaseURL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize transcription client, continuing without it")
		} else {
			transcriber = client
			log.Info().Str("model", cfg.Transcription.Model).Msg("initialized transcription client")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	srv.setupRoutes(generator, transcriber, store)

	return srv, nil
}

func (s *Server) setupRoutes(generator booktools.TextGenerator, transcriber booktools.Transcriber, store storage.Storage) {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS(&s.cfg.CORS))

	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := s.mongo.Database()

	bookSvc := bookService.NewService(db, bookService.Options{
		Generator:        generator,
		SourceCharBudget: s.cfg.Book.SourceCharBudget,
		Store:            store,
		Cache:            s.redis,
	})
	bookHdl := bookHandler.NewHandler(bookSvc)

	var resourceHdl *resourceHandler.Handler
	if store != nil {
		resourceSvc := resourceService.NewService(db, store)
		var transcriptionSvc transcriptionService.Service
		if transcriber != nil {
			transcriptionSvc = transcriptionService.NewService(resourceSvc, bookSvc, transcriber)
		}
		resourceHdl = resourceHandler.NewHandler(resourceSvc, transcriptionSvc)
	}

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}
	jwtUtil := jwt.NewJWT(jwtSecret, accessTokenExpiry)
	authSvc := authService.NewService(db, jwtUtil)
	authHdl := authHandler.NewHandler(authSvc)

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/auth/register", authHdl.Register)
		v1.POST("/auth/login", authHdl.Login)
		v1.GET("/auth/me", middleware.Auth(jwtUtil), authHdl.GetMe)

		v1.POST("/projects", bookHdl.CreateProject)
		v1.GET("/projects", bookHdl.ListProjects)
		v1.GET("/projects/:project_id", bookHdl.GetProject)
		v1.DELETE("/projects/:project_id", bookHdl.DeleteProject)

		v1.POST("/projects/:project_id/sources", bookHdl.AddSource)
		v1.GET("/projects/:project_id/sources", bookHdl.ListSources)

		v1.POST("/projects/:project_id/outline", bookHdl.BuildOutline)
		v1.GET("/projects/:project_id/outline", bookHdl.GetOutline)
		v1.POST("/projects/:project_id/drafts/next", bookHdl.GenerateNextDraft)
		v1.GET("/projects/:project_id/chapters", bookHdl.ListChapters)
		v1.POST("/projects/:project_id/export", bookHdl.ExportEbook)

		v1.GET("/chapters/:chapter_id", bookHdl.GetChapter)
		v1.POST("/chapters/:chapter_id/draft", bookHdl.GenerateChapterDraft)

		if resourceHdl != nil {
			v1.POST("/audio", resourceHdl.UploadAudio)
			v1.POST("/audio/:resource_id/transcribe", resourceHdl.Transcribe)
		} else {
			log.Warn().Msg("storage not configured, audio endpoints disabled")
		}
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down cleanly.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the Gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
