package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/stickify/stickify/config"
	"github.com/stickify/stickify/internal/comment"
	"github.com/stickify/stickify/internal/playlist"
	"github.com/stickify/stickify/internal/rating"
	"github.com/stickify/stickify/internal/song"
	"github.com/stickify/stickify/internal/user"
	"github.com/stickify/stickify/migrations"
	"github.com/stickify/stickify/pkg/auth"
	"github.com/stickify/stickify/pkg/database"
	"github.com/stickify/stickify/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database connect", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.ResetSecret, cfg.JWTTTL)

	var mailer user.ResetMailer
	if cfg.SMTPHost != "" {
		mailer = auth.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}

	var artwork song.ArtworkStore
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			logger.Fatal("minio", zap.Error(err))
		}
		artwork = store
	}

	userRepo := user.NewRepository(db)
	songRepo := song.NewRepository(db)
	playlistRepo := playlist.NewRepository(db)
	ratingRepo := rating.NewRepository(db)
	commentRepo := comment.NewRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, tokens, mailer, cfg.ResetLinkBase))
	songHandler := song.NewHandler(song.NewService(songRepo, artwork, logger))
	playlistHandler := playlist.NewHandler(playlist.NewService(playlistRepo, playlistRepo, userRepo))
	ratingHandler := rating.NewHandler(rating.NewService(ratingRepo))
	commentHandler := comment.NewHandler(comment.NewService(commentRepo))

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	api := e.Group("/api")
	guard := tokens.Middleware()

	api.POST("/auth/sign-up", userHandler.SignUp)
	api.POST("/auth/login", userHandler.Login)
	api.POST("/auth/forgot-password", userHandler.ForgotPassword)
	api.POST("/auth/reset-password", userHandler.ResetPassword)

	api.POST("/users", userHandler.SignUp)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Get)
	api.GET("/users/by-email/:email", userHandler.GetByEmail)
	api.GET("/users/by-username/:username", userHandler.GetByUsername)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)
	api.PUT("/users/:id/follow", userHandler.Follow)
	api.GET("/users/:id/followers", userHandler.Followers)
	api.GET("/users/:id/following", userHandler.Following)

	api.POST("/songs", songHandler.Create, guard)
	api.GET("/songs", songHandler.List)
	api.GET("/songs/:trackId", songHandler.Get)
	api.GET("/songs/:trackId/artwork", songHandler.Artwork)
	api.PUT("/songs/:trackId", songHandler.Update)
	api.DELETE("/songs/:trackId", songHandler.Delete)

	api.POST("/playlists", playlistHandler.Create)
	api.GET("/playlists", playlistHandler.List)
	api.GET("/playlists/user/:userId", playlistHandler.ListByUser)
	api.GET("/playlists/by-name/:name", playlistHandler.GetByName)
	api.PUT("/playlists/:id", playlistHandler.Update)
	api.DELETE("/playlists/:id", playlistHandler.Delete)

	api.POST("/user-saved-playlists", playlistHandler.Save)
	api.GET("/user-saved-playlists/user/:userId/full", playlistHandler.Saved)
	api.GET("/user-saved-playlists/user/:userId/playlist/:playlistId", playlistHandler.IsSaved)
	api.DELETE("/user-saved-playlists/user/:userId/playlist/:playlistId", playlistHandler.Unsave)

	api.POST("/song-ratings", ratingHandler.Rate)
	api.GET("/song-ratings/:trackId", ratingHandler.Ratings)
	api.GET("/song-ratings/average/:trackId", ratingHandler.Average)

	api.POST("/comments", commentHandler.Create)
	api.GET("/comments", commentHandler.List)
	api.GET("/comments/:id", commentHandler.Get)
	api.GET("/comments/user/:userId", commentHandler.ListByUser)
	api.PUT("/comments/:id", commentHandler.Update)
	api.DELETE("/comments/:id", commentHandler.Delete)

	logger.Info("starting stickify api", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
