package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkwell-cms/inkwell/config"
	"github.com/inkwell-cms/inkwell/internal/api"
	"github.com/inkwell-cms/inkwell/internal/auth"
	"github.com/inkwell-cms/inkwell/internal/auth/token"
	"github.com/inkwell-cms/inkwell/internal/logger"
	"github.com/inkwell-cms/inkwell/internal/post"
	"github.com/inkwell-cms/inkwell/internal/storage"
	"github.com/inkwell-cms/inkwell/internal/tag"
	"github.com/inkwell-cms/inkwell/internal/upload"
	"github.com/inkwell-cms/inkwell/internal/user"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting inkwell",
		zap.Int("port", cfg.Port),
		zap.String("db_type", cfg.DBType),
	)

	db, err := storage.Open(cfg.DBType, cfg.DSN, !cfg.SkipAutoMigrate)
	if err != nil {
		zlog.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Auth core
	hasher := auth.NewBcryptHasher(12)
	signer := token.NewSigner([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience)
	issuer := auth.NewTokenIssuer(signer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	users := user.NewRepository(db)

	var failures auth.FailureStore = auth.NewMemoryFailureStore()
	if cfg.RedisAddr != "" {
		failures = auth.NewRedisFailureStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), "")
	}
	throttle := auth.NewThrottle(failures,
		cfg.Lockout.MaxFailures, cfg.Lockout.Window, cfg.Lockout.LockDuration)

	signIn, err := auth.NewSignInService(users, hasher, issuer, throttle, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize sign-in service", zap.Error(err))
	}
	refresh := auth.NewRefreshService(signer, users, issuer, zlog)

	verifierCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	verifier, err := auth.NewGoogleVerifier(verifierCtx, cfg.Google.ClientID)
	if err != nil {
		zlog.Fatal("failed to initialize google verifier", zap.Error(err))
	}
	google := auth.NewGoogleService(verifier, users, issuer, zlog)

	// Content services
	tags := tag.NewService(db)
	posts := post.NewService(db, users, tags)
	userSvc := user.NewService(users, hasher)

	store, err := upload.NewS3Store(&upload.S3Config{
		AccessKeyID: cfg.S3.AccessKeyID,
		SecretKey:   cfg.S3.SecretKey,
		Bucket:      cfg.S3.Bucket,
		Region:      cfg.S3.Region,
	})
	if err != nil {
		zlog.Fatal("failed to initialize object store", zap.Error(err))
	}
	uploads := upload.NewService(db, store, cfg.S3.CDNBaseURL)

	h := api.NewHandler(signIn, refresh, google, signer, userSvc, posts, tags, uploads, zlog)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	g := e.Group("/api/v1")
	h.RegisterRoutes(g)

	zlog.Info("server is starting", zap.Int("port", cfg.Port))
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		zlog.Fatal("server failed to start", zap.Error(err))
	}
}
