package api

import (
	"context"
	"time"

	"crm/internal/app/config"
	"crm/internal/app/dsn"
	"crm/internal/app/dto"
	"crm/internal/app/handler"
	"crm/internal/app/middleware"
	"crm/internal/app/redis"
	"crm/internal/app/repository"
	"crm/internal/app/scheduler"
	"crm/internal/app/selection"
	"crm/internal/app/storage"
	"crm/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer собирает зависимости и запускает HTTP сервер
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check DB_DSN or DB_HOST")
	}

	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatalf("ошибка инициализации репозитория: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Redis необязателен: без него выбор хранится в памяти, кэш и blacklist отключены
	var (
		store       selection.Store = selection.NewMemoryStore()
		cache       handler.Cache
		blacklist   middleware.Blacklist
		revoker     handler.TokenRevoker
		invalidator scheduler.Invalidator
	)
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logrus.Warnf("redis недоступен, работаем без кэша: %v", err)
	} else {
		store, cache, blacklist, revoker, invalidator = redisClient, redisClient, redisClient, redisClient, redisClient
	}

	var minioClient *storage.MinIOClient
	if cfg.MinIO.Endpoint != "" {
		minioClient, err = storage.NewMinIOClient(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			logrus.Warnf("minio недоступен, импорт тем отключен: %v", err)
			minioClient = nil
		}
	}

	if err := dto.RegisterValidators(); err != nil {
		logrus.Fatalf("ошибка регистрации валидаторов: %v", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(blacklist, repo, cfg)
	authHandler := handler.NewAuthHandler(repo, revoker, authMiddleware, cfg)
	h := handler.NewHandler(repo, store, cache, minioClient, authHandler, cfg)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	jobs := scheduler.New(cfg.Scheduler, repo, invalidator)

	app := pkg.NewApp(cfg, r, h, authMiddleware, jobs)
	app.RunApp()

	if redisClient != nil {
		_ = redisClient.Close()
	}
	logrus.Info("Server down")
}
