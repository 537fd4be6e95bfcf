package pkg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"crm/docs"
	"crm/internal/app/config"
	"crm/internal/app/handler"
	"crm/internal/app/middleware"
	"crm/internal/app/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	Config    *config.Config
	Router    *gin.Engine
	Handler   *handler.Handler
	Auth      *middleware.AuthMiddleware
	Scheduler *scheduler.Manager
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler, auth *middleware.AuthMiddleware, s *scheduler.Manager) *Application {
	return &Application{
		Config:    c,
		Router:    r,
		Handler:   h,
		Auth:      auth,
		Scheduler: s,
	}
}

// RunApp регистрирует маршруты, запускает фоновые задачи и сервер до сигнала остановки
func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterAPIRoutes(a.Router, a.Auth)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	docs.SwaggerInfo.Host = serverAddress
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if a.Scheduler != nil {
		if err := a.Scheduler.Start(); err != nil {
			logrus.Fatalf("ошибка запуска планировщика: %v", err)
		}
		defer a.Scheduler.Stop()
	}

	srv := &http.Server{
		Addr:    serverAddress,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("Starting server on %s", serverAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
}
