package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"crm/internal/app/config"
	"crm/internal/app/dto"
	"crm/internal/app/middleware"
	"crm/internal/app/redis"
	"crm/internal/app/repository"
	"crm/internal/app/role"
	"crm/internal/app/selection"
	"crm/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Группы кэша ответов, сбрасываются при изменении ресурса
const (
	cacheCourses       = "courses"
	cachePricingModels = "pricing_models"
)

// Cache кэш списков (redis.Client), может отсутствовать
type Cache interface {
	GetJSON(ctx context.Context, group, key string, dest interface{}) error
	SetJSON(ctx context.Context, group, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, groups ...string) error
}

// Handler содержит обработчики REST API
type Handler struct {
	Repository  *repository.Repository
	Selection   selection.Store
	Cache       Cache
	MinIOClient *storage.MinIOClient
	Auth        *AuthHandler
	Config      *config.Config
}

func NewHandler(r *repository.Repository, store selection.Store, cache Cache, minioClient *storage.MinIOClient, auth *AuthHandler, cfg *config.Config) *Handler {
	return &Handler{
		Repository:  r,
		Selection:   store,
		Cache:       cache,
		MinIOClient: minioClient,
		Auth:        auth,
		Config:      cfg,
	}
}

// ============ Вспомогательные функции ============

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// bindJSON читает тело запроса, при ошибке сразу отвечает 400
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		logrus.Warnf("bad request %s %s: %v", c.Request.Method, c.FullPath(), err)
		errorResponse(c, http.StatusBadRequest, dto.ValidationMessage(err))
		return false
	}
	return true
}

// storeError переводит ошибку репозитория в ответ: 404 для отсутствующих записей,
// 409/400 для конфликтов и неверного порядка, иначе 500
func storeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		errorResponse(c, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrAlreadyAssigned):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrInvalidTopicOrder):
		errorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logrus.Errorf("%s: %v", message, err)
		errorResponse(c, http.StatusInternalServerError, message)
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		errorResponse(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryFloat(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	return &v, true
}

// Получение текущего пользователя из контекста
func getUserFromContext(c *gin.Context) (uint, role.Role, bool) {
	userID, userRole, err := middleware.CurrentUser(c)
	if err != nil {
		logrus.Warn("userID not found in context")
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return 0, role.Viewer, false
	}
	return userID, userRole, true
}

func (h *Handler) cacheTTL() time.Duration {
	if h.Config == nil || h.Config.CacheTTL <= 0 {
		return time.Minute
	}
	return h.Config.CacheTTL
}

func (h *Handler) cacheGet(ctx context.Context, group, key string, dest interface{}) bool {
	if h.Cache == nil {
		return false
	}
	if err := h.Cache.GetJSON(ctx, group, key, dest); err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			logrus.Warnf("cache get %s/%s: %v", group, key, err)
		}
		return false
	}
	return true
}

func (h *Handler) cacheSet(ctx context.Context, group, key string, value interface{}) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.SetJSON(ctx, group, key, value, h.cacheTTL()); err != nil {
		logrus.Warnf("cache set %s/%s: %v", group, key, err)
	}
}

// invalidate сбрасывает кэш после успешного изменения
func (h *Handler) invalidate(ctx context.Context, groups ...string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidate(ctx, groups...); err != nil {
		logrus.Warnf("cache invalidate %v: %v", groups, err)
	}
}
