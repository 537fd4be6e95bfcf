package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"crm/internal/app/config"
	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/middleware"
	"crm/internal/app/repository"
	"crm/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "college-crm"

// TokenRevoker пишет отозванные токены в blacklist (redis.Client)
type TokenRevoker interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
}

type AuthHandler struct {
	Repository  *repository.Repository
	RedisClient TokenRevoker
	Auth        *middleware.AuthMiddleware
	Config      *config.Config
}

func NewAuthHandler(r *repository.Repository, redisClient TokenRevoker, auth *middleware.AuthMiddleware, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Repository:  r,
		RedisClient: redisClient,
		Auth:        auth,
		Config:      cfg,
	}
}

// issueToken подписывает JWT для пользователя
func (h *AuthHandler) issueToken(user *ds.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
		UserID: user.ID,
		Role:   user.Role,
	})
	return token.SignedString([]byte(h.Config.JWT.Token))
}

func toUser(u *ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role.String(),
	}
}

func (h *AuthHandler) loginResponse(user *ds.User, token string) dto.LoginResponse {
	return dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.Config.JWT.ExpiresIn.Seconds()),
		User:      toUser(user),
	}
}

// RegisterUser регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создание нового пользователя с ролью viewer; первый пользователь получает admin
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if !bindJSON(ctx, &request) {
		return
	}

	// Проверяем существует ли пользователь
	exists, err := h.Repository.UserExistsByEmail(ctx.Request.Context(), request.Email)
	if err != nil {
		storeError(ctx, err, "failed to register user")
		return
	}
	if exists {
		errorResponse(ctx, http.StatusBadRequest, "user with this email already exists")
		return
	}

	// Хешируем пароль
	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Error("Error hashing password: ", err)
		errorResponse(ctx, http.StatusInternalServerError, "failed to register user")
		return
	}

	// Первый пользователь становится администратором, остальные получают просмотр
	userRole := role.Viewer
	count, err := h.Repository.CountUsers(ctx.Request.Context())
	if err != nil {
		storeError(ctx, err, "failed to register user")
		return
	}
	if count == 0 {
		userRole = role.Admin
	}

	user, err := h.Repository.CreateUser(ctx.Request.Context(), request.Email, string(hashed), request.FullName, userRole)
	if err != nil {
		storeError(ctx, err, "failed to register user")
		return
	}

	// Генерируем JWT токен сразу при регистрации
	token, err := h.issueToken(user)
	if err != nil {
		logrus.Error("Error signing token: ", err)
		errorResponse(ctx, http.StatusInternalServerError, "failed to issue token")
		return
	}

	logrus.Infof("user %d registered as %s", user.ID, user.Role)
	successResponse(ctx, http.StatusCreated, "user registered", h.loginResponse(user, token))
}

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Аутентификация пользователя с возвратом JWT токена
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if !bindJSON(ctx, &request) {
		return
	}

	user, err := h.Repository.GetUserByEmail(ctx.Request.Context(), request.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		storeError(ctx, err, "failed to log in")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		errorResponse(ctx, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		logrus.Error("Error signing token: ", err)
		errorResponse(ctx, http.StatusInternalServerError, "failed to issue token")
		return
	}
	successResponse(ctx, http.StatusOK, "logged in", h.loginResponse(user, token))
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Завершение сеанса пользователя с добавлением токена в blacklist
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	tokenString := middleware.BearerToken(ctx)
	claims, err := h.Auth.ParseToken(tokenString)
	if err != nil {
		errorResponse(ctx, http.StatusUnauthorized, "invalid token")
		return
	}

	// Токен живёт в blacklist до своего истечения
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 && h.RedisClient != nil {
		if err := h.RedisClient.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
			logrus.Error("Error writing token to blacklist: ", err)
			errorResponse(ctx, http.StatusInternalServerError, "failed to log out")
			return
		}
	}

	successResponse(ctx, http.StatusOK, "logged out", nil)
}

// GetUserProfile получение профиля пользователя
// @Summary Получение профиля пользователя
// @Description Возвращает информацию о текущем пользователе
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetUserProfile(ctx *gin.Context) {
	userID, _, ok := getUserFromContext(ctx)
	if !ok {
		return
	}

	user, err := h.Repository.GetUserByID(ctx.Request.Context(), userID)
	if err != nil {
		storeError(ctx, err, "failed to load profile")
		return
	}
	ctx.JSON(http.StatusOK, toUser(user))
}

// UpdateUserRole назначает роль пользователю (только администратор)
// @Summary Смена роли пользователя
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param request body dto.UpdateUserRoleRequest true "Роль"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id}/role [put]
func (h *AuthHandler) UpdateUserRole(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var request dto.UpdateUserRoleRequest
	if !bindJSON(ctx, &request) {
		return
	}

	user, err := h.Repository.UpdateUserRole(ctx.Request.Context(), id, role.Parse(request.Role))
	if err != nil {
		storeError(ctx, err, "failed to update role")
		return
	}
	successResponse(ctx, http.StatusOK, "role updated", toUser(user))
}
