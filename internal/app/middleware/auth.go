package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"crm/internal/app/config"
	"crm/internal/app/ds"
	"crm/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// Blacklist хранилище отозванных токенов (redis.Client)
type Blacklist interface {
	CheckJWTInBlacklist(ctx context.Context, jwtStr string) error
}

// Users источник актуальной роли пользователя (repository.Repository).
// Роль в токене могла устареть после смены администратором.
type Users interface {
	UserRole(ctx context.Context, id uint) (role.Role, error)
}

type AuthMiddleware struct {
	Blacklist Blacklist
	Users     Users
	Config    *config.Config
}

func NewAuthMiddleware(blacklist Blacklist, users Users, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Users:     users,
		Config:    cfg,
	}
}

// BearerToken достаёт токен из заголовка Authorization
func BearerToken(c *gin.Context) string {
	jwtStr := c.GetHeader("Authorization")
	return strings.TrimPrefix(jwtStr, "Bearer ")
}

// WithAuthCheck middleware для проверки авторизации с ролями
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		jwtStr := BearerToken(gCtx)
		if jwtStr == "" {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Проверяем токен в blacklist Redis
		if am.Blacklist != nil {
			if err := am.Blacklist.CheckJWTInBlacklist(gCtx.Request.Context(), jwtStr); err == nil {
				gCtx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
		}

		claims, err := am.ParseToken(jwtStr)
		if err != nil {
			logrus.Warnf("rejected token: %v", err)
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		current := claims.Role
		if am.Users != nil {
			current, err = am.Users.UserRole(gCtx.Request.Context(), claims.UserID)
			if err != nil {
				logrus.Warnf("role of user %d: %v", claims.UserID, err)
				gCtx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
		}

		// Проверяем роли пользователя
		if len(assignedRoles) > 0 && !slices.Contains(assignedRoles, current) {
			gCtx.AbortWithStatus(http.StatusForbidden)
			return
		}

		setUser(gCtx, claims.UserID, current)
		gCtx.Next()
	}
}

// ParseToken парсит и валидирует JWT токен
func (am *AuthMiddleware) ParseToken(tokenString string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != am.Config.JWT.SigningMethod.Alg() {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(am.Config.JWT.Token), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
