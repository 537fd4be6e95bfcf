package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm/internal/app/config"
	"crm/internal/app/ds"
	"crm/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

type fakeBlacklist map[string]bool

func (f fakeBlacklist) CheckJWTInBlacklist(_ context.Context, jwtStr string) error {
	if f[jwtStr] {
		return nil
	}
	return errors.New("redis: nil")
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Token:         "test-secret",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
}

func signToken(t *testing.T, cfg *config.Config, userID uint, r role.Role, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(cfg.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: expiresAt.Unix()},
		UserID:         userID,
		Role:           r,
	})
	s, err := token.SignedString([]byte(cfg.JWT.Token))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newRouter(am *AuthMiddleware, roles ...role.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", am.WithAuthCheck(roles...), func(c *gin.Context) {
		userID, r, err := CurrentUser(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": r.String()})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestWithAuthCheck(t *testing.T) {
	cfg := testConfig()
	valid := signToken(t, cfg, 7, role.Sales, time.Now().Add(time.Hour))
	revoked := signToken(t, cfg, 8, role.Sales, time.Now().Add(2*time.Hour))
	expired := signToken(t, cfg, 7, role.Sales, time.Now().Add(-time.Minute))
	viewer := signToken(t, cfg, 9, role.Viewer, time.Now().Add(time.Hour))

	am := NewAuthMiddleware(fakeBlacklist{revoked: true}, nil, cfg)
	router := newRouter(am, role.Sales, role.Admin)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"valid sales", valid, http.StatusOK},
		{"blacklisted", revoked, http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong role", viewer, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.token)
			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestWithAuthCheckWithoutBlacklist(t *testing.T) {
	cfg := testConfig()
	router := newRouter(NewAuthMiddleware(nil, nil, cfg))

	w := doRequest(router, signToken(t, cfg, 3, role.Viewer, time.Now().Add(time.Hour)))
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg, 1, role.Admin, time.Now().Add(time.Hour))

	other := testConfig()
	other.JWT.Token = "another-secret"
	if _, err := NewAuthMiddleware(nil, nil, other).ParseToken(token); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestCurrentUserMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, _, err := CurrentUser(c); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

type fakeUsers map[uint]role.Role

func (f fakeUsers) UserRole(_ context.Context, id uint) (role.Role, error) {
	r, ok := f[id]
	if !ok {
		return role.Viewer, errors.New("record not found")
	}
	return r, nil
}

func TestWithAuthCheckUsesCurrentRole(t *testing.T) {
	cfg := testConfig()
	users := fakeUsers{7: role.Viewer, 9: role.Admin}
	router := newRouter(NewAuthMiddleware(nil, users, cfg), role.Sales, role.Admin)

	demoted := signToken(t, cfg, 7, role.Sales, time.Now().Add(time.Hour))
	if w := doRequest(router, demoted); w.Code != http.StatusForbidden {
		t.Errorf("expected demoted user to get 403, got %d", w.Code)
	}

	promoted := signToken(t, cfg, 9, role.Viewer, time.Now().Add(time.Hour))
	w := doRequest(router, promoted)
	if w.Code != http.StatusOK {
		t.Fatalf("expected promoted user to get 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"role":"admin"`) {
		t.Errorf("expected current role in context, got %s", w.Body.String())
	}

	deleted := signToken(t, cfg, 42, role.Admin, time.Now().Add(time.Hour))
	if w := doRequest(router, deleted); w.Code != http.StatusUnauthorized {
		t.Errorf("expected unknown user to get 401, got %d", w.Code)
	}
}
