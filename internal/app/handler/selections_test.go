package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"crm/internal/app/config"
	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/middleware"
	"crm/internal/app/role"
	"crm/internal/app/selection"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Token:         "handler-test-secret",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
}

func testToken(t *testing.T, cfg *config.Config, userID uint, r role.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(cfg.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
		UserID:         userID,
		Role:           r,
	})
	s, err := token.SignedString([]byte(cfg.JWT.Token))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func selectionRouter(store selection.Store, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Selection: store, Config: cfg}
	am := middleware.NewAuthMiddleware(nil, nil, cfg)

	router := gin.New()
	group := router.Group("/api/selections/:scope", am.WithAuthCheck())
	group.GET("", h.GetSelection)
	group.POST("/add", h.AddToSelection)
	group.POST("/remove", h.RemoveFromSelection)
	group.POST("/toggle", h.ToggleSelection)
	group.POST("/select-all", h.SelectAll)
	group.DELETE("", h.ClearSelection)
	return router
}

func call(t *testing.T, router *gin.Engine, token, method, path string, body interface{}) (*httptest.ResponseRecorder, dto.SelectionResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.SelectionResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return w, resp
}

func TestSelectionEndpoints(t *testing.T) {
	cfg := testConfig()
	router := selectionRouter(selection.NewMemoryStore(), cfg)
	token := testToken(t, cfg, 5, role.Sales)
	base := "/api/selections/courses"

	_, resp := call(t, router, token, http.MethodPost, base+"/add", dto.SelectionRequest{IDs: []uint{3, 1, 3}})
	if !slices.Equal(resp.Selected, []uint{1, 3}) || resp.Count != 2 {
		t.Errorf("expected [1 3] after add, got %v (count %d)", resp.Selected, resp.Count)
	}

	_, resp = call(t, router, token, http.MethodPost, base+"/toggle", dto.ToggleSelectionRequest{ID: 2})
	if !slices.Equal(resp.Selected, []uint{1, 2, 3}) {
		t.Errorf("expected toggle to add 2, got %v", resp.Selected)
	}
	_, resp = call(t, router, token, http.MethodPost, base+"/toggle", dto.ToggleSelectionRequest{ID: 2})
	if !slices.Equal(resp.Selected, []uint{1, 3}) {
		t.Errorf("expected second toggle to restore membership, got %v", resp.Selected)
	}

	_, resp = call(t, router, token, http.MethodPost, base+"/remove", dto.SelectionRequest{IDs: []uint{1}})
	if !slices.Equal(resp.Selected, []uint{3}) {
		t.Errorf("expected [3] after remove, got %v", resp.Selected)
	}

	_, resp = call(t, router, token, http.MethodPost, base+"/select-all", dto.SelectionRequest{IDs: []uint{7, 8}})
	if !slices.Equal(resp.Selected, []uint{7, 8}) {
		t.Errorf("expected select-all to replace selection, got %v", resp.Selected)
	}

	_, resp = call(t, router, token, http.MethodDelete, base, nil)
	if len(resp.Selected) != 0 || resp.Selected == nil {
		t.Errorf("expected empty non-nil selection after clear, got %v", resp.Selected)
	}
}

func TestSelectionIsPerUserAndScope(t *testing.T) {
	cfg := testConfig()
	router := selectionRouter(selection.NewMemoryStore(), cfg)
	alice := testToken(t, cfg, 1, role.Sales)
	bob := testToken(t, cfg, 2, role.Sales)

	call(t, router, alice, http.MethodPost, "/api/selections/courses/add", dto.SelectionRequest{IDs: []uint{10}})

	_, resp := call(t, router, bob, http.MethodGet, "/api/selections/courses", nil)
	if len(resp.Selected) != 0 {
		t.Errorf("expected other user's selection to be empty, got %v", resp.Selected)
	}
	_, resp = call(t, router, alice, http.MethodGet, "/api/selections/pricing_models", nil)
	if len(resp.Selected) != 0 {
		t.Errorf("expected other scope to be empty, got %v", resp.Selected)
	}
}

func TestSelectionRejectsBadInput(t *testing.T) {
	cfg := testConfig()
	router := selectionRouter(selection.NewMemoryStore(), cfg)
	token := testToken(t, cfg, 1, role.Viewer)

	w, _ := call(t, router, token, http.MethodGet, "/api/selections/colleges", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown scope, got %d", w.Code)
	}

	w, _ = call(t, router, token, http.MethodPost, "/api/selections/courses/add", dto.SelectionRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty ids, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/selections/courses", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

type recordingStore struct {
	*selection.MemoryStore
	calls []string
}

func (r *recordingStore) Clear(ctx context.Context, userID uint, scope string) error {
	r.calls = append(r.calls, "clear")
	return r.MemoryStore.Clear(ctx, userID, scope)
}

func (r *recordingStore) Add(ctx context.Context, userID uint, scope string, ids ...uint) error {
	r.calls = append(r.calls, "add")
	return r.MemoryStore.Add(ctx, userID, scope, ids...)
}

func (r *recordingStore) Replace(ctx context.Context, userID uint, scope string, ids ...uint) error {
	r.calls = append(r.calls, "replace")
	return r.MemoryStore.Replace(ctx, userID, scope, ids...)
}

func TestSelectAllReplacesInOneCall(t *testing.T) {
	cfg := testConfig()
	store := &recordingStore{MemoryStore: selection.NewMemoryStore()}
	router := selectionRouter(store, cfg)
	token := testToken(t, cfg, 4, role.Sales)

	_ = store.MemoryStore.Add(context.Background(), 4, "courses", 1, 2)

	_, resp := call(t, router, token, http.MethodPost, "/api/selections/courses/select-all", dto.SelectionRequest{IDs: []uint{5, 6}})
	if !slices.Equal(resp.Selected, []uint{5, 6}) {
		t.Errorf("expected [5 6], got %v", resp.Selected)
	}
	if !slices.Equal(store.calls, []string{"replace"}) {
		t.Errorf("expected a single replace, got %v", store.calls)
	}
}
