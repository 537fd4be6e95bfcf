package handler

import (
	"net/http"
	"slices"

	"crm/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Области выбора для массовых операций
const (
	scopeCourses       = "courses"
	scopePricingModels = "pricing_models"
)

var selectionScopes = []string{scopeCourses, scopePricingModels}

func parseScope(c *gin.Context) (string, bool) {
	scope := c.Param("scope")
	if !slices.Contains(selectionScopes, scope) {
		errorResponse(c, http.StatusBadRequest, "unknown selection scope: "+scope)
		return "", false
	}
	return scope, true
}

func (h *Handler) respondSelection(c *gin.Context, userID uint, scope string) {
	ids, err := h.Selection.Selected(c.Request.Context(), userID, scope)
	if err != nil {
		logrus.Errorf("load selection %s for user %d: %v", scope, userID, err)
		errorResponse(c, http.StatusInternalServerError, "failed to load selection")
		return
	}
	if ids == nil {
		ids = []uint{}
	}
	c.JSON(http.StatusOK, dto.SelectionResponse{Scope: scope, Selected: ids, Count: len(ids)})
}

// GetSelection текущий выбор пользователя
// @Summary Текущий выбор
// @Tags Selections
// @Produce json
// @Security BearerAuth
// @Param scope path string true "courses или pricing_models"
// @Success 200 {object} dto.SelectionResponse
// @Router /api/selections/{scope} [get]
func (h *Handler) GetSelection(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	scope, ok := parseScope(c)
	if !ok {
		return
	}
	h.respondSelection(c, userID, scope)
}

// AddToSelection добавляет записи в выбор, повторное добавление ничего не меняет
// @Summary Добавить в выбор
// @Tags Selections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scope path string true "courses или pricing_models"
// @Param request body dto.SelectionRequest true "ID записей"
// @Success 200 {object} dto.SelectionResponse
// @Router /api/selections/{scope}/add [post]
func (h *Handler) AddToSelection(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	scope, ok := parseScope(c)
	if !ok {
		return
	}
	var req dto.SelectionRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Selection.Add(c.Request.Context(), userID, scope, req.IDs...); err != nil {
		logrus.Errorf("add to selection %s: %v", scope, err)
		errorResponse(c, http.StatusInternalServerError, "failed to update selection")
		return
	}
	h.respondSelection(c, userID, scope)
}

// RemoveFromSelection убирает записи из выбора
// @Summary Убрать из выбора
// @Tags Selections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scope path string true "courses или pricing_models"
// @Param request body dto.SelectionRequest true "ID записей"
// @Success 200 {object} dto.SelectionResponse
// @Router /api/selections/{scope}/remove [post]
func (h *Handler) RemoveFromSelection(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	scope, ok := parseScope(c)
	if !ok {
		return
	}
	var req dto.SelectionRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Selection.Remove(c.Request.Context(), userID, scope, req.IDs...); err != nil {
		logrus.Errorf("remove from selection %s: %v", scope, err)
		errorResponse(c, http.StatusInternalServerError, "failed to update selection")
		return
	}
	h.respondSelection(c, userID, scope)
}

// ToggleSelection переключает одну запись
// @Summary Переключить запись в выборе
// @Tags Selections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scope path string true "courses или pricing_models"
// @Param request body dto.ToggleSelectionRequest true "ID записи"
// @Success 200 {object} dto.SelectionResponse
// @Router /api/selections/{scope}/toggle [post]
func (h *Handler) ToggleSelection(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	scope, ok := parseScope(c)
	if !ok {
		return
	}
	var req dto.ToggleSelectionRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.Selection.Toggle(c.Request.Context(), userID, scope, req.ID); err != nil {
		logrus.Errorf("toggle selection %s: %v", scope, err)
		errorResponse(c, http.StatusInternalServerError, "failed to update selection")
		return
	}
	h.respondSelection(c, userID, scope)
}

// SelectAll заменяет выбор переданным списком (обычно вся отфильтрованная выдача)
// @Summary Выбрать все
// @Tags Selections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scope path string true "courses или pricing_models"
// @Param request body dto.SelectionRequest true "ID записей"
// @Success 200 {object} dto.SelectionResponse
// @Router /api/selections/{scope}/select-all [post]
func (h *Handler) SelectAll(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	scope, ok := parseScope(c)
	if !ok {
		return
	}
	var req dto.SelectionRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Selection.Replace(c.Request.Context(), userID, scope, req.IDs...); err != nil {
		logrus.Errorf("select all %s: %v", scope, err)
		errorResponse(c, http.StatusInternalServerError, "failed to update selection")
		return
	}
	h.respondSelection(c, userID, scope)
}

// ClearSelection очищает выбор
// @Summary Очистить выбор
// @Tags Selections
// @Produce json
// @Security BearerAuth
// @Param scope path string true "courses или pricing_models"
// @Success 200 {object} dto.SelectionResponse
// @Router /api/selections/{scope} [delete]
func (h *Handler) ClearSelection(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	scope, ok := parseScope(c)
	if !ok {
		return
	}

	if err := h.Selection.Clear(c.Request.Context(), userID, scope); err != nil {
		logrus.Errorf("clear selection %s: %v", scope, err)
		errorResponse(c, http.StatusInternalServerError, "failed to update selection")
		return
	}
	h.respondSelection(c, userID, scope)
}
