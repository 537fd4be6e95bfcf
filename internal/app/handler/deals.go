package handler

import (
	"net/http"

	"crm/internal/app/analytics"
	"crm/internal/app/ds"
	"crm/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// ============ ДОМЕН СДЕЛКИ ============

// GetDeals получает список сделок со сводкой по стадиям
// @Summary Список сделок
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по названию"
// @Param stage query string false "Стадия"
// @Param college_id query int false "Только сделки колледжа"
// @Param sort query string false "title, value, probability, created_at"
// @Success 200 {object} dto.DealListResponse
// @Router /api/deals [get]
func (h *Handler) GetDeals(c *gin.Context) {
	collegeID, ok := queryUint(c, "college_id")
	if !ok {
		return
	}

	deals, err := h.Repository.ListDeals(c.Request.Context(), collegeID)
	if err != nil {
		storeError(c, err, "failed to load deals")
		return
	}

	list := dealQuery(c).Apply(deals)
	c.JSON(http.StatusOK, dto.DealListResponse{
		Deals:   mapSlice(list, toDeal),
		Summary: toSummary(analytics.Summarize(list, dealValue, func(d ds.SalesDeal) string { return d.Stage })),
	})
}

// GetDeal получает одну сделку
// @Summary Сделка по ID
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сделки"
// @Success 200 {object} dto.DealResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/deals/{id} [get]
func (h *Handler) GetDeal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deal, err := h.Repository.GetDeal(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load deal")
		return
	}
	c.JSON(http.StatusOK, toDeal(*deal))
}

// CreateDeal создаёт сделку
// @Summary Создание сделки
// @Tags Deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDealRequest true "Данные сделки"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/deals [post]
func (h *Handler) CreateDeal(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateDealRequest
	if !bindJSON(c, &req) {
		return
	}

	expected, err := parseDate(req.ExpectedClose)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid expected_close")
		return
	}

	deal := ds.SalesDeal{
		CollegeID:     req.CollegeID,
		Title:         req.Title,
		Value:         req.Value,
		Currency:      req.Currency,
		Probability:   req.Probability,
		Stage:         req.Stage,
		ExpectedClose: expected,
		Notes:         req.Notes,
	}
	if deal.Currency == "" {
		deal.Currency = "INR"
	}
	if deal.Stage == "" {
		deal.Stage = ds.StageLead
	}

	if err := h.Repository.CreateDeal(c.Request.Context(), &deal, userID); err != nil {
		storeError(c, err, "failed to create deal")
		return
	}
	successResponse(c, http.StatusCreated, "deal created", toDeal(deal))
}

// UpdateDeal изменяет сделку
// @Summary Изменение сделки
// @Tags Deals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сделки"
// @Param request body dto.UpdateDealRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/deals/{id} [put]
func (h *Handler) UpdateDeal(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDealRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]interface{}{}
	setField(fields, "title", req.Title)
	setField(fields, "value", req.Value)
	setField(fields, "currency", req.Currency)
	setField(fields, "probability", req.Probability)
	setField(fields, "stage", req.Stage)
	setField(fields, "notes", req.Notes)
	if req.ExpectedClose != nil {
		expected, err := parseDate(req.ExpectedClose)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid expected_close")
			return
		}
		fields["expected_close"] = expected
	}

	deal, err := h.Repository.UpdateDeal(c.Request.Context(), id, fields, userID)
	if err != nil {
		storeError(c, err, "failed to update deal")
		return
	}
	successResponse(c, http.StatusOK, "deal updated", toDeal(*deal))
}

// DeleteDeal удаляет сделку
// @Summary Удаление сделки
// @Tags Deals
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сделки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/deals/{id} [delete]
func (h *Handler) DeleteDeal(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteDeal(c.Request.Context(), id, userID); err != nil {
		storeError(c, err, "failed to delete deal")
		return
	}
	successResponse(c, http.StatusOK, "deal deleted", nil)
}
