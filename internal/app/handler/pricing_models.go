package handler

import (
	"net/http"

	"crm/internal/app/analytics"
	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/pricing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН МОДЕЛИ ЦЕНООБРАЗОВАНИЯ ============

type pricingModelListView struct {
	PricingModels []dto.PricingModelResponse `json:"pricing_models"`
	Summary       dto.SummaryResponse        `json:"summary"`
}

// GetPricingModels получает модели цен со сводкой по уровням
// @Summary Список моделей ценообразования
// @Tags PricingModels
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по названию и описанию"
// @Param tier query string false "Уровень"
// @Param active query bool false "Только активные"
// @Param sort query string false "name, tier, price, created_at"
// @Success 200 {object} dto.PricingModelListResponse
// @Router /api/pricing-models [get]
func (h *Handler) GetPricingModels(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var view pricingModelListView
	if !h.cacheGet(ctx, cachePricingModels, c.Request.URL.RawQuery, &view) {
		models, err := h.Repository.ListPricingModels(ctx, c.Query("active") == "true")
		if err != nil {
			storeError(c, err, "failed to load pricing models")
			return
		}

		list := pricingModelQuery(c).Apply(models)
		view = pricingModelListView{
			PricingModels: mapSlice(list, toPricingModel),
			Summary:       toSummary(analytics.Summarize(list, pricingModelPrice, func(p ds.PricingModel) string { return p.Tier })),
		}
		h.cacheSet(ctx, cachePricingModels, c.Request.URL.RawQuery, view)
	}

	selected, err := h.Selection.Selected(ctx, userID, scopePricingModels)
	if err != nil {
		logrus.Warnf("load pricing model selection for user %d: %v", userID, err)
		selected = []uint{}
	}

	c.JSON(http.StatusOK, dto.PricingModelListResponse{
		PricingModels: view.PricingModels,
		Summary:       view.Summary,
		Selected:      selected,
	})
}

// GetPricingModel получает одну модель
// @Summary Модель ценообразования по ID
// @Tags PricingModels
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID модели"
// @Success 200 {object} dto.PricingModelResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/pricing-models/{id} [get]
func (h *Handler) GetPricingModel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	model, err := h.Repository.GetPricingModel(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load pricing model")
		return
	}
	c.JSON(http.StatusOK, toPricingModel(*model))
}

// CreatePricingModel создаёт модель цен
// @Summary Создание модели ценообразования
// @Tags PricingModels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePricingModelRequest true "Данные модели"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/pricing-models [post]
func (h *Handler) CreatePricingModel(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	var req dto.CreatePricingModelRequest
	if !bindJSON(c, &req) {
		return
	}

	band := pricing.BandFor(req.BasePrice)
	if req.MinPrice != nil {
		band.Min = *req.MinPrice
	}
	if req.MaxPrice != nil {
		band.Max = *req.MaxPrice
	}
	if band.Min > band.Max {
		errorResponse(c, http.StatusBadRequest, "min_price must not exceed max_price")
		return
	}

	from, err := parseDate(req.EffectiveFrom)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid effective_from")
		return
	}
	to, err := parseDate(req.EffectiveTo)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid effective_to")
		return
	}

	model := ds.PricingModel{
		Name:            req.Name,
		Description:     req.Description,
		Tier:            req.Tier,
		BasePrice:       band.Base,
		MinPrice:        band.Min,
		MaxPrice:        band.Max,
		DiscountPercent: req.DiscountPercent,
		MarkupPercent:   req.MarkupPercent,
		Currency:        req.Currency,
		EffectiveFrom:   from,
		EffectiveTo:     to,
		IsActive:        true,
	}
	if model.Tier == "" {
		model.Tier = "standard"
	}
	if model.Currency == "" {
		model.Currency = "INR"
	}
	if req.IsActive != nil {
		model.IsActive = *req.IsActive
	}

	if err := h.Repository.CreatePricingModel(c.Request.Context(), &model, userID); err != nil {
		storeError(c, err, "failed to create pricing model")
		return
	}
	h.invalidate(c.Request.Context(), cachePricingModels)
	successResponse(c, http.StatusCreated, "pricing model created", toPricingModel(model))
}

// UpdatePricingModel изменяет модель цен
// @Summary Изменение модели ценообразования
// @Tags PricingModels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID модели"
// @Param request body dto.UpdatePricingModelRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/pricing-models/{id} [put]
func (h *Handler) UpdatePricingModel(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePricingModelRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]interface{}{}
	setField(fields, "name", req.Name)
	setField(fields, "description", req.Description)
	setField(fields, "tier", req.Tier)
	setField(fields, "base_price", req.BasePrice)
	setField(fields, "min_price", req.MinPrice)
	setField(fields, "max_price", req.MaxPrice)
	setField(fields, "discount_percent", req.DiscountPercent)
	setField(fields, "markup_percent", req.MarkupPercent)
	setField(fields, "currency", req.Currency)
	setField(fields, "is_active", req.IsActive)
	for column, raw := range map[string]*string{"effective_from": req.EffectiveFrom, "effective_to": req.EffectiveTo} {
		if raw == nil {
			continue
		}
		d, err := parseDate(raw)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid "+column)
			return
		}
		fields[column] = d
	}

	model, err := h.Repository.UpdatePricingModel(c.Request.Context(), id, fields, userID)
	if err != nil {
		storeError(c, err, "failed to update pricing model")
		return
	}
	h.invalidate(c.Request.Context(), cachePricingModels)
	successResponse(c, http.StatusOK, "pricing model updated", toPricingModel(*model))
}

// DeletePricingModel удаляет модель цен
// @Summary Удаление модели ценообразования
// @Tags PricingModels
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID модели"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/pricing-models/{id} [delete]
func (h *Handler) DeletePricingModel(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeletePricingModel(c.Request.Context(), id, userID); err != nil {
		storeError(c, err, "failed to delete pricing model")
		return
	}
	if err := h.Selection.Remove(c.Request.Context(), userID, scopePricingModels, id); err != nil {
		logrus.Warnf("drop deleted pricing model %d from selection: %v", id, err)
	}
	h.invalidate(c.Request.Context(), cachePricingModels)
	successResponse(c, http.StatusOK, "pricing model deleted", nil)
}
