package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"crm/internal/app/dispatch"
	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/pricing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ============ МАССОВОЕ ИЗМЕНЕНИЕ ЦЕН ============

var errEmptySelection = errors.New("no records selected")

// priceTable описывает ресурс, к которому применяется массовое изменение цены
type priceTable struct {
	scope      string
	cacheGroup string
	load       func(ctx context.Context, ids []uint) ([]pricing.Target, error)
	write      func(ctx context.Context, upd pricing.Update, userID uint, batchID uuid.UUID) error
}

func (h *Handler) coursePrices() priceTable {
	return priceTable{
		scope:      scopeCourses,
		cacheGroup: cacheCourses,
		load: func(ctx context.Context, ids []uint) ([]pricing.Target, error) {
			courses, err := h.Repository.GetCoursesByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return mapSlice(courses, func(c ds.Course) pricing.Target {
				return pricing.Target{ID: c.ID, BasePrice: c.BasePrice}
			}), nil
		},
		write: h.Repository.UpdateCoursePrice,
	}
}

func (h *Handler) pricingModelPrices() priceTable {
	return priceTable{
		scope:      scopePricingModels,
		cacheGroup: cachePricingModels,
		load: func(ctx context.Context, ids []uint) ([]pricing.Target, error) {
			models, err := h.Repository.GetPricingModelsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return mapSlice(models, func(p ds.PricingModel) pricing.Target {
				return pricing.Target{ID: p.ID, BasePrice: p.BasePrice}
			}), nil
		},
		write: h.Repository.UpdatePricingModelPrice,
	}
}

// parseOperation проверяет операцию запроса; скидка больше 100% дала бы отрицательную цену
func parseOperation(req dto.BulkPriceRequest) (pricing.Operation, error) {
	kind, err := pricing.ParseKind(req.Operation)
	if err != nil {
		return pricing.Operation{}, err
	}
	if req.Value == nil {
		return pricing.Operation{}, errors.New("value is required")
	}
	value := *req.Value
	if kind == pricing.Discount && value > 100 {
		return pricing.Operation{}, fmt.Errorf("discount must be at most 100, got %g", value)
	}
	return pricing.Operation{Kind: kind, Value: value}, nil
}

// resolveIDs берёт ID из запроса, а если их нет, то сохранённый выбор пользователя
func (h *Handler) resolveIDs(ctx context.Context, userID uint, scope string, ids []uint) ([]uint, bool, error) {
	if len(ids) > 0 {
		return ids, false, nil
	}
	selected, err := h.Selection.Selected(ctx, userID, scope)
	if err != nil {
		return nil, true, err
	}
	if len(selected) == 0 {
		return nil, true, errEmptySelection
	}
	return selected, true, nil
}

// missingFailures отмечает запрошенные, но не найденные записи
func missingFailures(ids []uint, targets []pricing.Target) []dispatch.Failure {
	found := make(map[uint]bool, len(targets))
	for _, t := range targets {
		found[t.ID] = true
	}
	var failures []dispatch.Failure
	for _, id := range ids {
		if !found[id] {
			failures = append(failures, dispatch.Failure{ID: id, Err: "not found"})
		}
	}
	return failures
}

// applyPrices отправляет по одному изменению на запись одновременно.
// Успешные изменения не откатываются, если другие упали.
func applyPrices(ctx context.Context, updates []pricing.Update, write func(context.Context, pricing.Update) error) (dispatch.Report, error) {
	return dispatch.All(ctx, updates, func(u pricing.Update) uint { return u.ID }, write)
}

func bulkResponse(batchID uuid.UUID, op pricing.Operation, report dispatch.Report) dto.BulkPriceResponse {
	failed := mapSlice(report.Failed, func(f dispatch.Failure) dto.BulkPriceFailure {
		return dto.BulkPriceFailure{ID: f.ID, Error: f.Err}
	})
	return dto.BulkPriceResponse{
		BatchID:   batchID.String(),
		Operation: string(op.Kind),
		Value:     op.Value,
		Succeeded: report.Succeeded,
		Failed:    failed,
	}
}

func (h *Handler) bulkPrice(c *gin.Context, table priceTable) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	var req dto.BulkPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	op, err := parseOperation(req)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	ids, fromSelection, err := h.resolveIDs(ctx, userID, table.scope, req.IDs)
	if err != nil {
		if errors.Is(err, errEmptySelection) {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.Errorf("load selection %s for user %d: %v", table.scope, userID, err)
		errorResponse(c, http.StatusInternalServerError, "failed to load selection")
		return
	}

	targets, err := table.load(ctx, ids)
	if err != nil {
		storeError(c, err, "failed to load records")
		return
	}

	batchID := uuid.New()
	updates := pricing.Plan(targets, op)
	report, err := applyPrices(ctx, updates, func(ctx context.Context, u pricing.Update) error {
		return table.write(ctx, u, userID, batchID)
	})

	if missing := missingFailures(ids, targets); len(missing) > 0 {
		report.Failed = append(report.Failed, missing...)
		slices.SortFunc(report.Failed, func(a, b dispatch.Failure) int { return int(a.ID) - int(b.ID) })
		if err == nil {
			err = fmt.Errorf("update %d: not found", missing[0].ID)
		}
	}

	if len(report.Succeeded) > 0 {
		h.invalidate(ctx, table.cacheGroup)
	}
	resp := bulkResponse(batchID, op, report)

	if err != nil {
		logrus.Errorf("bulk %s %g on %s (batch %s): %d ok, %d failed: %v",
			op.Kind, op.Value, table.scope, batchID, len(report.Succeeded), len(report.Failed), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "fail",
			"message": "bulk price update failed: " + err.Error(),
			"data":    resp,
		})
		return
	}

	if fromSelection {
		if err := h.Selection.Clear(ctx, userID, table.scope); err != nil {
			logrus.Warnf("clear selection %s after bulk update: %v", table.scope, err)
		}
	}
	logrus.Infof("bulk %s %g on %s (batch %s): %d updated", op.Kind, op.Value, table.scope, batchID, len(report.Succeeded))
	successResponse(c, http.StatusOK, "prices updated", resp)
}

func (h *Handler) previewPrice(c *gin.Context, table priceTable) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	var req dto.BulkPriceRequest
	if !bindJSON(c, &req) {
		return
	}
	op, err := parseOperation(req)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	ids, _, err := h.resolveIDs(ctx, userID, table.scope, req.IDs)
	if err != nil {
		if errors.Is(err, errEmptySelection) {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.Errorf("load selection %s for user %d: %v", table.scope, userID, err)
		errorResponse(c, http.StatusInternalServerError, "failed to load selection")
		return
	}

	targets, err := table.load(ctx, ids)
	if err != nil {
		storeError(c, err, "failed to load records")
		return
	}
	successResponse(c, http.StatusOK, "", pricing.Plan(targets, op))
}

// BulkUpdateCoursePrices меняет цены выбранных курсов
// @Summary Массовое изменение цен курсов
// @Description discount/markup в процентах или set с фиксированной ценой. Без ids используется текущий выбор. Частично применённые изменения не откатываются.
// @Tags Bulk pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkPriceRequest true "Операция"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/courses/bulk-price [post]
func (h *Handler) BulkUpdateCoursePrices(c *gin.Context) {
	h.bulkPrice(c, h.coursePrices())
}

// PreviewCoursePrices считает новые цены курсов без записи
// @Summary Предпросмотр массового изменения цен курсов
// @Tags Bulk pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkPriceRequest true "Операция"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/courses/bulk-price/preview [post]
func (h *Handler) PreviewCoursePrices(c *gin.Context) {
	h.previewPrice(c, h.coursePrices())
}

// BulkUpdatePricingModelPrices меняет цены выбранных моделей
// @Summary Массовое изменение цен моделей ценообразования
// @Tags Bulk pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkPriceRequest true "Операция"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/pricing-models/bulk-price [post]
func (h *Handler) BulkUpdatePricingModelPrices(c *gin.Context) {
	h.bulkPrice(c, h.pricingModelPrices())
}

// PreviewPricingModelPrices считает новые цены моделей без записи
// @Summary Предпросмотр массового изменения цен моделей
// @Tags Bulk pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkPriceRequest true "Операция"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/pricing-models/bulk-price/preview [post]
func (h *Handler) PreviewPricingModelPrices(c *gin.Context) {
	h.previewPrice(c, h.pricingModelPrices())
}
