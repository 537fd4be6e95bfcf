package handler

import (
	"net/http"

	"crm/internal/app/analytics"
	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/pricing"
	"crm/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН КУРСЫ ============

type courseListView struct {
	Courses []dto.CourseResponse `json:"courses"`
	Summary dto.SummaryResponse  `json:"summary"`
}

// GetCourses получает каталог курсов со сводкой цен и текущим выбором
// @Summary Список курсов
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по названию, описанию, тегам"
// @Param category query string false "Категория"
// @Param min_price query number false "Минимальная цена"
// @Param max_price query number false "Максимальная цена"
// @Param college_id query int false "Только курсы колледжа"
// @Param global query bool false "Только общие курсы"
// @Param sort query string false "name, category, price, duration, created_at"
// @Success 200 {object} dto.CourseListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/courses [get]
func (h *Handler) GetCourses(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	minPrice, ok := queryFloat(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(c, "max_price")
	if !ok {
		return
	}
	collegeID, ok := queryUint(c, "college_id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var view courseListView
	if !h.cacheGet(ctx, cacheCourses, c.Request.URL.RawQuery, &view) {
		courses, err := h.Repository.ListCourses(ctx, repository.CourseFilter{
			CollegeID:  collegeID,
			GlobalOnly: c.Query("global") == "true",
		})
		if err != nil {
			storeError(c, err, "failed to load courses")
			return
		}

		list := courseQuery(c, minPrice, maxPrice).Apply(courses)
		view = courseListView{
			Courses: mapSlice(list, toCourse),
			Summary: toSummary(analytics.Summarize(list, coursePrice, func(co ds.Course) string { return co.Category })),
		}
		h.cacheSet(ctx, cacheCourses, c.Request.URL.RawQuery, view)
	}

	selected, err := h.Selection.Selected(ctx, userID, scopeCourses)
	if err != nil {
		logrus.Warnf("load course selection for user %d: %v", userID, err)
		selected = []uint{}
	}

	c.JSON(http.StatusOK, dto.CourseListResponse{
		Courses:  view.Courses,
		Summary:  view.Summary,
		Selected: selected,
	})
}

// GetCourse получает один курс
// @Summary Курс по ID
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/courses/{id} [get]
func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	course, err := h.Repository.GetCourse(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load course")
		return
	}
	c.JSON(http.StatusOK, toCourse(*course))
}

// CreateCourse создаёт курс. Без min/max цены диапазон считается от базовой.
// @Summary Создание курса
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Данные курса"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/courses [post]
func (h *Handler) CreateCourse(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateCourseRequest
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

	course := ds.Course{
		CollegeID:     req.CollegeID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		DurationHours: req.DurationHours,
		Capacity:      req.Capacity,
		BasePrice:     band.Base,
		MinPrice:      band.Min,
		MaxPrice:      band.Max,
		Tags:          pq.StringArray(req.Tags),
	}
	if err := h.Repository.CreateCourse(c.Request.Context(), &course, userID); err != nil {
		storeError(c, err, "failed to create course")
		return
	}
	h.invalidate(c.Request.Context(), cacheCourses)
	successResponse(c, http.StatusCreated, "course created", toCourse(course))
}

// UpdateCourse изменяет курс
// @Summary Изменение курса
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Param request body dto.UpdateCourseRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/courses/{id} [put]
func (h *Handler) UpdateCourse(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]interface{}{}
	setField(fields, "name", req.Name)
	setField(fields, "description", req.Description)
	setField(fields, "category", req.Category)
	setField(fields, "duration_hours", req.DurationHours)
	setField(fields, "capacity", req.Capacity)
	setField(fields, "base_price", req.BasePrice)
	setField(fields, "min_price", req.MinPrice)
	setField(fields, "max_price", req.MaxPrice)
	if req.Tags != nil {
		fields["tags"] = pq.StringArray(*req.Tags)
	}

	course, err := h.Repository.UpdateCourse(c.Request.Context(), id, fields, userID)
	if err != nil {
		storeError(c, err, "failed to update course")
		return
	}
	h.invalidate(c.Request.Context(), cacheCourses)
	successResponse(c, http.StatusOK, "course updated", toCourse(*course))
}

// DeleteCourse удаляет курс вместе с темами
// @Summary Удаление курса
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/courses/{id} [delete]
func (h *Handler) DeleteCourse(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteCourse(c.Request.Context(), id, userID); err != nil {
		storeError(c, err, "failed to delete course")
		return
	}
	if err := h.Selection.Remove(c.Request.Context(), userID, scopeCourses, id); err != nil {
		logrus.Warnf("drop deleted course %d from selection: %v", id, err)
	}
	h.invalidate(c.Request.Context(), cacheCourses)
	successResponse(c, http.StatusOK, "course deleted", nil)
}
