package handler

import (
	"net/http"

	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН КОЛЛЕДЖИ ============

// GetColleges получает список колледжей
// @Summary Список колледжей
// @Description Поиск по названию, городу и штату, фильтр по статусу, сортировка
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск"
// @Param status query string false "Статус"
// @Param sort query string false "name, city, status, created_at; минус для убывания"
// @Success 200 {object} dto.CollegeListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/colleges [get]
func (h *Handler) GetColleges(c *gin.Context) {
	colleges, err := h.Repository.ListColleges(c.Request.Context(), c.Query("status"))
	if err != nil {
		storeError(c, err, "failed to load colleges")
		return
	}

	list := collegeQuery(c).Apply(colleges)
	byStatus := make(map[string]int)
	for _, col := range list {
		byStatus[col.Status]++
	}

	c.JSON(http.StatusOK, dto.CollegeListResponse{
		Colleges: mapSlice(list, toCollege),
		Total:    len(list),
		ByStatus: byStatus,
	})
}

// GetCollege получает один колледж
// @Summary Колледж по ID
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Success 200 {object} dto.CollegeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/colleges/{id} [get]
func (h *Handler) GetCollege(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	college, err := h.Repository.GetCollege(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load college")
		return
	}
	c.JSON(http.StatusOK, toCollege(*college))
}

// CreateCollege создаёт колледж
// @Summary Создание колледжа
// @Tags Colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCollegeRequest true "Данные колледжа"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/colleges [post]
func (h *Handler) CreateCollege(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateCollegeRequest
	if !bindJSON(c, &req) {
		return
	}

	college := ds.College{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Website:    req.Website,
		Status:     req.Status,
		Notes:      req.Notes,
	}
	if college.Status == "" {
		college.Status = ds.CollegeProspect
	}
	if college.Country == "" {
		college.Country = "India"
	}

	if err := h.Repository.CreateCollege(c.Request.Context(), &college, userID); err != nil {
		storeError(c, err, "failed to create college")
		return
	}

	logrus.Infof("college %d created by user %d", college.ID, userID)
	successResponse(c, http.StatusCreated, "college created", toCollege(college))
}

// UpdateCollege изменяет поля колледжа
// @Summary Изменение колледжа
// @Tags Colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Param request body dto.UpdateCollegeRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/colleges/{id} [put]
func (h *Handler) UpdateCollege(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCollegeRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]interface{}{}
	setField(fields, "name", req.Name)
	setField(fields, "address", req.Address)
	setField(fields, "city", req.City)
	setField(fields, "state", req.State)
	setField(fields, "country", req.Country)
	setField(fields, "postal_code", req.PostalCode)
	setField(fields, "website", req.Website)
	setField(fields, "notes", req.Notes)

	college, err := h.Repository.UpdateCollege(c.Request.Context(), id, fields, userID)
	if err != nil {
		storeError(c, err, "failed to update college")
		return
	}
	successResponse(c, http.StatusOK, "college updated", toCollege(*college))
}

// UpdateCollegeStatus переводит колледж по воронке
// @Summary Смена статуса колледжа
// @Tags Colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Param request body dto.UpdateCollegeStatusRequest true "Новый статус"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/colleges/{id}/status [put]
func (h *Handler) UpdateCollegeStatus(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCollegeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	college, err := h.Repository.UpdateCollegeStatus(c.Request.Context(), id, req.Status, userID)
	if err != nil {
		storeError(c, err, "failed to update college status")
		return
	}
	successResponse(c, http.StatusOK, "status updated", toCollege(*college))
}

// GetCollegeContacts контакты колледжа
// @Summary Контакты колледжа
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Success 200 {array} dto.ContactResponse
// @Router /api/colleges/{id}/contacts [get]
func (h *Handler) GetCollegeContacts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contacts, err := h.Repository.ListContacts(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load contacts")
		return
	}
	c.JSON(http.StatusOK, mapSlice(contacts, toContact))
}

// GetCollegeMeetings встречи с колледжем
// @Summary Встречи колледжа
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Success 200 {array} dto.MeetingResponse
// @Router /api/colleges/{id}/meetings [get]
func (h *Handler) GetCollegeMeetings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	meetings, err := h.Repository.ListMeetings(c.Request.Context(), repository.MeetingFilter{CollegeID: id})
	if err != nil {
		storeError(c, err, "failed to load meetings")
		return
	}
	c.JSON(http.StatusOK, mapSlice(meetings, toMeeting))
}

// GetCollegeDeals сделки колледжа
// @Summary Сделки колледжа
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Success 200 {array} dto.DealResponse
// @Router /api/colleges/{id}/deals [get]
func (h *Handler) GetCollegeDeals(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deals, err := h.Repository.ListDeals(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load deals")
		return
	}
	c.JSON(http.StatusOK, mapSlice(deals, toDeal))
}

// GetCollegeCourses курсы, предложенные колледжу
// @Summary Курсы колледжа
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Success 200 {array} dto.CollegeCourseResponse
// @Router /api/colleges/{id}/courses [get]
func (h *Handler) GetCollegeCourses(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	courses, err := h.Repository.CollegeCourses(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load college courses")
		return
	}
	c.JSON(http.StatusOK, mapSlice(courses, toCollegeCourse))
}

// AssignCourse предлагает курс колледжу
// @Summary Назначение курса колледжу
// @Tags Colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Param request body dto.AssignCourseRequest true "Курс и индивидуальная цена"
// @Success 201 {object} dto.SuccessResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/colleges/{id}/courses [post]
func (h *Handler) AssignCourse(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Repository.AssignCourse(c.Request.Context(), id, req.CourseID, req.CustomPrice, userID); err != nil {
		storeError(c, err, "failed to assign course")
		return
	}
	successResponse(c, http.StatusCreated, "course assigned", nil)
}

// UnassignCourse убирает курс у колледжа
// @Summary Снятие курса с колледжа
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Param course_id path int true "ID курса"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/colleges/{id}/courses/{course_id} [delete]
func (h *Handler) UnassignCourse(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}

	if err := h.Repository.UnassignCourse(c.Request.Context(), id, courseID, userID); err != nil {
		storeError(c, err, "failed to unassign course")
		return
	}
	successResponse(c, http.StatusOK, "course unassigned", nil)
}

// GetCollegePricingModels модели цен колледжа
// @Summary Модели ценообразования колледжа
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Success 200 {array} dto.PricingModelResponse
// @Router /api/colleges/{id}/pricing-models [get]
func (h *Handler) GetCollegePricingModels(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	models, err := h.Repository.CollegePricingModels(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load college pricing models")
		return
	}
	c.JSON(http.StatusOK, mapSlice(models, toPricingModel))
}

// AssignPricingModel назначает модель цен колледжу
// @Summary Назначение модели ценообразования
// @Tags Colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Param request body dto.AssignPricingModelRequest true "Модель"
// @Success 201 {object} dto.SuccessResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/colleges/{id}/pricing-models [post]
func (h *Handler) AssignPricingModel(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignPricingModelRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Repository.AssignPricingModel(c.Request.Context(), id, req.PricingModelID, userID); err != nil {
		storeError(c, err, "failed to assign pricing model")
		return
	}
	successResponse(c, http.StatusCreated, "pricing model assigned", nil)
}

// UnassignPricingModel снимает модель цен с колледжа
// @Summary Снятие модели ценообразования
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID колледжа"
// @Param model_id path int true "ID модели"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/colleges/{id}/pricing-models/{model_id} [delete]
func (h *Handler) UnassignPricingModel(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	modelID, ok := parseID(c, "model_id")
	if !ok {
		return
	}

	if err := h.Repository.UnassignPricingModel(c.Request.Context(), id, modelID, userID); err != nil {
		storeError(c, err, "failed to unassign pricing model")
		return
	}
	successResponse(c, http.StatusOK, "pricing model unassigned", nil)
}
