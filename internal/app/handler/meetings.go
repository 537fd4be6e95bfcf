package handler

import (
	"net/http"
	"time"

	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// ============ ДОМЕН ВСТРЕЧИ ============

// GetMeetings получает список встреч
// @Summary Список встреч
// @Tags Meetings
// @Produce json
// @Security BearerAuth
// @Param outcome query string false "Итог встречи"
// @Param college_id query int false "Только встречи колледжа"
// @Param upcoming query bool false "Только будущие"
// @Success 200 {array} dto.MeetingResponse
// @Router /api/meetings [get]
func (h *Handler) GetMeetings(c *gin.Context) {
	collegeID, ok := queryUint(c, "college_id")
	if !ok {
		return
	}

	filter := repository.MeetingFilter{
		CollegeID: collegeID,
		Outcome:   c.Query("outcome"),
	}
	if c.Query("upcoming") == "true" {
		now := time.Now().UTC()
		filter.From = &now
	}

	meetings, err := h.Repository.ListMeetings(c.Request.Context(), filter)
	if err != nil {
		storeError(c, err, "failed to load meetings")
		return
	}
	c.JSON(http.StatusOK, mapSlice(meetings, toMeeting))
}

// GetMeeting получает одну встречу
// @Summary Встреча по ID
// @Tags Meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID встречи"
// @Success 200 {object} dto.MeetingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/meetings/{id} [get]
func (h *Handler) GetMeeting(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	meeting, err := h.Repository.GetMeeting(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load meeting")
		return
	}
	c.JSON(http.StatusOK, toMeeting(*meeting))
}

// CreateMeeting планирует встречу
// @Summary Создание встречи
// @Tags Meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMeetingRequest true "Данные встречи"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/meetings [post]
func (h *Handler) CreateMeeting(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateMeetingRequest
	if !bindJSON(c, &req) {
		return
	}

	followUp, err := parseDate(req.NextFollowUp)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid next_follow_up")
		return
	}

	meeting := ds.Meeting{
		CollegeID:    req.CollegeID,
		Title:        req.Title,
		ScheduledAt:  req.ScheduledAt,
		Location:     req.Location,
		Agenda:       req.Agenda,
		Outcome:      req.Outcome,
		NextFollowUp: followUp,
		Notes:        req.Notes,
	}
	if err := h.Repository.CreateMeeting(c.Request.Context(), &meeting, userID); err != nil {
		storeError(c, err, "failed to create meeting")
		return
	}
	successResponse(c, http.StatusCreated, "meeting created", toMeeting(meeting))
}

// UpdateMeeting изменяет встречу, в том числе фиксирует итог
// @Summary Изменение встречи
// @Tags Meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID встречи"
// @Param request body dto.UpdateMeetingRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/meetings/{id} [put]
func (h *Handler) UpdateMeeting(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMeetingRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]interface{}{}
	setField(fields, "title", req.Title)
	setField(fields, "location", req.Location)
	setField(fields, "agenda", req.Agenda)
	setField(fields, "outcome", req.Outcome)
	setField(fields, "notes", req.Notes)
	if req.ScheduledAt != nil {
		fields["scheduled_at"] = req.ScheduledAt.UTC()
	}
	if req.NextFollowUp != nil {
		followUp, err := parseDate(req.NextFollowUp)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid next_follow_up")
			return
		}
		fields["next_follow_up"] = followUp
	}

	meeting, err := h.Repository.UpdateMeeting(c.Request.Context(), id, fields, userID)
	if err != nil {
		storeError(c, err, "failed to update meeting")
		return
	}
	successResponse(c, http.StatusOK, "meeting updated", toMeeting(*meeting))
}

// DeleteMeeting удаляет встречу
// @Summary Удаление встречи
// @Tags Meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID встречи"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/meetings/{id} [delete]
func (h *Handler) DeleteMeeting(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteMeeting(c.Request.Context(), id, userID); err != nil {
		storeError(c, err, "failed to delete meeting")
		return
	}
	successResponse(c, http.StatusOK, "meeting deleted", nil)
}
