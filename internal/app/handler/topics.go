package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/markdown"
	"crm/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ТЕМЫ КУРСА ============

const maxImportSize = 1 << 20

// GetTopics получает темы курса по порядку
// @Summary Темы курса
// @Tags Topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Success 200 {array} dto.TopicResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/courses/{id}/topics [get]
func (h *Handler) GetTopics(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.Repository.GetCourse(ctx, courseID); err != nil {
		storeError(c, err, "failed to load course")
		return
	}

	topics, err := h.Repository.ListTopics(ctx, courseID)
	if err != nil {
		storeError(c, err, "failed to load topics")
		return
	}

	// Ссылки на исходный Markdown, по одной на объект
	urls := map[string]string{}
	resp := make([]dto.TopicResponse, len(topics))
	for i, t := range topics {
		resp[i] = toTopic(t)
		if t.SourceKey == "" || h.MinIOClient == nil {
			continue
		}
		url, seen := urls[t.SourceKey]
		if !seen {
			url, err = h.MinIOClient.GetFileURL(ctx, t.SourceKey)
			if err != nil {
				logrus.Warnf("presign %s: %v", t.SourceKey, err)
			}
			urls[t.SourceKey] = url
		}
		resp[i].SourceURL = url
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTopic добавляет тему в конец курса
// @Summary Создание темы
// @Tags Topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Param request body dto.CreateTopicRequest true "Тема"
// @Success 201 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/courses/{id}/topics [post]
func (h *Handler) CreateTopic(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateTopicRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.Repository.GetCourse(c.Request.Context(), courseID); err != nil {
		storeError(c, err, "failed to load course")
		return
	}

	topic := ds.CourseTopic{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		Source:   ds.TopicManual,
	}
	if err := h.Repository.CreateTopic(c.Request.Context(), &topic, userID); err != nil {
		storeError(c, err, "failed to create topic")
		return
	}
	successResponse(c, http.StatusCreated, "topic created", toTopic(topic))
}

// UpdateTopic изменяет тему
// @Summary Изменение темы
// @Tags Topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Param topic_id path int true "ID темы"
// @Param request body dto.UpdateTopicRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/courses/{id}/topics/{topic_id} [put]
func (h *Handler) UpdateTopic(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	topicID, ok := parseID(c, "topic_id")
	if !ok {
		return
	}
	var req dto.UpdateTopicRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]interface{}{}
	setField(fields, "title", req.Title)
	setField(fields, "content", req.Content)

	topic, err := h.Repository.UpdateTopic(c.Request.Context(), courseID, topicID, fields, userID)
	if err != nil {
		storeError(c, err, "failed to update topic")
		return
	}
	successResponse(c, http.StatusOK, "topic updated", toTopic(*topic))
}

// DeleteTopic удаляет тему
// @Summary Удаление темы
// @Tags Topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Param topic_id path int true "ID темы"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/courses/{id}/topics/{topic_id} [delete]
func (h *Handler) DeleteTopic(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	topicID, ok := parseID(c, "topic_id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteTopic(c.Request.Context(), courseID, topicID, userID); err != nil {
		storeError(c, err, "failed to delete topic")
		return
	}
	successResponse(c, http.StatusOK, "topic deleted", nil)
}

// ReorderTopics задаёт новый порядок всех тем курса
// @Summary Порядок тем
// @Tags Topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Param request body dto.ReorderTopicsRequest true "Все ID тем в новом порядке"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/courses/{id}/topics/reorder [put]
func (h *Handler) ReorderTopics(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ReorderTopicsRequest
	if !bindJSON(c, &req) {
		return
	}

	topics, err := h.Repository.ReorderTopics(c.Request.Context(), courseID, req.TopicIDs, userID)
	if err != nil {
		storeError(c, err, "failed to reorder topics")
		return
	}
	successResponse(c, http.StatusOK, "topics reordered", mapSlice(topics, toTopic))
}

// ImportTopics разбивает загруженный Markdown на темы по заголовкам # и ##
// @Summary Импорт тем из Markdown
// @Description Исходный файл сохраняется в MinIO, темы добавляются после существующих
// @Tags Topics
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID курса"
// @Param file formData file true "Markdown файл"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/courses/{id}/topics/import [post]
func (h *Handler) ImportTopics(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.Repository.GetCourse(ctx, courseID); err != nil {
		storeError(c, err, "failed to load course")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "file is required")
		return
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".md", ".markdown", ".txt":
	default:
		errorResponse(c, http.StatusBadRequest, "expected a markdown file")
		return
	}
	if file.Size > maxImportSize {
		errorResponse(c, http.StatusBadRequest, "file is too large")
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to read file")
		return
	}
	defer openedFile.Close()

	data, err := io.ReadAll(openedFile)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to read file")
		return
	}

	sections := markdown.SplitTopics(string(data))
	if len(sections) == 0 {
		errorResponse(c, http.StatusBadRequest, "no topics found in file")
		return
	}

	var sourceKey string
	if h.MinIOClient != nil {
		sourceKey = storage.ObjectName(fmt.Sprintf("topics/%d", courseID), file.Filename)
		if err := h.MinIOClient.UploadFile(ctx, sourceKey, data); err != nil {
			logrus.Error("Error uploading to MinIO: ", err)
			errorResponse(c, http.StatusInternalServerError, "failed to store source file")
			return
		}
	} else {
		logrus.Warn("MinIO is not configured, markdown source is not stored")
	}

	topics, err := h.Repository.ImportTopics(ctx, courseID, sections, sourceKey, userID)
	if err != nil {
		if sourceKey != "" {
			if delErr := h.MinIOClient.DeleteFile(ctx, sourceKey); delErr != nil {
				logrus.Warnf("Failed to delete orphaned source %s: %v", sourceKey, delErr)
			}
		}
		storeError(c, err, "failed to import topics")
		return
	}

	logrus.Infof("imported %d topics into course %d from %s", len(topics), courseID, file.Filename)
	successResponse(c, http.StatusCreated, fmt.Sprintf("%d topics imported", len(topics)), mapSlice(topics, toTopic))
}
