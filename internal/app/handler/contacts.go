package handler

import (
	"net/http"

	"crm/internal/app/ds"
	"crm/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// ============ ДОМЕН КОНТАКТЫ ============

// GetContacts получает список контактов
// @Summary Список контактов
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по имени, email, должности"
// @Param college_id query int false "Только контакты колледжа"
// @Param sort query string false "name, created_at"
// @Success 200 {array} dto.ContactResponse
// @Router /api/contacts [get]
func (h *Handler) GetContacts(c *gin.Context) {
	collegeID, ok := queryUint(c, "college_id")
	if !ok {
		return
	}

	contacts, err := h.Repository.ListContacts(c.Request.Context(), collegeID)
	if err != nil {
		storeError(c, err, "failed to load contacts")
		return
	}
	c.JSON(http.StatusOK, mapSlice(contactQuery(c).Apply(contacts), toContact))
}

// GetContact получает один контакт
// @Summary Контакт по ID
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID контакта"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/contacts/{id} [get]
func (h *Handler) GetContact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contact, err := h.Repository.GetContact(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "failed to load contact")
		return
	}
	c.JSON(http.StatusOK, toContact(*contact))
}

// CreateContact создаёт контакт
// @Summary Создание контакта
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateContactRequest true "Данные контакта"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/contacts [post]
func (h *Handler) CreateContact(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact := ds.Contact{
		CollegeID:   req.CollegeID,
		Name:        req.Name,
		Designation: req.Designation,
		Email:       req.Email,
		Phone:       req.Phone,
		IsPrimary:   req.IsPrimary,
		Notes:       req.Notes,
	}
	if err := h.Repository.CreateContact(c.Request.Context(), &contact, userID); err != nil {
		storeError(c, err, "failed to create contact")
		return
	}
	successResponse(c, http.StatusCreated, "contact created", toContact(contact))
}

// UpdateContact изменяет контакт
// @Summary Изменение контакта
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID контакта"
// @Param request body dto.UpdateContactRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/contacts/{id} [put]
func (h *Handler) UpdateContact(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := map[string]interface{}{}
	setField(fields, "name", req.Name)
	setField(fields, "designation", req.Designation)
	setField(fields, "email", req.Email)
	setField(fields, "phone", req.Phone)
	setField(fields, "is_primary", req.IsPrimary)
	setField(fields, "notes", req.Notes)

	contact, err := h.Repository.UpdateContact(c.Request.Context(), id, fields, userID)
	if err != nil {
		storeError(c, err, "failed to update contact")
		return
	}
	successResponse(c, http.StatusOK, "contact updated", toContact(*contact))
}

// DeleteContact удаляет контакт
// @Summary Удаление контакта
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID контакта"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/contacts/{id} [delete]
func (h *Handler) DeleteContact(c *gin.Context) {
	userID, _, ok := getUserFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Repository.DeleteContact(c.Request.Context(), id, userID); err != nil {
		storeError(c, err, "failed to delete contact")
		return
	}
	successResponse(c, http.StatusOK, "contact deleted", nil)
}
