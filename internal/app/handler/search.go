package handler

import (
	"net/http"
	"strings"

	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/listquery"
	"crm/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// Search ищет одновременно по колледжам, контактам и курсам
// @Summary Глобальный поиск
// @Tags Search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Строка поиска"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/search [get]
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		errorResponse(c, http.StatusBadRequest, "q is required")
		return
	}
	ctx := c.Request.Context()

	colleges, err := h.Repository.ListColleges(ctx, "")
	if err != nil {
		storeError(c, err, "failed to search colleges")
		return
	}
	contacts, err := h.Repository.ListContacts(ctx, 0)
	if err != nil {
		storeError(c, err, "failed to search contacts")
		return
	}
	courses, err := h.Repository.ListCourses(ctx, repository.CourseFilter{})
	if err != nil {
		storeError(c, err, "failed to search courses")
		return
	}

	collegeHits := listquery.Query[ds.College]{
		Search: q,
		Fields: func(col ds.College) []string { return []string{col.Name, col.City, col.State, col.Notes} },
	}.Filter(colleges)
	contactHits := listquery.Query[ds.Contact]{
		Search: q,
		Fields: func(ct ds.Contact) []string { return []string{ct.Name, ct.Email, ct.Designation, ct.Phone} },
	}.Filter(contacts)
	courseHits := listquery.Query[ds.Course]{
		Search: q,
		Fields: func(co ds.Course) []string { return append([]string{co.Name, co.Description, co.Category}, co.Tags...) },
	}.Filter(courses)

	c.JSON(http.StatusOK, dto.SearchResponse{
		Query:    q,
		Colleges: mapSlice(collegeHits, toCollege),
		Contacts: mapSlice(contactHits, toContact),
		Courses:  mapSlice(courseHits, toCourse),
	})
}
