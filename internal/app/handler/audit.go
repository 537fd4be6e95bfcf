package handler

import (
	"net/http"
	"strconv"

	"crm/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// GetAuditLogs журнал изменений (только администратор)
// @Summary Журнал аудита
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param table query string false "Таблица"
// @Param row_id query int false "ID записи"
// @Param limit query int false "Не больше 500, по умолчанию 100"
// @Success 200 {array} dto.AuditLogResponse
// @Router /api/audit-logs [get]
func (h *Handler) GetAuditLogs(c *gin.Context) {
	rowID, ok := queryUint(c, "row_id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.Repository.ListAuditLogs(c.Request.Context(), repository.AuditFilter{
		Table: c.Query("table"),
		RowID: rowID,
		Limit: limit,
	})
	if err != nil {
		storeError(c, err, "failed to load audit log")
		return
	}
	c.JSON(http.StatusOK, mapSlice(logs, toAuditLog))
}
