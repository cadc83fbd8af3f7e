package handler

import (
	"errors"
	"net/http"

	"recipe-admin-backend/internal/domains/system/service"
	"recipe-admin-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	status *service.StatusService
}

func NewStatusHandler(status *service.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

// Aggregate - GET /api/v1/admin/status
// Luôn trả 200: trạng thái từng component nằm trong body
func (h *StatusHandler) Aggregate(c *gin.Context) {
	response.Success(c, http.StatusOK, h.status.CheckAll(c.Request.Context()))
}

// Component trả handler cho /api/v1/admin/status/<name>
func (h *StatusHandler) Component(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := h.status.Check(c.Request.Context(), name)
		if errors.Is(err, service.ErrUnknownComponent) {
			response.NotFound(c, err.Error())
			return
		}
		if err != nil {
			response.InternalServerError(c, "Internal server error")
			return
		}
		response.Success(c, http.StatusOK, status)
	}
}
