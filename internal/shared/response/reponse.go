package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Mã lỗi dùng chung cho các handler
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// requestIDKey khớp với key mà middleware.RequestID set vào context
const requestIDKey = "request_id"

// Response là envelope chung của mọi API admin
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *Error      `json:"error,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages,omitempty"`
}

// NewMeta tính luôn total_pages từ total và limit
func NewMeta(page, limit, total int) *Meta {
	meta := &Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

func write(c *gin.Context, statusCode int, body Response) {
	body.RequestID = c.GetString(requestIDKey)
	c.JSON(statusCode, body)
}

// =====================================================
// SUCCESS
// =====================================================

func Success(c *gin.Context, statusCode int, data interface{}) {
	write(c, statusCode, Response{Success: true, Data: data})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	write(c, statusCode, Response{Success: true, Data: data, Meta: meta})
}

// =====================================================
// ERRORS
// =====================================================

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	ErrorWithDetails(c, statusCode, code, message, nil)
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	write(c, statusCode, Response{
		Error: &Error{Code: code, Message: message, Details: details},
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, CodeBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, CodeNotFound, message)
}

// UnprocessableEntity: request hợp lệ nhưng chưa đủ điều kiện (vd: publish bị từ chối)
func UnprocessableEntity(c *gin.Context, code, message string, details interface{}) {
	ErrorWithDetails(c, http.StatusUnprocessableEntity, code, message, details)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, CodeInternalError, message)
}
