package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(t *testing.T, fn func(c *gin.Context)) (int, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(requestIDKey, "req-1")

	fn(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSuccessWithMeta(t *testing.T) {
	code, body := record(t, func(c *gin.Context) {
		SuccessWithMeta(c, http.StatusOK, []string{"a"}, NewMeta(2, 20, 41))
	})

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.Success)
	assert.Equal(t, "req-1", body.RequestID)
	require.NotNil(t, body.Meta)
	assert.Equal(t, Meta{Page: 2, Limit: 20, Total: 41, TotalPages: 3}, *body.Meta)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(c *gin.Context)
		wantCode int
		wantErr  string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "invalid id") }, http.StatusBadRequest, CodeBadRequest},
		{"not found", func(c *gin.Context) { NotFound(c, "missing") }, http.StatusNotFound, CodeNotFound},
		{"internal", func(c *gin.Context) { InternalServerError(c, "boom") }, http.StatusInternalServerError, CodeInternalError},
		{"unprocessable", func(c *gin.Context) {
			UnprocessableEntity(c, "RCP003", "not publishable", []string{"Image obligatoire avant publication."})
		}, http.StatusUnprocessableEntity, "RCP003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := record(t, tt.fn)
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantErr, body.Error.Code)
		})
	}
}

func TestNewMeta_ZeroLimit(t *testing.T) {
	assert.Equal(t, 0, NewMeta(1, 0, 10).TotalPages)
}
