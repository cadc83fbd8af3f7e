package handler

import (
	"errors"
	"net/http"

	"recipe-admin-backend/internal/domains/article/model"
	"recipe-admin-backend/internal/domains/article/service"
	"recipe-admin-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ArticleHandler struct {
	service service.ServiceInterface
}

func NewArticleHandler(articleService service.ServiceInterface) *ArticleHandler {
	return &ArticleHandler{service: articleService}
}

func parseArticleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return uuid.Nil, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid article data", verrs)
		return
	}

	var articleErr *model.ArticleError
	if errors.As(err, &articleErr) {
		switch articleErr.Code {
		case model.ErrCodeArticleNotFound:
			response.ErrorResponse(c, http.StatusNotFound, articleErr.Code, articleErr.Message)
			return
		case model.ErrCodeDuplicateSlug, model.ErrCodeInvalidTransition:
			response.ErrorResponse(c, http.StatusConflict, articleErr.Code, articleErr.Message)
			return
		}
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("Article request failed")
	response.InternalServerError(c, "Internal server error")
}

// List - GET /api/v1/admin/articles
func (h *ArticleHandler) List(c *gin.Context) {
	var req model.ListArticlesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, res.Articles, response.NewMeta(res.Page, res.Limit, res.Total))
}

// Get - GET /api/v1/admin/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}
	article, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, article)
}

// Create - POST /api/v1/admin/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req model.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	article, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, article)
}

// Update - PUT /api/v1/admin/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}
	var req model.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	article, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, article)
}

// Delete - DELETE /api/v1/admin/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

// Publish - POST /api/v1/admin/articles/:id/publish
func (h *ArticleHandler) Publish(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}
	res, err := h.service.Publish(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	if !res.Published {
		response.UnprocessableEntity(c, model.ErrCodeNotPublishable,
			"Article is missing required fields", gin.H{"missing": res.Missing})
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Unpublish - POST /api/v1/admin/articles/:id/unpublish
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}
	article, err := h.service.Unpublish(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, article)
}
