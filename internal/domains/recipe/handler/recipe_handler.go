package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/service"
	"recipe-admin-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// =====================================================
// RECIPE ADMIN HANDLER
// =====================================================

type RecipeHandler struct {
	service service.ServiceInterface
	images  service.ImageService
}

func NewRecipeHandler(recipeService service.ServiceInterface, imageService service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		service: recipeService,
		images:  imageService,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func parseRecipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid recipe ID")
		return uuid.Nil, false
	}
	return id, true
}

func bindListRequest(c *gin.Context) (model.ListRecipesRequest, bool) {
	var req model.ListRecipesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return req, false
	}
	return req, true
}

// mapRecipeError maps recipe error to HTTP status code
func mapRecipeError(err error) (int, string) {
	var recipeErr *model.RecipeError
	if errors.As(err, &recipeErr) {
		switch recipeErr.Code {
		case model.ErrCodeRecipeNotFound, model.ErrCodeAuditNotReady:
			return http.StatusNotFound, recipeErr.Code
		case model.ErrCodeDuplicateSlug, model.ErrCodeInvalidTransition:
			return http.StatusConflict, recipeErr.Code
		case model.ErrCodeInvalidImage, model.ErrCodeUnknownDifficulty:
			return http.StatusBadRequest, recipeErr.Code
		case model.ErrCodeNotPublishable:
			return http.StatusUnprocessableEntity, recipeErr.Code
		case model.ErrCodeStorageUnavailable:
			return http.StatusServiceUnavailable, recipeErr.Code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// respondError renders validation errors with details, other errors through mapRecipeError
func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid recipe data", verrs)
		return
	}

	status, code := mapRecipeError(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("Recipe request failed")
		response.InternalServerError(c, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, code, err.Error())
}

// =====================================================
// CRUD
// =====================================================

// ListRecipes - GET /api/v1/admin/recipes?status=&category=&search=&page=&limit=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	res, err := h.service.ListRecipes(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, res.Recipes, response.NewMeta(res.Pagination.Page, res.Pagination.PageSize, res.Pagination.Total))
}

// GetRecipe - GET /api/v1/admin/recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	res, err := h.service.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CreateRecipe - POST /api/v1/admin/recipes
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var form model.RecipeFormValues
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.service.CreateRecipe(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// UpdateRecipe - PUT /api/v1/admin/recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var form model.RecipeFormValues
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.service.UpdateRecipe(c.Request.Context(), id, form)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// DeleteRecipe - DELETE /api/v1/admin/recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// =====================================================
// QUALITY GATE
// =====================================================

// GetCompleteness - GET /api/v1/admin/recipes/:id/completeness
func (h *RecipeHandler) GetCompleteness(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	res, err := h.service.Completeness(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// PrePublishCheck - GET /api/v1/admin/recipes/:id/prepublish
func (h *RecipeHandler) PrePublishCheck(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	res, err := h.service.PrePublishCheck(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Publish - POST /api/v1/admin/recipes/:id/publish
// 422 kèm danh sách issues khi recette chưa đủ điều kiện
func (h *RecipeHandler) Publish(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	res, err := h.service.Publish(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if !res.Published {
		response.UnprocessableEntity(c, model.ErrCodeNotPublishable, "Recipe is not ready for publication", gin.H{
			"issues": res.Issues,
		})
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Unpublish - POST /api/v1/admin/recipes/:id/unpublish
func (h *RecipeHandler) Unpublish(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	res, err := h.service.Unpublish(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Archive - POST /api/v1/admin/recipes/:id/archive
func (h *RecipeHandler) Archive(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	res, err := h.service.Archive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ApplyTemplates - POST /api/v1/admin/recipes/:id/templates
func (h *RecipeHandler) ApplyTemplates(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	res, err := h.service.ApplyTemplates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetTemplates - GET /api/v1/admin/recipes/templates/:tier
func (h *RecipeHandler) GetTemplates(c *gin.Context) {
	res, err := h.service.Templates(c.Param("tier"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetNormalizedIngredients - GET /api/v1/admin/recipes/:id/ingredients
func (h *RecipeHandler) GetNormalizedIngredients(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	res, err := h.service.NormalizedIngredients(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// =====================================================
// REPORTING
// =====================================================

// CompletenessReport - GET /api/v1/admin/recipes/completeness
func (h *RecipeHandler) CompletenessReport(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	res, err := h.service.CompletenessReport(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// LatestAudit - GET /api/v1/admin/recipes/completeness/audit
func (h *RecipeHandler) LatestAudit(c *gin.Context) {
	res, err := h.service.LatestCompletenessAudit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ExportCompleteness - GET /api/v1/admin/recipes/completeness/export
func (h *RecipeHandler) ExportCompleteness(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	file, err := h.service.ExportCompletenessExcel(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("recipes_completeness_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)

	if err := file.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("Failed to write completeness export")
	}
}

// =====================================================
// IMAGE
// =====================================================

// UploadImage - POST /api/v1/admin/recipes/:id/image (multipart, field "image")
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	if fileHeader.Size > model.MaxImageSizeBytes {
		response.ErrorResponse(c, http.StatusRequestEntityTooLarge, model.ErrCodeInvalidImage, "image exceeds 5MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, model.MaxImageSizeBytes+1))
	if err != nil {
		response.BadRequest(c, "cannot read image file")
		return
	}

	res, err := h.images.UploadImage(c.Request.Context(), id, data)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}
