package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/quality"
	"recipe-admin-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const auditCacheTTL = 2 * time.Hour

// publishTarget returns the form values of recipe as they would be once published.
func publishTarget(recipe *model.Recipe) model.RecipeFormValues {
	values := recipe.FormValues()
	published := model.StatusPublished
	values.Status = &published
	return values
}

func (s *RecipeService) Completeness(ctx context.Context, id uuid.UUID) (*model.CompletenessResponse, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	record := recipe.Record()
	return &model.CompletenessResponse{
		RecipeID:            recipe.ID,
		MissingFields:       quality.MissingFields(record),
		CompletenessPercent: quality.CompletenessPercent(record),
	}, nil
}

func (s *RecipeService) PrePublishCheck(ctx context.Context, id uuid.UUID) (*model.PrePublishResponse, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.enrichment.GetDerivedCounts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrichment counts: %w", err)
	}

	issues := quality.PrePublishIssues(publishTarget(recipe), counts)
	return &model.PrePublishResponse{
		RecipeID:   recipe.ID,
		Counts:     counts,
		Issues:     issues,
		CanPublish: len(issues) == 0,
	}, nil
}

// Publish chỉ chuyển sang published khi không còn issue nào.
// Issues không phải là error: result.Published = false kèm danh sách.
func (s *RecipeService) Publish(ctx context.Context, id uuid.UUID) (*model.PublishResult, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsPublished() {
		return nil, model.NewInvalidTransitionError(current.Status, model.StatusPublished)
	}

	recipe, issues, err := s.repo.PublishWithCheck(ctx, id, func(locked *model.Recipe, counts model.DerivedCounts) []string {
		return quality.PrePublishIssues(publishTarget(locked), counts)
	})
	if err != nil {
		return nil, err
	}

	if len(issues) > 0 {
		logger.Info("Recipe publish refused", map[string]interface{}{
			"recipe_id": id.String(),
			"issues":    len(issues),
		})
		return &model.PublishResult{Published: false, Issues: issues, Recipe: recipe}, nil
	}

	s.invalidate(ctx, id)
	logger.Info("Recipe published", map[string]interface{}{
		"recipe_id": id.String(),
		"slug":      recipe.Slug,
	})
	return &model.PublishResult{Published: true, Issues: []string{}, Recipe: recipe}, nil
}

// ============================================
// TEMPLATES
// ============================================

func (s *RecipeService) Templates(tier string) (*model.TemplatesResponse, error) {
	t := model.DifficultyTier(tier)
	difficulty, ok := quality.DifficultyTemplate(t)
	if !ok {
		return nil, model.NewUnknownDifficultyError(tier)
	}
	tips, _ := quality.ChefTipsTemplate(t)

	return &model.TemplatesResponse{Tier: t, Difficulty: difficulty, ChefTips: tips}, nil
}

// ApplyTemplates điền difficulty_detailed / chef_tips còn trống theo tier của recette.
// Nội dung đã có không bao giờ bị ghi đè.
func (s *RecipeService) ApplyTemplates(ctx context.Context, id uuid.UUID) (*model.RecipeDetailResponse, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tier, ok := recipe.DifficultyTier()
	if !ok {
		value := ""
		if recipe.Difficulty != nil {
			value = *recipe.Difficulty
		}
		return nil, model.NewUnknownDifficultyError(value)
	}

	changed := false
	if !model.IsNonEmpty(recipe.DifficultyDetailed) {
		if text, ok := quality.DifficultyTemplate(tier); ok {
			recipe.DifficultyDetailed = &text
			changed = true
		}
	}
	if !model.IsNonEmpty(recipe.ChefTips) {
		if text, ok := quality.ChefTipsTemplate(tier); ok {
			recipe.ChefTips = &text
			changed = true
		}
	}

	if changed {
		if err := s.repo.Update(ctx, recipe); err != nil {
			return nil, err
		}
		s.invalidate(ctx, id)
	}

	return detailResponse(recipe), nil
}

func (s *RecipeService) NormalizedIngredients(ctx context.Context, id uuid.UUID) ([]model.NormalizedIngredient, error) {
	if _, err := s.getRecipe(ctx, id); err != nil {
		return nil, err
	}
	return s.enrichment.ListNormalizedIngredients(ctx, id)
}

// ============================================
// REPORTING
// ============================================

func (s *RecipeService) buildSummary(recipes []model.Recipe, total int) *model.CompletenessSummary {
	summary := &model.CompletenessSummary{
		GeneratedAt:  s.now().UTC(),
		TotalRecipes: total,
		Items:        make([]model.CompletenessReportItem, 0, len(recipes)),
	}

	for i := range recipes {
		r := &recipes[i]
		record := r.Record()
		missing := quality.MissingFields(record)
		if len(missing) == 0 {
			summary.CompleteRecipes++
		}
		summary.Items = append(summary.Items, model.CompletenessReportItem{
			ID:                  r.ID,
			Title:               r.Title,
			Slug:                r.Slug,
			Status:              r.Status,
			MissingFields:       missing,
			CompletenessPercent: quality.CompletenessPercent(record),
			UpdatedAt:           r.UpdatedAt,
		})
	}
	return summary
}

func (s *RecipeService) CompletenessReport(ctx context.Context, req model.ListRecipesRequest) (*model.CompletenessSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	recipes, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return s.buildSummary(recipes, total), nil
}

// RunCompletenessAudit được worker gọi định kỳ; kết quả cache tại recipes:completeness:summary
func (s *RecipeService) RunCompletenessAudit(ctx context.Context, limit int) (*model.CompletenessSummary, error) {
	if limit <= 0 {
		limit = model.DefaultAuditLimit
	}

	recipes, err := s.repo.ListForAudit(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes for audit: %w", err)
	}

	summary := s.buildSummary(recipes, len(recipes))
	if err := s.cache.Set(ctx, model.CacheKeyCompletenessAudit, summary, auditCacheTTL); err != nil {
		log.Printf("Cache SET error for key %s: %v", model.CacheKeyCompletenessAudit, err)
	}
	return summary, nil
}

func (s *RecipeService) LatestCompletenessAudit(ctx context.Context) (*model.CompletenessSummary, error) {
	var summary model.CompletenessSummary
	found, err := s.cache.Get(ctx, model.CacheKeyCompletenessAudit, &summary)
	if err != nil {
		return nil, fmt.Errorf("failed to read completeness audit: %w", err)
	}
	if !found {
		return nil, model.NewAuditNotReadyError()
	}
	return &summary, nil
}

// ExportCompletenessExcel - một dòng mỗi recette, missing fields nối bằng " | "
func (s *RecipeService) ExportCompletenessExcel(ctx context.Context, req model.ListRecipesRequest) (*excelize.File, error) {
	summary, err := s.CompletenessReport(ctx, req)
	if err != nil {
		return nil, err
	}

	f, err := buildCompletenessExcelFile(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

const completenessSheet = "Complétude"

func buildCompletenessExcelFile(summary *model.CompletenessSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", completenessSheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Titre", "Slug", "Statut", "Complétude (%)", "Champs manquants", "Mis à jour"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(completenessSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(headers))
		_ = f.SetCellStyle(completenessSheet, "A1", lastCol+"1", headerStyle)
	}

	for i, item := range summary.Items {
		row := []interface{}{
			item.ID.String(),
			item.Title,
			item.Slug,
			item.Status,
			item.CompletenessPercent,
			strings.Join(item.MissingFields, " | "),
			item.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(completenessSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
