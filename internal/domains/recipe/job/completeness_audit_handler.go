package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/shared"
)

// CompletenessAuditor is implemented by service.RecipeService.
type CompletenessAuditor interface {
	RunCompletenessAudit(ctx context.Context, limit int) (*model.CompletenessSummary, error)
}

// CompletenessAuditHandler tính missing fields của mọi recette chưa publish
// và cache summary tại recipes:completeness:summary
type CompletenessAuditHandler struct {
	auditor      CompletenessAuditor
	defaultLimit int
}

func NewCompletenessAuditHandler(auditor CompletenessAuditor, defaultLimit int) *CompletenessAuditHandler {
	return &CompletenessAuditHandler{auditor: auditor, defaultLimit: defaultLimit}
}

func (h *CompletenessAuditHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	start := time.Now()

	var payload shared.CompletenessAuditPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal CompletenessAudit payload")
			return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	limit := payload.Limit
	if limit <= 0 {
		limit = h.defaultLimit
	}

	summary, err := h.auditor.RunCompletenessAudit(ctx, limit)
	if err != nil {
		log.Error().Err(err).Msg("Completeness audit failed")
		return fmt.Errorf("completeness audit: %w", err)
	}

	log.Info().
		Int("audited", summary.TotalRecipes).
		Int("complete", summary.CompleteRecipes).
		Dur("duration", time.Since(start)).
		Msg("Completeness audit finished")
	return nil
}
