package shared

// Asynq task types
const (
	TypeProcessRecipeImage    = "recipe:process_image"
	TypeDeleteRecipeImages    = "recipe:delete_images"
	TypeRecipeCompletenessJob = "recipe:completeness_audit"
)

// Asynq queues, trọng số xử lý khai báo trong cmd/worker
const (
	QueueRecipe  = "recipe"
	QueueDefault = "default"
	QueueLow     = "low"
)

// ProcessRecipeImagePayload là payload của TypeProcessRecipeImage
type ProcessRecipeImagePayload struct {
	RecipeID    string `json:"recipe_id"`
	OriginalKey string `json:"original_key"`
}

// DeleteRecipeImagesPayload là payload của TypeDeleteRecipeImages
type DeleteRecipeImagesPayload struct {
	RecipeID string `json:"recipe_id"`
	Prefix   string `json:"prefix"`
}

// CompletenessAuditPayload là payload của TypeRecipeCompletenessJob
type CompletenessAuditPayload struct {
	Limit int `json:"limit"`
}
