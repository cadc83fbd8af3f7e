package model

// Recipe lifecycle states
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

const (
	// Form limits
	MinTitleLength        = 3
	MinDescriptionLength  = 10
	MinInstructionsLength = 50

	// Publish thresholds on enrichment output
	MinNormalizedIngredients = 3
	MinEnrichedSteps         = 3
	MinLinkedConcepts        = 1

	// Image upload
	MaxImageSizeBytes = 5 * 1024 * 1024

	// Pagination
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// Completeness audit
	DefaultAuditLimit = 500
)

// Cache keys
const (
	CacheKeyRecipePrefix      = "recipe:"
	CacheKeyCompletenessAudit = "recipes:completeness:summary"
)
