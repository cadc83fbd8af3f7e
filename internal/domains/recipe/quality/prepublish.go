package quality

import (
	"strings"

	"recipe-admin-backend/internal/domains/recipe/model"
)

// Blocking issue messages, rendered verbatim by the admin UI.
const (
	MissingFieldsPrefix      = "Champs éditoriaux/SEO manquants : "
	IssueImageRequired       = "Image obligatoire avant publication."
	IssueIngredientsRequired = "Au moins 3 ingrédients normalisés sont requis."
	IssueStepsRequired       = "Au moins 3 étapes enrichies sont requises."
	IssueConceptRequired     = "Au moins 1 concept scientifique lié est requis (base de connaissances)."
)

// PrePublishIssues lists what blocks values from being published, in a fixed
// order. An empty result means the recipe may move to the published state.
//
// The image check duplicates the "Image" completeness label on purpose; both
// messages are kept.
func PrePublishIssues(values model.RecipeFormValues, counts model.DerivedCounts) []string {
	issues := make([]string, 0, 5)

	if missing := MissingFields(values.AsRecord()); len(missing) > 0 {
		issues = append(issues, MissingFieldsPrefix+strings.Join(missing, ", ")+".")
	}

	if values.ImageURL == nil || *values.ImageURL == "" {
		issues = append(issues, IssueImageRequired)
	}

	if counts.NormalizedIngredientsCount < model.MinNormalizedIngredients {
		issues = append(issues, IssueIngredientsRequired)
	}

	if counts.EnrichedStepsCount < model.MinEnrichedSteps {
		issues = append(issues, IssueStepsRequired)
	}

	if counts.ConceptsCount < model.MinLinkedConcepts {
		issues = append(issues, IssueConceptRequired)
	}

	return issues
}

// CanPublish is PrePublishIssues reduced to a verdict.
func CanPublish(values model.RecipeFormValues, counts model.DerivedCounts) bool {
	return len(PrePublishIssues(values, counts)) == 0
}
