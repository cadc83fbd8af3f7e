package quality

import "recipe-admin-backend/internal/domains/recipe/model"

var difficultyTemplates = map[model.DifficultyTier]string{
	model.DifficultyBeginner: "Recette accessible à tous : peu d'étapes, aucun geste technique particulier " +
		"et un matériel de cuisine courant suffisent.",
	model.DifficultyIntermediate: "Recette demandant un peu de pratique : quelques techniques de base " +
		"(découpe, cuisson maîtrisée, liaison) et une bonne organisation du plan de travail sont nécessaires.",
	model.DifficultyAdvanced: "Recette exigeante : gestes précis, plusieurs préparations à mener en parallèle " +
		"et une maîtrise des températures et du timing sont indispensables.",
}

var chefTipsTemplates = map[model.DifficultyTier]string{
	model.DifficultyBeginner: "Lisez la recette en entier avant de commencer et préparez tous les ingrédients " +
		"à l'avance : pesés, lavés et découpés.",
	model.DifficultyIntermediate: "Goûtez et rectifiez l'assaisonnement à chaque étape clé, et surveillez " +
		"la cuisson à l'œil plutôt qu'au minuteur seul.",
	model.DifficultyAdvanced: "Organisez votre mise en place par ordre d'utilisation, anticipez les temps de repos " +
		"et utilisez un thermomètre de cuisson pour les étapes critiques.",
}

// DifficultyTemplate returns the canned difficulty description for tier.
func DifficultyTemplate(tier model.DifficultyTier) (string, bool) {
	text, ok := difficultyTemplates[tier]
	return text, ok
}

// ChefTipsTemplate returns the canned chef tips for tier.
func ChefTipsTemplate(tier model.DifficultyTier) (string, bool) {
	text, ok := chefTipsTemplates[tier]
	return text, ok
}
