package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/quality"
	"recipe-admin-backend/internal/infrastructure/storage"
	"recipe-admin-backend/internal/shared"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	repo    *fakeRecipeRepo
	enrich  *fakeEnrichmentRepo
	cache   *fakeCache
	tasks   *fakeTasks
	service *RecipeService
}

func newFixture() *fixture {
	repo := newFakeRecipeRepo()
	enrich := &fakeEnrichmentRepo{recipes: repo, ingredients: map[uuid.UUID][]model.NormalizedIngredient{}}
	c := newFakeCache()
	tasks := &fakeTasks{}
	svc := NewService(repo, enrich, c, tasks)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return &fixture{repo: repo, enrich: enrich, cache: c, tasks: tasks, service: svc}
}

func validForm(title string) model.RecipeFormValues {
	return model.RecipeFormValues{
		Title:        title,
		Description:  "Une recette de tradition familiale.",
		Ingredients:  []string{"pommes", "beurre", "sucre"},
		Instructions: "Caraméliser le sucre, ajouter les pommes, couvrir de pâte et enfourner 35 minutes.",
		Category:     "dessert",
	}
}

// readyRecipe has every editorial field filled but is still a draft.
func readyRecipe() *model.Recipe {
	return &model.Recipe{
		Title:                "Tarte Tatin",
		Slug:                 "tarte-tatin",
		Description:          "Tarte aux pommes caramélisées renversée.",
		Ingredients:          []string{"pommes", "beurre", "sucre"},
		Instructions:         "Caraméliser le sucre, ajouter les pommes, couvrir de pâte et enfourner 35 minutes.",
		Category:             "dessert",
		Tags:                 []string{},
		Status:               model.StatusDraft,
		ImageURL:             strPtr("https://cdn.example.com/tatin.jpg"),
		Difficulty:           strPtr("intermediate"),
		IngredientsText:      strPtr("6 pommes, 100 g de beurre, 150 g de sucre"),
		InstructionsDetailed: strPtr("Étape par étape..."),
		CulturalHistory:      strPtr("Née à Lamotte-Beuvron."),
		Techniques:           strPtr("Caramel à sec."),
		NutritionalNotes:     strPtr("Riche en sucres."),
		MetaTitle:            strPtr("Tarte Tatin maison"),
		MetaDescription:      strPtr("La vraie tarte Tatin."),
		ChefTips:             strPtr("Pommes fermes."),
	}
}

var enoughCounts = model.DerivedCounts{NormalizedIngredientsCount: 3, EnrichedStepsCount: 3, ConceptsCount: 1}

func TestCreateRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("creates draft with unique slug", func(t *testing.T) {
		f := newFixture()
		f.repo.put(&model.Recipe{Slug: "creme-brulee", Status: model.StatusDraft})

		form := validForm("Crème brûlée")
		form.Status = strPtr(model.StatusPublished)
		form.MetaTitle = strPtr("   ")

		res, err := f.service.CreateRecipe(ctx, form)
		require.NoError(t, err)

		assert.Equal(t, "creme-brulee-2", res.Slug)
		assert.Equal(t, model.StatusDraft, res.Status, "status is never taken from the form")
		assert.Nil(t, res.MetaTitle, "blank editorial fields are stored as NULL")
		assert.Equal(t, []string{}, res.Tags)
		assert.Contains(t, res.MissingFields, quality.LabelPublishedStatus)
	})

	t.Run("validation errors are returned as is", func(t *testing.T) {
		f := newFixture()
		form := validForm("ab")

		_, err := f.service.CreateRecipe(ctx, form)
		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs, "title")
	})
}

func TestUpdateRecipe(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	recipe := f.repo.put(readyRecipe())

	// warm the cache
	_, err := f.service.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.True(t, f.cache.has(recipeCacheKey(recipe.ID)))

	form := recipe.FormValues()
	form.Title = "Tarte Tatin aux coings"
	form.Status = strPtr(model.StatusArchived)

	res, err := f.service.UpdateRecipe(ctx, recipe.ID, form)
	require.NoError(t, err)

	assert.Equal(t, "tarte-tatin-aux-coings", res.Slug)
	assert.Equal(t, model.StatusDraft, f.repo.get(recipe.ID).Status)
	assert.False(t, f.cache.has(recipeCacheKey(recipe.ID)), "update invalidates the cached recipe")

	_, err = f.service.UpdateRecipe(ctx, uuid.New(), form)
	assert.ErrorIs(t, err, model.ErrRecipeNotFound)
}

func TestGetRecipe_CacheAside(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	recipe := f.repo.put(readyRecipe())

	first, err := f.service.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipeCacheTTL, f.cache.ttls[recipeCacheKey(recipe.ID)])

	// served from cache even after the row disappears
	f.repo.mu.Lock()
	delete(f.repo.recipes, recipe.ID)
	f.repo.mu.Unlock()

	second, err := f.service.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, []string{quality.LabelPublishedStatus}, second.MissingFields)
	assert.Equal(t, 90, second.CompletenessPercent)

	_, err = f.service.GetRecipe(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrRecipeNotFound)
}

func TestDeleteRecipe_EnqueuesImageCleanup(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	recipe := f.repo.put(readyRecipe())

	require.NoError(t, f.service.DeleteRecipe(ctx, recipe.ID))
	assert.Equal(t, []string{shared.TypeDeleteRecipeImages}, f.tasks.types())

	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, recipe.ID), model.ErrRecipeNotFound)
}

func TestListRecipes(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.repo.put(readyRecipe())
	draft := readyRecipe()
	draft.Slug = "tarte-vide"
	draft.Title = "Tarte vide"
	draft.MetaTitle = nil
	f.repo.put(draft)

	res, err := f.service.ListRecipes(ctx, model.ListRecipesRequest{Search: "vide"})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, []string{quality.LabelPublishedStatus, quality.LabelMetaTitle}, res.Recipes[0].MissingFields)
	assert.Equal(t, model.PaginationMeta{Page: 1, PageSize: model.DefaultPageLimit, Total: 1, TotalPage: 1}, res.Pagination)

	_, err = f.service.ListRecipes(ctx, model.ListRecipesRequest{Status: "gone"})
	assert.Error(t, err)

	f.repo.listErr = errors.New("connection reset")
	_, err = f.service.ListRecipes(ctx, model.ListRecipesRequest{})
	assert.ErrorContains(t, err, "connection reset")
}

func TestPrePublishCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("ready draft has no issue", func(t *testing.T) {
		f := newFixture()
		recipe := f.repo.put(readyRecipe())
		f.repo.counts[recipe.ID] = enoughCounts

		res, err := f.service.PrePublishCheck(ctx, recipe.ID)
		require.NoError(t, err)
		assert.True(t, res.CanPublish)
		assert.Empty(t, res.Issues)
		assert.Equal(t, enoughCounts, res.Counts)
	})

	t.Run("missing image and enrichment", func(t *testing.T) {
		f := newFixture()
		r := readyRecipe()
		r.ImageURL = nil
		recipe := f.repo.put(r)
		f.repo.counts[recipe.ID] = model.DerivedCounts{NormalizedIngredientsCount: 5, EnrichedStepsCount: 1, ConceptsCount: 0}

		res, err := f.service.PrePublishCheck(ctx, recipe.ID)
		require.NoError(t, err)
		assert.False(t, res.CanPublish)
		assert.Equal(t, []string{
			"Champs éditoriaux/SEO manquants : Image.",
			quality.IssueImageRequired,
			quality.IssueStepsRequired,
			quality.IssueConceptRequired,
		}, res.Issues)
	})

	t.Run("enrichment failure", func(t *testing.T) {
		f := newFixture()
		recipe := f.repo.put(readyRecipe())
		f.enrich.err = errors.New("timeout")

		_, err := f.service.PrePublishCheck(ctx, recipe.ID)
		assert.ErrorContains(t, err, "timeout")
	})
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes when ready", func(t *testing.T) {
		f := newFixture()
		recipe := f.repo.put(readyRecipe())
		f.repo.counts[recipe.ID] = enoughCounts
		require.NoError(t, f.cache.Set(ctx, recipeCacheKey(recipe.ID), recipe, time.Minute))

		res, err := f.service.Publish(ctx, recipe.ID)
		require.NoError(t, err)
		assert.True(t, res.Published)
		assert.Empty(t, res.Issues)
		assert.Equal(t, model.StatusPublished, f.repo.get(recipe.ID).Status)
		assert.False(t, f.cache.has(recipeCacheKey(recipe.ID)))
	})

	t.Run("refuses with issues and keeps status", func(t *testing.T) {
		f := newFixture()
		r := readyRecipe()
		r.ChefTips = nil
		recipe := f.repo.put(r)

		res, err := f.service.Publish(ctx, recipe.ID)
		require.NoError(t, err)
		assert.False(t, res.Published)
		assert.Equal(t, []string{
			"Champs éditoriaux/SEO manquants : Astuces ou détails difficulté.",
			quality.IssueIngredientsRequired,
			quality.IssueStepsRequired,
			quality.IssueConceptRequired,
		}, res.Issues)
		assert.Equal(t, model.StatusDraft, f.repo.get(recipe.ID).Status)
	})

	t.Run("already published", func(t *testing.T) {
		f := newFixture()
		r := readyRecipe()
		r.Status = model.StatusPublished
		recipe := f.repo.put(r)

		_, err := f.service.Publish(ctx, recipe.ID)
		assert.ErrorIs(t, err, model.ErrInvalidTransition)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.Publish(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrRecipeNotFound)
	})
}

func TestUnpublishAndArchive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	r := readyRecipe()
	r.Status = model.StatusPublished
	recipe := f.repo.put(r)

	updated, err := f.service.Unpublish(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, updated.Status)

	_, err = f.service.Unpublish(ctx, recipe.ID)
	var recErr *model.RecipeError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, model.ErrCodeInvalidTransition, recErr.Code)

	archived, err := f.service.Archive(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, archived.Status)

	_, err = f.service.Archive(ctx, recipe.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestTemplates(t *testing.T) {
	f := newFixture()

	res, err := f.service.Templates("intermediate")
	require.NoError(t, err)
	assert.Equal(t, "Recette demandant un peu de pratique : quelques techniques de base (découpe, cuisson maîtrisée, liaison) et une bonne organisation du plan de travail sont nécessaires.", res.Difficulty)
	assert.Equal(t, "Goûtez et rectifiez l'assaisonnement à chaque étape clé, et surveillez la cuisson à l'œil plutôt qu'au minuteur seul.", res.ChefTips)

	_, err = f.service.Templates("Intermediate")
	assert.ErrorIs(t, err, model.ErrUnknownDifficulty)
}

func TestApplyTemplates(t *testing.T) {
	ctx := context.Background()

	t.Run("fills only empty fields", func(t *testing.T) {
		f := newFixture()
		r := readyRecipe()
		r.DifficultyDetailed = strPtr("  ")
		recipe := f.repo.put(r)

		res, err := f.service.ApplyTemplates(ctx, recipe.ID)
		require.NoError(t, err)

		want, _ := quality.DifficultyTemplate(model.DifficultyIntermediate)
		require.NotNil(t, res.DifficultyDetailed)
		assert.Equal(t, want, *res.DifficultyDetailed)
		assert.Equal(t, "Pommes fermes.", *res.ChefTips)
		assert.Equal(t, 1, f.repo.updates)
	})

	t.Run("nothing to fill", func(t *testing.T) {
		f := newFixture()
		r := readyRecipe()
		r.DifficultyDetailed = strPtr("Déjà rédigé.")
		recipe := f.repo.put(r)

		_, err := f.service.ApplyTemplates(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Zero(t, f.repo.updates)
	})

	t.Run("no tier", func(t *testing.T) {
		f := newFixture()
		r := readyRecipe()
		r.Difficulty = nil
		recipe := f.repo.put(r)

		_, err := f.service.ApplyTemplates(ctx, recipe.ID)
		assert.ErrorIs(t, err, model.ErrUnknownDifficulty)
	})
}

func TestCompletenessAudit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.repo.put(readyRecipe())
	published := readyRecipe()
	published.Slug = "publiee"
	published.Status = model.StatusPublished
	f.repo.put(published)

	_, err := f.service.LatestCompletenessAudit(ctx)
	assert.ErrorIs(t, err, model.ErrAuditNotReady)

	summary, err := f.service.RunCompletenessAudit(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalRecipes, "published recipes are not audited")
	assert.Equal(t, 0, summary.CompleteRecipes)
	assert.Equal(t, f.service.now().UTC(), summary.GeneratedAt)

	cached, err := f.service.LatestCompletenessAudit(ctx)
	require.NoError(t, err)
	assert.Equal(t, summary.Items[0].MissingFields, cached.Items[0].MissingFields)
}

func TestCompletenessReportAndExport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	published := readyRecipe()
	published.Status = model.StatusPublished
	f.repo.put(published)

	summary, err := f.service.CompletenessReport(ctx, model.ListRecipesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CompleteRecipes)
	assert.Equal(t, 100, summary.Items[0].CompletenessPercent)

	file, err := f.service.ExportCompletenessExcel(ctx, model.ListRecipesRequest{})
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(completenessSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Titre", rows[0][1])
	assert.Equal(t, "Tarte Tatin", rows[1][1])
	assert.Equal(t, "100", rows[1][4])

}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 180, G: 90, B: 30, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestImageService(t *testing.T) {
	ctx := context.Background()

	t.Run("upload stores original and queues variants", func(t *testing.T) {
		f := newFixture()
		r := readyRecipe()
		r.ImageURL = nil
		recipe := f.repo.put(r)
		store := newFakeStorage()
		svc := NewImageService(f.repo, store, storage.NewImageProcessor(model.MaxImageSizeBytes), f.tasks, f.cache)

		res, err := svc.UploadImage(ctx, recipe.ID, pngBytes(t, 800, 400))
		require.NoError(t, err)
		assert.True(t, res.Queued)
		assert.Equal(t, "https://storage.example.com/recipe-images/recipes/"+recipe.ID.String()+"/original.png", res.ImageURL)
		assert.Equal(t, res.ImageURL, *f.repo.get(recipe.ID).ImageURL)
		assert.Equal(t, []string{shared.TypeProcessRecipeImage}, f.tasks.types())

		err = svc.ProcessImage(ctx, shared.ProcessRecipeImagePayload{
			RecipeID:    recipe.ID.String(),
			OriginalKey: "recipes/" + recipe.ID.String() + "/original.png",
		})
		require.NoError(t, err)
		assert.Len(t, store.keys(), 4)

		require.NoError(t, svc.DeleteImages(ctx, shared.DeleteRecipeImagesPayload{
			RecipeID: recipe.ID.String(),
			Prefix:   recipeImagePrefix(recipe.ID),
		}))
		assert.Empty(t, store.keys())
	})

	t.Run("invalid image", func(t *testing.T) {
		f := newFixture()
		recipe := f.repo.put(readyRecipe())
		svc := NewImageService(f.repo, newFakeStorage(), storage.NewImageProcessor(model.MaxImageSizeBytes), f.tasks, f.cache)

		_, err := svc.UploadImage(ctx, recipe.ID, []byte("GIF89a-not-really"))
		assert.ErrorIs(t, err, model.ErrInvalidImage)
	})

	t.Run("enqueue failure does not fail the upload", func(t *testing.T) {
		f := newFixture()
		recipe := f.repo.put(readyRecipe())
		f.tasks.err = errors.New("redis down")
		svc := NewImageService(f.repo, newFakeStorage(), storage.NewImageProcessor(model.MaxImageSizeBytes), f.tasks, f.cache)

		res, err := svc.UploadImage(ctx, recipe.ID, pngBytes(t, 10, 10))
		require.NoError(t, err)
		assert.False(t, res.Queued)
	})

	t.Run("storage not configured", func(t *testing.T) {
		f := newFixture()
		svc := NewImageService(f.repo, nil, storage.NewImageProcessor(model.MaxImageSizeBytes), f.tasks, f.cache)

		_, err := svc.UploadImage(ctx, uuid.New(), pngBytes(t, 10, 10))
		assert.ErrorIs(t, err, model.ErrStorageUnavailable)
	})
}
