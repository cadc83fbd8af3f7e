package service

import (
	"context"
	"testing"

	"recipe-admin-backend/internal/domains/article/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	articles map[uuid.UUID]*model.Article
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: map[uuid.UUID]*model.Article{}}
}

func (f *fakeRepo) Create(_ context.Context, a *model.Article) error {
	a.ID = uuid.New()
	c := *a
	f.articles[a.ID] = &c
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, model.NewArticleNotFoundError()
	}
	c := *a
	return &c, nil
}

func (f *fakeRepo) SlugExists(_ context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	for _, a := range f.articles {
		if a.Slug == slug && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) List(_ context.Context, _ model.ListArticlesRequest) ([]model.Article, int, error) {
	out := make([]model.Article, 0, len(f.articles))
	for _, a := range f.articles {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, a *model.Article) error {
	if _, ok := f.articles[a.ID]; !ok {
		return model.NewArticleNotFoundError()
	}
	c := *a
	f.articles[a.ID] = &c
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.articles[id]; !ok {
		return model.NewArticleNotFoundError()
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*model.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, model.NewArticleNotFoundError()
	}
	a.Status = status
	c := *a
	return &c, nil
}

func strPtr(s string) *string { return &s }

func validRequest() model.ArticleRequest {
	return model.ArticleRequest{
		Title:   "Le levain naturel",
		Content: "Le levain naturel est un mélange de farine et d'eau fermenté par les levures sauvages.",
	}
}

func TestCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	first, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "le-levain-naturel", first.Slug)
	assert.Equal(t, model.StatusDraft, first.Status)

	second, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "le-levain-naturel-2", second.Slug)

	req := validRequest()
	req.Title = "Pain au levain"
	updated, err := svc.Update(ctx, first.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "pain-au-levain", updated.Slug)

	bad := validRequest()
	bad.Content = "trop court"
	_, err = svc.Create(ctx, bad)
	var errs validation.Errors
	assert.ErrorAs(t, err, &errs)
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	article, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	res, err := svc.Publish(ctx, article.ID)
	require.NoError(t, err)
	assert.False(t, res.Published)
	assert.Equal(t, []string{model.LabelExcerpt, model.LabelCoverImage, model.LabelMetaTitle, model.LabelMetaDescription}, res.Missing)
	assert.Equal(t, model.StatusDraft, repo.articles[article.ID].Status)

	req := validRequest()
	req.Excerpt = strPtr("Tout savoir sur le levain.")
	req.CoverURL = strPtr("https://cdn.example.com/levain.jpg")
	req.MetaTitle = strPtr("Levain naturel")
	req.MetaDescription = strPtr("Comment faire son levain.")
	_, err = svc.Update(ctx, article.ID, req)
	require.NoError(t, err)

	res, err = svc.Publish(ctx, article.ID)
	require.NoError(t, err)
	assert.True(t, res.Published)
	assert.Empty(t, res.Missing)

	_, err = svc.Publish(ctx, article.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	unpublished, err := svc.Unpublish(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, unpublished.Status)

	_, err = svc.Unpublish(ctx, article.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = svc.Publish(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrArticleNotFound)
}
