package service

import (
	"context"
	"fmt"

	"recipe-admin-backend/internal/domains/article/model"
	"recipe-admin-backend/internal/domains/article/repository"
	"recipe-admin-backend/internal/shared/utils"
	"recipe-admin-backend/pkg/logger"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	List(ctx context.Context, req model.ListArticlesRequest) (*model.ListArticlesResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Article, error)
	Create(ctx context.Context, req model.ArticleRequest) (*model.Article, error)
	Update(ctx context.Context, id uuid.UUID, req model.ArticleRequest) (*model.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Publish(ctx context.Context, id uuid.UUID) (*model.PublishResult, error)
	Unpublish(ctx context.Context, id uuid.UUID) (*model.Article, error)
}

type articleService struct {
	repo repository.ArticleRepository
}

func NewService(repo repository.ArticleRepository) ServiceInterface {
	return &articleService{repo: repo}
}

func (s *articleService) uniqueSlug(ctx context.Context, title string, excludeID uuid.UUID) (string, error) {
	base := utils.GenerateSlug(title)
	if base == "" {
		base = "article"
	}
	candidate := base
	for i := 2; i <= 51; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func (s *articleService) List(ctx context.Context, req model.ListArticlesRequest) (*model.ListArticlesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	articles, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return &model.ListArticlesResponse{Articles: articles, Total: total, Page: req.Page, Limit: req.Limit}, nil
}

func (s *articleService) Get(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *articleService) Create(ctx context.Context, req model.ArticleRequest) (*model.Article, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, req.Title, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	article := &model.Article{Slug: slug, Status: model.StatusDraft}
	req.ApplyTo(article)
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) Update(ctx context.Context, id uuid.UUID, req model.ArticleRequest) (*model.Article, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Title != req.Title {
		if article.Slug, err = s.uniqueSlug(ctx, req.Title, id); err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
	}
	req.ApplyTo(article)

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Publish yêu cầu excerpt, cover, meta title/description; thiếu => Missing, không đổi status
func (s *articleService) Publish(ctx context.Context, id uuid.UUID) (*model.PublishResult, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.IsPublished() {
		return nil, model.NewInvalidTransitionError(article.Status, model.StatusPublished)
	}

	if missing := article.MissingForPublish(); len(missing) > 0 {
		return &model.PublishResult{Published: false, Missing: missing, Article: article}, nil
	}

	published, err := s.repo.UpdateStatus(ctx, id, model.StatusPublished)
	if err != nil {
		return nil, err
	}

	logger.Info("Article published", map[string]interface{}{
		"article_id": id.String(),
		"slug":       published.Slug,
	})
	return &model.PublishResult{Published: true, Missing: []string{}, Article: published}, nil
}

func (s *articleService) Unpublish(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.IsPublished() {
		return nil, model.NewInvalidTransitionError(article.Status, model.StatusDraft)
	}
	return s.repo.UpdateStatus(ctx, id, model.StatusDraft)
}
