package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// ---------------------------------------------------------------------------
// recipe repository
// ---------------------------------------------------------------------------

type fakeRecipeRepo struct {
	mu      sync.Mutex
	recipes map[uuid.UUID]*model.Recipe
	counts  map[uuid.UUID]model.DerivedCounts
	listErr error
	updates int
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes: map[uuid.UUID]*model.Recipe{},
		counts:  map[uuid.UUID]model.DerivedCounts{},
	}
}

func clone(r *model.Recipe) *model.Recipe {
	c := *r
	return &c
}

func (f *fakeRecipeRepo) put(r *model.Recipe) *model.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.recipes[r.ID] = clone(r)
	return r
}

func (f *fakeRecipeRepo) get(id uuid.UUID) *model.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recipes[id]
}

func (f *fakeRecipeRepo) Create(_ context.Context, recipe *model.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.recipes {
		if existing.Slug == recipe.Slug {
			return model.NewDuplicateSlugError(recipe.Slug)
		}
	}
	recipe.ID = uuid.New()
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt
	f.recipes[recipe.ID] = clone(recipe)
	return nil
}

func (f *fakeRecipeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, model.NewRecipeNotFoundError()
	}
	return clone(r), nil
}

func (f *fakeRecipeRepo) GetBySlug(_ context.Context, slug string) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.recipes {
		if r.Slug == slug {
			return clone(r), nil
		}
	}
	return nil, model.NewRecipeNotFoundError()
}

func (f *fakeRecipeRepo) SlugExists(_ context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.recipes {
		if r.Slug == slug && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecipeRepo) List(_ context.Context, req model.ListRecipesRequest) ([]model.Recipe, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Recipe, 0)
	for _, r := range f.recipes {
		if req.Status != "" && r.Status != req.Status {
			continue
		}
		if req.Search != "" && !strings.Contains(strings.ToLower(r.Title), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, *clone(r))
	}
	return out, len(out), nil
}

func (f *fakeRecipeRepo) Update(_ context.Context, recipe *model.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.recipes[recipe.ID]
	if !ok {
		return model.NewRecipeNotFoundError()
	}
	updated := clone(recipe)
	updated.Status = existing.Status
	updated.UpdatedAt = time.Now()
	f.recipes[recipe.ID] = updated
	f.updates++
	return nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[id]; !ok {
		return model.NewRecipeNotFoundError()
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, model.NewRecipeNotFoundError()
	}
	r.Status = status
	return clone(r), nil
}

func (f *fakeRecipeRepo) UpdateImageURL(_ context.Context, id uuid.UUID, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return model.NewRecipeNotFoundError()
	}
	r.ImageURL = &imageURL
	return nil
}

func (f *fakeRecipeRepo) ListForAudit(_ context.Context, limit int) ([]model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Recipe, 0)
	for _, r := range f.recipes {
		if r.Status == model.StatusPublished {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, *clone(r))
	}
	return out, nil
}

func (f *fakeRecipeRepo) PublishWithCheck(_ context.Context, id uuid.UUID, check repository.PublishCheck) (*model.Recipe, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, nil, model.NewRecipeNotFoundError()
	}
	if issues := check(clone(r), f.counts[id]); len(issues) > 0 {
		return clone(r), issues, nil
	}
	r.Status = model.StatusPublished
	now := time.Now()
	r.PublishedAt = &now
	return clone(r), []string{}, nil
}

// ---------------------------------------------------------------------------
// enrichment repository (reads counts from the recipe fake)
// ---------------------------------------------------------------------------

type fakeEnrichmentRepo struct {
	recipes     *fakeRecipeRepo
	ingredients map[uuid.UUID][]model.NormalizedIngredient
	err         error
}

func (f *fakeEnrichmentRepo) GetDerivedCounts(_ context.Context, id uuid.UUID) (model.DerivedCounts, error) {
	if f.err != nil {
		return model.DerivedCounts{}, f.err
	}
	f.recipes.mu.Lock()
	defer f.recipes.mu.Unlock()
	return f.recipes.counts[id], nil
}

func (f *fakeEnrichmentRepo) ListNormalizedIngredients(_ context.Context, id uuid.UUID) ([]model.NormalizedIngredient, error) {
	return f.ingredients[id], nil
}

// ---------------------------------------------------------------------------
// cache
// ---------------------------------------------------------------------------

type fakeCache struct {
	mu    sync.Mutex
	items map[string][]byte
	ttls  map[string]time.Duration
	gets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *fakeCache) Ping(context.Context) error { return nil }

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// ---------------------------------------------------------------------------
// task queue + object storage
// ---------------------------------------------------------------------------

type fakeTasks struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeTasks) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: uuid.NewString(), Type: task.Type()}, nil
}

func (f *fakeTasks) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t.Type())
	}
	return out
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if s.failPut {
		return "", errors.New("bucket unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://storage.example.com/recipe-images/" + key, nil
}

func (s *fakeStorage) Download(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (s *fakeStorage) DeleteByPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			delete(s.objects, k)
		}
	}
	return nil
}

func (s *fakeStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	return out
}
