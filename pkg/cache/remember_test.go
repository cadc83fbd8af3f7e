package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	items  map[string][]byte
	getErr error
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	data, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = data
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

type recipe struct {
	Title string `json:"title"`
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	c := &memoryCache{items: map[string][]byte{}}

	loads := 0
	load := func(context.Context) (*recipe, error) {
		loads++
		return &recipe{Title: "Tarte Tatin"}, nil
	}

	first, err := Remember(ctx, c, "recipe:1", time.Minute, load)
	require.NoError(t, err)
	second, err := Remember(ctx, c, "recipe:1", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)

	t.Run("load error is not cached", func(t *testing.T) {
		_, err := Remember(ctx, c, "recipe:2", time.Minute, func(context.Context) (*recipe, error) {
			return nil, assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotContains(t, c.items, "recipe:2")
	})

	t.Run("cache failure falls back to load", func(t *testing.T) {
		broken := &memoryCache{items: map[string][]byte{}, getErr: errors.New("redis down")}
		got, err := Remember(ctx, broken, "recipe:1", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "Tarte Tatin", got.Title)
	})
}
