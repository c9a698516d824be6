package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/amazinbookstore/bookstore-platform/internal/cache"
	"github.com/amazinbookstore/bookstore-platform/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rankingEntry struct {
	BookID string `json:"book_id"`
	Count  int    `json:"count"`
}

func newTestCache(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{DefaultTTL: 5 * time.Minute, PopularTTL: 5 * time.Minute}

	return cache.NewRedisCache(client, cfg), mock
}

func TestRedisCache_Get(t *testing.T) {
	ctx := t.Context()

	t.Run("Hit", func(t *testing.T) {
		// Arrange
		c, mock := newTestCache(t)
		stored := []rankingEntry{{BookID: "abc", Count: 3}}
		data, err := json.Marshal(stored)
		require.NoError(t, err)

		mock.ExpectGet(cache.PopularBooksKey).SetVal(string(data))

		// Act
		var got []rankingEntry
		hit, err := c.Get(ctx, cache.PopularBooksKey, &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, stored, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss Is Not An Error", func(t *testing.T) {
		// Arrange
		c, mock := newTestCache(t)
		mock.ExpectGet(cache.PopularBooksKey).RedisNil()

		// Act
		var got []rankingEntry
		hit, err := c.Get(ctx, cache.PopularBooksKey, &got)

		// Assert
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Redis Error", func(t *testing.T) {
		// Arrange
		c, mock := newTestCache(t)
		mock.ExpectGet(cache.PopularBooksKey).SetErr(errors.New("connection refused"))

		// Act
		var got []rankingEntry
		hit, err := c.Get(ctx, cache.PopularBooksKey, &got)

		// Assert
		require.Error(t, err)
		assert.False(t, hit)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Corrupt Payload", func(t *testing.T) {
		// Arrange
		c, mock := newTestCache(t)
		mock.ExpectGet(cache.PopularBooksKey).SetVal("{not json")

		// Act
		var got []rankingEntry
		hit, err := c.Get(ctx, cache.PopularBooksKey, &got)

		// Assert
		require.Error(t, err)
		assert.False(t, hit)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCache_Set(t *testing.T) {
	ctx := t.Context()

	t.Run("Explicit TTL", func(t *testing.T) {
		// Arrange
		c, mock := newTestCache(t)
		value := []rankingEntry{{BookID: "abc", Count: 1}}
		data, err := json.Marshal(value)
		require.NoError(t, err)

		mock.ExpectSet(cache.PopularBooksKey, data, time.Minute).SetVal("OK")

		// Act
		err = c.Set(ctx, cache.PopularBooksKey, value, time.Minute)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Zero TTL Falls Back To Default", func(t *testing.T) {
		// Arrange
		c, mock := newTestCache(t)
		value := []rankingEntry{{BookID: "abc", Count: 1}}
		data, err := json.Marshal(value)
		require.NoError(t, err)

		mock.ExpectSet(cache.PopularBooksKey, data, 5*time.Minute).SetVal("OK")

		// Act
		err = c.Set(ctx, cache.PopularBooksKey, value, 0)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCache_Delete(t *testing.T) {
	// Arrange
	ctx := t.Context()
	c, mock := newTestCache(t)
	mock.ExpectDel(cache.PopularBooksKey).SetVal(1)

	// Act
	err := c.Delete(ctx, cache.PopularBooksKey)

	// Assert
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
