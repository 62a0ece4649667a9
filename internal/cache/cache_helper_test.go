package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedForm struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, FormCacheConfig.Prefix), mr
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	in := cachedForm{ID: 1, Title: "Quiz"}
	require.NoError(t, helper.Set(ctx, "id:1", in, time.Minute))

	var out cachedForm
	require.NoError(t, helper.Get(ctx, "id:1", &out))
	assert.Equal(t, in, out)
}

func TestCacheHelper_GetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var out cachedForm
	err := helper.Get(context.Background(), "id:99", &out)

	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return &cachedForm{ID: 2, Title: "Fetched"}, nil
	}

	var first cachedForm
	require.NoError(t, helper.CacheOrExecute(ctx, "id:2", &first, time.Minute, fetch))
	assert.Equal(t, "Fetched", first.Title)
	assert.Equal(t, 1, calls)

	// Second read is served from cache.
	var second cachedForm
	require.NoError(t, helper.CacheOrExecute(ctx, "id:2", &second, time.Minute, fetch))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCacheHelper_CacheOrExecute_FetchError(t *testing.T) {
	helper, _ := newTestHelper(t)

	wantErr := errors.New("db down")
	var out cachedForm
	err := helper.CacheOrExecute(context.Background(), "id:3", &out, time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	require.NoError(t, helper.Set(ctx, "list:1", cachedForm{ID: 1}, time.Minute))
	require.NoError(t, helper.Set(ctx, "list:2", cachedForm{ID: 2}, time.Minute))
	require.NoError(t, helper.Set(ctx, "id:1", cachedForm{ID: 1}, time.Minute))

	require.NoError(t, helper.InvalidatePattern(ctx, "list:*"))

	var out cachedForm
	assert.ErrorIs(t, helper.Get(ctx, "list:1", &out), ErrCacheNotFound)
	assert.ErrorIs(t, helper.Get(ctx, "list:2", &out), ErrCacheNotFound)
	assert.NoError(t, helper.Get(ctx, "id:1", &out))
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "form:")
	ctx := context.Background()

	var out cachedForm
	assert.ErrorIs(t, helper.Get(ctx, "id:1", &out), ErrCacheNotAvailable)
	assert.NoError(t, helper.Set(ctx, "id:1", cachedForm{}, time.Minute))
	assert.NoError(t, helper.Delete(ctx, "id:1"))
	assert.NoError(t, helper.InvalidatePattern(ctx, "*"))

	// CacheOrExecute still runs the fetch.
	calls := 0
	require.NoError(t, helper.CacheOrExecute(ctx, "id:1", &out, time.Minute, func() (interface{}, error) {
		calls++
		return &cachedForm{ID: 7, Title: "Direct"}, nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint(7), out.ID)
}

func TestInvalidateFormCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cm := NewCacheManager(client)
	ctx := context.Background()

	require.NoError(t, cm.Form.Set(ctx, "id:5", cachedForm{ID: 5}, time.Minute))
	require.NoError(t, cm.Form.Set(ctx, "list:limit:20", []cachedForm{}, time.Minute))
	require.NoError(t, cm.Response.Set(ctx, "form:5:limit:50:offset:0", []cachedForm{}, time.Minute))

	InvalidateFormCache(ctx, cm, 5)

	var out cachedForm
	assert.ErrorIs(t, cm.Form.Get(ctx, "id:5", &out), ErrCacheNotFound)
	var list []cachedForm
	assert.ErrorIs(t, cm.Form.Get(ctx, "list:limit:20", &list), ErrCacheNotFound)
	assert.ErrorIs(t, cm.Response.Get(ctx, "form:5:limit:50:offset:0", &list), ErrCacheNotFound)
}
