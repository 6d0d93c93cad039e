package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/cache"
)

func TestGet_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewWeekViewCache(client, 30*time.Second)

	mock.ExpectGet("weekview:2026-08-23").SetVal(`{"dates":[]}`)

	payload, ok, err := c.Get(context.Background(), "2026-08-23")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"dates":[]}`), payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewWeekViewCache(client, 30*time.Second)

	mock.ExpectGet("weekview:2026-08-23").RedisNil()

	payload, ok, err := c.Get(context.Background(), "2026-08-23")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestGet_Error(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewWeekViewCache(client, 30*time.Second)

	mock.ExpectGet("weekview:2026-08-23").SetErr(assert.AnError)

	_, _, err := c.Get(context.Background(), "2026-08-23")

	assert.ErrorIs(t, err, cache.ErrCache)
}

func TestSet_UsesConfiguredTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewWeekViewCache(client, 45*time.Second)

	mock.ExpectSet("weekview:2026-08-23", []byte(`{}`), 45*time.Second).SetVal("OK")

	err := c.Set(context.Background(), "2026-08-23", []byte(`{}`))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewWeekViewCache(client, 30*time.Second)

	mock.ExpectDel("weekview:2026-08-23").SetVal(1)

	err := c.Invalidate(context.Background(), "2026-08-23")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
