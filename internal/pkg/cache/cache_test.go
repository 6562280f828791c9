package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestClient(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

func TestSetAndGet(t *testing.T) {
	setupTestClient(t)

	require.NoError(t, Set("greeting", "hello", time.Minute))

	val, err := Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", val)
}

func TestGetMissing(t *testing.T) {
	setupTestClient(t)

	_, err := Get("does-not-exist")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestGetInt(t *testing.T) {
	setupTestClient(t)

	require.NoError(t, Set("counter", 42, time.Minute))

	val, err := GetInt("counter")
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestDelete(t *testing.T) {
	setupTestClient(t)

	require.NoError(t, Set("temp", "value", time.Minute))
	require.NoError(t, Delete("temp"))

	_, err := Get("temp")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestExpiration(t *testing.T) {
	mr := setupTestClient(t)

	require.NoError(t, Set("short-lived", "value", time.Second))

	mr.FastForward(2 * time.Second)

	_, err := Get("short-lived")
	assert.ErrorIs(t, err, redis.Nil)
}
