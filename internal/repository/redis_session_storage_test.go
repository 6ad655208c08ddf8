package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*red.Client, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := red.NewClient(&red.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})

	return client, server
}

func TestRedisSessionStorage(t *testing.T) {
	client, _ := newTestRedis(t)
	exerciseStorage(t, NewRedisSessionStorage(client, "mis:test"))
}

func TestRedisSessionStorageLayout(t *testing.T) {
	client, server := newTestRedis(t)
	storage := NewRedisSessionStorage(client, "")

	rec := sampleRecord("tab")
	require.NoError(t, storage.Save(context.Background(), rec))

	key := "mis:session:tab"
	assert.Equal(t, "abc", server.HGet(key, "token"))
	assert.Equal(t, rec.Profile, server.HGet(key, "user"))
	assert.NotEmpty(t, server.HGet(key, "expiry"))
	assert.Greater(t, server.TTL(key), time.Duration(0))

	server.FastForward(2 * time.Hour)
	got, err := storage.Load(context.Background(), "tab")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionStorageMalformed(t *testing.T) {
	client, server := newTestRedis(t)
	storage := NewRedisSessionStorage(client, "mis:test")

	server.HSet("mis:test:partial", "token", "abc")
	_, err := storage.Load(context.Background(), "partial")
	assert.ErrorIs(t, err, ErrMalformedRecord)

	server.HSet("mis:test:badexpiry", "token", "abc", "user", "{}", "expiry", "tomorrow")
	_, err = storage.Load(context.Background(), "badexpiry")
	assert.ErrorIs(t, err, ErrMalformedRecord)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "badexpiry", malformed.Scope)
	assert.Equal(t, "abc", malformed.Token)
}

func TestRedisSessionStorageDeleteIfWithoutToken(t *testing.T) {
	client, server := newTestRedis(t)
	storage := NewRedisSessionStorage(client, "mis:test")

	server.HSet("mis:test:tokenless", "user", "{}")
	_, err := storage.Load(context.Background(), "tokenless")
	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Empty(t, malformed.Token)

	removed, err := storage.DeleteIf(context.Background(), "tokenless", "")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, server.Exists("mis:test:tokenless"))
}

func TestRedisSessionStorageUnavailable(t *testing.T) {
	client, server := newTestRedis(t)
	storage := NewRedisSessionStorage(client, "mis:test")
	server.Close()

	_, err := storage.Load(context.Background(), "any")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedRecord)
}
