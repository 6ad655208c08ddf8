package repository

import (
	"context"
	"testing"
	"time"

	"retail-mis-console/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(scope string) *model.SessionRecord {
	return &model.SessionRecord{
		Scope:     scope,
		Token:     "abc",
		Profile:   `{"name":"X","role":"Manager","email":"y@z.com"}`,
		ExpiresAt: time.Now().Add(time.Hour).UnixMilli(),
	}
}

// exerciseStorage runs the behaviour every SessionStorage must share
func exerciseStorage(t *testing.T, storage SessionStorage) {
	t.Helper()
	ctx := context.Background()

	rec, err := storage.Load(ctx, "scope-a")
	require.NoError(t, err)
	assert.Nil(t, rec)

	want := sampleRecord("scope-a")
	require.NoError(t, storage.Save(ctx, want))

	got, err := storage.Load(ctx, "scope-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.Profile, got.Profile)
	assert.Equal(t, want.ExpiresAt, got.ExpiresAt)

	other, err := storage.Load(ctx, "scope-b")
	require.NoError(t, err)
	assert.Nil(t, other)

	replacement := sampleRecord("scope-a")
	replacement.Token = "def"
	require.NoError(t, storage.Save(ctx, replacement))
	got, err = storage.Load(ctx, "scope-a")
	require.NoError(t, err)
	assert.Equal(t, "def", got.Token)

	removed, err := storage.DeleteIf(ctx, "scope-a", "abc")
	require.NoError(t, err)
	assert.False(t, removed, "stale token must not remove the replacement")
	got, err = storage.Load(ctx, "scope-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "def", got.Token)

	removed, err = storage.DeleteIf(ctx, "scope-a", "def")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = storage.DeleteIf(ctx, "scope-a", "def")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, storage.Save(ctx, sampleRecord("scope-a")))
	require.NoError(t, storage.Delete(ctx, "scope-a"))
	require.NoError(t, storage.Delete(ctx, "scope-a"))
	rec, err = storage.Load(ctx, "scope-a")
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = storage.Load(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyScope)
	assert.ErrorIs(t, storage.Save(ctx, &model.SessionRecord{}), ErrEmptyScope)
	assert.ErrorIs(t, storage.Delete(ctx, ""), ErrEmptyScope)
	_, err = storage.DeleteIf(ctx, "", "abc")
	assert.ErrorIs(t, err, ErrEmptyScope)
}

func TestMemorySessionStorage(t *testing.T) {
	exerciseStorage(t, NewMemorySessionStorage())
}

func TestMemorySessionStorageReturnsCopies(t *testing.T) {
	ctx := context.Background()
	storage := NewMemorySessionStorage()
	require.NoError(t, storage.Save(ctx, sampleRecord("s")))

	got, err := storage.Load(ctx, "s")
	require.NoError(t, err)
	got.Token = "mutated"

	again, err := storage.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "abc", again.Token)
}
