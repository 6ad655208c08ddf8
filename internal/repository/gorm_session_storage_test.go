package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormSessionStorageLoad(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewGormSessionStorage(db)
	expiry := time.Now().Add(time.Hour).UnixMilli()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "console_sessions" WHERE scope = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"scope", "token", "user_profile", "expires_at_ms", "updated_at"}).
			AddRow("tab", "abc", `{"name":"X"}`, expiry, time.Now()))

	rec, err := storage.Load(context.Background(), "tab")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "abc", rec.Token)
	assert.Equal(t, `{"name":"X"}`, rec.Profile)
	assert.Equal(t, expiry, rec.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSessionStorageLoadMissing(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewGormSessionStorage(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "console_sessions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"scope", "token", "user_profile", "expires_at_ms", "updated_at"}))

	rec, err := storage.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSessionStorageSave(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewGormSessionStorage(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "console_sessions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, storage.Save(context.Background(), sampleRecord("tab")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSessionStorageDelete(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewGormSessionStorage(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "console_sessions" WHERE scope = $1`)).
		WithArgs("tab").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, storage.Delete(context.Background(), "tab"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSessionStorageDeleteIf(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewGormSessionStorage(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "console_sessions" WHERE scope = $1 AND token = $2`)).
		WithArgs("tab", "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "console_sessions" WHERE scope = $1 AND token = $2`)).
		WithArgs("tab", "stale").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := storage.DeleteIf(context.Background(), "tab", "abc")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = storage.DeleteIf(context.Background(), "tab", "stale")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
