package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryDB keeps a single connection; every new one would see an empty
// in-memory database.
func memoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { closeQuietly(db) })
	return db
}

func TestPing(t *testing.T) {
	assert.ErrorIs(t, Ping(nil), ErrNotConnected)
	assert.NoError(t, Ping(memoryDB(t)))
}

func TestMigrateCreatesTables(t *testing.T) {
	db := memoryDB(t)

	require.NoError(t, Migrate(db))
	for _, table := range []string{"users", "partner_requests", "posts", "notes", "chat_messages", "refresh_tokens", "system_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
