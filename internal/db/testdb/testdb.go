// Package testdb provides an in-memory database for package tests.
package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gywan/gywan-site/internal/db"
)

// New returns a migrated in-memory SQLite database which is closed when the test ends.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: db.NowFunc,
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	// every new connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")

	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}
