package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/models"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		GormEngine: config.EngineSQLite,
		Path:       filepath.Join(t.TempDir(), "nested", "site.db"),
	}}

	gdb, err := Open(cfg)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(gdb))

	for _, m := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(m), "missing table for %T", m)
	}

	ev := models.Event{Title: "Summit", IsActive: true}
	require.NoError(t, gdb.Create(&ev).Error)
	assert.Equal(t, "UTC", ev.CreatedAt.Location().String())
}

func TestDialectorUnknownEngine(t *testing.T) {
	_, err := Dialector(&config.Config{DB: config.DB{GormEngine: "oracle"}})
	require.ErrorIs(t, err, config.ErrUnknownGormEngine)
}

func TestMigrate_BackfillsSearchText(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		GormEngine: config.EngineSQLite,
		Path:       filepath.Join(t.TempDir(), "site.db"),
	}}

	gdb, err := Open(cfg)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(gdb))

	story := models.Story{Title: "Élan in Freetown", Author: "Fatmata", IsActive: true}
	require.NoError(t, gdb.Create(&story).Error)

	// rows written before the column existed
	require.NoError(t, gdb.Model(&story).UpdateColumn("search_text", "").Error)

	require.NoError(t, Migrate(gdb))

	var got models.Story
	require.NoError(t, gdb.First(&got, story.ID).Error)
	assert.Equal(t, story.SearchDocument(), got.SearchText)
	assert.Contains(t, got.SearchText, "élan in freetown")
}
