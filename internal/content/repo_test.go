package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
)

func setupContentTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS content_items (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  media_url TEXT NOT NULL,
  storage_key TEXT,
  published INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS team_members (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  title TEXT NOT NULL,
  bio TEXT,
  photo_url TEXT,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec(`DELETE FROM content_items`).Error)
	require.NoError(t, db.Exec(`DELETE FROM team_members`).Error)
	return db
}

func createContentItem(t *testing.T, db *gorm.DB, kind enums.ContentKind, title string, published bool, createdAt time.Time) *models.ContentItem {
	t.Helper()

	item := &models.ContentItem{
		ID:        uuid.New(),
		Kind:      kind,
		Title:     title,
		MediaURL:  "https://example.com/" + title,
		Published: published,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestContentRepoListPublishedOnly(t *testing.T) {
	db := setupContentTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	live := createContentItem(t, db, enums.ContentKindVideo, "live", true, base)
	createContentItem(t, db, enums.ContentKindVideo, "draft", false, base.Add(time.Minute))

	items, err := repo.List(ctx, listContentParams{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, live.ID, items[0].ID)
}

func TestContentRepoListByKindNewestFirst(t *testing.T) {
	db := setupContentTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	createContentItem(t, db, enums.ContentKindEbook, "older", true, base)
	newer := createContentItem(t, db, enums.ContentKindEbook, "newer", true, base.Add(time.Minute))
	createContentItem(t, db, enums.ContentKindVideo, "video", true, base.Add(2*time.Minute))

	kind := enums.ContentKindEbook
	items, err := repo.List(ctx, listContentParams{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
}

func TestTeamRepoListOrdersBySortOrder(t *testing.T) {
	db := setupContentTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	second := &models.TeamMember{ID: uuid.New(), Name: "B Person", Title: "Ops", SortOrder: 2}
	first := &models.TeamMember{ID: uuid.New(), Name: "A Person", Title: "Director", SortOrder: 1}
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, db.Create(first).Error)

	members, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, first.ID, members[0].ID)
	assert.Equal(t, second.ID, members[1].ID)
}
