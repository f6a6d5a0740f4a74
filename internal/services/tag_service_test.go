package services

import (
	"context"
	"testing"

	"github.com/ajaybhatia/xync-server/internal/apperrors"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/ajaybhatia/xync-server/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTag(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *models.Tag {
	t.Helper()
	tag, err := NewTagService(db).Create(context.Background(), userID, &models.TagCreateRequest{Name: name})
	require.NoError(t, err)
	return tag
}

func TestTagService(t *testing.T) {
	db, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewTagService(db)

	alice := registerUser(t, db, "alice@tags.com")
	bob := registerUser(t, db, "bob@tags.com")

	t.Run("create with color", func(t *testing.T) {
		color := "#ff0000"
		tag, err := svc.Create(ctx, alice.ID, &models.TagCreateRequest{Name: "urgent", Color: &color})
		require.NoError(t, err)
		require.NotNil(t, tag.Color)
		assert.Equal(t, "#ff0000", *tag.Color)
	})

	t.Run("name unique per owner, not globally", func(t *testing.T) {
		createTag(t, db, alice.ID, "golang")

		_, err := svc.Create(ctx, alice.ID, &models.TagCreateRequest{Name: "golang"})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

		_, err = svc.Create(ctx, bob.ID, &models.TagCreateRequest{Name: "golang"})
		require.NoError(t, err)
	})

	t.Run("cross-owner access behaves as not found", func(t *testing.T) {
		mine := createTag(t, db, alice.ID, "private")

		_, err := svc.Get(ctx, bob.ID, mine.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

		name := "stolen"
		_, err = svc.Update(ctx, bob.ID, mine.ID, &models.TagUpdateRequest{Name: &name})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

		err = svc.Delete(ctx, bob.ID, mine.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("rename to an existing name conflicts", func(t *testing.T) {
		createTag(t, db, alice.ID, "taken")
		other := createTag(t, db, alice.ID, "renamable")

		name := "taken"
		_, err := svc.Update(ctx, alice.ID, other.ID, &models.TagUpdateRequest{Name: &name})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("delete removes associations but not bookmarks", func(t *testing.T) {
		tag := createTag(t, db, alice.ID, "doomed")
		bookmarks := NewBookmarkService(db)

		bookmark, err := bookmarks.Create(ctx, alice.ID, &models.BookmarkCreateRequest{
			URL:    "https://example.com/tagged",
			Title:  "Tagged",
			TagIDs: []uuid.UUID{tag.ID},
		})
		require.NoError(t, err)
		require.Len(t, bookmark.Tags, 1)

		require.NoError(t, svc.Delete(ctx, alice.ID, tag.ID))

		var joinRows int64
		require.NoError(t, db.Table("bookmark_tags").Where("tag_id = ?", tag.ID).Count(&joinRows).Error)
		assert.Zero(t, joinRows)

		got, err := bookmarks.Get(ctx, alice.ID, bookmark.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})

	t.Run("list is owner scoped and sorted", func(t *testing.T) {
		tags, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		for i, tag := range tags {
			assert.Equal(t, alice.ID, tag.UserID)
			if i > 0 {
				assert.LessOrEqual(t, tags[i-1].Name, tag.Name)
			}
		}
	})
}
