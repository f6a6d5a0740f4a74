package services

import (
	"context"
	"testing"

	"github.com/ajaybhatia/xync-server/internal/apperrors"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/ajaybhatia/xync-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService(t *testing.T) {
	db, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewNoteService(db)

	alice := registerUser(t, db, "alice@notes.com")
	bob := registerUser(t, db, "bob@notes.com")

	t.Run("create and get", func(t *testing.T) {
		note, err := svc.Create(ctx, alice.ID, &models.NoteCreateRequest{
			Title:   "Ideas",
			Content: "first draft",
		})
		require.NoError(t, err)

		got, err := svc.Get(ctx, alice.ID, note.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ideas", got.Title)
		assert.Equal(t, "first draft", got.Content)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		note, err := svc.Create(ctx, alice.ID, &models.NoteCreateRequest{
			Title:   "Partial",
			Content: "original content",
		})
		require.NoError(t, err)

		title := "Partial v2"
		updated, err := svc.Update(ctx, alice.ID, note.ID, &models.NoteUpdateRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Partial v2", updated.Title)
		assert.Equal(t, "original content", updated.Content)
	})

	t.Run("cross-owner access behaves as not found", func(t *testing.T) {
		note, err := svc.Create(ctx, alice.ID, &models.NoteCreateRequest{
			Title:   "Private",
			Content: "secret",
		})
		require.NoError(t, err)

		_, err = svc.Get(ctx, bob.ID, note.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

		err = svc.Delete(ctx, bob.ID, note.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("delete", func(t *testing.T) {
		note, err := svc.Create(ctx, alice.ID, &models.NoteCreateRequest{
			Title:   "Ephemeral",
			Content: "gone soon",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, alice.ID, note.ID))

		_, err = svc.Get(ctx, alice.ID, note.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}
