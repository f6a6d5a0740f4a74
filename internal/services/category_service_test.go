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

func createCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, parentID *uuid.UUID) *models.Category {
	t.Helper()
	category, err := NewCategoryService(db).Create(context.Background(), userID, &models.CategoryCreateRequest{
		Name:     name,
		ParentID: parentID,
	})
	require.NoError(t, err)
	return category
}

func TestCategoryService(t *testing.T) {
	db, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewCategoryService(db)

	alice := registerUser(t, db, "alice@x.com")
	bob := registerUser(t, db, "bob@x.com")

	t.Run("name unique per owner, not globally", func(t *testing.T) {
		work := createCategory(t, db, alice.ID, "Work", nil)
		assert.Equal(t, "Work", work.Name)

		_, err := svc.Create(ctx, alice.ID, &models.CategoryCreateRequest{Name: "Work"})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

		// A different owner is free to reuse the name.
		_, err = svc.Create(ctx, bob.ID, &models.CategoryCreateRequest{Name: "Work"})
		require.NoError(t, err)
	})

	t.Run("cross-owner access behaves as not found", func(t *testing.T) {
		mine := createCategory(t, db, alice.ID, "Private", nil)

		_, err := svc.Get(ctx, bob.ID, mine.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

		name := "Hijacked"
		_, err = svc.Update(ctx, bob.ID, mine.ID, &models.CategoryUpdateRequest{Name: &name})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

		err = svc.Delete(ctx, bob.ID, mine.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

		// Untouched.
		got, err := svc.Get(ctx, alice.ID, mine.ID)
		require.NoError(t, err)
		assert.Equal(t, "Private", got.Name)
	})

	t.Run("cross-owner parent rejected", func(t *testing.T) {
		bobRoot := createCategory(t, db, bob.ID, "Bob Root", nil)

		_, err := svc.Create(ctx, alice.ID, &models.CategoryCreateRequest{
			Name:     "Orphan",
			ParentID: &bobRoot.ID,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("self parent rejected, parent unchanged", func(t *testing.T) {
		solo := createCategory(t, db, alice.ID, "Solo", nil)

		_, err := svc.Update(ctx, alice.ID, solo.ID, &models.CategoryUpdateRequest{ParentID: &solo.ID})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

		got, err := svc.Get(ctx, alice.ID, solo.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ParentID)
	})

	t.Run("cycle through ancestors rejected, parent unchanged", func(t *testing.T) {
		a := createCategory(t, db, alice.ID, "Cycle A", nil)
		b := createCategory(t, db, alice.ID, "Cycle B", &a.ID)
		c := createCategory(t, db, alice.ID, "Cycle C", &b.ID)

		// A -> B -> C exists; making C the parent of A closes the loop.
		_, err := svc.Update(ctx, alice.ID, a.ID, &models.CategoryUpdateRequest{ParentID: &c.ID})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

		got, err := svc.Get(ctx, alice.ID, a.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ParentID)
	})

	t.Run("reparent to a valid ancestor chain works", func(t *testing.T) {
		root := createCategory(t, db, alice.ID, "Reparent Root", nil)
		child := createCategory(t, db, alice.ID, "Reparent Child", nil)

		updated, err := svc.Update(ctx, alice.ID, child.ID, &models.CategoryUpdateRequest{ParentID: &root.ID})
		require.NoError(t, err)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, root.ID, *updated.ParentID)
	})

	t.Run("deleting a parent detaches children", func(t *testing.T) {
		work := createCategory(t, db, alice.ID, "Detach Work", nil)
		projects := createCategory(t, db, alice.ID, "Detach Projects", &work.ID)

		require.NoError(t, svc.Delete(ctx, alice.ID, work.ID))

		got, err := svc.Get(ctx, alice.ID, projects.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ParentID, "children are detached, not deleted")
	})

	t.Run("rename to an existing name conflicts", func(t *testing.T) {
		createCategory(t, db, alice.ID, "Taken", nil)
		other := createCategory(t, db, alice.ID, "Renamable", nil)

		name := "Taken"
		_, err := svc.Update(ctx, alice.ID, other.ID, &models.CategoryUpdateRequest{Name: &name})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("list is owner scoped", func(t *testing.T) {
		categories, err := svc.List(ctx, bob.ID)
		require.NoError(t, err)
		for _, category := range categories {
			assert.Equal(t, bob.ID, category.UserID)
		}
	})
}
