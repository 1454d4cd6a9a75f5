package services

import (
	"testing"

	"praia-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolFavoritesToggle(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	on, err := f.tools.Toggle(ctx, "chatgpt")
	require.NoError(t, err)
	assert.True(t, on.Favorited)
	assert.Equal(t, "chatgpt", on.Record.OriginalPublicID)
	assert.Equal(t, "u1", on.Record.OwnerID)
	assert.NotEqual(t, "chatgpt", on.Record.ID)

	_, err = f.tools.Toggle(ctx, "gemini")
	require.NoError(t, err)

	list, err := f.tools.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "gemini", list[0].OriginalPublicID)

	off, err := f.tools.Toggle(ctx, "chatgpt")
	require.NoError(t, err)
	assert.False(t, off.Favorited)
	fav, err := f.tools.IsFavorited(ctx, "chatgpt")
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = f.tools.Toggle(ctx, "not-a-tool")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTrainingFavoritesStripAndRehydrate(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	original, ok := f.cat.TrainingModule("prompting-basics")
	require.True(t, ok)
	require.NotEmpty(t, original.Content)

	res, err := f.training.Toggle(ctx, "prompting-basics")
	require.NoError(t, err)
	assert.Equal(t, original.Content, res.Record.Module.Content)

	stored, err := f.store.TrainingFavorites.FindFavorite(ctx, "u1", "prompting-basics")
	require.NoError(t, err)
	assert.Empty(t, stored.Module.Content)
	assert.Equal(t, original.Title, stored.Module.Title)

	list, err := f.training.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, original.Content, list[0].Module.Content)
	assert.Equal(t, "Be specific", list[0].Module.Content[0].Title)
}

func TestRehydrateTrainingUnknownModule(t *testing.T) {
	f := newFixture(t)
	in := models.FavoriteTraining{OriginalPublicID: "retired", Module: models.TrainingModule{ID: "retired", Title: "Old"}}
	out := RehydrateTraining(f.cat, in)
	assert.Equal(t, in, out)
}

func TestFavoriteKindsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	_, err := f.tools.Toggle(ctx, "chatgpt")
	require.NoError(t, err)

	training, err := f.training.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, training)
	prompts, err := f.prompts.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, prompts)

	others, err := f.tools.List(userCtx("u2"))
	require.NoError(t, err)
	assert.Empty(t, others)
}
