// Package repotest holds the behavior every repository.Store implementation must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store.
type Factory func(t *testing.T) *repository.Store

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func version(id, owner, history string, v int, latest bool, minutes int) models.Prompt {
	return models.Prompt{
		ID:        id,
		OwnerID:   owner,
		HistoryID: history,
		Revision:  models.Revision{Version: v, IsLatest: latest},
		Title:     "Title " + id,
		Text:      "Text " + id,
		Category:  models.CategoryWriting,
		IsPublic:  false,
		Origin:    models.Owned{},
		CreatedAt: at(minutes),
	}
}

func favorite(id, owner, original string, minutes int) models.Prompt {
	p := version(id, owner, id, 1, true, minutes)
	p.Origin = models.FavoritedFrom{OriginalID: original}
	p.IsPublic = true
	return p
}

func ids(ps []models.Prompt) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

// Run exercises every repository in the store returned by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Prompts", func(t *testing.T) { runPrompts(t, newStore) })
	t.Run("PromptFavorites", func(t *testing.T) { runPromptFavorites(t, newStore) })
	t.Run("Folders", func(t *testing.T) { runFolders(t, newStore) })
	t.Run("ToolFavorites", func(t *testing.T) { runToolFavorites(t, newStore) })
	t.Run("TrainingFavorites", func(t *testing.T) { runTrainingFavorites(t, newStore) })
	t.Run("ClearOwner", func(t *testing.T) { runClearOwner(t, newStore) })
}

func runPrompts(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		repo := newStore(t).Prompts
		folder := "f1"
		p := version("p1", "u1", "p1", 1, true, 0)
		p.FolderID = &folder
		p.Framework = models.FrameworkRTF
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.FindByID(ctx, "u1", "p1")
		require.NoError(t, err)
		assert.Equal(t, p.Title, got.Title)
		assert.Equal(t, models.FrameworkRTF, got.Framework)
		assert.Equal(t, models.FirstRevision(), got.Revision)
		assert.Equal(t, models.Owned{}, got.Origin)
		require.NotNil(t, got.FolderID)
		assert.Equal(t, "f1", *got.FolderID)
		assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

		_, err = repo.FindByID(ctx, "u2", "p1")
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, err = repo.FindByID(ctx, "u1", "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.Create(ctx, version("p1", "u1", "p1", 1, true, 0)))
		assert.ErrorIs(t, repo.Create(ctx, version("p1", "u1", "p1", 1, true, 1)), models.ErrValidation)
	})

	t.Run("append version keeps one latest", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.Create(ctx, version("v1", "u1", "h", 1, true, 0)))
		require.NoError(t, repo.AppendVersion(ctx, "u1", "v1", version("v2", "u1", "h", 2, true, 1)))
		require.NoError(t, repo.AppendVersion(ctx, "u1", "v2", version("v3", "u1", "h", 3, true, 2)))

		history, err := repo.ListHistory(ctx, "u1", "h")
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v2", "v3"}, ids(history))
		latest := 0
		for _, p := range history {
			if p.IsLatest() {
				latest++
				assert.Equal(t, "v3", p.ID)
			}
		}
		assert.Equal(t, 1, latest)

		err = repo.AppendVersion(ctx, "u1", "missing", version("v9", "u1", "h", 9, true, 3))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("list latest is newest first", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.Create(ctx, version("a1", "u1", "a", 1, true, 0)))
		require.NoError(t, repo.Create(ctx, version("b1", "u1", "b", 1, true, 5)))
		require.NoError(t, repo.AppendVersion(ctx, "u1", "a1", version("a2", "u1", "a", 2, true, 10)))
		require.NoError(t, repo.Create(ctx, version("c1", "u2", "c", 1, true, 20)))

		got, err := repo.ListLatest(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"a2", "b1"}, ids(got))

		empty, err := repo.ListLatest(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("deleting latest promotes highest remaining", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.Create(ctx, version("v1", "u1", "h", 1, true, 0)))
		require.NoError(t, repo.AppendVersion(ctx, "u1", "v1", version("v2", "u1", "h", 2, true, 1)))
		require.NoError(t, repo.AppendVersion(ctx, "u1", "v2", version("v3", "u1", "h", 3, true, 2)))

		require.NoError(t, repo.Delete(ctx, "u1", "v3"))
		v2, err := repo.FindByID(ctx, "u1", "v2")
		require.NoError(t, err)
		assert.True(t, v2.IsLatest())

		require.NoError(t, repo.Delete(ctx, "u1", "v1"))
		v2, err = repo.FindByID(ctx, "u1", "v2")
		require.NoError(t, err)
		assert.True(t, v2.IsLatest())

		require.NoError(t, repo.Delete(ctx, "u1", "v2"))
		history, err := repo.ListHistory(ctx, "u1", "h")
		require.NoError(t, err)
		assert.Empty(t, history)

		assert.ErrorIs(t, repo.Delete(ctx, "u1", "v2"), models.ErrNotFound)
	})

	t.Run("set folder covers the lineage", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.Create(ctx, version("v1", "u1", "h", 1, true, 0)))
		require.NoError(t, repo.AppendVersion(ctx, "u1", "v1", version("v2", "u1", "h", 2, true, 1)))
		require.NoError(t, repo.Create(ctx, version("o1", "u1", "other", 1, true, 2)))

		folder := "f1"
		require.NoError(t, repo.SetFolder(ctx, "u1", "h", &folder))
		history, err := repo.ListHistory(ctx, "u1", "h")
		require.NoError(t, err)
		for _, p := range history {
			assert.True(t, p.InFolder(&folder), p.ID)
		}
		other, err := repo.FindByID(ctx, "u1", "o1")
		require.NoError(t, err)
		assert.Nil(t, other.FolderID)

		require.NoError(t, repo.SetFolder(ctx, "u1", "h", nil))
		history, err = repo.ListHistory(ctx, "u1", "h")
		require.NoError(t, err)
		for _, p := range history {
			assert.Nil(t, p.FolderID, p.ID)
		}

		assert.ErrorIs(t, repo.SetFolder(ctx, "u1", "missing", &folder), models.ErrNotFound)
	})

	t.Run("public latest spans owners", func(t *testing.T) {
		repo := newStore(t).Prompts
		pub := version("p1", "u1", "p", 1, true, 0)
		pub.IsPublic = true
		require.NoError(t, repo.Create(ctx, pub))
		next := version("p2", "u1", "p", 2, true, 3)
		next.IsPublic = true
		require.NoError(t, repo.AppendVersion(ctx, "u1", "p1", next))

		other := version("q1", "u2", "q", 1, true, 1)
		other.IsPublic = true
		require.NoError(t, repo.Create(ctx, other))
		require.NoError(t, repo.Create(ctx, version("r1", "u2", "r", 1, true, 2)))
		require.NoError(t, repo.AddFavorite(ctx, "u2", favorite("fav", "u2", "catalog-1", 4)))

		got, err := repo.ListPublicLatest(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"p2", "q1"}, ids(got))
	})

	t.Run("delete lineage removes every version", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.Create(ctx, version("v1", "u1", "h", 1, true, 0)))
		require.NoError(t, repo.AppendVersion(ctx, "u1", "v1", version("v2", "u1", "h", 2, true, 1)))
		require.NoError(t, repo.Create(ctx, version("o1", "u1", "other", 1, true, 2)))

		require.NoError(t, repo.DeleteLineage(ctx, "h"))
		history, err := repo.ListHistory(ctx, "u1", "h")
		require.NoError(t, err)
		assert.Empty(t, history)
		_, err = repo.FindByID(ctx, "u1", "o1")
		assert.NoError(t, err)

		assert.ErrorIs(t, repo.DeleteLineage(ctx, "h"), models.ErrNotFound)
	})
}

func runPromptFavorites(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("add find remove", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.AddFavorite(ctx, "u1", favorite("s1", "u1", "cat-1", 0)))

		got, err := repo.FindFavorite(ctx, "u1", "cat-1")
		require.NoError(t, err)
		assert.Equal(t, "s1", got.ID)
		assert.Equal(t, "cat-1", got.OriginalPublicID())
		assert.True(t, got.IsFavorited())

		_, err = repo.FindFavorite(ctx, "u2", "cat-1")
		assert.ErrorIs(t, err, models.ErrNotFound)

		require.NoError(t, repo.RemoveFavorite(ctx, "u1", "cat-1"))
		_, err = repo.FindFavorite(ctx, "u1", "cat-1")
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.ErrorIs(t, repo.RemoveFavorite(ctx, "u1", "cat-1"), models.ErrNotFound)
	})

	t.Run("one snapshot per original", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.AddFavorite(ctx, "u1", favorite("s1", "u1", "cat-1", 0)))
		err := repo.AddFavorite(ctx, "u1", favorite("s2", "u1", "cat-1", 1))
		assert.ErrorIs(t, err, models.ErrValidation)
		require.NoError(t, repo.AddFavorite(ctx, "u2", favorite("s3", "u2", "cat-1", 1)))
	})

	t.Run("owned prompts are not favorites", func(t *testing.T) {
		repo := newStore(t).Prompts
		err := repo.AddFavorite(ctx, "u1", version("p1", "u1", "p1", 1, true, 0))
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("list favorites newest first", func(t *testing.T) {
		repo := newStore(t).Prompts
		require.NoError(t, repo.Create(ctx, version("own", "u1", "own", 1, true, 3)))
		require.NoError(t, repo.AddFavorite(ctx, "u1", favorite("s1", "u1", "cat-1", 0)))
		require.NoError(t, repo.AddFavorite(ctx, "u1", favorite("s2", "u1", "cat-2", 1)))

		got, err := repo.ListFavorites(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"s2", "s1"}, ids(got))
	})
}

func runFolders(t *testing.T, newStore Factory) {
	ctx := context.Background()
	repo := newStore(t).Folders

	for i, name := range []string{"Work", "Personal", "Archive"} {
		require.NoError(t, repo.Create(ctx, models.PromptFolder{
			ID:        "f" + name,
			OwnerID:   "u1",
			Name:      name,
			CreatedAt: at(i),
		}))
	}
	require.NoError(t, repo.Create(ctx, models.PromptFolder{ID: "fOther", OwnerID: "u2", Name: "Other", CreatedAt: at(0)}))

	got, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Work", got[0].Name)
	assert.Equal(t, "Personal", got[1].Name)
	assert.Equal(t, "Archive", got[2].Name)

	f, err := repo.FindByID(ctx, "u1", "fWork")
	require.NoError(t, err)
	assert.Equal(t, "Work", f.Name)

	_, err = repo.FindByID(ctx, "u1", "fOther")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func runToolFavorites(t *testing.T, newStore Factory) {
	ctx := context.Background()
	repo := newStore(t).ToolFavorites

	tool := models.AITool{
		ID:        "chatgpt",
		Name:      "ChatGPT",
		Category:  models.CategoryProductivity,
		Link:      "https://chat.openai.com",
		Tags:      []string{"chat"},
		CreatedAt: at(0),
	}
	first := models.FavoriteTool{ID: "t1", OwnerID: "u1", OriginalPublicID: "chatgpt", Tool: tool, CreatedAt: at(1)}
	require.NoError(t, repo.AddFavorite(ctx, "u1", first))
	assert.ErrorIs(t, repo.AddFavorite(ctx, "u1", first), models.ErrValidation)

	second := models.FavoriteTool{ID: "t2", OwnerID: "u1", OriginalPublicID: "gemini", Tool: models.AITool{ID: "gemini", Name: "Gemini"}, CreatedAt: at(2)}
	require.NoError(t, repo.AddFavorite(ctx, "u1", second))

	got, err := repo.FindFavorite(ctx, "u1", "chatgpt")
	require.NoError(t, err)
	assert.Equal(t, "ChatGPT", got.Tool.Name)
	assert.Equal(t, []string{"chat"}, got.Tool.Tags)

	list, err := repo.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "gemini", list[0].OriginalPublicID)
	assert.Equal(t, "chatgpt", list[1].OriginalPublicID)

	require.NoError(t, repo.RemoveFavorite(ctx, "u1", "chatgpt"))
	_, err = repo.FindFavorite(ctx, "u1", "chatgpt")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, repo.RemoveFavorite(ctx, "u1", "chatgpt"), models.ErrNotFound)

	// Snapshot ids are unique across owners; a removed snapshot frees its id.
	reused := models.FavoriteTool{ID: "t2", OwnerID: "u2", OriginalPublicID: "claude", Tool: models.AITool{ID: "claude"}, CreatedAt: at(3)}
	assert.ErrorIs(t, repo.AddFavorite(ctx, "u2", reused), models.ErrValidation)
	reused.ID = "t1"
	require.NoError(t, repo.AddFavorite(ctx, "u2", reused))
}

func runTrainingFavorites(t *testing.T, newStore Factory) {
	ctx := context.Background()
	store := newStore(t)

	module := models.TrainingModule{ID: "prompting-basics", Title: "Prompting Basics", Category: models.CategoryEducation}
	require.NoError(t, store.TrainingFavorites.AddFavorite(ctx, "u1", models.FavoriteTraining{
		ID: "m1", OwnerID: "u1", OriginalPublicID: module.ID, Module: module, CreatedAt: at(0),
	}))

	got, err := store.TrainingFavorites.FindFavorite(ctx, "u1", module.ID)
	require.NoError(t, err)
	assert.Equal(t, "Prompting Basics", got.Module.Title)
	assert.Empty(t, got.Module.Content)

	_, err = store.ToolFavorites.FindFavorite(ctx, "u1", module.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func runClearOwner(t *testing.T, newStore Factory) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Prompts.Create(ctx, version("p1", "u1", "p1", 1, true, 0)))
	require.NoError(t, store.Prompts.Create(ctx, version("p2", "u2", "p2", 1, true, 0)))
	require.NoError(t, store.Prompts.AddFavorite(ctx, "u1", favorite("s1", "u1", "cat-1", 1)))
	require.NoError(t, store.Folders.Create(ctx, models.PromptFolder{ID: "f1", OwnerID: "u1", Name: "Work", CreatedAt: at(0)}))
	require.NoError(t, store.ToolFavorites.AddFavorite(ctx, "u1", models.FavoriteTool{ID: "t1", OwnerID: "u1", OriginalPublicID: "chatgpt", CreatedAt: at(0)}))
	require.NoError(t, store.TrainingFavorites.AddFavorite(ctx, "u1", models.FavoriteTraining{ID: "m1", OwnerID: "u1", OriginalPublicID: "basics", CreatedAt: at(0)}))

	require.NoError(t, store.ClearOwner(ctx, "u1"))

	prompts, err := store.Prompts.ListLatest(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, prompts)
	favs, err := store.Prompts.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, favs)
	folders, err := store.Folders.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, folders)
	tools, err := store.ToolFavorites.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, tools)
	training, err := store.TrainingFavorites.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, training)

	others, err := store.Prompts.ListLatest(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids(others))
}
