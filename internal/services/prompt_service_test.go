package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"praia-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePrompt(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	p, err := f.prompts.Create(ctx, models.PromptDraft{
		Title:       "  Weekly report  ",
		Text:        "Summarize my week",
		Description: "Status update",
		Category:    models.CategoryBusiness,
		Framework:   models.FrameworkRTF,
		IsPublic:    true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, p.ID, p.HistoryID)
	assert.Equal(t, models.FirstRevision(), p.Revision)
	assert.Equal(t, "Weekly report", p.Title)
	assert.Equal(t, "u1", p.OwnerID)
	assert.False(t, p.IsFavorited())
	assert.False(t, p.CreatedAt.IsZero())

	got, err := f.prompts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
}

func TestCreatePromptValidation(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	tests := []struct {
		name  string
		draft models.PromptDraft
	}{
		{name: "missing title", draft: models.PromptDraft{Text: "x", Category: models.CategoryWriting}},
		{name: "blank text", draft: models.PromptDraft{Title: "t", Text: "   ", Category: models.CategoryWriting}},
		{name: "missing category", draft: models.PromptDraft{Title: "t", Text: "x"}},
		{name: "unknown category", draft: models.PromptDraft{Title: "t", Text: "x", Category: "Cooking"}},
		{name: "unknown framework", draft: models.PromptDraft{Title: "t", Text: "x", Category: models.CategoryWriting, Framework: "BOGUS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.prompts.Create(ctx, tt.draft)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	d := draft("In a folder")
	d.FolderID = strPtr("missing")
	_, err := f.prompts.Create(ctx, d)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOperationsRequireIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.prompts.Create(ctx, draft("x"))
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	_, err = f.prompts.Update(ctx, "id", models.PromptPatch{})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.ErrorIs(t, f.prompts.Delete(ctx, "id"), models.ErrUnauthenticated)
	_, err = f.prompts.ToggleFavorite(ctx, "linux-terminal-rtf")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	_, err = f.prompts.HistoryOf(ctx, "h")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	_, err = f.prompts.CreateFolder(ctx, "Work")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	_, err = f.tools.Toggle(ctx, "chatgpt")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestUpdateAppendsVersions(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	first, err := f.prompts.Create(ctx, draft("Original"))
	require.NoError(t, err)

	current := first
	const updates = 5
	for i := 1; i <= updates; i++ {
		title := fmt.Sprintf("Edit %d", i)
		current, err = f.prompts.Update(ctx, current.ID, models.PromptPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, i+1, current.Version())
		assert.Equal(t, first.HistoryID, current.HistoryID)
		assert.NotEqual(t, first.ID, current.ID)
	}

	history, err := f.prompts.HistoryOf(ctx, first.HistoryID)
	require.NoError(t, err)
	require.Len(t, history, updates+1)

	latest := 0
	for i, p := range history {
		assert.Equal(t, i+1, p.Version())
		if p.IsLatest() {
			latest++
			assert.Equal(t, updates+1, p.Version())
			assert.Equal(t, "Edit 5", p.Title)
		}
		if i > 0 {
			assert.True(t, p.CreatedAt.After(history[i-1].CreatedAt))
		}
	}
	assert.Equal(t, 1, latest)

	list, err := f.prompts.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, current.ID, list[0].ID)
}

func TestUpdateFromOlderVersion(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	v1, err := f.prompts.Create(ctx, draft("Original"))
	require.NoError(t, err)
	text := "second text"
	v2, err := f.prompts.Update(ctx, v1.ID, models.PromptPatch{Text: &text})
	require.NoError(t, err)

	// Editing v1 again restores its text into a new v3.
	title := "Restored"
	v3, err := f.prompts.Update(ctx, v1.ID, models.PromptPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, 3, v3.Version())
	assert.Equal(t, v1.Text, v3.Text)

	old, err := f.prompts.Get(ctx, v2.ID)
	require.NoError(t, err)
	assert.False(t, old.IsLatest())
}

func TestUpdateErrors(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	_, err := f.prompts.Update(ctx, "missing", models.PromptPatch{})
	assert.ErrorIs(t, err, models.ErrNotFound)

	p, err := f.prompts.Create(ctx, draft("Mine"))
	require.NoError(t, err)
	_, err = f.prompts.Update(userCtx("u2"), p.ID, models.PromptPatch{})
	assert.ErrorIs(t, err, models.ErrNotFound)

	empty := ""
	_, err = f.prompts.Update(ctx, p.ID, models.PromptPatch{Title: &empty})
	assert.ErrorIs(t, err, models.ErrValidation)

	res, err := f.prompts.ToggleFavorite(ctx, "linux-terminal-rtf")
	require.NoError(t, err)
	title := "changed"
	_, err = f.prompts.Update(ctx, res.Record.ID, models.PromptPatch{Title: &title})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDeletePromotesPreviousVersion(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	v1, err := f.prompts.Create(ctx, draft("Original"))
	require.NoError(t, err)
	title := "Second"
	v2, err := f.prompts.Update(ctx, v1.ID, models.PromptPatch{Title: &title})
	require.NoError(t, err)

	require.NoError(t, f.prompts.Delete(ctx, v2.ID))
	got, err := f.prompts.Get(ctx, v1.ID)
	require.NoError(t, err)
	assert.True(t, got.IsLatest())

	assert.ErrorIs(t, f.prompts.Delete(ctx, v2.ID), models.ErrNotFound)

	require.NoError(t, f.prompts.Delete(ctx, v1.ID))
	_, err = f.prompts.HistoryOf(ctx, v1.HistoryID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteFavoriteUnfavorites(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	res, err := f.prompts.ToggleFavorite(ctx, "blog-outline-care")
	require.NoError(t, err)
	require.True(t, res.Favorited)

	require.NoError(t, f.prompts.Delete(ctx, res.Record.ID))
	fav, err := f.prompts.IsFavorited(ctx, "blog-outline-care")
	require.NoError(t, err)
	assert.False(t, fav)

	_, ok := f.cat.Prompt("blog-outline-care")
	assert.True(t, ok)
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	before, err := f.prompts.List(ctx, ListFilter{})
	require.NoError(t, err)

	on, err := f.prompts.ToggleFavorite(ctx, "linux-terminal-tag")
	require.NoError(t, err)
	assert.True(t, on.Favorited)
	assert.True(t, on.Record.IsFavorited())
	assert.Equal(t, "linux-terminal-tag", on.Record.OriginalPublicID())
	assert.NotEqual(t, "linux-terminal-tag", on.Record.ID)
	assert.Equal(t, "Linux Terminal", on.Record.Title)

	fav, err := f.prompts.IsFavorited(ctx, "linux-terminal-tag")
	require.NoError(t, err)
	assert.True(t, fav)

	off, err := f.prompts.ToggleFavorite(ctx, "linux-terminal-tag")
	require.NoError(t, err)
	assert.False(t, off.Favorited)

	after, err := f.prompts.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
	favs, err := f.prompts.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestToggleFavoriteUnknownCatalogID(t *testing.T) {
	f := newFixture(t)
	_, err := f.prompts.ToggleFavorite(userCtx("u1"), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConcurrentTogglesKeepOneFavorite(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.prompts.ToggleFavorite(ctx, "study-plan-rise")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	favs, err := f.prompts.ListFavorites(ctx)
	require.NoError(t, err)
	// An even number of toggles ends un-favorited.
	assert.Empty(t, favs)

	_, err = f.prompts.ToggleFavorite(ctx, "study-plan-rise")
	require.NoError(t, err)
	favs, err = f.prompts.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestFoldersAndMove(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	work, err := f.prompts.CreateFolder(ctx, "Work")
	require.NoError(t, err)
	dup, err := f.prompts.CreateFolder(ctx, "Work")
	require.NoError(t, err)
	assert.NotEqual(t, work.ID, dup.ID)

	_, err = f.prompts.CreateFolder(ctx, "   ")
	assert.ErrorIs(t, err, models.ErrValidation)

	folders, err := f.prompts.ListFolders(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 2)

	v1, err := f.prompts.Create(ctx, draft("Filed"))
	require.NoError(t, err)
	title := "Filed v2"
	v2, err := f.prompts.Update(ctx, v1.ID, models.PromptPatch{Title: &title})
	require.NoError(t, err)
	loose, err := f.prompts.Create(ctx, draft("Loose"))
	require.NoError(t, err)

	moved, err := f.prompts.MoveToFolder(ctx, v1.ID, &work.ID)
	require.NoError(t, err)
	assert.True(t, moved.InFolder(&work.ID))
	assert.Equal(t, 1, moved.Version())

	history, err := f.prompts.HistoryOf(ctx, v1.HistoryID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, p := range history {
		assert.True(t, p.InFolder(&work.ID))
	}
	assert.True(t, history[1].IsLatest())

	inWork, err := f.prompts.List(ctx, ListFilter{FolderID: &work.ID})
	require.NoError(t, err)
	require.Len(t, inWork, 1)
	assert.Equal(t, v2.ID, inWork[0].ID)

	unfiled, err := f.prompts.List(ctx, ListFilter{Unfiled: true})
	require.NoError(t, err)
	require.Len(t, unfiled, 1)
	assert.Equal(t, loose.ID, unfiled[0].ID)

	_, err = f.prompts.MoveToFolder(ctx, v1.ID, strPtr("missing"))
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.prompts.MoveToFolder(ctx, "missing", &work.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	out, err := f.prompts.MoveToFolder(ctx, v2.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, out.FolderID)
}

func TestUpdateKeepsFolder(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	folder, err := f.prompts.CreateFolder(ctx, "Work")
	require.NoError(t, err)
	d := draft("Filed")
	d.FolderID = &folder.ID
	p, err := f.prompts.Create(ctx, d)
	require.NoError(t, err)

	title := "v2"
	next, err := f.prompts.Update(ctx, p.ID, models.PromptPatch{Title: &title})
	require.NoError(t, err)
	assert.True(t, next.InFolder(&folder.ID))
}

func TestPromptsAreScopedToOwner(t *testing.T) {
	f := newFixture(t)

	p, err := f.prompts.Create(userCtx("u1"), draft("Private"))
	require.NoError(t, err)

	others, err := f.prompts.List(userCtx("u2"), ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, others)

	_, err = f.prompts.Get(userCtx("u2"), p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, f.prompts.Delete(userCtx("u2"), p.ID), models.ErrNotFound)
}

func TestRemovePublicLineage(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	d := draft("Shared")
	d.IsPublic = true
	p, err := f.prompts.Create(ctx, d)
	require.NoError(t, err)
	private, err := f.prompts.Create(ctx, draft("Private"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.prompts.RemovePublicLineage(ctx, p.HistoryID), models.ErrForbidden)
	assert.ErrorIs(t, f.prompts.RemovePublicLineage(adminCtx(), private.HistoryID), models.ErrNotFound)

	require.NoError(t, f.prompts.RemovePublicLineage(adminCtx(), p.HistoryID))
	_, err = f.prompts.HistoryOf(ctx, p.HistoryID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
