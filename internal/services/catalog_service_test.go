package services

import (
	"testing"

	"praia-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogListPromptsGroupsByTitle(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	page, err := f.catalog.ListPrompts(ctx, Query{Limit: MaxPageSize})
	require.NoError(t, err)

	group, err := f.catalog.GetPrompt(ctx, "linux-terminal")
	require.NoError(t, err)
	assert.Equal(t, []models.Framework{models.FrameworkRTF, models.FrameworkTAG}, group.Frameworks)
	assert.Equal(t, models.GroupSourceCatalog, group.Source)
	require.Len(t, group.Members, 2)

	seen := map[string]bool{}
	for _, g := range page.Items {
		assert.False(t, seen[g.Title], "title %q grouped twice", g.Title)
		seen[g.Title] = true
	}
	assert.Equal(t, len(page.Items), page.Total)

	_, err = f.catalog.GetPrompt(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCatalogIncludesCommunityPrompts(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	d := draft("Linux Terminal")
	d.IsPublic = true
	d.Framework = models.FrameworkRISE
	shared, err := f.prompts.Create(ctx, d)
	require.NoError(t, err)
	_, err = f.prompts.Create(ctx, draft("Private"))
	require.NoError(t, err)

	page, err := f.catalog.ListPrompts(userCtx("u2"), Query{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	// Community prompts are newest, so they lead the listing.
	assert.Equal(t, shared.HistoryID, page.Items[0].ID)
	assert.Equal(t, models.GroupSourceCommunity, page.Items[0].Source)

	group, err := f.catalog.GetPrompt(ctx, "linux-terminal")
	require.NoError(t, err)
	assert.Len(t, group.Members, 2)

	// Editing keeps the community group id stable.
	title := "Linux Terminal v2"
	_, err = f.prompts.Update(ctx, shared.ID, models.PromptPatch{Title: &title})
	require.NoError(t, err)
	group, err = f.catalog.GetPrompt(ctx, shared.HistoryID)
	require.NoError(t, err)
	assert.Equal(t, "Linux Terminal v2", group.Title)

	for _, g := range page.Items {
		assert.NotEqual(t, "Private", g.Title)
	}
}

func TestCatalogFiltersAndPagination(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	all, err := f.catalog.ListPrompts(ctx, Query{Limit: MaxPageSize})
	require.NoError(t, err)

	byFramework, err := f.catalog.ListPrompts(ctx, Query{Framework: models.FrameworkTAG})
	require.NoError(t, err)
	require.NotEmpty(t, byFramework.Items)
	for _, g := range byFramework.Items {
		_, ok := g.Member(models.FrameworkTAG)
		assert.True(t, ok, g.ID)
	}

	byCategory, err := f.catalog.ListPrompts(ctx, Query{Category: models.CategoryCoding})
	require.NoError(t, err)
	for _, g := range byCategory.Items {
		assert.Equal(t, models.CategoryCoding, g.Category)
	}

	search, err := f.catalog.ListPrompts(ctx, Query{Search: "  LINUX "})
	require.NoError(t, err)
	require.Len(t, search.Items, 1)
	assert.Equal(t, "linux-terminal", search.Items[0].ID)

	first, err := f.catalog.ListPrompts(ctx, Query{Page: 1, Limit: 2})
	require.NoError(t, err)
	second, err := f.catalog.ListPrompts(ctx, Query{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, all.Items[2].ID, second.Items[0].ID)
	assert.Equal(t, all.Total, first.Total)

	beyond, err := f.catalog.ListPrompts(ctx, Query{Page: 99})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, DefaultPageSize, beyond.Limit)
}

func TestQueryNormalization(t *testing.T) {
	q := Query{Page: -1, Limit: 1000}.normalized()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxPageSize, q.Limit)

	q = Query{}.normalized()
	assert.Equal(t, DefaultPageSize, q.Limit)
}

func TestPaginateBeyondLastPage(t *testing.T) {
	items := []int{1, 2, 3}

	var page Page[int]
	require.NotPanics(t, func() {
		page = paginate(items, Query{Page: 92233720368547760, Limit: 100}.normalized())
	})
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)

	page = paginate(items, Query{Page: 2, Limit: 2}.normalized())
	assert.Equal(t, []int{3}, page.Items)

	page = paginate(items, Query{Page: 3, Limit: 1}.normalized())
	assert.Equal(t, []int{3}, page.Items)
	assert.Empty(t, paginate(items, Query{Page: 4, Limit: 1}.normalized()).Items)
}

func TestCatalogToolsAndTraining(t *testing.T) {
	f := newFixture(t)

	tools := f.catalog.ListTools(Query{Search: "gemini"})
	require.Len(t, tools.Items, 1)
	assert.Equal(t, "gemini", tools.Items[0].ID)

	none := f.catalog.ListTools(Query{Search: "zzz-no-match"})
	assert.NotNil(t, none.Items)
	assert.Zero(t, none.Total)

	training := f.catalog.ListTraining(Query{})
	assert.Equal(t, 3, training.Total)

	m, err := f.catalog.GetTraining("prompting-basics")
	require.NoError(t, err)
	assert.NotEmpty(t, m.Content)
	_, err = f.catalog.GetTraining("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
