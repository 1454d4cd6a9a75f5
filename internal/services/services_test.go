package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"praia-backend/internal/catalog"
	"praia-backend/internal/models"
	"praia-backend/internal/repository"
	"praia-backend/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	cat      *catalog.Catalog
	store    *repository.Store
	clock    *MonotonicClock
	prompts  *PromptService
	tools    *ToolFavorites
	training *TrainingFavorites
	catalog  *CatalogService
	export   *ExportService
}

// fakeNow advances one second per call so stamps are easy to reason about.
type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(time.Second)
	return f.t
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)

	store := memory.NewStore()
	src := &fakeNow{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	clock := NewMonotonicClock(src.Now)
	log := zap.NewNop()

	f := &fixture{cat: cat, store: store, clock: clock}
	f.prompts = NewPromptService(store.Prompts, store.Folders, cat, clock, log)
	f.tools = NewToolFavorites(cat, store.ToolFavorites, clock, log)
	f.training = NewTrainingFavorites(cat, store.TrainingFavorites, clock, log)
	f.catalog = NewCatalogService(cat, f.prompts)
	f.export = NewExportService(f.prompts, f.tools, f.training)
	return f
}

func userCtx(userID string) context.Context {
	return models.WithIdentity(context.Background(), models.Identity{
		UserID: userID,
		Email:  userID + "@example.com",
		Name:   userID,
		Role:   models.RoleUser,
	})
}

func adminCtx() context.Context {
	return models.WithIdentity(context.Background(), models.Identity{
		UserID: "admin",
		Email:  "admin@example.com",
		Name:   "Admin",
		Role:   models.RoleAdmin,
	})
}

func strPtr(s string) *string { return &s }

func draft(title string) models.PromptDraft {
	return models.PromptDraft{
		Title:    title,
		Text:     "Text of " + title,
		Category: models.CategoryWriting,
	}
}
