package memory

import (
	"context"
	"fmt"
	"sync"

	"praia-backend/internal/models"
	"praia-backend/internal/repository"
)

// Snapshot is what FavoriteStore needs to know about a favorite record.
type Snapshot interface {
	FavoriteID() string
	OriginID() string
}

// FavoriteStore keeps favorite snapshots per owner in insertion order. Snapshot ids are
// unique across owners, matching the sql driver's primary key.
type FavoriteStore[F Snapshot] struct {
	mu      sync.RWMutex
	byOwner map[string][]F
	ids     map[string]struct{}
}

var (
	_ repository.FavoriteRepository[models.FavoriteTool]     = (*FavoriteStore[models.FavoriteTool])(nil)
	_ repository.FavoriteRepository[models.FavoriteTraining] = (*FavoriteStore[models.FavoriteTraining])(nil)
	_ repository.PromptRepository                            = (*PromptRepository)(nil)
	_ repository.FolderRepository                            = (*FolderRepository)(nil)
)

func NewFavoriteStore[F Snapshot]() *FavoriteStore[F] {
	return &FavoriteStore[F]{byOwner: make(map[string][]F), ids: make(map[string]struct{})}
}

func (s *FavoriteStore[F]) FindFavorite(ctx context.Context, ownerID, originalID string) (F, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.byOwner[ownerID] {
		if f.OriginID() == originalID {
			return f, nil
		}
	}
	var zero F
	return zero, fmt.Errorf("%w: favorite of %s", models.ErrNotFound, originalID)
}

func (s *FavoriteStore[F]) AddFavorite(ctx context.Context, ownerID string, f F) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byOwner[ownerID] {
		if existing.OriginID() == f.OriginID() {
			return fmt.Errorf("%w: %s is already a favorite", models.ErrValidation, f.OriginID())
		}
	}
	if id := f.FavoriteID(); id != "" {
		if _, taken := s.ids[id]; taken {
			return fmt.Errorf("%w: favorite %s already exists", models.ErrValidation, id)
		}
		s.ids[id] = struct{}{}
	}
	s.byOwner[ownerID] = append(s.byOwner[ownerID], f)
	return nil
}

func (s *FavoriteStore[F]) RemoveFavorite(ctx context.Context, ownerID, originalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.byOwner[ownerID]
	for i, f := range items {
		if f.OriginID() == originalID {
			delete(s.ids, f.FavoriteID())
			s.byOwner[ownerID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: favorite of %s", models.ErrNotFound, originalID)
}

// ListFavorites returns snapshots newest first, which is reverse insertion order.
func (s *FavoriteStore[F]) ListFavorites(ctx context.Context, ownerID string) ([]F, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.byOwner[ownerID]
	out := make([]F, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	return out, nil
}

func (s *FavoriteStore[F]) DeleteByOwner(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.byOwner[ownerID] {
		delete(s.ids, f.FavoriteID())
	}
	delete(s.byOwner, ownerID)
	return nil
}

// NewStore wires a complete in-memory repository.Store.
func NewStore() *repository.Store {
	return &repository.Store{
		Prompts:           NewPromptRepository(),
		Folders:           NewFolderRepository(),
		ToolFavorites:     NewFavoriteStore[models.FavoriteTool](),
		TrainingFavorites: NewFavoriteStore[models.FavoriteTraining](),
	}
}
