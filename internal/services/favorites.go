package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteSpec describes one favoritable entity kind: how to find a catalog entry and
// how to turn it into a stored snapshot.
type FavoriteSpec[C any, F any] struct {
	Kind string

	// Lookup returns the catalog entry with the given id.
	Lookup func(id string) (C, bool)

	// Snapshot builds the record stored for ownerID.
	Snapshot func(entry C, ownerID, id string, at time.Time) F

	// Hydrate, when set, is applied to stored records before they are returned.
	Hydrate func(F) F
}

// ToggleResult reports the state after a toggle. Record is the stored snapshot when
// Favorited is true, and the removed one otherwise.
type ToggleResult[F any] struct {
	Favorited bool
	Record    F
}

// Favorites implements favorite bookkeeping for one entity kind.
type Favorites[C any, F any] struct {
	spec  FavoriteSpec[C, F]
	store repository.FavoriteStore[F]
	clock Clock
	newID func() string
	log   *zap.Logger

	mu sync.Mutex
}

func NewFavorites[C any, F any](spec FavoriteSpec[C, F], store repository.FavoriteStore[F], clock Clock, log *zap.Logger) *Favorites[C, F] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Favorites[C, F]{
		spec:  spec,
		store: store,
		clock: clock,
		newID: uuid.NewString,
		log:   log.With(zap.String("kind", spec.Kind)),
	}
}

// Toggle removes the caller's snapshot of catalogID if there is one, and adds one otherwise.
func (f *Favorites[C, F]) Toggle(ctx context.Context, catalogID string) (ToggleResult[F], error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return ToggleResult[F]{}, err
	}
	entry, ok := f.spec.Lookup(catalogID)
	if !ok {
		return ToggleResult[F]{}, fmt.Errorf("%w: %s %s", models.ErrNotFound, f.spec.Kind, catalogID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.store.FindFavorite(ctx, id.UserID, catalogID)
	switch {
	case err == nil:
		if err := f.store.RemoveFavorite(ctx, id.UserID, catalogID); err != nil {
			return ToggleResult[F]{}, err
		}
		f.log.Info("Favorite removed", zap.String("user_id", id.UserID), zap.String("catalog_id", catalogID))
		return ToggleResult[F]{Favorited: false, Record: f.hydrate(existing)}, nil
	case !errors.Is(err, models.ErrNotFound):
		return ToggleResult[F]{}, err
	}

	snapshot := f.spec.Snapshot(entry, id.UserID, f.newID(), f.clock.Now())
	if err := f.store.AddFavorite(ctx, id.UserID, snapshot); err != nil {
		return ToggleResult[F]{}, err
	}
	f.log.Info("Favorite added", zap.String("user_id", id.UserID), zap.String("catalog_id", catalogID))
	return ToggleResult[F]{Favorited: true, Record: f.hydrate(snapshot)}, nil
}

// Remove deletes the caller's snapshot of catalogID, or fails with models.ErrNotFound.
func (f *Favorites[C, F]) Remove(ctx context.Context, catalogID string) error {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.RemoveFavorite(ctx, id.UserID, catalogID)
}

// IsFavorited reports whether the caller holds a snapshot of catalogID.
func (f *Favorites[C, F]) IsFavorited(ctx context.Context, catalogID string) (bool, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return false, err
	}
	_, err = f.store.FindFavorite(ctx, id.UserID, catalogID)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// List returns the caller's snapshots, newest first.
func (f *Favorites[C, F]) List(ctx context.Context) ([]F, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}
	items, err := f.store.ListFavorites(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = f.hydrate(items[i])
	}
	return items, nil
}

func (f *Favorites[C, F]) hydrate(record F) F {
	if f.spec.Hydrate == nil {
		return record
	}
	return f.spec.Hydrate(record)
}
