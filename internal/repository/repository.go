// Package repository defines the storage contracts for session data. Implementations
// live in the memory and sqlstore subpackages; both keep data only for the life of the process.
package repository

import (
	"context"

	"praia-backend/internal/models"
)

// FavoriteStore keeps favorite snapshots of catalog entries for one entity kind.
// At most one snapshot exists per (ownerID, originalID).
type FavoriteStore[F any] interface {
	// FindFavorite returns the owner's snapshot of originalID, or models.ErrNotFound.
	FindFavorite(ctx context.Context, ownerID, originalID string) (F, error)

	// AddFavorite stores f. It fails with models.ErrValidation if the owner already has a
	// snapshot of the same original.
	AddFavorite(ctx context.Context, ownerID string, f F) error

	// RemoveFavorite deletes the owner's snapshot of originalID, or returns models.ErrNotFound.
	RemoveFavorite(ctx context.Context, ownerID, originalID string) error

	// ListFavorites returns the owner's snapshots, newest first.
	ListFavorites(ctx context.Context, ownerID string) ([]F, error)
}

// PromptRepository stores prompt versions. Favorite snapshots of catalog prompts are
// ordinary single-version lineages tagged with models.FavoritedFrom.
type PromptRepository interface {
	FavoriteStore[models.Prompt]

	// Create inserts a new version record.
	Create(ctx context.Context, p models.Prompt) error

	// FindByID returns one version owned by ownerID, or models.ErrNotFound.
	FindByID(ctx context.Context, ownerID, id string) (models.Prompt, error)

	// ListLatest returns the latest version of every lineage the owner has, newest first.
	ListLatest(ctx context.Context, ownerID string) ([]models.Prompt, error)

	// ListHistory returns every version of a lineage ordered by version ascending.
	ListHistory(ctx context.Context, ownerID, historyID string) ([]models.Prompt, error)

	// AppendVersion marks prevID as no longer latest and inserts next, atomically.
	AppendVersion(ctx context.Context, ownerID, prevID string, next models.Prompt) error

	// Delete removes one version. If it was the latest, the remaining version with the
	// highest number becomes latest. Returns models.ErrNotFound for unknown ids.
	Delete(ctx context.Context, ownerID, id string) error

	// SetFolder sets folderID on every version of a lineage.
	SetFolder(ctx context.Context, ownerID, historyID string, folderID *string) error

	// ListPublicLatest returns the latest version of every public owned lineage across owners.
	ListPublicLatest(ctx context.Context) ([]models.Prompt, error)

	// DeleteLineage removes every version of historyID regardless of owner.
	DeleteLineage(ctx context.Context, historyID string) error

	// DeleteByOwner removes all of the owner's prompts.
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// FolderRepository stores prompt folders.
type FolderRepository interface {
	Create(ctx context.Context, f models.PromptFolder) error
	FindByID(ctx context.Context, ownerID, id string) (models.PromptFolder, error)
	List(ctx context.Context, ownerID string) ([]models.PromptFolder, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// OwnerScoped is implemented by stores whose data can be dropped when a session ends.
type OwnerScoped interface {
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// FavoriteRepository is a FavoriteStore that can also be cleared per owner.
type FavoriteRepository[F any] interface {
	FavoriteStore[F]
	OwnerScoped
}

// Store bundles the repositories a session uses.
type Store struct {
	Prompts           PromptRepository
	Folders           FolderRepository
	ToolFavorites     FavoriteRepository[models.FavoriteTool]
	TrainingFavorites FavoriteRepository[models.FavoriteTraining]
}

// ClearOwner drops everything ownerID has stored.
func (s *Store) ClearOwner(ctx context.Context, ownerID string) error {
	for _, r := range []OwnerScoped{s.Prompts, s.Folders, s.ToolFavorites, s.TrainingFavorites} {
		if err := r.DeleteByOwner(ctx, ownerID); err != nil {
			return err
		}
	}
	return nil
}
