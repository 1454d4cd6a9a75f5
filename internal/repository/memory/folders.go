package memory

import (
	"context"
	"fmt"
	"sync"

	"praia-backend/internal/models"
)

type FolderRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]models.PromptFolder
}

func NewFolderRepository() *FolderRepository {
	return &FolderRepository{byOwner: make(map[string][]models.PromptFolder)}
}

func (r *FolderRepository) Create(ctx context.Context, f models.PromptFolder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOwner[f.OwnerID] = append(r.byOwner[f.OwnerID], f)
	return nil
}

func (r *FolderRepository) FindByID(ctx context.Context, ownerID, id string) (models.PromptFolder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.byOwner[ownerID] {
		if f.ID == id {
			return f, nil
		}
	}
	return models.PromptFolder{}, fmt.Errorf("%w: folder %s", models.ErrNotFound, id)
}

// List returns the owner's folders in creation order.
func (r *FolderRepository) List(ctx context.Context, ownerID string) ([]models.PromptFolder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.PromptFolder, len(r.byOwner[ownerID]))
	copy(out, r.byOwner[ownerID])
	return out, nil
}

func (r *FolderRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byOwner, ownerID)
	return nil
}
