// Package memory implements the repository contracts with plain maps guarded by a mutex.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"praia-backend/internal/models"
)

type PromptRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]models.Prompt
}

func NewPromptRepository() *PromptRepository {
	return &PromptRepository{byOwner: make(map[string][]models.Prompt)}
}

func clonePrompt(p models.Prompt) models.Prompt {
	if p.FolderID != nil {
		id := *p.FolderID
		p.FolderID = &id
	}
	return p
}

func newestFirst(ps []models.Prompt) {
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}

func (r *PromptRepository) indexOf(ownerID, id string) int {
	for i, p := range r.byOwner[ownerID] {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *PromptRepository) Create(ctx context.Context, p models.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(p.OwnerID, p.ID) >= 0 {
		return fmt.Errorf("%w: prompt %s already exists", models.ErrValidation, p.ID)
	}
	r.byOwner[p.OwnerID] = append(r.byOwner[p.OwnerID], clonePrompt(p))
	return nil
}

func (r *PromptRepository) FindByID(ctx context.Context, ownerID, id string) (models.Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(ownerID, id)
	if i < 0 {
		return models.Prompt{}, fmt.Errorf("%w: prompt %s", models.ErrNotFound, id)
	}
	return clonePrompt(r.byOwner[ownerID][i]), nil
}

func (r *PromptRepository) ListLatest(ctx context.Context, ownerID string) ([]models.Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Prompt{}
	for _, p := range r.byOwner[ownerID] {
		if p.IsLatest() {
			out = append(out, clonePrompt(p))
		}
	}
	newestFirst(out)
	return out, nil
}

func (r *PromptRepository) ListHistory(ctx context.Context, ownerID, historyID string) ([]models.Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Prompt{}
	for _, p := range r.byOwner[ownerID] {
		if p.HistoryID == historyID {
			out = append(out, clonePrompt(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Version() < out[j].Version() })
	return out, nil
}

func (r *PromptRepository) AppendVersion(ctx context.Context, ownerID, prevID string, next models.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(ownerID, prevID)
	if i < 0 {
		return fmt.Errorf("%w: prompt %s", models.ErrNotFound, prevID)
	}
	if r.indexOf(ownerID, next.ID) >= 0 {
		return fmt.Errorf("%w: prompt %s already exists", models.ErrValidation, next.ID)
	}
	r.byOwner[ownerID][i].Revision.IsLatest = false
	r.byOwner[ownerID] = append(r.byOwner[ownerID], clonePrompt(next))
	return nil
}

func (r *PromptRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := r.byOwner[ownerID]
	i := r.indexOf(ownerID, id)
	if i < 0 {
		return fmt.Errorf("%w: prompt %s", models.ErrNotFound, id)
	}
	removed := records[i]
	records = append(records[:i], records[i+1:]...)
	r.byOwner[ownerID] = records

	if !removed.IsLatest() {
		return nil
	}
	promote := -1
	for j, p := range records {
		if p.HistoryID == removed.HistoryID && (promote < 0 || p.Version() > records[promote].Version()) {
			promote = j
		}
	}
	if promote >= 0 {
		records[promote].Revision.IsLatest = true
	}
	return nil
}

func (r *PromptRepository) SetFolder(ctx context.Context, ownerID, historyID string, folderID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for i, p := range r.byOwner[ownerID] {
		if p.HistoryID != historyID {
			continue
		}
		found = true
		if folderID == nil {
			r.byOwner[ownerID][i].FolderID = nil
		} else {
			id := *folderID
			r.byOwner[ownerID][i].FolderID = &id
		}
	}
	if !found {
		return fmt.Errorf("%w: prompt lineage %s", models.ErrNotFound, historyID)
	}
	return nil
}

func (r *PromptRepository) ListPublicLatest(ctx context.Context) ([]models.Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Prompt{}
	for _, records := range r.byOwner {
		for _, p := range records {
			if p.IsLatest() && p.IsPublic && !p.IsFavorited() {
				out = append(out, clonePrompt(p))
			}
		}
	}
	newestFirst(out)
	return out, nil
}

func (r *PromptRepository) DeleteLineage(ctx context.Context, historyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for owner, records := range r.byOwner {
		kept := records[:0]
		for _, p := range records {
			if p.HistoryID == historyID {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		r.byOwner[owner] = kept
	}
	if !found {
		return fmt.Errorf("%w: prompt lineage %s", models.ErrNotFound, historyID)
	}
	return nil
}

func (r *PromptRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byOwner, ownerID)
	return nil
}

func (r *PromptRepository) FindFavorite(ctx context.Context, ownerID, originalID string) (models.Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.byOwner[ownerID] {
		if p.IsFavorited() && p.OriginalPublicID() == originalID {
			return clonePrompt(p), nil
		}
	}
	return models.Prompt{}, fmt.Errorf("%w: favorite of %s", models.ErrNotFound, originalID)
}

func (r *PromptRepository) AddFavorite(ctx context.Context, ownerID string, p models.Prompt) error {
	if !p.IsFavorited() {
		return fmt.Errorf("%w: prompt %s is not a favorite snapshot", models.ErrValidation, p.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byOwner[ownerID] {
		if existing.OriginalPublicID() == p.OriginalPublicID() {
			return fmt.Errorf("%w: %s is already a favorite", models.ErrValidation, p.OriginalPublicID())
		}
	}
	p.OwnerID = ownerID
	r.byOwner[ownerID] = append(r.byOwner[ownerID], clonePrompt(p))
	return nil
}

func (r *PromptRepository) RemoveFavorite(ctx context.Context, ownerID, originalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := r.byOwner[ownerID]
	for i, p := range records {
		if p.IsFavorited() && p.OriginalPublicID() == originalID {
			r.byOwner[ownerID] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: favorite of %s", models.ErrNotFound, originalID)
}

func (r *PromptRepository) ListFavorites(ctx context.Context, ownerID string) ([]models.Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Prompt{}
	for _, p := range r.byOwner[ownerID] {
		if p.IsFavorited() {
			out = append(out, clonePrompt(p))
		}
	}
	newestFirst(out)
	return out, nil
}
