package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"praia-backend/internal/catalog"
	"praia-backend/internal/models"
	"praia-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListFilter narrows PromptService.List. With FolderID set only that folder is listed;
// with Unfiled set only prompts outside every folder are listed.
type ListFilter struct {
	FolderID *string
	Unfiled  bool
}

func (f ListFilter) match(p models.Prompt) bool {
	switch {
	case f.FolderID != nil:
		return p.InFolder(f.FolderID)
	case f.Unfiled:
		return p.FolderID == nil
	default:
		return true
	}
}

// PromptService owns the caller's prompts, prompt versions, folders and prompt favorites.
type PromptService struct {
	prompts   repository.PromptRepository
	folders   repository.FolderRepository
	favorites *PromptFavorites
	clock     Clock
	newID     func() string
	log       *zap.Logger

	// mu serializes read-then-write sequences on lineages.
	mu sync.Mutex
}

func NewPromptService(prompts repository.PromptRepository, folders repository.FolderRepository, cat *catalog.Catalog, clock Clock, log *zap.Logger) *PromptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PromptService{
		prompts:   prompts,
		folders:   folders,
		favorites: NewFavorites(PromptFavoriteSpec(cat), prompts, clock, log),
		clock:     clock,
		newID:     uuid.NewString,
		log:       log,
	}
}

// Create starts a new lineage from draft.
func (s *PromptService) Create(ctx context.Context, draft models.PromptDraft) (models.Prompt, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return models.Prompt{}, err
	}
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	if strings.TrimSpace(draft.Text) == "" {
		draft.Text = ""
	}
	if err := validateStruct(draft); err != nil {
		return models.Prompt{}, err
	}
	if err := checkTaxonomy(draft.Category, draft.Framework); err != nil {
		return models.Prompt{}, err
	}
	if draft.FolderID != nil {
		if _, err := s.folders.FindByID(ctx, id.UserID, *draft.FolderID); err != nil {
			return models.Prompt{}, err
		}
	}

	promptID := s.newID()
	p := models.Prompt{
		ID:          promptID,
		OwnerID:     id.UserID,
		HistoryID:   promptID,
		Revision:    models.FirstRevision(),
		Title:       draft.Title,
		Text:        draft.Text,
		Description: draft.Description,
		Category:    draft.Category,
		Framework:   draft.Framework,
		FolderID:    draft.FolderID,
		IsPublic:    draft.IsPublic,
		Origin:      models.Owned{},
		CreatedAt:   s.clock.Now(),
	}
	if err := s.prompts.Create(ctx, p); err != nil {
		return models.Prompt{}, err
	}
	s.log.Info("Prompt created", zap.String("user_id", id.UserID), zap.String("prompt_id", p.ID))
	return p, nil
}

// Update appends a new version built from the version id with patch applied. The new
// version becomes the lineage's only latest version.
func (s *PromptService) Update(ctx context.Context, promptID string, patch models.PromptPatch) (models.Prompt, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return models.Prompt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	edited, err := s.prompts.FindByID(ctx, id.UserID, promptID)
	if err != nil {
		return models.Prompt{}, err
	}
	if edited.IsFavorited() {
		return models.Prompt{}, fmt.Errorf("%w: favorite %s is read-only", models.ErrValidation, promptID)
	}

	history, err := s.prompts.ListHistory(ctx, id.UserID, edited.HistoryID)
	if err != nil {
		return models.Prompt{}, err
	}
	latest := edited
	maxVersion := 0
	for _, v := range history {
		if v.IsLatest() {
			latest = v
		}
		if v.Version() > maxVersion {
			maxVersion = v.Version()
		}
	}

	next := patch.Apply(edited)
	next.Title = strings.TrimSpace(next.Title)
	next.Description = strings.TrimSpace(next.Description)
	if err := validateStruct(models.PromptDraft{
		Title:       next.Title,
		Text:        strings.TrimSpace(next.Text),
		Description: next.Description,
		Category:    next.Category,
	}); err != nil {
		return models.Prompt{}, err
	}
	if err := checkTaxonomy(next.Category, next.Framework); err != nil {
		return models.Prompt{}, err
	}

	next.ID = s.newID()
	next.Revision = models.Revision{Version: maxVersion + 1, IsLatest: true}
	next.FolderID = latest.FolderID
	next.CreatedAt = s.clock.Now()
	if err := s.prompts.AppendVersion(ctx, id.UserID, latest.ID, next); err != nil {
		return models.Prompt{}, err
	}
	s.log.Info("Prompt version appended",
		zap.String("user_id", id.UserID),
		zap.String("history_id", next.HistoryID),
		zap.Int("version", next.Version()),
	)
	return next, nil
}

// Delete removes one version. Deleting a favorite snapshot un-favorites it.
func (s *PromptService) Delete(ctx context.Context, promptID string) error {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.prompts.FindByID(ctx, id.UserID, promptID)
	if err != nil {
		return err
	}
	if p.IsFavorited() {
		return s.favorites.Remove(ctx, p.OriginalPublicID())
	}
	if err := s.prompts.Delete(ctx, id.UserID, promptID); err != nil {
		return err
	}
	s.log.Info("Prompt version deleted", zap.String("user_id", id.UserID), zap.String("prompt_id", promptID))
	return nil
}

// ToggleFavorite adds or removes the caller's snapshot of a catalog prompt.
func (s *PromptService) ToggleFavorite(ctx context.Context, catalogID string) (ToggleResult[models.Prompt], error) {
	return s.favorites.Toggle(ctx, catalogID)
}

func (s *PromptService) IsFavorited(ctx context.Context, catalogID string) (bool, error) {
	return s.favorites.IsFavorited(ctx, catalogID)
}

func (s *PromptService) ListFavorites(ctx context.Context) ([]models.Prompt, error) {
	return s.favorites.List(ctx)
}

// HistoryOf returns every version of a lineage, oldest first.
func (s *PromptService) HistoryOf(ctx context.Context, historyID string) ([]models.Prompt, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.prompts.ListHistory(ctx, id.UserID, historyID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: prompt lineage %s", models.ErrNotFound, historyID)
	}
	return history, nil
}

// MoveToFolder files the whole lineage of promptID under folderID, or takes it out of
// every folder when folderID is nil.
func (s *PromptService) MoveToFolder(ctx context.Context, promptID string, folderID *string) (models.Prompt, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return models.Prompt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.prompts.FindByID(ctx, id.UserID, promptID)
	if err != nil {
		return models.Prompt{}, err
	}
	if folderID != nil {
		if _, err := s.folders.FindByID(ctx, id.UserID, *folderID); err != nil {
			return models.Prompt{}, err
		}
	}
	if err := s.prompts.SetFolder(ctx, id.UserID, p.HistoryID, folderID); err != nil {
		return models.Prompt{}, err
	}
	return s.prompts.FindByID(ctx, id.UserID, promptID)
}

func (s *PromptService) Get(ctx context.Context, promptID string) (models.Prompt, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return models.Prompt{}, err
	}
	return s.prompts.FindByID(ctx, id.UserID, promptID)
}

// List returns the latest version of each of the caller's lineages, newest first.
func (s *PromptService) List(ctx context.Context, filter ListFilter) ([]models.Prompt, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.prompts.ListLatest(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	out := latest[:0]
	for _, p := range latest {
		if filter.match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// CreateFolder adds a folder. Names need not be unique.
func (s *PromptService) CreateFolder(ctx context.Context, name string) (models.PromptFolder, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return models.PromptFolder{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.PromptFolder{}, fmt.Errorf("%w: folder name is required", models.ErrValidation)
	}
	f := models.PromptFolder{
		ID:        s.newID(),
		OwnerID:   id.UserID,
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.folders.Create(ctx, f); err != nil {
		return models.PromptFolder{}, err
	}
	return f, nil
}

func (s *PromptService) ListFolders(ctx context.Context) ([]models.PromptFolder, error) {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}
	return s.folders.List(ctx, id.UserID)
}

// CommunityPrompts returns the latest version of every public user-authored lineage.
func (s *PromptService) CommunityPrompts(ctx context.Context) ([]models.Prompt, error) {
	return s.prompts.ListPublicLatest(ctx)
}

// RemovePublicLineage lets an admin take a community prompt down. The admin check is a
// placeholder driven by ADMIN_EMAIL.
func (s *PromptService) RemovePublicLineage(ctx context.Context, historyID string) error {
	id, err := models.IdentityFrom(ctx)
	if err != nil {
		return err
	}
	if !id.IsAdmin() {
		return fmt.Errorf("%w: admin only", models.ErrForbidden)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	public, err := s.prompts.ListPublicLatest(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, p := range public {
		if p.HistoryID == historyID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: public prompt %s", models.ErrNotFound, historyID)
	}
	if err := s.prompts.DeleteLineage(ctx, historyID); err != nil {
		return err
	}
	s.log.Warn("Public prompt removed by admin", zap.String("admin", id.Email), zap.String("history_id", historyID))
	return nil
}
