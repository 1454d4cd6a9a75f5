package services

import (
	"time"

	"praia-backend/internal/catalog"
	"praia-backend/internal/models"
	"praia-backend/internal/repository"

	"go.uber.org/zap"
)

type (
	PromptFavorites   = Favorites[models.Prompt, models.Prompt]
	ToolFavorites     = Favorites[models.AITool, models.FavoriteTool]
	TrainingFavorites = Favorites[models.TrainingModule, models.FavoriteTraining]
)

// PromptFavoriteSpec snapshots catalog prompts into single-version lineages.
func PromptFavoriteSpec(cat *catalog.Catalog) FavoriteSpec[models.Prompt, models.Prompt] {
	return FavoriteSpec[models.Prompt, models.Prompt]{
		Kind:   "prompt",
		Lookup: cat.Prompt,
		Snapshot: func(entry models.Prompt, ownerID, id string, at time.Time) models.Prompt {
			p := entry
			p.ID = id
			p.OwnerID = ownerID
			p.HistoryID = id
			p.Revision = models.FirstRevision()
			p.FolderID = nil
			p.IsPublic = false
			p.Origin = models.FavoritedFrom{OriginalID: entry.ID}
			p.CreatedAt = at
			return p
		},
	}
}

func ToolFavoriteSpec(cat *catalog.Catalog) FavoriteSpec[models.AITool, models.FavoriteTool] {
	return FavoriteSpec[models.AITool, models.FavoriteTool]{
		Kind:   "tool",
		Lookup: cat.Tool,
		Snapshot: func(entry models.AITool, ownerID, id string, at time.Time) models.FavoriteTool {
			return models.FavoriteTool{
				ID:               id,
				OwnerID:          ownerID,
				OriginalPublicID: entry.ID,
				Tool:             entry,
				CreatedAt:        at,
			}
		},
	}
}

// TrainingFavoriteSpec stores training snapshots without their lessons and restores them
// from the catalog on read.
func TrainingFavoriteSpec(cat *catalog.Catalog) FavoriteSpec[models.TrainingModule, models.FavoriteTraining] {
	return FavoriteSpec[models.TrainingModule, models.FavoriteTraining]{
		Kind:   "training",
		Lookup: cat.TrainingModule,
		Snapshot: func(entry models.TrainingModule, ownerID, id string, at time.Time) models.FavoriteTraining {
			entry.Content = nil
			return models.FavoriteTraining{
				ID:               id,
				OwnerID:          ownerID,
				OriginalPublicID: entry.ID,
				Module:           entry,
				CreatedAt:        at,
			}
		},
		Hydrate: func(f models.FavoriteTraining) models.FavoriteTraining {
			return RehydrateTraining(cat, f)
		},
	}
}

// RehydrateTraining fills in the lessons of a stored training snapshot. Snapshots of
// modules no longer in the catalog are returned unchanged.
func RehydrateTraining(cat *catalog.Catalog, f models.FavoriteTraining) models.FavoriteTraining {
	if m, ok := cat.TrainingModule(f.OriginalPublicID); ok {
		f.Module.Content = m.Content
	}
	return f
}

func NewToolFavorites(cat *catalog.Catalog, store repository.FavoriteStore[models.FavoriteTool], clock Clock, log *zap.Logger) *ToolFavorites {
	return NewFavorites(ToolFavoriteSpec(cat), store, clock, log)
}

func NewTrainingFavorites(cat *catalog.Catalog, store repository.FavoriteStore[models.FavoriteTraining], clock Clock, log *zap.Logger) *TrainingFavorites {
	return NewFavorites(TrainingFavoriteSpec(cat), store, clock, log)
}
