package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	kindTool     = "tool"
	kindTraining = "training"
)

// favoriteRow stores a tool or training snapshot as a JSON payload.
type favoriteRow struct {
	ID         string         `gorm:"primaryKey;size:64"`
	OwnerID    string         `gorm:"not null;uniqueIndex:idx_favorites_owner_kind_original,priority:1"`
	Kind       string         `gorm:"not null;size:16;uniqueIndex:idx_favorites_owner_kind_original,priority:2"`
	OriginalID string         `gorm:"not null;uniqueIndex:idx_favorites_owner_kind_original,priority:3"`
	Payload    datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
}

func (favoriteRow) TableName() string {
	return "favorites"
}

// Snapshot is what FavoriteStore needs to know about a favorite record.
type Snapshot interface {
	FavoriteID() string
	OriginID() string
	FavoritedAt() time.Time
}

// FavoriteStore persists one kind of favorite snapshot in the shared favorites table.
type FavoriteStore[F Snapshot] struct {
	db   *gorm.DB
	kind string
}

var (
	_ repository.FavoriteRepository[models.FavoriteTool]     = (*FavoriteStore[models.FavoriteTool])(nil)
	_ repository.FavoriteRepository[models.FavoriteTraining] = (*FavoriteStore[models.FavoriteTraining])(nil)
	_ repository.PromptRepository                            = (*PromptRepository)(nil)
	_ repository.FolderRepository                            = (*FolderRepository)(nil)
)

func NewToolFavorites(db *gorm.DB) *FavoriteStore[models.FavoriteTool] {
	return &FavoriteStore[models.FavoriteTool]{db: db, kind: kindTool}
}

func NewTrainingFavorites(db *gorm.DB) *FavoriteStore[models.FavoriteTraining] {
	return &FavoriteStore[models.FavoriteTraining]{db: db, kind: kindTraining}
}

func (s *FavoriteStore[F]) decode(row favoriteRow) (F, error) {
	var f F
	if err := json.Unmarshal(row.Payload, &f); err != nil {
		return f, fmt.Errorf("decode %s favorite %s: %w", s.kind, row.ID, err)
	}
	return f, nil
}

func (s *FavoriteStore[F]) FindFavorite(ctx context.Context, ownerID, originalID string) (F, error) {
	var row favoriteRow
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND original_id = ?", ownerID, s.kind, originalID).
		First(&row).Error
	if err != nil {
		var zero F
		return zero, notFound(err, "favorite of "+originalID)
	}
	return s.decode(row)
}

func (s *FavoriteStore[F]) AddFavorite(ctx context.Context, ownerID string, f F) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode %s favorite: %w", s.kind, err)
	}
	id := f.FavoriteID()
	if id == "" {
		id = uuid.NewString()
	}
	row := favoriteRow{
		ID:         id,
		OwnerID:    ownerID,
		Kind:       s.kind,
		OriginalID: f.OriginID(),
		Payload:    datatypes.JSON(payload),
		CreatedAt:  f.FavoritedAt(),
	}
	return duplicate(s.db.WithContext(ctx).Create(&row).Error, "favorite of "+f.OriginID())
}

func (s *FavoriteStore[F]) RemoveFavorite(ctx context.Context, ownerID, originalID string) error {
	res := s.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND original_id = ?", ownerID, s.kind, originalID).
		Delete(&favoriteRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: favorite of %s", models.ErrNotFound, originalID)
	}
	return nil
}

// ListFavorites returns snapshots newest first.
func (s *FavoriteStore[F]) ListFavorites(ctx context.Context, ownerID string) ([]F, error) {
	var rows []favoriteRow
	if err := s.db.WithContext(ctx).Where("owner_id = ? AND kind = ?", ownerID, s.kind).Find(&rows).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})

	out := make([]F, 0, len(rows))
	for _, row := range rows {
		f, err := s.decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *FavoriteStore[F]) DeleteByOwner(ctx context.Context, ownerID string) error {
	return s.db.WithContext(ctx).Where("owner_id = ? AND kind = ?", ownerID, s.kind).Delete(&favoriteRow{}).Error
}
