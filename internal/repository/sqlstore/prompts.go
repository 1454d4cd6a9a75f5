package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"praia-backend/internal/models"

	"gorm.io/gorm"
)

type promptRow struct {
	ID               string  `gorm:"primaryKey;size:64"`
	OwnerID          string  `gorm:"not null;index;uniqueIndex:idx_prompts_owner_original,priority:1"`
	HistoryID        string  `gorm:"not null;index"`
	Version          int     `gorm:"not null"`
	IsLatest         bool    `gorm:"not null"`
	Title            string  `gorm:"not null"`
	Text             string  `gorm:"type:text;not null"`
	Description      string  `gorm:"type:text"`
	Category         string  `gorm:"not null"`
	Framework        string  `gorm:"size:16"`
	FolderID         *string `gorm:"index"`
	IsPublic         bool    `gorm:"not null;index"`
	OriginalPublicID *string `gorm:"uniqueIndex:idx_prompts_owner_original,priority:2"`
	CreatedAt        time.Time
}

func (promptRow) TableName() string {
	return "prompts"
}

func toPromptRow(p models.Prompt) promptRow {
	row := promptRow{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		HistoryID:   p.HistoryID,
		Version:     p.Version(),
		IsLatest:    p.IsLatest(),
		Title:       p.Title,
		Text:        p.Text,
		Description: p.Description,
		Category:    string(p.Category),
		Framework:   string(p.Framework),
		FolderID:    p.FolderID,
		IsPublic:    p.IsPublic,
		CreatedAt:   p.CreatedAt,
	}
	if p.IsFavorited() {
		original := p.OriginalPublicID()
		row.OriginalPublicID = &original
	}
	return row
}

func (row promptRow) toModel() models.Prompt {
	p := models.Prompt{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		HistoryID:   row.HistoryID,
		Revision:    models.Revision{Version: row.Version, IsLatest: row.IsLatest},
		Title:       row.Title,
		Text:        row.Text,
		Description: row.Description,
		Category:    models.Category(row.Category),
		Framework:   models.Framework(row.Framework),
		FolderID:    row.FolderID,
		IsPublic:    row.IsPublic,
		Origin:      models.Owned{},
		CreatedAt:   row.CreatedAt,
	}
	if row.OriginalPublicID != nil {
		p.Origin = models.FavoritedFrom{OriginalID: *row.OriginalPublicID}
	}
	return p
}

func toModels(rows []promptRow) []models.Prompt {
	out := make([]models.Prompt, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out
}

// newestFirst sorts in Go so ordering does not depend on how the driver serializes times.
func newestFirst(ps []models.Prompt) {
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, what)
	}
	return err
}

func duplicate(err error, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s already exists", models.ErrValidation, what)
	}
	return err
}

type PromptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Create(ctx context.Context, p models.Prompt) error {
	row := toPromptRow(p)
	return duplicate(r.db.WithContext(ctx).Create(&row).Error, "prompt "+p.ID)
}

func (r *PromptRepository) FindByID(ctx context.Context, ownerID, id string) (models.Prompt, error) {
	var row promptRow
	err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&row).Error
	if err != nil {
		return models.Prompt{}, notFound(err, "prompt "+id)
	}
	return row.toModel(), nil
}

func (r *PromptRepository) ListLatest(ctx context.Context, ownerID string) ([]models.Prompt, error) {
	var rows []promptRow
	if err := r.db.WithContext(ctx).Where("owner_id = ? AND is_latest = ?", ownerID, true).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := toModels(rows)
	newestFirst(out)
	return out, nil
}

func (r *PromptRepository) ListHistory(ctx context.Context, ownerID, historyID string) ([]models.Prompt, error) {
	var rows []promptRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND history_id = ?", ownerID, historyID).
		Order("version asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toModels(rows), nil
}

func (r *PromptRepository) AppendVersion(ctx context.Context, ownerID, prevID string, next models.Prompt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&promptRow{}).
			Where("owner_id = ? AND id = ?", ownerID, prevID).
			Update("is_latest", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: prompt %s", models.ErrNotFound, prevID)
		}
		row := toPromptRow(next)
		return duplicate(tx.Create(&row).Error, "prompt "+next.ID)
	})
}

func (r *PromptRepository) Delete(ctx context.Context, ownerID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var removed promptRow
		if err := tx.Where("owner_id = ? AND id = ?", ownerID, id).First(&removed).Error; err != nil {
			return notFound(err, "prompt "+id)
		}
		if err := tx.Delete(&removed).Error; err != nil {
			return err
		}
		if !removed.IsLatest {
			return nil
		}

		var promote promptRow
		err := tx.Where("owner_id = ? AND history_id = ?", ownerID, removed.HistoryID).
			Order("version desc").
			First(&promote).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&promote).Update("is_latest", true).Error
	})
}

func (r *PromptRepository) SetFolder(ctx context.Context, ownerID, historyID string, folderID *string) error {
	res := r.db.WithContext(ctx).Model(&promptRow{}).
		Where("owner_id = ? AND history_id = ?", ownerID, historyID).
		Update("folder_id", folderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: prompt lineage %s", models.ErrNotFound, historyID)
	}
	return nil
}

func (r *PromptRepository) ListPublicLatest(ctx context.Context) ([]models.Prompt, error) {
	var rows []promptRow
	err := r.db.WithContext(ctx).
		Where("is_latest = ? AND is_public = ? AND original_public_id IS NULL", true, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := toModels(rows)
	newestFirst(out)
	return out, nil
}

func (r *PromptRepository) DeleteLineage(ctx context.Context, historyID string) error {
	res := r.db.WithContext(ctx).Where("history_id = ?", historyID).Delete(&promptRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: prompt lineage %s", models.ErrNotFound, historyID)
	}
	return nil
}

func (r *PromptRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&promptRow{}).Error
}

func (r *PromptRepository) FindFavorite(ctx context.Context, ownerID, originalID string) (models.Prompt, error) {
	var row promptRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND original_public_id = ?", ownerID, originalID).
		First(&row).Error
	if err != nil {
		return models.Prompt{}, notFound(err, "favorite of "+originalID)
	}
	return row.toModel(), nil
}

func (r *PromptRepository) AddFavorite(ctx context.Context, ownerID string, p models.Prompt) error {
	if !p.IsFavorited() {
		return fmt.Errorf("%w: prompt %s is not a favorite snapshot", models.ErrValidation, p.ID)
	}
	p.OwnerID = ownerID
	row := toPromptRow(p)
	return duplicate(r.db.WithContext(ctx).Create(&row).Error, "favorite of "+p.OriginalPublicID())
}

func (r *PromptRepository) RemoveFavorite(ctx context.Context, ownerID, originalID string) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND original_public_id = ?", ownerID, originalID).
		Delete(&promptRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: favorite of %s", models.ErrNotFound, originalID)
	}
	return nil
}

func (r *PromptRepository) ListFavorites(ctx context.Context, ownerID string) ([]models.Prompt, error) {
	var rows []promptRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND original_public_id IS NOT NULL", ownerID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := toModels(rows)
	newestFirst(out)
	return out, nil
}
