package sqlstore

import (
	"context"
	"sort"
	"time"

	"praia-backend/internal/models"

	"gorm.io/gorm"
)

type folderRow struct {
	ID        string `gorm:"primaryKey;size:64"`
	OwnerID   string `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Seq       int64  `gorm:"not null"`
	CreatedAt time.Time
}

func (folderRow) TableName() string {
	return "prompt_folders"
}

func (row folderRow) toModel() models.PromptFolder {
	return models.PromptFolder{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

type FolderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) Create(ctx context.Context, f models.PromptFolder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&folderRow{}).Where("owner_id = ?", f.OwnerID).Count(&count).Error; err != nil {
			return err
		}
		row := folderRow{
			ID:        f.ID,
			OwnerID:   f.OwnerID,
			Name:      f.Name,
			Seq:       count,
			CreatedAt: f.CreatedAt,
		}
		return duplicate(tx.Create(&row).Error, "folder "+f.ID)
	})
}

func (r *FolderRepository) FindByID(ctx context.Context, ownerID, id string) (models.PromptFolder, error) {
	var row folderRow
	err := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&row).Error
	if err != nil {
		return models.PromptFolder{}, notFound(err, "folder "+id)
	}
	return row.toModel(), nil
}

// List returns the owner's folders in creation order.
func (r *FolderRepository) List(ctx context.Context, ownerID string) ([]models.PromptFolder, error) {
	var rows []folderRow
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&rows).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })

	out := make([]models.PromptFolder, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *FolderRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&folderRow{}).Error
}
