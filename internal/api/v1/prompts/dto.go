package prompts

import "praia-backend/internal/models"

type CreatePromptRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Text        string  `json:"text" binding:"required"`
	Description string  `json:"description" binding:"max=2000"`
	Category    string  `json:"category" binding:"required"`
	Framework   string  `json:"framework"`
	FolderID    *string `json:"folder_id"`
	IsPublic    bool    `json:"is_public"`
}

func (r CreatePromptRequest) toDraft() models.PromptDraft {
	return models.PromptDraft{
		Title:       r.Title,
		Text:        r.Text,
		Description: r.Description,
		Category:    models.Category(r.Category),
		Framework:   models.Framework(r.Framework),
		FolderID:    r.FolderID,
		IsPublic:    r.IsPublic,
	}
}

// UpdatePromptRequest carries the fields to change; omitted fields keep their value.
type UpdatePromptRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Text        *string `json:"text"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Category    *string `json:"category"`
	Framework   *string `json:"framework"`
	IsPublic    *bool   `json:"is_public"`
}

func (r UpdatePromptRequest) toPatch() models.PromptPatch {
	patch := models.PromptPatch{
		Title:       r.Title,
		Text:        r.Text,
		Description: r.Description,
		IsPublic:    r.IsPublic,
	}
	if r.Category != nil {
		c := models.Category(*r.Category)
		patch.Category = &c
	}
	if r.Framework != nil {
		f := models.Framework(*r.Framework)
		patch.Framework = &f
	}
	return patch
}

// MoveToFolderRequest files a prompt lineage; a null folder_id takes it out of every folder.
type MoveToFolderRequest struct {
	FolderID *string `json:"folder_id"`
}

type CreateFolderRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
