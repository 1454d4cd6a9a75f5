package models

import "time"

// Revision is the version state of one Prompt record inside its lineage.
type Revision struct {
	Version  int
	IsLatest bool
}

// FirstRevision is the revision of a freshly created lineage.
func FirstRevision() Revision {
	return Revision{Version: 1, IsLatest: true}
}

// Origin says where a Prompt came from. It is either Owned or FavoritedFrom.
type Origin interface {
	isOrigin()
}

// Owned marks a prompt authored by its owner.
type Owned struct{}

// FavoritedFrom marks a local snapshot of a public catalog entry.
type FavoritedFrom struct {
	OriginalID string
}

func (Owned) isOrigin()         {}
func (FavoritedFrom) isOrigin() {}

// Prompt is one concrete version of a prompt text.
type Prompt struct {
	ID          string
	OwnerID     string
	HistoryID   string
	Revision    Revision
	Title       string
	Text        string
	Description string
	Category    Category
	Framework   Framework
	FolderID    *string
	IsPublic    bool
	Origin      Origin
	CreatedAt   time.Time
}

// IsFavorited reports whether the record is a favorite snapshot.
func (p Prompt) IsFavorited() bool {
	_, ok := p.Origin.(FavoritedFrom)
	return ok
}

// OriginalPublicID returns the catalog id a favorite snapshot was copied from, or "".
func (p Prompt) OriginalPublicID() string {
	if f, ok := p.Origin.(FavoritedFrom); ok {
		return f.OriginalID
	}
	return ""
}

// Version and IsLatest are shorthands for the revision fields.
func (p Prompt) Version() int {
	return p.Revision.Version
}

func (p Prompt) IsLatest() bool {
	return p.Revision.IsLatest
}

// InFolder reports whether the prompt sits in folderID; a nil folderID means the "All Prompts" bucket.
func (p Prompt) InFolder(folderID *string) bool {
	if folderID == nil {
		return p.FolderID == nil
	}
	return p.FolderID != nil && *p.FolderID == *folderID
}

// PromptDraft holds the user-editable fields of a new prompt.
type PromptDraft struct {
	Title       string   `validate:"required,max=200"`
	Text        string   `validate:"required"`
	Description string   `validate:"max=2000"`
	Category    Category `validate:"required"`
	Framework   Framework
	FolderID    *string
	IsPublic    bool
}

// PromptPatch holds the fields an update may change; nil fields are kept.
type PromptPatch struct {
	Title       *string
	Text        *string
	Description *string
	Category    *Category
	Framework   *Framework
	IsPublic    *bool
}

// Apply returns a copy of p with the non-nil patch fields set.
func (patch PromptPatch) Apply(p Prompt) Prompt {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Text != nil {
		p.Text = *patch.Text
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Framework != nil {
		p.Framework = *patch.Framework
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
	return p
}

// PromptFolder groups a user's prompts. Folders are create-only.
type PromptFolder struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
