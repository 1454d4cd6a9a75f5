package models

import "time"

// AITool is a directory entry for an AI product.
type AITool struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Category    Category  `json:"category" yaml:"category"`
	Link        string    `json:"link" yaml:"link"`
	Pricing     string    `json:"pricing,omitempty" yaml:"pricing"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Lesson is one section of a training module.
type Lesson struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// TrainingModule is a short course shipped with the catalog.
type TrainingModule struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Description     string    `json:"description" yaml:"description"`
	Category        Category  `json:"category" yaml:"category"`
	Level           string    `json:"level,omitempty" yaml:"level"`
	DurationMinutes int       `json:"duration_minutes,omitempty" yaml:"duration_minutes"`
	Content         []Lesson  `json:"content,omitempty" yaml:"content"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
}

// FavoriteTool is a user's snapshot of a catalog tool.
type FavoriteTool struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	OriginalPublicID string    `json:"original_public_id"`
	Tool             AITool    `json:"tool"`
	CreatedAt        time.Time `json:"created_at"`
}

// FavoriteTraining is a user's snapshot of a catalog training module.
// The stored Module has no Content; it is rehydrated from the catalog on read.
type FavoriteTraining struct {
	ID               string         `json:"id"`
	OwnerID          string         `json:"owner_id"`
	OriginalPublicID string         `json:"original_public_id"`
	Module           TrainingModule `json:"module"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (f FavoriteTool) FavoriteID() string     { return f.ID }
func (f FavoriteTool) OriginID() string       { return f.OriginalPublicID }
func (f FavoriteTool) FavoritedAt() time.Time { return f.CreatedAt }

func (f FavoriteTraining) FavoriteID() string     { return f.ID }
func (f FavoriteTraining) OriginID() string       { return f.OriginalPublicID }
func (f FavoriteTraining) FavoritedAt() time.Time { return f.CreatedAt }

func (p Prompt) FavoriteID() string { return p.ID }
func (p Prompt) OriginID() string   { return p.OriginalPublicID() }
