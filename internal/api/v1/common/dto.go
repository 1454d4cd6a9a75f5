// Package common holds the DTOs and request helpers shared by the v1 handlers.
package common

import (
	"fmt"
	"strconv"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// PromptResponse is the wire form of one prompt version.
type PromptResponse struct {
	ID               string    `json:"id"`
	HistoryID        string    `json:"history_id"`
	Version          int       `json:"version"`
	IsLatest         bool      `json:"is_latest"`
	Title            string    `json:"title"`
	Text             string    `json:"text"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Framework        string    `json:"framework,omitempty"`
	FolderID         *string   `json:"folder_id"`
	IsPublic         bool      `json:"is_public"`
	IsFavorited      bool      `json:"is_favorited"`
	OriginalPublicID string    `json:"original_public_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToPromptResponse(p models.Prompt) PromptResponse {
	return PromptResponse{
		ID:               p.ID,
		HistoryID:        p.HistoryID,
		Version:          p.Version(),
		IsLatest:         p.IsLatest(),
		Title:            p.Title,
		Text:             p.Text,
		Description:      p.Description,
		Category:         string(p.Category),
		Framework:        string(p.Framework),
		FolderID:         p.FolderID,
		IsPublic:         p.IsPublic,
		IsFavorited:      p.IsFavorited(),
		OriginalPublicID: p.OriginalPublicID(),
		CreatedAt:        p.CreatedAt,
	}
}

func ToPromptResponses(ps []models.Prompt) []PromptResponse {
	out := make([]PromptResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToPromptResponse(p))
	}
	return out
}

// PageResponse wraps one page of a listing.
type PageResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func NewPageResponse[T any](p services.Page[T], items interface{}) PageResponse {
	return PageResponse{Items: items, Total: p.Total, Page: p.Page, Limit: p.Limit}
}

// ToggleResponse reports the favorite state after a toggle.
type ToggleResponse struct {
	Favorited bool        `json:"favorited"`
	Record    interface{} `json:"record"`
}

// ParseQuery reads search, category, framework, page and limit from the query string.
func ParseQuery(c *gin.Context) (services.Query, error) {
	q := services.Query{Search: c.Query("search")}

	if raw := c.Query("category"); raw != "" {
		cat, err := models.ParseCategory(raw)
		if err != nil {
			return q, err
		}
		q.Category = cat
	}
	if raw := c.Query("framework"); raw != "" {
		spec, err := models.ParseFramework(raw)
		if err != nil {
			return q, err
		}
		q.Framework = spec.Key
	}

	var err error
	if q.Page, err = intQuery(c, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = intQuery(c, "limit"); err != nil {
		return q, err
	}
	return q, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, key)
	}
	return n, nil
}

// GroupedPromptResponse is the wire form of a catalog group.
type GroupedPromptResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Source      string           `json:"source"`
	Frameworks  []string         `json:"frameworks"`
	Members     []PromptResponse `json:"members"`
	CreatedAt   time.Time        `json:"created_at"`
}

func ToGroupedPromptResponse(g models.GroupedPrompt) GroupedPromptResponse {
	frameworks := make([]string, 0, len(g.Frameworks))
	for _, f := range g.Frameworks {
		frameworks = append(frameworks, string(f))
	}
	return GroupedPromptResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Category:    string(g.Category),
		Source:      string(g.Source),
		Frameworks:  frameworks,
		Members:     ToPromptResponses(g.Members),
		CreatedAt:   g.CreatedAt,
	}
}
