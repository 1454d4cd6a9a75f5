package services

import (
	"context"
	"fmt"
	"strings"

	"praia-backend/internal/catalog"
	"praia-backend/internal/grouping"
	"praia-backend/internal/models"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Query filters and paginates a catalog listing. Zero values mean "no filter".
type Query struct {
	Search    string
	Category  models.Category
	Framework models.Framework
	Page      int
	Limit     int
}

func (q Query) normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	q.Search = strings.ToLower(strings.TrimSpace(q.Search))
	return q
}

func (q Query) matchText(fields ...string) bool {
	if q.Search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q.Search) {
			return true
		}
	}
	return false
}

// Page is one slice of a listing.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

func paginate[T any](items []T, q Query) Page[T] {
	// Compare before multiplying so a huge page cannot overflow into a negative offset.
	start := len(items)
	if q.Page-1 <= len(items)/q.Limit {
		start = min((q.Page-1)*q.Limit, len(items))
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end], Total: len(items), Page: q.Page, Limit: q.Limit}
}

// CatalogService serves the public catalog. Prompt listings merge grouped catalog
// prompts with community prompts and are recomputed on every call.
type CatalogService struct {
	catalog *catalog.Catalog
	prompts *PromptService
}

func NewCatalogService(cat *catalog.Catalog, prompts *PromptService) *CatalogService {
	return &CatalogService{catalog: cat, prompts: prompts}
}

func (s *CatalogService) groups(ctx context.Context) ([]models.GroupedPrompt, error) {
	community, err := s.prompts.CommunityPrompts(ctx)
	if err != nil {
		return nil, err
	}
	return grouping.GroupCatalog(s.catalog.Prompts(), community), nil
}

func (s *CatalogService) ListPrompts(ctx context.Context, q Query) (Page[models.GroupedPrompt], error) {
	q = q.normalized()
	groups, err := s.groups(ctx)
	if err != nil {
		return Page[models.GroupedPrompt]{}, err
	}
	out := make([]models.GroupedPrompt, 0, len(groups))
	for _, g := range groups {
		if q.Category != "" && g.Category != q.Category {
			continue
		}
		if q.Framework != "" {
			if _, ok := g.Member(q.Framework); !ok {
				continue
			}
		}
		if !q.matchText(g.Title, g.Description) {
			continue
		}
		out = append(out, g)
	}
	return paginate(out, q), nil
}

func (s *CatalogService) GetPrompt(ctx context.Context, groupID string) (models.GroupedPrompt, error) {
	groups, err := s.groups(ctx)
	if err != nil {
		return models.GroupedPrompt{}, err
	}
	g, ok := grouping.Find(groups, groupID)
	if !ok {
		return models.GroupedPrompt{}, fmt.Errorf("%w: prompt group %s", models.ErrNotFound, groupID)
	}
	return g, nil
}

func (s *CatalogService) ListTools(q Query) Page[models.AITool] {
	q = q.normalized()
	out := []models.AITool{}
	for _, t := range s.catalog.Tools() {
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		if !q.matchText(append([]string{t.Name, t.Description}, t.Tags...)...) {
			continue
		}
		out = append(out, t)
	}
	return paginate(out, q)
}

func (s *CatalogService) ListTraining(q Query) Page[models.TrainingModule] {
	q = q.normalized()
	out := []models.TrainingModule{}
	for _, m := range s.catalog.TrainingModules() {
		if q.Category != "" && m.Category != q.Category {
			continue
		}
		if !q.matchText(m.Title, m.Description) {
			continue
		}
		out = append(out, m)
	}
	return paginate(out, q)
}

func (s *CatalogService) GetTraining(moduleID string) (models.TrainingModule, error) {
	m, ok := s.catalog.TrainingModule(moduleID)
	if !ok {
		return models.TrainingModule{}, fmt.Errorf("%w: training module %s", models.ErrNotFound, moduleID)
	}
	return m, nil
}
