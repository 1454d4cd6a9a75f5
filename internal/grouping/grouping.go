// Package grouping builds the catalog view: same-titled catalog prompts become one
// GroupedPrompt with a variant per framework, and each community prompt stands alone.
package grouping

import (
	"sort"

	"praia-backend/internal/models"

	"github.com/gosimple/slug"
)

// Slugify turns a prompt title into a group id, e.g. "Linux Terminal" -> "linux-terminal".
func Slugify(title string) string {
	return slug.Make(title)
}

// GroupCatalog groups catalog prompts by exact title and appends one singleton group per
// community prompt. The result is sorted by CreatedAt, newest first; ties sort by id.
// Inputs are not modified.
func GroupCatalog(catalog []models.Prompt, community []models.Prompt) []models.GroupedPrompt {
	var titles []string
	byTitle := make(map[string][]models.Prompt)
	for _, p := range catalog {
		if _, seen := byTitle[p.Title]; !seen {
			titles = append(titles, p.Title)
		}
		byTitle[p.Title] = append(byTitle[p.Title], p)
	}

	groups := make([]models.GroupedPrompt, 0, len(titles)+len(community))
	for _, title := range titles {
		groups = append(groups, catalogGroup(title, byTitle[title]))
	}
	for _, p := range community {
		groups = append(groups, communityGroup(p))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].CreatedAt.After(groups[j].CreatedAt)
		}
		return groups[i].ID < groups[j].ID
	})
	return groups
}

func catalogGroup(title string, members []models.Prompt) models.GroupedPrompt {
	sorted := make([]models.Prompt, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Framework < sorted[j].Framework })

	g := models.GroupedPrompt{
		ID:          Slugify(title),
		Title:       title,
		Description: sorted[0].Description,
		Category:    sorted[0].Category,
		Source:      models.GroupSourceCatalog,
		Members:     sorted,
		Frameworks:  frameworksOf(sorted),
	}
	for _, m := range sorted {
		if m.CreatedAt.After(g.CreatedAt) {
			g.CreatedAt = m.CreatedAt
		}
	}
	return g
}

func communityGroup(p models.Prompt) models.GroupedPrompt {
	return models.GroupedPrompt{
		ID:          p.HistoryID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Source:      models.GroupSourceCommunity,
		Members:     []models.Prompt{p},
		Frameworks:  frameworksOf([]models.Prompt{p}),
		CreatedAt:   p.CreatedAt,
	}
}

// frameworksOf returns the distinct non-empty frameworks of members in member order.
func frameworksOf(members []models.Prompt) []models.Framework {
	out := []models.Framework{}
	seen := make(map[models.Framework]bool)
	for _, m := range members {
		if m.Framework == "" || seen[m.Framework] {
			continue
		}
		seen[m.Framework] = true
		out = append(out, m.Framework)
	}
	return out
}

// Find returns the group with id.
func Find(groups []models.GroupedPrompt, id string) (models.GroupedPrompt, bool) {
	for _, g := range groups {
		if g.ID == id {
			return g, true
		}
	}
	return models.GroupedPrompt{}, false
}
