package models

import "time"

type GroupSource string

const (
	GroupSourceCatalog   GroupSource = "catalog"
	GroupSourceCommunity GroupSource = "community"
)

// GroupedPrompt is a read-only view over same-titled catalog prompts, or over a single
// community prompt. It is recomputed from its members and never stored.
type GroupedPrompt struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Source      GroupSource
	Members     []Prompt
	Frameworks  []Framework
	CreatedAt   time.Time
}

// Member returns the member prompt tagged with framework, if any.
func (g GroupedPrompt) Member(framework Framework) (Prompt, bool) {
	for _, m := range g.Members {
		if m.Framework == framework {
			return m, true
		}
	}
	return Prompt{}, false
}
