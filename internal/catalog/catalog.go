// Package catalog holds the built-in public prompts, tools and training modules.
// The catalog is loaded once at startup and never mutated afterwards.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"praia-backend/internal/grouping"
	"praia-backend/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	promptsFile  = "prompts.yaml"
	toolsFile    = "tools.yaml"
	trainingFile = "training.yaml"
)

type promptEntry struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Category    string    `yaml:"category"`
	Framework   string    `yaml:"framework"`
	Text        string    `yaml:"text"`
	CreatedAt   time.Time `yaml:"created_at"`
}

type Catalog struct {
	prompts  []models.Prompt
	tools    []models.AITool
	training []models.TrainingModule

	promptIdx   map[string]int
	toolIdx     map[string]int
	trainingIdx map[string]int
}

// Load reads the catalog from dir, or from the embedded data when dir is empty.
func Load(dir string) (*Catalog, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	var entries []promptEntry
	if err := decodeFile(fsys, promptsFile, &entries); err != nil {
		return nil, err
	}
	var tools []models.AITool
	if err := decodeFile(fsys, toolsFile, &tools); err != nil {
		return nil, err
	}
	var training []models.TrainingModule
	if err := decodeFile(fsys, trainingFile, &training); err != nil {
		return nil, err
	}

	prompts := make([]models.Prompt, 0, len(entries))
	for _, e := range entries {
		p, err := e.toPrompt()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", promptsFile, err)
		}
		prompts = append(prompts, p)
	}

	return New(prompts, tools, training)
}

func decodeFile(fsys fs.FS, name string, out interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read catalog file %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse catalog file %s: %w", name, err)
	}
	return nil
}

func (e promptEntry) toPrompt() (models.Prompt, error) {
	if e.ID == "" || e.Title == "" || e.Text == "" {
		return models.Prompt{}, fmt.Errorf("prompt %q: id, title and text are required", e.ID)
	}
	category, err := models.ParseCategory(e.Category)
	if err != nil {
		return models.Prompt{}, fmt.Errorf("prompt %q: %w", e.ID, err)
	}
	var framework models.Framework
	if e.Framework != "" {
		spec, err := models.ParseFramework(e.Framework)
		if err != nil {
			return models.Prompt{}, fmt.Errorf("prompt %q: %w", e.ID, err)
		}
		framework = spec.Key
	}
	return models.Prompt{
		ID:          e.ID,
		HistoryID:   e.ID,
		Revision:    models.FirstRevision(),
		Title:       e.Title,
		Text:        e.Text,
		Description: e.Description,
		Category:    category,
		Framework:   framework,
		IsPublic:    true,
		Origin:      models.Owned{},
		CreatedAt:   e.CreatedAt,
	}, nil
}

// New builds a catalog from already-parsed entries. Ids must be unique per kind, and
// distinct prompt titles must not slugify to the same group id.
func New(prompts []models.Prompt, tools []models.AITool, training []models.TrainingModule) (*Catalog, error) {
	c := &Catalog{
		prompts:     prompts,
		tools:       tools,
		training:    training,
		promptIdx:   make(map[string]int, len(prompts)),
		toolIdx:     make(map[string]int, len(tools)),
		trainingIdx: make(map[string]int, len(training)),
	}
	groupTitles := make(map[string]string)
	for i, p := range prompts {
		if err := index(c.promptIdx, "prompt", p.ID, i); err != nil {
			return nil, err
		}
		// Same-titled prompts share a group; distinct titles must not share its id.
		gid := grouping.Slugify(p.Title)
		if other, taken := groupTitles[gid]; taken && other != p.Title {
			return nil, fmt.Errorf("prompt %q: title %q collides with %q as group id %q", p.ID, p.Title, other, gid)
		}
		groupTitles[gid] = p.Title
	}
	for i, t := range tools {
		if err := index(c.toolIdx, "tool", t.ID, i); err != nil {
			return nil, err
		}
	}
	for i, m := range training {
		if err := index(c.trainingIdx, "training module", m.ID, i); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func index(idx map[string]int, kind, id string, i int) error {
	if id == "" {
		return fmt.Errorf("%s at position %d has no id", kind, i)
	}
	if _, dup := idx[id]; dup {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	idx[id] = i
	return nil
}

// Prompts returns the catalog prompts, newest first.
func (c *Catalog) Prompts() []models.Prompt {
	out := make([]models.Prompt, len(c.prompts))
	copy(out, c.prompts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (c *Catalog) Prompt(id string) (models.Prompt, bool) {
	i, ok := c.promptIdx[id]
	if !ok {
		return models.Prompt{}, false
	}
	return c.prompts[i], true
}

// Tools returns the catalog tools, newest first.
func (c *Catalog) Tools() []models.AITool {
	out := make([]models.AITool, len(c.tools))
	for i, t := range c.tools {
		out[i] = cloneTool(t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (c *Catalog) Tool(id string) (models.AITool, bool) {
	i, ok := c.toolIdx[id]
	if !ok {
		return models.AITool{}, false
	}
	return cloneTool(c.tools[i]), true
}

// TrainingModules returns the catalog modules, newest first.
func (c *Catalog) TrainingModules() []models.TrainingModule {
	out := make([]models.TrainingModule, len(c.training))
	for i, m := range c.training {
		out[i] = cloneModule(m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (c *Catalog) TrainingModule(id string) (models.TrainingModule, bool) {
	i, ok := c.trainingIdx[id]
	if !ok {
		return models.TrainingModule{}, false
	}
	return cloneModule(c.training[i]), true
}

func cloneTool(t models.AITool) models.AITool {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	return t
}

func cloneModule(m models.TrainingModule) models.TrainingModule {
	if m.Content != nil {
		m.Content = append([]models.Lesson(nil), m.Content...)
	}
	return m
}
