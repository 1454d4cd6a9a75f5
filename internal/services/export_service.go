package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"praia-backend/internal/models"
)

type ExportKind string

const (
	ExportPrompts  ExportKind = "prompts"
	ExportTools    ExportKind = "tools"
	ExportTraining ExportKind = "training"
)

func ParseExportKind(raw string) (ExportKind, error) {
	switch k := ExportKind(raw); k {
	case ExportPrompts, ExportTools, ExportTraining:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown export kind %q", models.ErrValidation, raw)
	}
}

// ExportFilename returns the download name for an export taken at t.
func ExportFilename(kind ExportKind, t time.Time) string {
	return fmt.Sprintf("praia_%s_%s.csv", kind, t.UTC().Format("20060102150405"))
}

// ExportService renders the caller's records as CSV.
type ExportService struct {
	prompts  *PromptService
	tools    *ToolFavorites
	training *TrainingFavorites
}

func NewExportService(prompts *PromptService, tools *ToolFavorites, training *TrainingFavorites) *ExportService {
	return &ExportService{prompts: prompts, tools: tools, training: training}
}

func (s *ExportService) Export(ctx context.Context, kind ExportKind) ([]byte, error) {
	switch kind {
	case ExportPrompts:
		prompts, err := s.prompts.List(ctx, ListFilter{})
		if err != nil {
			return nil, err
		}
		return GeneratePromptCSV(prompts)
	case ExportTools:
		tools, err := s.tools.List(ctx)
		if err != nil {
			return nil, err
		}
		return GenerateToolCSV(tools)
	case ExportTraining:
		modules, err := s.training.List(ctx)
		if err != nil {
			return nil, err
		}
		return GenerateTrainingCSV(modules)
	default:
		return nil, fmt.Errorf("%w: unknown export kind %q", models.ErrValidation, kind)
	}
}

// writeCSV writes header and rows. encoding/csv quotes any field containing a comma,
// quote or line break and doubles embedded quotes.
func writeCSV(header []string, rows [][]string) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func GeneratePromptCSV(prompts []models.Prompt) ([]byte, error) {
	header := []string{
		"ID", "History ID", "Version", "Title", "Description", "Text",
		"Category", "Framework", "Folder ID", "Public", "Favorited From", "Created At",
	}
	rows := make([][]string, 0, len(prompts))
	for _, p := range prompts {
		folder := ""
		if p.FolderID != nil {
			folder = *p.FolderID
		}
		rows = append(rows, []string{
			p.ID,
			p.HistoryID,
			strconv.Itoa(p.Version()),
			p.Title,
			p.Description,
			p.Text,
			string(p.Category),
			string(p.Framework),
			folder,
			strconv.FormatBool(p.IsPublic),
			p.OriginalPublicID(),
			p.CreatedAt.Format(time.RFC3339Nano),
		})
	}
	return writeCSV(header, rows)
}

func GenerateToolCSV(tools []models.FavoriteTool) ([]byte, error) {
	header := []string{"ID", "Name", "Description", "Category", "Link", "Pricing", "Tags", "Favorited At"}
	rows := make([][]string, 0, len(tools))
	for _, f := range tools {
		rows = append(rows, []string{
			f.OriginalPublicID,
			f.Tool.Name,
			f.Tool.Description,
			string(f.Tool.Category),
			f.Tool.Link,
			f.Tool.Pricing,
			strings.Join(f.Tool.Tags, ";"),
			f.CreatedAt.Format(time.RFC3339Nano),
		})
	}
	return writeCSV(header, rows)
}

func GenerateTrainingCSV(modules []models.FavoriteTraining) ([]byte, error) {
	header := []string{"ID", "Title", "Description", "Category", "Level", "Duration Minutes", "Lessons", "Favorited At"}
	rows := make([][]string, 0, len(modules))
	for _, f := range modules {
		rows = append(rows, []string{
			f.OriginalPublicID,
			f.Module.Title,
			f.Module.Description,
			string(f.Module.Category),
			f.Module.Level,
			strconv.Itoa(f.Module.DurationMinutes),
			strconv.Itoa(len(f.Module.Content)),
			f.CreatedAt.Format(time.RFC3339Nano),
		})
	}
	return writeCSV(header, rows)
}
