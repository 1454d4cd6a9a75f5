package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"praia-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestPromptCSVQuoting(t *testing.T) {
	tricky := "Line one, with comma\nand \"quoted\" words"
	data, err := GeneratePromptCSV([]models.Prompt{{
		ID:          "p1",
		HistoryID:   "p1",
		Revision:    models.FirstRevision(),
		Title:       "Plain",
		Description: tricky,
		Text:        "x",
		Category:    models.CategoryWriting,
		Origin:      models.Owned{},
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"Line one, with comma`+"\n"+`and ""quoted"" words"`)

	records := parseCSV(t, data)
	require.Len(t, records, 2)
	assert.Equal(t, "Description", records[0][4])
	assert.Equal(t, tricky, records[1][4])
	assert.Equal(t, "Plain", records[1][3])
}

func TestExportKinds(t *testing.T) {
	f := newFixture(t)
	ctx := userCtx("u1")

	p, err := f.prompts.Create(ctx, draft("Mine"))
	require.NoError(t, err)
	title := "Mine v2"
	_, err = f.prompts.Update(ctx, p.ID, models.PromptPatch{Title: &title})
	require.NoError(t, err)
	_, err = f.tools.Toggle(ctx, "midjourney")
	require.NoError(t, err)
	_, err = f.training.Toggle(ctx, "prompting-basics")
	require.NoError(t, err)

	data, err := f.export.Export(ctx, ExportPrompts)
	require.NoError(t, err)
	records := parseCSV(t, data)
	require.Len(t, records, 2, "only latest versions are exported")
	assert.Equal(t, "Mine v2", records[1][3])
	assert.Equal(t, "2", records[1][2])

	data, err = f.export.Export(ctx, ExportTools)
	require.NoError(t, err)
	records = parseCSV(t, data)
	require.Len(t, records, 2)
	assert.Equal(t, "midjourney", records[1][0])
	assert.Equal(t, "Midjourney", records[1][1])

	data, err = f.export.Export(ctx, ExportTraining)
	require.NoError(t, err)
	records = parseCSV(t, data)
	require.Len(t, records, 2)
	assert.Equal(t, "prompting-basics", records[1][0])
	assert.Equal(t, "3", records[1][6])

	_, err = f.export.Export(context.Background(), ExportPrompts)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestParseExportKind(t *testing.T) {
	k, err := ParseExportKind("tools")
	require.NoError(t, err)
	assert.Equal(t, ExportTools, k)

	_, err = ParseExportKind("users")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
	name := ExportFilename(ExportTraining, at)
	assert.Equal(t, "praia_training_20240607080910.csv", name)
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
