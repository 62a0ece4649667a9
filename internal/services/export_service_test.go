package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/CreatorRama/form-builder-service/internal/models"
)

func TestExportService_ExportFormResponses(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	svc := NewExportService(repo, logger)
	ctx := context.Background()

	cloze := models.NewQuestion(models.QuestionCloze)
	cloze.QuestionText = "The sky is"
	cloze = cloze.AddBlank("blue")

	categorize := models.NewQuestion(models.QuestionCategorize).
		AddCategory("Fruit").
		AddOption("Apple")
	apple := categorize.Options[0].ID

	form := &models.Form{
		Title:     "Quiz",
		Questions: datatypes.NewJSONSlice([]models.Question{cloze, categorize}),
	}
	require.NoError(t, repo.form.Create(ctx, form))

	response := &models.Response{
		FormID: form.ID,
		Answers: datatypes.NewJSONSlice([]models.ResponseEntry{
			{
				QuestionID: cloze.ID,
				Type:       models.QuestionCloze,
				Answers:    models.AnswerSet{FilledBlanks: map[string]string{cloze.Blanks[0].ID: "blue"}},
			},
			{
				QuestionID: categorize.ID,
				Type:       models.QuestionCategorize,
				Answers: models.AnswerSet{CategorizedItems: []models.Item{
					{ID: apple, Text: "Apple", BelongsTo: "Fruit"},
				}},
			},
		}),
	}
	require.NoError(t, repo.response.Create(ctx, response))

	file, filename, err := svc.ExportFormResponses(ctx, form.ID)
	require.NoError(t, err)
	defer file.Close()

	assert.Contains(t, filename, ".xlsx")

	header, err := file.GetCellValue(exportSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Response ID", header)

	clozeHeader, err := file.GetCellValue(exportSheetName, "C1")
	require.NoError(t, err)
	assert.Equal(t, cloze.QuestionText, clozeHeader)

	clozeCell, err := file.GetCellValue(exportSheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "blue", clozeCell)

	categorizeCell, err := file.GetCellValue(exportSheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Fruit: Apple", categorizeCell)
}

func TestExportService_FormNotFound(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := NewExportService(newMockRepository(), logger)

	_, _, err := svc.ExportFormResponses(context.Background(), 13)

	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestExportService_EmptyResponsesStillProducesHeader(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	svc := NewExportService(repo, logger)
	ctx := context.Background()

	q := models.NewQuestion(models.QuestionComprehension)
	form := &models.Form{
		Title:     "Empty",
		Questions: datatypes.NewJSONSlice([]models.Question{q}),
	}
	require.NoError(t, repo.form.Create(ctx, form))

	file, _, err := svc.ExportFormResponses(ctx, form.ID)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Question 1", rows[0][2])
}
