package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/CreatorRama/form-builder-service/internal/models"
	"github.com/CreatorRama/form-builder-service/internal/preview"
	"github.com/CreatorRama/form-builder-service/internal/repositories"
)

const exportSheetName = "Responses"

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportFormResponses builds an xlsx workbook with one row per response and
// one column per question, plus the suggested download filename.
func (s *exportService) ExportFormResponses(ctx context.Context, formID uint) (*excelize.File, string, error) {
	form, err := s.repo.Form().GetByID(ctx, formID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrFormNotFound
		}
		return nil, "", fmt.Errorf("failed to get form: %w", err)
	}

	// Limit 0 fetches every response for the form.
	responses, _, err := s.repo.Response().GetByForm(ctx, formID, repositories.ResponseFilters{
		SortOrder: "asc",
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list responses: %w", err)
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheetName)

	headers := []string{"Response ID", "Submitted At"}
	for i, q := range form.Questions {
		title := q.QuestionText
		if title == "" {
			title = fmt.Sprintf("Question %d", i+1)
		}
		headers = append(headers, title)
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheetName, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, resp := range responses {
		byQuestion := make(map[string]models.ResponseEntry, len(resp.Answers))
		for _, entry := range resp.Answers {
			byQuestion[entry.QuestionID] = entry
		}

		values := []interface{}{resp.ID, resp.SubmittedAt.Format("2006-01-02 15:04:05")}
		for i, q := range form.Questions {
			key := preview.QuestionKey(q, i)
			values = append(values, formatAnswer(q, byQuestion[key]))
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	s.logger.Info("Exported form responses",
		"form_id", formID,
		"response_count", len(responses))

	filename := fmt.Sprintf("form-%d-responses.xlsx", formID)
	return f, filename, nil
}

// formatAnswer flattens one question's answers into a single cell.
func formatAnswer(q models.Question, entry models.ResponseEntry) string {
	switch q.Type {
	case models.QuestionCategorize:
		parts := make([]string, 0, len(entry.Answers.CategorizedItems))
		for _, item := range entry.Answers.CategorizedItems {
			if item.BelongsTo == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", item.BelongsTo, item.Text))
		}
		return strings.Join(parts, "; ")

	case models.QuestionCloze:
		parts := make([]string, 0, len(q.Blanks))
		for _, blank := range q.Blanks {
			if filled, ok := entry.Answers.FilledBlanks[blank.ID]; ok && filled != "" {
				parts = append(parts, filled)
			} else {
				parts = append(parts, "_")
			}
		}
		return strings.Join(parts, ", ")

	case models.QuestionComprehension:
		parts := make([]string, 0, len(q.MCQs))
		for i, mcq := range q.MCQs {
			selected, ok := entry.Answers.SelectedOptions[mcq.ID]
			if !ok || selected < 0 || selected >= len(mcq.Options) {
				continue
			}
			parts = append(parts, fmt.Sprintf("Q%d: %s", i+1, mcq.Options[selected]))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
