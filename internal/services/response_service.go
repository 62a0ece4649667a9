package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/CreatorRama/form-builder-service/internal/events"
	"github.com/CreatorRama/form-builder-service/internal/models"
	"github.com/CreatorRama/form-builder-service/internal/repositories"
	"github.com/CreatorRama/form-builder-service/internal/validator"
)

type responseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewResponseService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ResponseService {
	return &responseService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *responseService) Submit(ctx context.Context, req *SubmitResponseRequest) (*models.Response, error) {
	s.logger.Info("Submitting response", "form_id", req.FormID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Form().Exists(ctx, req.FormID)
	if err != nil {
		return nil, fmt.Errorf("failed to check form existence: %w", err)
	}
	if !exists {
		return nil, ErrFormNotFound
	}

	answers := req.Answers
	if answers == nil {
		answers = []models.ResponseEntry{}
	}

	response := &models.Response{
		FormID:  req.FormID,
		Answers: datatypes.NewJSONSlice(answers),
	}

	if err := s.repo.Response().Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	s.logger.Info("Response submitted successfully",
		"response_id", response.ID,
		"form_id", response.FormID)

	if s.publisher != nil {
		event := events.NewFormEvent(events.ResponseSubmitted, response.FormID, map[string]interface{}{
			"response_id":  response.ID,
			"answer_count": len(response.Answers),
		})
		if err := s.publisher.PublishFormEvent(ctx, event); err != nil {
			s.logger.Error("Failed to publish response event",
				"response_id", response.ID,
				"error", err)
		}
	}

	return response, nil
}

func (s *responseService) ListByForm(ctx context.Context, formID uint, filters repositories.ResponseFilters) (*ResponseListResponse, error) {
	exists, err := s.repo.Form().Exists(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to check form existence: %w", err)
	}
	if !exists {
		return nil, ErrFormNotFound
	}

	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}

	responses, total, err := s.repo.Response().GetByForm(ctx, formID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	return &ResponseListResponse{
		Responses: responses,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}
