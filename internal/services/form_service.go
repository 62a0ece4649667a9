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

type formService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewFormService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) FormService {
	return &formService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *formService) Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error) {
	s.logger.Info("Creating form", "title", req.Title)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateQuestions(req.Questions); err != nil {
		return nil, err
	}

	questions := req.Questions
	if questions == nil {
		questions = []models.Question{}
	}

	form := &models.Form{
		Title:       req.Title,
		Description: req.Description,
		HeaderImage: req.HeaderImage,
		Questions:   datatypes.NewJSONSlice(questions),
	}

	if err := s.repo.Form().Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	s.logger.Info("Form created successfully", "form_id", form.ID)
	s.publishEvent(ctx, events.FormCreated, form.ID, map[string]interface{}{
		"title":          form.Title,
		"question_count": len(form.Questions),
	})

	return form, nil
}

func (s *formService) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	form, err := s.repo.Form().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return form, nil
}

func (s *formService) List(ctx context.Context, filters repositories.FormFilters) (*FormListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}

	forms, total, err := s.repo.Form().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	return &FormListResponse{
		Forms:  forms,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

func (s *formService) Update(ctx context.Context, id uint, req *UpdateFormRequest) (*models.Form, error) {
	s.logger.Info("Updating form", "form_id", id)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Questions != nil {
		if err := s.validator.ValidateQuestions(*req.Questions); err != nil {
			return nil, err
		}
	}

	form, err := s.repo.Form().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	if req.Title != nil {
		form.Title = *req.Title
	}
	if req.Description != nil {
		form.Description = *req.Description
	}
	if req.HeaderImage != nil {
		form.HeaderImage = *req.HeaderImage
	}
	if req.Questions != nil {
		form.Questions = datatypes.NewJSONSlice(*req.Questions)
	}

	if err := s.repo.Form().Update(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to update form: %w", err)
	}

	s.logger.Info("Form updated successfully", "form_id", form.ID)
	s.publishEvent(ctx, events.FormUpdated, form.ID, map[string]interface{}{
		"title":          form.Title,
		"question_count": len(form.Questions),
	})

	return form, nil
}

func (s *formService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting form", "form_id", id)

	if err := s.repo.Form().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrFormNotFound
		}
		return fmt.Errorf("failed to delete form: %w", err)
	}

	s.publishEvent(ctx, events.FormDeleted, id, nil)
	return nil
}

// publishEvent emits a lifecycle event. Failures are logged and never fail
// the triggering operation.
func (s *formService) publishEvent(ctx context.Context, eventType events.EventType, formID uint, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	event := events.NewFormEvent(eventType, formID, data)
	if err := s.publisher.PublishFormEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish form event",
			"event_type", eventType,
			"form_id", formID,
			"error", err)
	}
}
