package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/CreatorRama/form-builder-service/internal/events"
	"github.com/CreatorRama/form-builder-service/internal/models"
	"github.com/CreatorRama/form-builder-service/internal/repositories"
	"github.com/CreatorRama/form-builder-service/internal/validator"
)

type responseServiceFixture struct {
	service   ResponseService
	repo      *mockRepository
	publisher *events.MockEventPublisher
}

func newResponseServiceFixture() *responseServiceFixture {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	return &responseServiceFixture{
		service:   NewResponseService(repo, logger, validator.New(), publisher),
		repo:      repo,
		publisher: publisher,
	}
}

func (fx *responseServiceFixture) seedForm(t *testing.T) *models.Form {
	t.Helper()
	form := &models.Form{
		Title: "Quiz",
		Questions: datatypes.NewJSONSlice([]models.Question{
			models.NewQuestion(models.QuestionCloze),
		}),
	}
	require.NoError(t, fx.repo.form.Create(context.Background(), form))
	return form
}

func TestResponseService_Submit(t *testing.T) {
	fx := newResponseServiceFixture()
	ctx := context.Background()
	form := fx.seedForm(t)
	questionID := form.Questions[0].ID

	response, err := fx.service.Submit(ctx, &SubmitResponseRequest{
		FormID: form.ID,
		Answers: []models.ResponseEntry{
			{
				QuestionID: questionID,
				Type:       models.QuestionCloze,
				Answers:    models.AnswerSet{FilledBlanks: map[string]string{"b1": "blue"}},
			},
		},
	})

	require.NoError(t, err)
	assert.NotZero(t, response.ID)
	assert.Equal(t, form.ID, response.FormID)
	require.Len(t, response.Answers, 1)
	assert.Equal(t, questionID, response.Answers[0].QuestionID)

	published := fx.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.ResponseSubmitted, published[0].Type)
	assert.Equal(t, form.ID, published[0].FormID)
}

func TestResponseService_Submit_FormNotFound(t *testing.T) {
	fx := newResponseServiceFixture()

	_, err := fx.service.Submit(context.Background(), &SubmitResponseRequest{FormID: 42})

	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.Empty(t, fx.publisher.GetPublishedEvents())
}

func TestResponseService_Submit_MissingFormID(t *testing.T) {
	fx := newResponseServiceFixture()

	_, err := fx.service.Submit(context.Background(), &SubmitResponseRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestResponseService_ListByForm(t *testing.T) {
	fx := newResponseServiceFixture()
	ctx := context.Background()
	form := fx.seedForm(t)

	for i := 0; i < 2; i++ {
		_, err := fx.service.Submit(ctx, &SubmitResponseRequest{FormID: form.ID})
		require.NoError(t, err)
	}

	list, err := fx.service.ListByForm(ctx, form.ID, repositories.ResponseFilters{})
	require.NoError(t, err)
	assert.Len(t, list.Responses, 2)
	assert.Equal(t, int64(2), list.Total)
}

func TestResponseService_ListByForm_FormNotFound(t *testing.T) {
	fx := newResponseServiceFixture()

	_, err := fx.service.ListByForm(context.Background(), 7, repositories.ResponseFilters{})

	assert.ErrorIs(t, err, ErrFormNotFound)
}
