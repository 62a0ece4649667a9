package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreatorRama/form-builder-service/internal/models"
)

type formPayload struct {
	Title       string `validate:"required,min=1,max=255"`
	HeaderImage string `validate:"omitempty,url"`
	Type        string `validate:"omitempty,question_type"`
}

func TestValidate(t *testing.T) {
	v := New()

	t.Run("valid payload passes", func(t *testing.T) {
		err := v.Validate(formPayload{
			Title:       "Quiz",
			HeaderImage: "https://example.com/banner.png",
			Type:        "cloze",
		})
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := v.Validate(formPayload{})
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 1)
		assert.Equal(t, "Title", verrs[0].Field)
		assert.Equal(t, "required", verrs[0].Rule)
		assert.Equal(t, "is required", verrs[0].Message)
	})

	t.Run("invalid url", func(t *testing.T) {
		err := v.Validate(formPayload{Title: "Quiz", HeaderImage: "not-a-url"})
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "HeaderImage", verrs[0].Field)
	})

	t.Run("custom question_type rule", func(t *testing.T) {
		err := v.Validate(formPayload{Title: "Quiz", Type: "essay"})
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "question_type", verrs[0].Rule)
	})
}

func TestValidateQuestions(t *testing.T) {
	v := New()

	t.Run("known types pass", func(t *testing.T) {
		err := v.ValidateQuestions([]models.Question{
			models.NewQuestion(models.QuestionCategorize),
			models.NewQuestion(models.QuestionCloze),
			models.NewQuestion(models.QuestionComprehension),
		})
		assert.NoError(t, err)
	})

	t.Run("unknown type is rejected with its index", func(t *testing.T) {
		err := v.ValidateQuestions([]models.Question{
			models.NewQuestion(models.QuestionCloze),
			{ID: "q2", Type: models.QuestionType("essay")},
		})
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 1)
		assert.Equal(t, "questions[1].type", verrs[0].Field)
	})

	t.Run("empty slice passes", func(t *testing.T) {
		assert.NoError(t, v.ValidateQuestions(nil))
	})
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "Title", Message: "is required"},
	}
	assert.Equal(t, "validation failed: Title is required", errs.Error())

	errs = append(errs, ValidationError{Field: "HeaderImage", Message: "must be a valid URL"})
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}
