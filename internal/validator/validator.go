package validator

import (
	"fmt"

	"github.com/CreatorRama/form-builder-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the custom rules the form
// domain needs.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	// question_type restricts a field to the closed variant set.
	_ = validate.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		return models.QuestionType(fl.Field().String()).Valid()
	})

	return &Validator{validate: validate}
}

// Validate runs struct validation and returns field-level errors, or nil.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateQuestions checks that every question in a form payload carries a
// known type. Intra-question consistency (cascades, index bounds) is owned
// by the model's edit operations, so the gateway only rejects shapes it
// could never render.
func (v *Validator) ValidateQuestions(questions []models.Question) error {
	var errs ValidationErrors
	for i, q := range questions {
		if !q.Type.Valid() {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("questions[%d].type", i),
				Message: "must be a valid question type (categorize, cloze, comprehension)",
				Value:   q.Type,
				Rule:    "question_type",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
