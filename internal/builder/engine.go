// Package builder applies authoring edit operations to a form. Every
// operation is a pure transformation: it takes a form by value and returns
// the updated form, leaving the caller to hold the authoritative copy. There
// is no shared mutable state anywhere in this package.
package builder

import (
	"github.com/CreatorRama/form-builder-service/internal/models"
)

// QuestionPatch is a partial question update. Nil pointer fields and nil
// slices are left untouched; set fields replace the current value. Variant
// collections arrive whole because each edit operation on the question model
// already produced the full consistent collection.
type QuestionPatch struct {
	QuestionText *string         `json:"questionText,omitempty"`
	Image        *string         `json:"image,omitempty"`
	Categories   []string        `json:"categories,omitempty"`
	Options      []models.Option `json:"options,omitempty"`
	Items        []models.Item   `json:"items,omitempty"`
	Blanks       []models.Blank  `json:"blanks,omitempty"`
	Paragraph    *string         `json:"paragraph,omitempty"`
	MCQs         []models.MCQ    `json:"mcqs,omitempty"`
}

// AddQuestion appends an empty question of the given type. Unknown types are
// a no-op.
func AddQuestion(form models.Form, t models.QuestionType) models.Form {
	if !t.Valid() {
		return form
	}
	questions := make([]models.Question, len(form.Questions), len(form.Questions)+1)
	copy(questions, form.Questions)
	form.Questions = append(questions, models.NewQuestion(t))
	return form
}

// UpdateQuestion locates the question by id and applies a shallow merge of
// the patch. Sibling questions and question order are untouched; an unknown
// id is a no-op.
func UpdateQuestion(form models.Form, id string, patch QuestionPatch) models.Form {
	questions := make([]models.Question, len(form.Questions))
	copy(questions, form.Questions)
	for i, q := range questions {
		if q.ID != id {
			continue
		}
		questions[i] = applyPatch(q, patch)
	}
	form.Questions = questions
	return form
}

// EditQuestion applies an edit function (one of the question model's edit
// operations) to the question with the given id.
func EditQuestion(form models.Form, id string, edit func(models.Question) models.Question) models.Form {
	questions := make([]models.Question, len(form.Questions))
	copy(questions, form.Questions)
	for i, q := range questions {
		if q.ID == id {
			questions[i] = edit(q)
		}
	}
	form.Questions = questions
	return form
}

// DeleteQuestion removes the question by id. No cascade to other questions.
func DeleteQuestion(form models.Form, id string) models.Form {
	questions := make([]models.Question, 0, len(form.Questions))
	for _, q := range form.Questions {
		if q.ID != id {
			questions = append(questions, q)
		}
	}
	form.Questions = questions
	return form
}

func applyPatch(q models.Question, patch QuestionPatch) models.Question {
	if patch.QuestionText != nil {
		q.QuestionText = *patch.QuestionText
	}
	if patch.Image != nil {
		q.Image = *patch.Image
	}
	if patch.Categories != nil {
		q.Categories = patch.Categories
	}
	if patch.Options != nil {
		q.Options = patch.Options
	}
	if patch.Items != nil {
		q.Items = patch.Items
	}
	if patch.Blanks != nil {
		q.Blanks = patch.Blanks
	}
	if patch.Paragraph != nil {
		q.Paragraph = *patch.Paragraph
	}
	if patch.MCQs != nil {
		q.MCQs = patch.MCQs
	}
	return q
}
