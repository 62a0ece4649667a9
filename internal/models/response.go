package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerSet holds a respondent's answers for a single question. Exactly one
// field is populated, matching the question's type. A nil field in a patch
// means "leave that shape alone"; map entries merge key-by-key.
type AnswerSet struct {
	CategorizedItems []Item            `json:"categorizedItems,omitempty"`
	FilledBlanks     map[string]string `json:"filledBlanks,omitempty"`
	SelectedOptions  map[string]int    `json:"selectedOptions,omitempty"`
}

// EmptyAnswerSet returns the zero-value answers for a question type.
func EmptyAnswerSet(t QuestionType) AnswerSet {
	switch t {
	case QuestionCategorize:
		return AnswerSet{CategorizedItems: []Item{}}
	case QuestionCloze:
		return AnswerSet{FilledBlanks: map[string]string{}}
	case QuestionComprehension:
		return AnswerSet{SelectedOptions: map[string]int{}}
	}
	return AnswerSet{}
}

// Merge applies a partial answer update. The merge is a shallow-key merge:
// categorizedItems is replaced wholesale when present in the patch, while
// filledBlanks and selectedOptions merge entry-by-entry. Answers not named
// by the patch are preserved.
func (a AnswerSet) Merge(patch AnswerSet) AnswerSet {
	if patch.CategorizedItems != nil {
		a.CategorizedItems = cloneSlice(patch.CategorizedItems)
	}
	if len(patch.FilledBlanks) > 0 {
		merged := make(map[string]string, len(a.FilledBlanks)+len(patch.FilledBlanks))
		for k, v := range a.FilledBlanks {
			merged[k] = v
		}
		for k, v := range patch.FilledBlanks {
			merged[k] = v
		}
		a.FilledBlanks = merged
	}
	if len(patch.SelectedOptions) > 0 {
		merged := make(map[string]int, len(a.SelectedOptions)+len(patch.SelectedOptions))
		for k, v := range a.SelectedOptions {
			merged[k] = v
		}
		for k, v := range patch.SelectedOptions {
			merged[k] = v
		}
		a.SelectedOptions = merged
	}
	return a
}

// ResponseEntry is one question's recorded answers within a submission.
type ResponseEntry struct {
	QuestionID string       `json:"questionId"`
	Type       QuestionType `json:"type"`
	Answers    AnswerSet    `json:"answers"`
}

// Response is a respondent's submitted answer document for one form.
type Response struct {
	ID          uint                               `json:"id" gorm:"primaryKey"`
	FormID      uint                               `json:"formId" gorm:"not null;index"`
	Answers     datatypes.JSONSlice[ResponseEntry] `json:"answers" gorm:"type:jsonb"`
	SubmittedAt time.Time                          `json:"submittedAt" gorm:"autoCreateTime"`

	Form Form `json:"-" gorm:"foreignKey:FormID"`
}
