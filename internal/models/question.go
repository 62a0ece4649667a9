package models

import (
	"strings"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionCategorize    QuestionType = "categorize"
	QuestionCloze         QuestionType = "cloze"
	QuestionComprehension QuestionType = "comprehension"
)

// Valid reports whether t is one of the closed set of question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionCategorize, QuestionCloze, QuestionComprehension:
		return true
	}
	return false
}

// Option is a draggable source item of a categorize question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Item is an option that has been assigned to a category. Options with no
// matching Item are implicitly uncategorized; that set is always derived,
// never stored.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	BelongsTo string `json:"belongsTo"`
}

// Blank is a cloze fill-in slot anchored by a character offset into the
// question text.
type Blank struct {
	ID            string `json:"id"`
	CorrectAnswer string `json:"correctAnswer"`
	Position      int    `json:"position"`
}

// MCQ is a multiple-choice sub-question of a comprehension question.
// Options are plain strings; CorrectOption, when set, indexes Options.
type MCQ struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correctOption,omitempty"`
}

// Question is a tagged union over the three question variants. The variant
// fields are populated according to Type; consumption sites switch
// exhaustively on Type.
type Question struct {
	ID           string       `json:"id"`
	Type         QuestionType `json:"type"`
	QuestionText string       `json:"questionText"`
	Image        string       `json:"image,omitempty"`

	// categorize
	Categories []string `json:"categories"`
	Options    []Option `json:"options"`
	Items      []Item   `json:"items"`

	// cloze
	Blanks []Blank `json:"blanks"`

	// comprehension
	Paragraph string `json:"paragraph,omitempty"`
	MCQs      []MCQ  `json:"mcqs"`
}

// NewQuestion returns an empty question of the given type with a fresh id.
func NewQuestion(t QuestionType) Question {
	return Question{
		ID:         uuid.NewString(),
		Type:       t,
		Categories: []string{},
		Options:    []Option{},
		Items:      []Item{},
		Blanks:     []Blank{},
		MCQs:       []MCQ{},
	}
}

// ===== CATEGORIZE EDIT OPERATIONS =====
//
// Operations take the question by value and return the updated value.
// Malformed references (unknown ids, missing categories) are silent no-ops;
// only the persistence boundary surfaces errors.

// AddCategory appends a category. Empty or duplicate names are no-ops.
func (q Question) AddCategory(name string) Question {
	name = strings.TrimSpace(name)
	if name == "" || q.hasCategory(name) {
		return q
	}
	q.Categories = append(cloneSlice(q.Categories), name)
	return q
}

// DeleteCategory removes the category and cascades: every item assigned to
// it is removed as well, reverting those options to uncategorized.
func (q Question) DeleteCategory(name string) Question {
	cats := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		if c != name {
			cats = append(cats, c)
		}
	}
	items := make([]Item, 0, len(q.Items))
	for _, it := range q.Items {
		if it.BelongsTo != name {
			items = append(items, it)
		}
	}
	q.Categories = cats
	q.Items = items
	return q
}

// RenameCategory renames a category and re-points every assigned item.
// A rename that would collide with an existing category is a no-op.
func (q Question) RenameCategory(oldName, newName string) Question {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName || q.hasCategory(newName) || !q.hasCategory(oldName) {
		return q
	}
	cats := cloneSlice(q.Categories)
	for i, c := range cats {
		if c == oldName {
			cats[i] = newName
		}
	}
	items := cloneSlice(q.Items)
	for i, it := range items {
		if it.BelongsTo == oldName {
			items[i].BelongsTo = newName
		}
	}
	q.Categories = cats
	q.Items = items
	return q
}

// AddOption appends a new draggable option with a fresh id.
func (q Question) AddOption(text string) Question {
	text = strings.TrimSpace(text)
	if text == "" {
		return q
	}
	q.Options = append(cloneSlice(q.Options), Option{ID: uuid.NewString(), Text: text})
	return q
}

// DeleteOption removes the option and any item sharing its id, so removing
// a source option also removes it from wherever it was categorized.
func (q Question) DeleteOption(id string) Question {
	opts := make([]Option, 0, len(q.Options))
	for _, o := range q.Options {
		if o.ID != id {
			opts = append(opts, o)
		}
	}
	items := make([]Item, 0, len(q.Items))
	for _, it := range q.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	q.Options = opts
	q.Items = items
	return q
}

// EditOptionText updates an option's text.
func (q Question) EditOptionText(id, text string) Question {
	opts := cloneSlice(q.Options)
	for i, o := range opts {
		if o.ID == id {
			opts[i].Text = text
		}
	}
	q.Options = opts
	return q
}

// AssignItem assigns an option to a category. An already-assigned item is
// re-pointed; an unassigned option is materialized as a new item copying the
// option's text. Unknown ids are a no-op.
func (q Question) AssignItem(itemID, category string) Question {
	for i, it := range q.Items {
		if it.ID == itemID {
			items := cloneSlice(q.Items)
			items[i].BelongsTo = category
			q.Items = items
			return q
		}
	}
	for _, o := range q.Options {
		if o.ID == itemID {
			q.Items = append(cloneSlice(q.Items), Item{ID: itemID, Text: o.Text, BelongsTo: category})
			return q
		}
	}
	return q
}

// UncategorizedOptions returns the options whose id has no items entry.
func (q Question) UncategorizedOptions() []Option {
	assigned := make(map[string]bool, len(q.Items))
	for _, it := range q.Items {
		assigned[it.ID] = true
	}
	out := make([]Option, 0, len(q.Options))
	for _, o := range q.Options {
		if !assigned[o.ID] {
			out = append(out, o)
		}
	}
	return out
}

// ===== CLOZE EDIT OPERATIONS =====

// AddBlank appends the word to the sentence with a separating space and
// records a blank at the pre-append length plus one. Insertion is
// append-only; mid-sentence insertion at arbitrary cursor positions is not
// supported.
func (q Question) AddBlank(word string) Question {
	word = strings.TrimSpace(word)
	if word == "" {
		return q
	}
	position := len(q.QuestionText) + 1
	q.QuestionText = q.QuestionText + " " + word
	q.Blanks = append(cloneSlice(q.Blanks), Blank{
		ID:            uuid.NewString(),
		CorrectAnswer: word,
		Position:      position,
	})
	return q
}

// DeleteBlank removes a blank by id. The sentence text is left untouched.
func (q Question) DeleteBlank(id string) Question {
	blanks := make([]Blank, 0, len(q.Blanks))
	for _, b := range q.Blanks {
		if b.ID != id {
			blanks = append(blanks, b)
		}
	}
	q.Blanks = blanks
	return q
}

// EditBlankAnswer replaces a blank's correct answer.
func (q Question) EditBlankAnswer(id, text string) Question {
	blanks := cloneSlice(q.Blanks)
	for i, b := range blanks {
		if b.ID == id {
			blanks[i].CorrectAnswer = strings.TrimSpace(text)
		}
	}
	q.Blanks = blanks
	return q
}

// ===== COMPREHENSION EDIT OPERATIONS =====

// AddMCQ appends a multiple-choice sub-question with no options and no
// correct answer selected.
func (q Question) AddMCQ(text string) Question {
	text = strings.TrimSpace(text)
	if text == "" {
		return q
	}
	q.MCQs = append(cloneSlice(q.MCQs), MCQ{
		ID:       uuid.NewString(),
		Question: text,
		Options:  []string{},
	})
	return q
}

// DeleteMCQ removes a sub-question by id.
func (q Question) DeleteMCQ(id string) Question {
	mcqs := make([]MCQ, 0, len(q.MCQs))
	for _, m := range q.MCQs {
		if m.ID != id {
			mcqs = append(mcqs, m)
		}
	}
	q.MCQs = mcqs
	return q
}

// EditMCQText updates a sub-question's prompt.
func (q Question) EditMCQText(id, text string) Question {
	mcqs := cloneSlice(q.MCQs)
	for i, m := range mcqs {
		if m.ID == id {
			mcqs[i].Question = text
		}
	}
	q.MCQs = mcqs
	return q
}

// AddMCQOption appends an option to the given sub-question.
func (q Question) AddMCQOption(mcqID, text string) Question {
	text = strings.TrimSpace(text)
	if text == "" {
		return q
	}
	mcqs := cloneSlice(q.MCQs)
	for i, m := range mcqs {
		if m.ID == mcqID {
			mcqs[i].Options = append(cloneSlice(m.Options), text)
		}
	}
	q.MCQs = mcqs
	return q
}

// DeleteMCQOption removes the option at index. The correct-answer marker is
// unset when it pointed at the removed option and shifted down by one when
// it pointed past it.
func (q Question) DeleteMCQOption(mcqID string, index int) Question {
	mcqs := cloneSlice(q.MCQs)
	for i, m := range mcqs {
		if m.ID != mcqID {
			continue
		}
		if index < 0 || index >= len(m.Options) {
			return q
		}
		opts := make([]string, 0, len(m.Options)-1)
		for j, o := range m.Options {
			if j != index {
				opts = append(opts, o)
			}
		}
		mcqs[i].Options = opts
		if m.CorrectOption != nil {
			switch {
			case *m.CorrectOption == index:
				mcqs[i].CorrectOption = nil
			case *m.CorrectOption > index:
				shifted := *m.CorrectOption - 1
				mcqs[i].CorrectOption = &shifted
			default:
				kept := *m.CorrectOption
				mcqs[i].CorrectOption = &kept
			}
		}
	}
	q.MCQs = mcqs
	return q
}

// EditMCQOptionText replaces the option text at index.
func (q Question) EditMCQOptionText(mcqID string, index int, text string) Question {
	mcqs := cloneSlice(q.MCQs)
	for i, m := range mcqs {
		if m.ID == mcqID && index >= 0 && index < len(m.Options) {
			opts := cloneSlice(m.Options)
			opts[index] = text
			mcqs[i].Options = opts
		}
	}
	q.MCQs = mcqs
	return q
}

// SetCorrectOption marks the option at index as correct. Out-of-range
// indexes are a no-op.
func (q Question) SetCorrectOption(mcqID string, index int) Question {
	mcqs := cloneSlice(q.MCQs)
	for i, m := range mcqs {
		if m.ID == mcqID && index >= 0 && index < len(m.Options) {
			idx := index
			mcqs[i].CorrectOption = &idx
		}
	}
	q.MCQs = mcqs
	return q
}

func (q Question) hasCategory(name string) bool {
	for _, c := range q.Categories {
		if c == name {
			return true
		}
	}
	return false
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
