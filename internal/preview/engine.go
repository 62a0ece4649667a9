// Package preview renders a form for a respondent and reconciles incremental
// answer updates into the accumulated response state. Like the builder, every
// function is pure: the hosting layer owns the single mutable response slot.
package preview

import (
	"fmt"

	"github.com/CreatorRama/form-builder-service/internal/models"
)

// ResponseSet holds the accumulated answers for one respondent, keyed by
// question key (see QuestionKey).
type ResponseSet map[string]models.ResponseEntry

// QuestionKey returns the stable key for a question. Questions without an id
// fall back to a positional key; the fallback is deterministic so the same
// key is produced at initialization and at update time.
func QuestionKey(q models.Question, index int) string {
	if q.ID != "" {
		return q.ID
	}
	return fmt.Sprintf("q-%d", index)
}

// InitializeResponses produces one empty typed entry per question.
func InitializeResponses(form models.Form) ResponseSet {
	rs := make(ResponseSet, len(form.Questions))
	for i, q := range form.Questions {
		rs[QuestionKey(q, i)] = models.ResponseEntry{
			QuestionID: QuestionKey(q, i),
			Type:       q.Type,
			Answers:    models.EmptyAnswerSet(q.Type),
		}
	}
	return rs
}

// ApplyAnswerUpdate merges a partial answer update into the entry for the
// given question key, preserving every unrelated previously recorded answer.
// Unknown keys are a no-op. The input set is not mutated.
func ApplyAnswerUpdate(rs ResponseSet, questionKey string, patch models.AnswerSet) ResponseSet {
	entry, ok := rs[questionKey]
	if !ok {
		return rs
	}
	out := make(ResponseSet, len(rs))
	for k, v := range rs {
		out[k] = v
	}
	entry.Answers = entry.Answers.Merge(patch)
	out[questionKey] = entry
	return out
}

// Entries flattens the set into the submission order of the form.
func (rs ResponseSet) Entries(form models.Form) []models.ResponseEntry {
	out := make([]models.ResponseEntry, 0, len(rs))
	for i, q := range form.Questions {
		if entry, ok := rs[QuestionKey(q, i)]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// ===== CLOZE RENDERING =====

type SpanKind string

const (
	SpanLiteral SpanKind = "literal"
	SpanInput   SpanKind = "input"
)

// Span is one segment of a rendered cloze sentence: either literal text or
// an input slot for a blank.
type Span struct {
	Kind    SpanKind `json:"kind"`
	Text    string   `json:"text,omitempty"`
	BlankID string   `json:"blankId,omitempty"`
}

// RenderCloze walks the blanks in ascending position order and produces the
// literal/input span sequence. Blanks whose position falls outside the
// sentence are skipped rather than aborting the render, and overlapping
// ranges are tolerated by suppressing the would-be-negative literal span.
// Rendering is idempotent: the same input always yields the same spans.
func RenderCloze(questionText string, blanks []models.Blank) []Span {
	if questionText == "" {
		return nil
	}

	sorted := make([]models.Blank, len(blanks))
	copy(sorted, blanks)
	sortBlanksByPosition(sorted)

	var spans []Span
	lastPos := 0
	for _, b := range sorted {
		if b.Position < 0 || b.Position > len(questionText) {
			continue
		}
		if b.Position > lastPos {
			spans = append(spans, Span{Kind: SpanLiteral, Text: questionText[lastPos:b.Position]})
		}
		spans = append(spans, Span{Kind: SpanInput, BlankID: b.ID})
		lastPos = b.Position + len(b.CorrectAnswer)
	}
	if lastPos < len(questionText) {
		spans = append(spans, Span{Kind: SpanLiteral, Text: questionText[lastPos:]})
	}
	return spans
}

func sortBlanksByPosition(blanks []models.Blank) {
	// Insertion sort keeps equal positions in input order, so repeated
	// renders of the same blanks produce identical span sequences.
	for i := 1; i < len(blanks); i++ {
		for j := i; j > 0 && blanks[j].Position < blanks[j-1].Position; j-- {
			blanks[j], blanks[j-1] = blanks[j-1], blanks[j]
		}
	}
}

// ===== CATEGORIZE RENDERING =====

// CategorizeView partitions a categorize question's options against the
// respondent's answer state: options not yet dropped anywhere, and one
// bucket per category in the question's category order.
type CategorizeView struct {
	Uncategorized []models.Option          `json:"uncategorized"`
	Buckets       map[string][]models.Item `json:"buckets"`
}

// PartitionCategorize builds the view from the response's categorizedItems,
// not the authoring-time items.
func PartitionCategorize(q models.Question, answers models.AnswerSet) CategorizeView {
	placed := make(map[string]bool, len(answers.CategorizedItems))
	for _, it := range answers.CategorizedItems {
		placed[it.ID] = true
	}

	view := CategorizeView{Buckets: make(map[string][]models.Item, len(q.Categories))}
	for _, o := range q.Options {
		if !placed[o.ID] {
			view.Uncategorized = append(view.Uncategorized, o)
		}
	}
	for _, c := range q.Categories {
		bucket := []models.Item{}
		for _, it := range answers.CategorizedItems {
			if it.BelongsTo == c {
				bucket = append(bucket, it)
			}
		}
		view.Buckets[c] = bucket
	}
	return view
}

// AssignResponseItem mirrors the question model's AssignItem against answer
// state: dropping an option onto a category re-points an already-placed item
// or materializes a new one from the option. The returned patch replaces the
// categorizedItems shape and is meant to feed ApplyAnswerUpdate.
func AssignResponseItem(q models.Question, answers models.AnswerSet, itemID, category string) models.AnswerSet {
	for i, it := range answers.CategorizedItems {
		if it.ID == itemID {
			items := make([]models.Item, len(answers.CategorizedItems))
			copy(items, answers.CategorizedItems)
			items[i].BelongsTo = category
			return models.AnswerSet{CategorizedItems: items}
		}
	}
	for _, o := range q.Options {
		if o.ID == itemID {
			items := make([]models.Item, len(answers.CategorizedItems), len(answers.CategorizedItems)+1)
			copy(items, answers.CategorizedItems)
			items = append(items, models.Item{ID: itemID, Text: o.Text, BelongsTo: category})
			return models.AnswerSet{CategorizedItems: items}
		}
	}
	return models.AnswerSet{}
}

// ===== COMPREHENSION =====

// SelectOption records the selected option index for one MCQ, overwriting
// only that MCQ's prior selection. The returned patch feeds ApplyAnswerUpdate.
func SelectOption(mcqID string, optionIndex int) models.AnswerSet {
	return models.AnswerSet{SelectedOptions: map[string]int{mcqID: optionIndex}}
}
