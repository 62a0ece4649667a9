package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/CreatorRama/form-builder-service/internal/models"
)

func clozeQuestion(t *testing.T) models.Question {
	t.Helper()
	q := models.NewQuestion(models.QuestionCloze)
	q.QuestionText = "The sky is"
	q = q.AddBlank("blue")
	return q
}

func TestQuestionKey(t *testing.T) {
	q := models.NewQuestion(models.QuestionCloze)
	assert.Equal(t, q.ID, QuestionKey(q, 3))

	q.ID = ""
	assert.Equal(t, "q-3", QuestionKey(q, 3))
}

func TestInitializeResponses(t *testing.T) {
	form := models.Form{Questions: datatypes.NewJSONSlice([]models.Question{
		models.NewQuestion(models.QuestionCategorize),
		models.NewQuestion(models.QuestionCloze),
		models.NewQuestion(models.QuestionComprehension),
	})}

	rs := InitializeResponses(form)

	require.Len(t, rs, 3)
	for i, q := range form.Questions {
		entry, ok := rs[QuestionKey(q, i)]
		require.True(t, ok)
		assert.Equal(t, q.Type, entry.Type)
	}
	assert.NotNil(t, rs[form.Questions[0].ID].Answers.CategorizedItems)
	assert.NotNil(t, rs[form.Questions[1].ID].Answers.FilledBlanks)
	assert.NotNil(t, rs[form.Questions[2].ID].Answers.SelectedOptions)
}

func TestApplyAnswerUpdate(t *testing.T) {
	q := clozeQuestion(t)
	form := models.Form{Questions: datatypes.NewJSONSlice([]models.Question{q})}
	rs := InitializeResponses(form)
	blankID := q.Blanks[0].ID

	updated := ApplyAnswerUpdate(rs, q.ID, models.AnswerSet{
		FilledBlanks: map[string]string{blankID: "blue"},
	})

	assert.Equal(t, "blue", updated[q.ID].Answers.FilledBlanks[blankID])

	t.Run("input set is not mutated", func(t *testing.T) {
		assert.Empty(t, rs[q.ID].Answers.FilledBlanks)
	})

	t.Run("unknown key is a no-op", func(t *testing.T) {
		same := ApplyAnswerUpdate(rs, "missing", models.AnswerSet{})
		assert.Equal(t, rs, same)
	})
}

func TestApplyAnswerUpdate_DisjointKeysAreOrderIndependent(t *testing.T) {
	q1 := clozeQuestion(t)
	q2 := models.NewQuestion(models.QuestionComprehension)
	form := models.Form{Questions: datatypes.NewJSONSlice([]models.Question{q1, q2})}
	rs := InitializeResponses(form)

	clozePatch := models.AnswerSet{FilledBlanks: map[string]string{q1.Blanks[0].ID: "blue"}}
	mcqPatch := SelectOption("m1", 2)

	ab := ApplyAnswerUpdate(ApplyAnswerUpdate(rs, q1.ID, clozePatch), q2.ID, mcqPatch)
	ba := ApplyAnswerUpdate(ApplyAnswerUpdate(rs, q2.ID, mcqPatch), q1.ID, clozePatch)

	assert.Equal(t, ab, ba)
}

func TestEntriesFollowFormOrder(t *testing.T) {
	q1 := clozeQuestion(t)
	q2 := models.NewQuestion(models.QuestionCategorize)
	form := models.Form{Questions: datatypes.NewJSONSlice([]models.Question{q1, q2})}
	rs := InitializeResponses(form)

	entries := rs.Entries(form)

	require.Len(t, entries, 2)
	assert.Equal(t, q1.ID, entries[0].QuestionID)
	assert.Equal(t, q2.ID, entries[1].QuestionID)
}

// ===== CLOZE RENDERING =====

func TestRenderCloze(t *testing.T) {
	q := clozeQuestion(t)

	spans := RenderCloze(q.QuestionText, q.Blanks)

	require.Len(t, spans, 2)
	assert.Equal(t, Span{Kind: SpanLiteral, Text: "The sky is "}, spans[0])
	assert.Equal(t, Span{Kind: SpanInput, BlankID: q.Blanks[0].ID}, spans[1])
}

func TestRenderCloze_TrailingLiteral(t *testing.T) {
	q := models.NewQuestion(models.QuestionCloze)
	q.QuestionText = "Roses are"
	q = q.AddBlank("red")
	q.QuestionText += " indeed"

	spans := RenderCloze(q.QuestionText, q.Blanks)

	require.Len(t, spans, 3)
	assert.Equal(t, SpanLiteral, spans[2].Kind)
	assert.Equal(t, " indeed", spans[2].Text)
}

func TestRenderCloze_SkipsOutOfRangeBlanks(t *testing.T) {
	blanks := []models.Blank{
		{ID: "b1", CorrectAnswer: "blue", Position: 11},
		{ID: "b2", CorrectAnswer: "late", Position: 99},
		{ID: "b3", CorrectAnswer: "neg", Position: -4},
	}

	spans := RenderCloze("The sky is blue", blanks)

	require.Len(t, spans, 2)
	assert.Equal(t, "b1", spans[1].BlankID)
}

func TestRenderCloze_EmptyTextRendersNothing(t *testing.T) {
	assert.Nil(t, RenderCloze("", []models.Blank{{ID: "b1", Position: 0}}))
}

func TestRenderCloze_Idempotent(t *testing.T) {
	blanks := []models.Blank{
		{ID: "b2", CorrectAnswer: "boils", Position: 6},
		{ID: "b1", CorrectAnswer: "Water", Position: 0},
	}

	first := RenderCloze("Water boils at 100", blanks)
	second := RenderCloze("Water boils at 100", blanks)

	assert.Equal(t, first, second)
	require.NotEmpty(t, first)
	assert.Equal(t, "b1", first[0].BlankID)
}

// ===== CATEGORIZE =====

func categorizeQuestion() models.Question {
	return models.NewQuestion(models.QuestionCategorize).
		AddCategory("Fruit").
		AddCategory("Vegetable").
		AddOption("Apple").
		AddOption("Carrot")
}

func TestPartitionCategorize(t *testing.T) {
	q := categorizeQuestion()
	apple := q.Options[0].ID

	answers := models.EmptyAnswerSet(models.QuestionCategorize)
	answers = answers.Merge(AssignResponseItem(q, answers, apple, "Fruit"))

	view := PartitionCategorize(q, answers)

	require.Len(t, view.Uncategorized, 1)
	assert.Equal(t, "Carrot", view.Uncategorized[0].Text)
	require.Len(t, view.Buckets["Fruit"], 1)
	assert.Equal(t, "Apple", view.Buckets["Fruit"][0].Text)
	assert.Empty(t, view.Buckets["Vegetable"])
}

func TestAssignResponseItem(t *testing.T) {
	q := categorizeQuestion()
	apple := q.Options[0].ID

	answers := models.EmptyAnswerSet(models.QuestionCategorize)

	t.Run("materializes from option", func(t *testing.T) {
		patch := AssignResponseItem(q, answers, apple, "Fruit")
		require.Len(t, patch.CategorizedItems, 1)
		assert.Equal(t, models.Item{ID: apple, Text: "Apple", BelongsTo: "Fruit"}, patch.CategorizedItems[0])
	})

	t.Run("re-points an already placed item", func(t *testing.T) {
		placed := answers.Merge(AssignResponseItem(q, answers, apple, "Fruit"))
		patch := AssignResponseItem(q, placed, apple, "Vegetable")
		require.Len(t, patch.CategorizedItems, 1)
		assert.Equal(t, "Vegetable", patch.CategorizedItems[0].BelongsTo)
	})

	t.Run("unknown id yields an empty patch", func(t *testing.T) {
		patch := AssignResponseItem(q, answers, "missing", "Fruit")
		assert.Nil(t, patch.CategorizedItems)
	})
}

// ===== COMPREHENSION =====

func TestSelectOption_IsolatedPerMCQ(t *testing.T) {
	q := models.NewQuestion(models.QuestionComprehension)
	form := models.Form{Questions: datatypes.NewJSONSlice([]models.Question{q})}
	rs := InitializeResponses(form)

	rs = ApplyAnswerUpdate(rs, q.ID, SelectOption("m1", 0))
	rs = ApplyAnswerUpdate(rs, q.ID, SelectOption("m2", 2))
	rs = ApplyAnswerUpdate(rs, q.ID, SelectOption("m1", 1))

	selected := rs[q.ID].Answers.SelectedOptions
	assert.Equal(t, map[string]int{"m1": 1, "m2": 2}, selected)
}
