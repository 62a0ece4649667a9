package models

import (
	"time"

	"gorm.io/datatypes"
)

// Form is the authored document: ordered questions plus metadata. Questions
// are persisted as a single JSONB document column so the stored shape matches
// the wire shape one-to-one; unknown extra fields in stored JSON are ignored
// on read.
type Form struct {
	ID          uint                          `json:"id" gorm:"primaryKey"`
	Title       string                        `json:"title" gorm:"not null;size:255" validate:"required"`
	Description string                        `json:"description" gorm:"type:text"`
	HeaderImage string                        `json:"headerImage" gorm:"size:500"`
	Questions   datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb"`
	CreatedAt   time.Time                     `json:"createdAt"`
	UpdatedAt   time.Time                     `json:"updatedAt"`
}

// QuestionByID returns the question with the given id, or false when absent.
func (f *Form) QuestionByID(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
