package domain

import (
	"time"

	"github.com/google/uuid"
)

type Answer struct {
	ID         int64     `db:"id" json:"answerid"`
	QuestionID uuid.UUID `db:"question_id" json:"questionid"`
	UserID     uuid.UUID `db:"user_id" json:"userid"`
	Body       string    `db:"answer" json:"answer"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// AnswerListItem carries the author's username for rendering; the join is a
// LEFT JOIN so answers survive account deletion.
type AnswerListItem struct {
	Answer
	Username *string `db:"username" json:"username,omitempty"`
}
