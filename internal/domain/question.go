package domain

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID          uuid.UUID `db:"id" json:"questionid"`
	UserID      uuid.UUID `db:"user_id" json:"userid"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Tag         *string   `db:"tag" json:"tag,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// QuestionListItem is a question joined with its author and answer activity,
// as rendered on the feed.
type QuestionListItem struct {
	Question
	Username       string     `db:"username" json:"username"`
	AnswerCount    int64      `db:"answer_count" json:"answer_count"`
	LatestAnswerAt *time.Time `db:"latest_answer_at" json:"latest_answer_date,omitempty"`
}
