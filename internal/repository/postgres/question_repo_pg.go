package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/evangadi/forum-backend/internal/domain"
)

type QuestionRepository struct {
	db *sqlx.DB
}

func NewQuestionRepo(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionListSelect = `
    SELECT
        q.id,
        q.user_id,
        q.title,
        q.description,
        q.tag,
        q.created_at,
        q.updated_at,
        u.username,
        COALESCE(ac.answer_count, 0) AS answer_count,
        la.latest_answer_at
    FROM questions q
    JOIN users u ON u.id = q.user_id
    LEFT JOIN (
        SELECT question_id, COUNT(*) AS answer_count
        FROM answers
        GROUP BY question_id
    ) ac ON ac.question_id = q.id
    LEFT JOIN (
        SELECT question_id, MAX(created_at) AS latest_answer_at
        FROM answers
        GROUP BY question_id
    ) la ON la.question_id = q.id
`

func (r *QuestionRepository) Create(ctx context.Context, userID uuid.UUID, title, description string, tag *string) (*domain.Question, error) {
	const query = `
        INSERT INTO questions (id, user_id, title, description, tag)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, user_id, title, description, tag, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, uuid.New(), userID, title, description, tag)
	var question domain.Question
	if err := row.StructScan(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) List(ctx context.Context, search string) ([]domain.QuestionListItem, error) {
	query := questionListSelect
	args := []any{}
	if strings.TrimSpace(search) != "" {
		query += ` WHERE q.title ILIKE $1 OR q.description ILIKE $1 OR u.username ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(search)+"%")
	}
	query += ` ORDER BY q.created_at DESC`

	items := []domain.QuestionListItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.QuestionListItem, error) {
	query := questionListSelect + ` WHERE q.id = $1`
	var item domain.QuestionListItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *QuestionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *QuestionRepository) Update(ctx context.Context, id uuid.UUID, title, description string, tag *string) error {
	const query = `
        UPDATE questions
        SET title = $2,
            description = $3,
            tag = $4,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, title, description, tag)
	return err
}

func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM questions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
