package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/evangadi/forum-backend/internal/domain"
)

type AnswerRepository struct {
	db *sqlx.DB
}

func NewAnswerRepo(db *sqlx.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

func (r *AnswerRepository) Create(ctx context.Context, questionID, userID uuid.UUID, body string) (*domain.Answer, error) {
	const query = `
        INSERT INTO answers (question_id, user_id, answer)
        VALUES ($1, $2, $3)
        RETURNING id, question_id, user_id, answer, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, questionID, userID, body)
	var answer domain.Answer
	if err := row.StructScan(&answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.AnswerListItem, error) {
	const query = `
        SELECT
            a.id,
            a.question_id,
            a.user_id,
            a.answer,
            a.created_at,
            a.updated_at,
            u.username
        FROM answers a
        LEFT JOIN users u ON u.id = a.user_id
        WHERE a.question_id = $1
        ORDER BY a.id DESC
    `
	items := []domain.AnswerListItem{}
	if err := r.db.SelectContext(ctx, &items, query, questionID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AnswerRepository) FindByID(ctx context.Context, id int64) (*domain.Answer, error) {
	const query = `
        SELECT id, question_id, user_id, answer, created_at, updated_at
        FROM answers
        WHERE id = $1
    `
	var answer domain.Answer
	if err := r.db.GetContext(ctx, &answer, query, id); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) Update(ctx context.Context, id int64, body string) error {
	const query = `
        UPDATE answers
        SET answer = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, body)
	return err
}

func (r *AnswerRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM answers WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
