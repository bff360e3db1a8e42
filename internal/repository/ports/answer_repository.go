package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/evangadi/forum-backend/internal/domain"
)

type AnswerRepository interface {
	Create(ctx context.Context, questionID, userID uuid.UUID, body string) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.AnswerListItem, error)
	FindByID(ctx context.Context, id int64) (*domain.Answer, error)
	Update(ctx context.Context, id int64, body string) error
	Delete(ctx context.Context, id int64) error
}
