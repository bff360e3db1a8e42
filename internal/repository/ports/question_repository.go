package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/evangadi/forum-backend/internal/domain"
)

type QuestionRepository interface {
	Create(ctx context.Context, userID uuid.UUID, title, description string, tag *string) (*domain.Question, error)
	// List returns questions newest-first; a non-empty search matches
	// title, description or author username.
	List(ctx context.Context, search string) ([]domain.QuestionListItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.QuestionListItem, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, id uuid.UUID, title, description string, tag *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
