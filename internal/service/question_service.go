package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/evangadi/forum-backend/internal/domain"
	"github.com/evangadi/forum-backend/internal/repository/ports"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotAllowed       = errors.New("not allowed")
)

type QuestionService struct {
	questions ports.QuestionRepository
}

func NewQuestionService(questions ports.QuestionRepository) *QuestionService {
	return &QuestionService{questions: questions}
}

func (s *QuestionService) Create(ctx context.Context, userID uuid.UUID, title, description string, tag *string) (*domain.Question, error) {
	question, err := s.questions.Create(ctx, userID, title, description, tag)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

func (s *QuestionService) List(ctx context.Context, search string) ([]domain.QuestionListItem, error) {
	items, err := s.questions.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return items, nil
}

func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*domain.QuestionListItem, error) {
	item, err := s.questions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return item, nil
}

func (s *QuestionService) Update(ctx context.Context, userID, id uuid.UUID, title, description string, tag *string) error {
	item, err := s.questions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("find question: %w", err)
	}
	if item.UserID != userID {
		return ErrNotAllowed
	}
	if err := s.questions.Update(ctx, id, title, description, tag); err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return nil
}

func (s *QuestionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	item, err := s.questions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("find question: %w", err)
	}
	if item.UserID != userID {
		return ErrNotAllowed
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}
