package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/evangadi/forum-backend/internal/domain"
	"github.com/evangadi/forum-backend/internal/repository/ports"
)

var ErrAnswerNotFound = errors.New("answer not found")

type AnswerService struct {
	answers   ports.AnswerRepository
	questions ports.QuestionRepository
}

func NewAnswerService(answers ports.AnswerRepository, questions ports.QuestionRepository) *AnswerService {
	return &AnswerService{answers: answers, questions: questions}
}

func (s *AnswerService) Post(ctx context.Context, userID, questionID uuid.UUID, body string) (*domain.Answer, error) {
	exists, err := s.questions.Exists(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("check question: %w", err)
	}
	if !exists {
		return nil, ErrQuestionNotFound
	}

	answer, err := s.answers.Create(ctx, questionID, userID, body)
	if err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	return answer, nil
}

func (s *AnswerService) ListForQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.AnswerListItem, error) {
	exists, err := s.questions.Exists(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("check question: %w", err)
	}
	if !exists {
		return nil, ErrQuestionNotFound
	}

	items, err := s.answers.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return items, nil
}

func (s *AnswerService) Update(ctx context.Context, userID uuid.UUID, answerID int64, body string) error {
	answer, err := s.answers.FindByID(ctx, answerID)
	if err != nil {
		if isNotFound(err) {
			return ErrAnswerNotFound
		}
		return fmt.Errorf("find answer: %w", err)
	}
	if answer.UserID != userID {
		return ErrNotAllowed
	}
	if err := s.answers.Update(ctx, answerID, body); err != nil {
		return fmt.Errorf("update answer: %w", err)
	}
	return nil
}

func (s *AnswerService) Delete(ctx context.Context, userID uuid.UUID, answerID int64) error {
	answer, err := s.answers.FindByID(ctx, answerID)
	if err != nil {
		if isNotFound(err) {
			return ErrAnswerNotFound
		}
		return fmt.Errorf("find answer: %w", err)
	}
	if answer.UserID != userID {
		return ErrNotAllowed
	}
	if err := s.answers.Delete(ctx, answerID); err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}
	return nil
}
