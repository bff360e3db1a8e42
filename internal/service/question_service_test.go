package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/evangadi/forum-backend/internal/domain"
)

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*domain.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uuid.UUID]*domain.Question)}
}

func (f *fakeQuestionRepo) Create(ctx context.Context, userID uuid.UUID, title, description string, tag *string) (*domain.Question, error) {
	question := &domain.Question{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Tag:         tag,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.questions[question.ID] = question
	clone := *question
	return &clone, nil
}

func (f *fakeQuestionRepo) List(ctx context.Context, search string) ([]domain.QuestionListItem, error) {
	var items []domain.QuestionListItem
	for _, q := range f.questions {
		if search != "" && !strings.Contains(strings.ToLower(q.Title), strings.ToLower(search)) {
			continue
		}
		items = append(items, domain.QuestionListItem{Question: *q})
	}
	return items, nil
}

func (f *fakeQuestionRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.QuestionListItem, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &domain.QuestionListItem{Question: *q}, nil
}

func (f *fakeQuestionRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.questions[id]
	return ok, nil
}

func (f *fakeQuestionRepo) Update(ctx context.Context, id uuid.UUID, title, description string, tag *string) error {
	q, ok := f.questions[id]
	if !ok {
		return sql.ErrNoRows
	}
	q.Title = title
	q.Description = description
	q.Tag = tag
	q.UpdatedAt = time.Now()
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.questions, id)
	return nil
}

func TestQuestionGetNotFound(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionRepo())

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("Get missing question = %v, want ErrQuestionNotFound", err)
	}
}

func TestQuestionUpdateOwnership(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)

	owner := uuid.New()
	question, err := svc.Create(context.Background(), owner, "How do goroutines leak?", "Details here", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Update(context.Background(), uuid.New(), question.ID, "Edited", "Edited body", nil); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("Update by stranger = %v, want ErrNotAllowed", err)
	}

	if err := svc.Update(context.Background(), owner, question.ID, "Edited", "Edited body", nil); err != nil {
		t.Fatalf("Update by owner: %v", err)
	}
	item, err := svc.Get(context.Background(), question.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if item.Title != "Edited" {
		t.Errorf("title = %q, want %q", item.Title, "Edited")
	}
}

func TestQuestionDelete(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)

	owner := uuid.New()
	question, err := svc.Create(context.Background(), owner, "How do goroutines leak?", "Details here", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), question.ID); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("Delete by stranger = %v, want ErrNotAllowed", err)
	}
	if err := svc.Delete(context.Background(), owner, question.ID); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
	if err := svc.Delete(context.Background(), owner, question.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("Delete twice = %v, want ErrQuestionNotFound", err)
	}
}

func TestQuestionListSearch(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)

	owner := uuid.New()
	if _, err := svc.Create(context.Background(), owner, "Postgres upsert semantics", "Details", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, "Echo middleware ordering", "Details", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, err := svc.List(context.Background(), "upsert")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("List(%q) returned %d items, want 1", "upsert", len(items))
	}
	if items[0].Title != "Postgres upsert semantics" {
		t.Errorf("matched %q", items[0].Title)
	}
}
