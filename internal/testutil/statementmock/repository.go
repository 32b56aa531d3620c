package statementmock

import (
	"context"

	domain "credit-conveyor/internal/domain/statement"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies statement.Repository.
// Fill in the function fields you need in a test; unfilled ones fall
// back to a harmless default.
type Repo struct {
	CreateFn  func(ctx context.Context, s *domain.Statement) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Statement, error)
	SaveFn    func(ctx context.Context, s *domain.Statement) error
	AllFn     func(ctx context.Context) ([]domain.Statement, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Statement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Statement, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, s *domain.Statement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Repo) All(ctx context.Context) ([]domain.Statement, error) {
	if m.AllFn != nil {
		return m.AllFn(ctx)
	}
	return nil, nil
}
