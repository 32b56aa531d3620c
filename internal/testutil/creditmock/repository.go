package creditmock

import (
	"context"

	domain "credit-conveyor/internal/domain/credit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies credit.Repository.
type Repo struct {
	CreateFn  func(ctx context.Context, c *domain.Credit) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Credit, error)
	SaveFn    func(ctx context.Context, c *domain.Credit) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Credit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Credit, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, c *domain.Credit) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
