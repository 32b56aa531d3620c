package clientmock

import (
	"context"

	domain "credit-conveyor/internal/domain/client"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies client.Repository.
type Repo struct {
	CreateFn  func(ctx context.Context, c *domain.Client) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Client, error)
	SaveFn    func(ctx context.Context, c *domain.Client) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, c *domain.Client) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
