package statement

import "context"

type Repository interface {
	Create(ctx context.Context, s *Statement) error
	GetByID(ctx context.Context, id string) (*Statement, error)
	Save(ctx context.Context, s *Statement) error
	All(ctx context.Context) ([]Statement, error)
}
