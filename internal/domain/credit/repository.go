package credit

import "context"

type Repository interface {
	Create(ctx context.Context, c *Credit) error
	GetByID(ctx context.Context, id string) (*Credit, error)
	Save(ctx context.Context, c *Credit) error
}
