package uow

import (
	"context"

	"credit-conveyor/internal/domain/client"
	"credit-conveyor/internal/domain/credit"
	"credit-conveyor/internal/domain/statement"
)

type Repos struct {
	Statements statement.Repository
	Clients    client.Repository
	Credits    credit.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
