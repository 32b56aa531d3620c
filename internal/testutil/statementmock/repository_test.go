package statementmock

import (
	"context"
	"errors"
	"testing"

	domain "credit-conveyor/internal/domain/statement"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	st := domain.New("client-1")

	// Uses provided func
	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Statement) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("ctx mismatch")
			}
			if got != st {
				t.Fatalf("arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, st); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) -> no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, st); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByID_Default(t *testing.T) {
	m := &Repo{}
	if _, err := m.GetByID(context.Background(), "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID default: want ErrNotFound, got %v", err)
	}
}
