package mysql

import (
	"context"

	"gorm.io/gorm"

	domain "credit-conveyor/internal/domain/statement"
)

type StatementRepository struct{ db *gorm.DB }

func NewStatementRepository(db *gorm.DB) *StatementRepository { return &StatementRepository{db: db} }

func (r *StatementRepository) Create(ctx context.Context, s *domain.Statement) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StatementRepository) Save(ctx context.Context, s *domain.Statement) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StatementRepository) GetByID(ctx context.Context, id string) (*domain.Statement, error) {
	var out domain.Statement
	res := r.db.WithContext(ctx).Where("statement_id = ?", id).First(&out)
	return &out, res.Error
}

func (r *StatementRepository) All(ctx context.Context) ([]domain.Statement, error) {
	var out []domain.Statement
	res := r.db.WithContext(ctx).Order("creation_date").Find(&out)
	return out, res.Error
}
