package mysql

import (
	"context"

	"gorm.io/gorm"

	domain "credit-conveyor/internal/domain/credit"
)

type CreditRepository struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) *CreditRepository { return &CreditRepository{db: db} }

func (r *CreditRepository) Create(ctx context.Context, c *domain.Credit) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CreditRepository) Save(ctx context.Context, c *domain.Credit) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CreditRepository) GetByID(ctx context.Context, id string) (*domain.Credit, error) {
	var out domain.Credit
	res := r.db.WithContext(ctx).Where("credit_id = ?", id).First(&out)
	return &out, res.Error
}
