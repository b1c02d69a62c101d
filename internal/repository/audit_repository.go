package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/healthnet/scheduling/internal/domain"
	"github.com/healthnet/scheduling/internal/service"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

var _ service.AuditRepository = (*AuditRepository)(nil)

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("inserting audit log: %w", err)
	}
	return nil
}
