package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthnet/scheduling/internal/domain/hospital"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

var _ hospital.Directory = (*HospitalRepository)(nil)

func (r *HospitalRepository) GetByID(ctx context.Context, id uuid.UUID) (*hospital.Hospital, error) {
	var h hospital.Hospital
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hospital.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("loading hospital: %w", err)
	}
	return &h, nil
}

func (r *HospitalRepository) GetByName(ctx context.Context, name string) (*hospital.Hospital, error) {
	var h hospital.Hospital
	if err := r.db.WithContext(ctx).First(&h, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hospital.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("loading hospital: %w", err)
	}
	return &h, nil
}

func (r *HospitalRepository) List(ctx context.Context) ([]*hospital.Hospital, error) {
	var hospitals []*hospital.Hospital
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&hospitals).Error; err != nil {
		return nil, fmt.Errorf("listing hospitals: %w", err)
	}
	return hospitals, nil
}
