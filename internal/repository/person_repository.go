package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthnet/scheduling/internal/domain/person"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

var _ person.Registry = (*PersonRepository)(nil)

func (r *PersonRepository) GetPatient(ctx context.Context, id uuid.UUID) (*person.Patient, error) {
	var p person.Patient
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, person.ErrPatientNotFound
		}
		return nil, fmt.Errorf("loading patient: %w", err)
	}
	return &p, nil
}

func (r *PersonRepository) GetDoctor(ctx context.Context, id uuid.UUID) (*person.Doctor, error) {
	var d person.Doctor
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, person.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("loading doctor: %w", err)
	}
	return &d, nil
}

func (r *PersonRepository) GetNurse(ctx context.Context, id uuid.UUID) (*person.Nurse, error) {
	var n person.Nurse
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, person.ErrNurseNotFound
		}
		return nil, fmt.Errorf("loading nurse: %w", err)
	}
	return &n, nil
}

func (r *PersonRepository) GetAdministrator(ctx context.Context, id uuid.UUID) (*person.Administrator, error) {
	var a person.Administrator
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, person.ErrAdministratorNotFound
		}
		return nil, fmt.Errorf("loading administrator: %w", err)
	}
	return &a, nil
}

func (r *PersonRepository) ListPatients(ctx context.Context, scope person.Scope) ([]*person.Patient, error) {
	q := r.db.WithContext(ctx).Order("name ASC")

	if scope.Self != nil {
		q = q.Where("id = ?", *scope.Self)
	}
	if scope.HospitalID != nil {
		q = q.Where("preferred_hospital_id = ? OR admitted_to_id = ?", *scope.HospitalID, *scope.HospitalID)
	}

	var patients []*person.Patient
	if err := q.Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}
