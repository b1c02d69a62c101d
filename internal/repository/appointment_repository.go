package repository

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthnet/scheduling/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := r.db.WithContext(ctx).Omit("Doctor", "Patient", "Hospital").Create(a).Error; err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Preload("Hospital").
		First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("loading appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"start_at":    a.Start,
			"end_at":      a.End,
			"hospital_id": a.HospitalID,
		})
	if res.Error != nil {
		return fmt.Errorf("updating appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&appointment.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) List(ctx context.Context, scope appointment.Scope) ([]*appointment.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Preload("Hospital").
		Order("start_at ASC")

	if scope.PatientID != nil {
		q = q.Where("patient_id = ?", *scope.PatientID)
	}
	if scope.HospitalID != nil {
		q = q.Where("hospital_id = ?", *scope.HospitalID)
	}
	if scope.EndBefore != nil {
		q = q.Where("end_at < ?", *scope.EndBefore)
	}

	var appts []*appointment.Appointment
	if err := q.Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appts, nil
}

func (r *AppointmentRepository) ListForParties(ctx context.Context, doctorID, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	var appts []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? OR patient_id = ?", doctorID, patientID).
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("listing appointments for parties: %w", err)
	}
	return appts, nil
}

func (r *AppointmentRepository) HasFutureForPatient(ctx context.Context, patientID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("patient_id = ? AND start_at > ?", patientID, now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("counting future appointments: %w", err)
	}
	return count > 0, nil
}

// WithScheduleLock serializes scheduling per doctor and per patient with
// transaction-scoped advisory locks, closing the window where two requests
// validate against the same snapshot and both insert.
func (r *AppointmentRepository) WithScheduleLock(ctx context.Context, doctorID, patientID uuid.UUID, fn func(appointment.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locks are always taken in ascending key order so two requests
		// holding one key each cannot deadlock waiting on the other.
		for _, key := range scheduleLockKeys(doctorID, patientID) {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
				return fmt.Errorf("acquiring schedule lock: %w", err)
			}
		}
		return fn(&AppointmentRepository{db: tx})
	})
}

func scheduleLockKeys(doctorID, patientID uuid.UUID) []int64 {
	keys := []int64{lockKey(doctorID), lockKey(patientID)}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	if keys[0] == keys[1] {
		return keys[:1]
	}
	return keys
}

func lockKey(id uuid.UUID) int64 {
	h := fnv.New64a()
	_, _ = h.Write(id[:])
	return int64(h.Sum64())
}
