package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new appointment.
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves an appointment with its doctor, patient, and
	// hospital loaded. Returns ErrAppointmentNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Update persists new times and hospital for an existing appointment.
	Update(ctx context.Context, a *Appointment) error

	// Delete removes the appointment. Cancellation is a hard delete; the
	// audit trail is the durable record that it happened.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns appointments visible under the given scope, ordered by
	// start time, with doctor and patient loaded for titling.
	List(ctx context.Context, scope Scope) ([]*Appointment, error)

	// ListForParties returns every appointment sharing the given doctor or
	// patient, which is the comparison set for conflict detection.
	ListForParties(ctx context.Context, doctorID, patientID uuid.UUID) ([]*Appointment, error)

	// HasFutureForPatient reports whether the patient holds any appointment
	// starting strictly after now.
	HasFutureForPatient(ctx context.Context, patientID uuid.UUID, now time.Time) (bool, error)

	// WithScheduleLock runs fn inside a transaction holding advisory locks
	// keyed by the doctor and the patient, serializing concurrent scheduling
	// against the same parties so the validate-then-persist sequence cannot
	// race. The callback receives a Repository bound to the transaction.
	WithScheduleLock(ctx context.Context, doctorID, patientID uuid.UUID, fn func(Repository) error) error
}
