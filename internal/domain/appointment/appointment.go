package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthnet/scheduling/internal/domain/hospital"
	"github.com/healthnet/scheduling/internal/domain/person"
)

// Appointment is a booked visit between a patient and a doctor at one
// hospital. Start and End are stored in UTC. Once persisted, no two
// appointments sharing a doctor or a patient may overlap on the same
// calendar day.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Start time.Time `gorm:"column:start_at;not null;index"`
	End   time.Time `gorm:"column:end_at;not null"`

	DoctorID   uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`
	PatientID  uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	HospitalID uuid.UUID `gorm:"column:hospital_id;type:uuid;not null;index"`

	Doctor   *person.Doctor     `gorm:"foreignKey:DoctorID"`
	Patient  *person.Patient    `gorm:"foreignKey:PatientID"`
	Hospital *hospital.Hospital `gorm:"foreignKey:HospitalID"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

func (a *Appointment) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

// ConflictsWith reports whether two appointments collide: they share a
// doctor or a patient, fall on the same calendar day, and their time ranges
// touch or overlap. Boundary contact counts: a visit ending 10:30 conflicts
// with one starting 10:30 for the same doctor, so there is always a gap
// between back-to-back bookings.
func (a *Appointment) ConflictsWith(b *Appointment) bool {
	if a.PatientID != b.PatientID && a.DoctorID != b.DoctorID {
		return false
	}
	if !sameDay(a.Start, b.Start) {
		return false
	}
	if within(a.Start, b.Start, b.End) || within(a.End, b.Start, b.End) {
		return true
	}
	if within(b.Start, a.Start, a.End) || within(b.End, a.Start, a.End) {
		return true
	}
	return false
}

// within is the closed-interval containment test: lo <= t <= hi.
func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// FirstConflict scans existing appointments and returns the first one the
// candidate collides with, or nil. The candidate itself is skipped by
// identity so an updated appointment never conflicts with its own stored
// row. Scan order is whatever the caller supplied; only existence matters.
func FirstConflict(candidate *Appointment, existing []*Appointment) *Appointment {
	for _, other := range existing {
		if other == candidate {
			continue
		}
		if candidate.ID != uuid.Nil && other.ID == candidate.ID {
			continue
		}
		if candidate.ConflictsWith(other) {
			return other
		}
	}
	return nil
}

// Rules carries the clinic-wide booking constraints fed from configuration.
type Rules struct {
	// OpenHour and CloseHour bound the business window: a visit may start at
	// OpenHour:00 sharp but not at CloseHour:00, and may end at CloseHour:00
	// sharp but not at OpenHour:00.
	OpenHour  int
	CloseHour int

	// AllowedDurations is the exact whitelist of permitted visit lengths.
	AllowedDurations []time.Duration
}

func (r Rules) durationAllowed(d time.Duration) bool {
	for _, allowed := range r.AllowedDurations {
		if d == allowed {
			return true
		}
	}
	return false
}

// secondOfDay converts a wall-clock instant to seconds since local midnight
// in UTC, the zone appointments are stored in.
func secondOfDay(t time.Time) int {
	u := t.UTC()
	return u.Hour()*3600 + u.Minute()*60 + u.Second()
}

// Validate checks the candidate against the booking rules and the existing
// appointment set, returning the first violated rule as a *ValidationError,
// or nil when the candidate is bookable. The rule order is fixed and
// significant: business hours, then conflicts, then ordering, then duration,
// then past-dating. The first failure wins and later rules go unchecked.
// Validate never mutates anything; callers hold the candidate off to one
// side until it passes.
func (a *Appointment) Validate(rules Rules, now time.Time, existing []*Appointment) *ValidationError {
	open := rules.OpenHour * 3600
	closing := rules.CloseHour * 3600
	start := secondOfDay(a.Start)
	end := secondOfDay(a.End)
	if !(open <= start && start < closing && open < end && end <= closing) {
		return errBusinessHours(rules)
	}
	if FirstConflict(a, existing) != nil {
		return ErrTimeConflict
	}
	if a.End.Before(a.Start) {
		return ErrEndBeforeStart
	}
	if !rules.durationAllowed(a.Duration()) {
		return errDuration(rules)
	}
	if a.Start.Before(now) {
		return ErrScheduledInPast
	}
	return nil
}

// Scope restricts which appointments a query may return, per the viewing
// actor's visibility. The zero value means no restriction.
type Scope struct {
	// PatientID limits the result to one patient's appointments.
	PatientID *uuid.UUID
	// HospitalID limits the result to visits at one hospital.
	HospitalID *uuid.UUID
	// EndBefore excludes appointments ending at or after the given instant.
	EndBefore *time.Time
}
