package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthnet/scheduling/internal/domain"
	"github.com/healthnet/scheduling/internal/domain/actor"
	"github.com/healthnet/scheduling/internal/domain/appointment"
	"github.com/healthnet/scheduling/internal/domain/hospital"
	"github.com/healthnet/scheduling/internal/domain/person"
	"github.com/healthnet/scheduling/pkg/metrics"
)

// ScheduleCommand carries the actor-supplied fields for a new appointment.
// For a patient actor PatientID is ignored: patients always book for
// themselves.
type ScheduleCommand struct {
	PatientID  uuid.UUID
	DoctorID   uuid.UUID
	HospitalID uuid.UUID
	Start      time.Time
	End        time.Time
}

// RescheduleCommand carries the fields an update may change. Parties are
// fixed at booking time; only when and where can move.
type RescheduleCommand struct {
	Start      time.Time
	End        time.Time
	HospitalID uuid.UUID
}

type SchedulingService struct {
	repo      appointment.Repository
	people    person.Registry
	hospitals hospital.Directory
	auditSvc  *AuditService
	metrics   *metrics.Collector
	rules     appointment.Rules
	log       *zap.Logger

	// now is injected so validity is deterministic under test.
	now func() time.Time
}

func NewSchedulingService(
	repo appointment.Repository,
	people person.Registry,
	hospitals hospital.Directory,
	auditSvc *AuditService,
	m *metrics.Collector,
	rules appointment.Rules,
	log *zap.Logger,
) *SchedulingService {
	return &SchedulingService{
		repo:      repo,
		people:    people,
		hospitals: hospitals,
		auditSvc:  auditSvc,
		metrics:   m,
		rules:     rules,
		log:       log,
		now:       time.Now,
	}
}

// ListVisibleAppointments returns the appointments the actor may see,
// per the role visibility policy, evaluated against the current instant.
func (s *SchedulingService) ListVisibleAppointments(ctx context.Context, act actor.Actor) ([]*appointment.Appointment, error) {
	return s.repo.List(ctx, act.AppointmentScope(s.now()))
}

// ListVisiblePatients returns the patients the actor may see and book for.
func (s *SchedulingService) ListVisiblePatients(ctx context.Context, act actor.Actor, ip string) ([]*person.Patient, error) {
	patients, err := s.people.ListPatients(ctx, act.PatientScope())
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:    act.Username(),
		UserRole:    act.Role(),
		Action:      domain.ActionRead,
		EntityKind:  domain.EntityPatient,
		EntityID:    act.PersonID().String(),
		Description: "user has viewed list of patients",
		IPAddress:   ip,
	})

	return patients, nil
}

// CanCreateAppointment reports whether the patient may book: true iff they
// hold no appointment starting strictly in the future.
func (s *SchedulingService) CanCreateAppointment(ctx context.Context, patientID uuid.UUID) (bool, error) {
	has, err := s.repo.HasFutureForPatient(ctx, patientID, s.now())
	if err != nil {
		return false, fmt.Errorf("checking outstanding appointments: %w", err)
	}
	return !has, nil
}

// CreateAppointment books a new visit on behalf of the actor. A patient
// books only for themself and only with no outstanding appointment; staff
// book for any patient within their visibility. The candidate is validated
// and persisted under a per-party schedule lock so two racing requests
// cannot both pass the conflict check.
func (s *SchedulingService) CreateAppointment(ctx context.Context, act actor.Actor, cmd *ScheduleCommand, ip string) (*appointment.Appointment, error) {
	patientID := cmd.PatientID
	if act.Role() == domain.RolePatient {
		patientID = act.PersonID()
		ok, err := s.CanCreateAppointment(ctx, patientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrOutstandingAppointment
		}
	}

	p, err := s.people.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !patientVisible(act.PatientScope(), p) {
		return nil, ErrForbidden
	}

	if _, err := s.people.GetDoctor(ctx, cmd.DoctorID); err != nil {
		return nil, err
	}
	if _, err := s.hospitals.GetByID(ctx, cmd.HospitalID); err != nil {
		return nil, err
	}

	candidate := &appointment.Appointment{
		Start:      cmd.Start.UTC(),
		End:        cmd.End.UTC(),
		DoctorID:   cmd.DoctorID,
		PatientID:  patientID,
		HospitalID: cmd.HospitalID,
	}

	err = s.repo.WithScheduleLock(ctx, candidate.DoctorID, candidate.PatientID, func(tx appointment.Repository) error {
		existing, err := tx.ListForParties(ctx, candidate.DoctorID, candidate.PatientID)
		if err != nil {
			return fmt.Errorf("loading comparison set: %w", err)
		}
		if verr := candidate.Validate(s.rules, s.now(), existing); verr != nil {
			s.metrics.ValidationFailures.WithLabelValues(string(verr.Rule)).Inc()
			return verr
		}
		return tx.Create(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AppointmentsTotal.WithLabelValues("created").Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:    act.Username(),
		UserRole:    act.Role(),
		Action:      domain.ActionCreate,
		EntityKind:  domain.EntityAppointment,
		EntityID:    candidate.ID.String(),
		Description: "user has created an appointment",
		IPAddress:   ip,
	})
	s.log.Info("appointment created",
		zap.String("appointment_id", candidate.ID.String()),
		zap.String("doctor_id", candidate.DoctorID.String()),
		zap.String("patient_id", candidate.PatientID.String()),
	)

	return candidate, nil
}

// UpdateAppointment moves an existing visit to new times and possibly a new
// hospital. Patients may only move their own; staff may move any. Validation
// runs against a scratch copy; on failure the stored row is untouched.
func (s *SchedulingService) UpdateAppointment(ctx context.Context, act actor.Actor, id uuid.UUID, cmd *RescheduleCommand, ip string) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if act.Role() == domain.RolePatient && a.PatientID != act.PersonID() {
		return nil, ErrForbidden
	}

	scratch := *a
	scratch.Start = cmd.Start.UTC()
	scratch.End = cmd.End.UTC()
	scratch.HospitalID = cmd.HospitalID

	if _, err := s.hospitals.GetByID(ctx, cmd.HospitalID); err != nil {
		return nil, err
	}

	err = s.repo.WithScheduleLock(ctx, scratch.DoctorID, scratch.PatientID, func(tx appointment.Repository) error {
		// The comparison set still contains the stored row; the scratch copy
		// shares its id, so FirstConflict skips it by identity.
		existing, err := tx.ListForParties(ctx, scratch.DoctorID, scratch.PatientID)
		if err != nil {
			return fmt.Errorf("loading comparison set: %w", err)
		}
		if verr := scratch.Validate(s.rules, s.now(), existing); verr != nil {
			s.metrics.ValidationFailures.WithLabelValues(string(verr.Rule)).Inc()
			return verr
		}
		return tx.Update(ctx, &scratch)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AppointmentsTotal.WithLabelValues("updated").Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:    act.Username(),
		UserRole:    act.Role(),
		Action:      domain.ActionUpdate,
		EntityKind:  domain.EntityAppointment,
		EntityID:    id.String(),
		Description: "user has updated an appointment",
		IPAddress:   ip,
	})

	return &scratch, nil
}

// CancelAppointment deletes a visit, subject to role rights: patients cancel
// only their own, doctors only visits they are the assigned doctor for,
// administrators any. Nurses may never cancel; that is policy, not an
// oversight.
func (s *SchedulingService) CancelAppointment(ctx context.Context, act actor.Actor, id uuid.UUID, ip string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch act.Role() {
	case domain.RolePatient:
		if a.PatientID != act.PersonID() {
			return ErrForbidden
		}
	case domain.RoleNurse:
		return ErrForbidden
	case domain.RoleDoctor:
		if a.DoctorID != act.PersonID() {
			return ErrForbidden
		}
	case domain.RoleAdmin:
		// Administrators may cancel any appointment.
	default:
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}

	s.metrics.AppointmentsTotal.WithLabelValues("cancelled").Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:    act.Username(),
		UserRole:    act.Role(),
		Action:      domain.ActionDelete,
		EntityKind:  domain.EntityAppointment,
		EntityID:    id.String(),
		Description: "user has deleted this appointment",
		IPAddress:   ip,
	})

	return nil
}

// patientVisible applies the actor's patient scope to a single record.
func patientVisible(scope person.Scope, p *person.Patient) bool {
	if scope.Self != nil {
		return *scope.Self == p.ID
	}
	if scope.HospitalID != nil {
		return p.AffiliatedWith(*scope.HospitalID)
	}
	return true
}
