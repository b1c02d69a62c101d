// Package actor implements the per-role visibility policy: which
// appointments and patients each role may see, and how an appointment is
// titled on that role's calendar. Every role is a concrete type satisfying
// Actor, so a role without visibility rules is a compile error rather than
// a runtime surprise.
package actor

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthnet/scheduling/internal/domain"
	"github.com/healthnet/scheduling/internal/domain/appointment"
	"github.com/healthnet/scheduling/internal/domain/person"
)

type Actor interface {
	PersonID() uuid.UUID
	Username() string
	Role() domain.Role

	// AppointmentScope returns the filter bounding the appointments this
	// actor may list. Evaluated at query time: time-windowed scopes roll
	// forward with now.
	AppointmentScope(now time.Time) appointment.Scope

	// PatientScope returns the filter bounding the patients this actor may
	// see and book for.
	PatientScope() person.Scope

	// AppointmentTitle renders the calendar title for an appointment from
	// this actor's perspective. Requires Doctor (and for staff-wide views,
	// Patient) to be loaded on the appointment.
	AppointmentTitle(a *appointment.Appointment) string
}

// Compile-time check that every role implements the full contract.
var (
	_ Actor = Patient{}
	_ Actor = Doctor{}
	_ Actor = Nurse{}
	_ Actor = Administrator{}
)

type Patient struct {
	Record *person.Patient
}

func (p Patient) PersonID() uuid.UUID { return p.Record.ID }
func (p Patient) Username() string    { return p.Record.Username }
func (p Patient) Role() domain.Role   { return domain.RolePatient }

// Patients see only their own appointments.
func (p Patient) AppointmentScope(time.Time) appointment.Scope {
	id := p.Record.ID
	return appointment.Scope{PatientID: &id}
}

func (p Patient) PatientScope() person.Scope {
	id := p.Record.ID
	return person.Scope{Self: &id}
}

// A patient calendar only shows their own appointments, so the title is the
// doctor's name; repeating the patient's own name would be noise.
func (p Patient) AppointmentTitle(a *appointment.Appointment) string {
	return a.Doctor.Name
}

type Doctor struct {
	Record *person.Doctor
}

func (d Doctor) PersonID() uuid.UUID { return d.Record.ID }
func (d Doctor) Username() string    { return d.Record.Username }
func (d Doctor) Role() domain.Role   { return domain.RoleDoctor }

// Doctors see every appointment in the network, not just their own
// hospital's. Product has flagged the breadth but it stands: doctors serve
// across hospitals.
func (d Doctor) AppointmentScope(time.Time) appointment.Scope {
	return appointment.Scope{}
}

func (d Doctor) PatientScope() person.Scope {
	return person.Scope{}
}

func (d Doctor) AppointmentTitle(a *appointment.Appointment) string {
	return a.Doctor.Name
}

type Nurse struct {
	Record *person.Nurse

	// Lookahead bounds how far into the future the nurse's calendar reaches.
	// Network policy is one week.
	Lookahead time.Duration
}

func (n Nurse) PersonID() uuid.UUID { return n.Record.ID }
func (n Nurse) Username() string    { return n.Record.Username }
func (n Nurse) Role() domain.Role   { return domain.RoleNurse }

// Nurses see only visits at their own hospital ending strictly before
// now plus the lookahead, a rolling window rather than a fixed one.
func (n Nurse) AppointmentScope(now time.Time) appointment.Scope {
	hospitalID := n.Record.HospitalID
	horizon := now.Add(n.Lookahead)
	return appointment.Scope{HospitalID: &hospitalID, EndBefore: &horizon}
}

// Nurses see only patients affiliated with their hospital, by preference or
// by admission.
func (n Nurse) PatientScope() person.Scope {
	hospitalID := n.Record.HospitalID
	return person.Scope{HospitalID: &hospitalID}
}

func (n Nurse) AppointmentTitle(a *appointment.Appointment) string {
	return staffTitle(a)
}

type Administrator struct {
	Record *person.Administrator
}

func (ad Administrator) PersonID() uuid.UUID { return ad.Record.ID }
func (ad Administrator) Username() string    { return ad.Record.Username }
func (ad Administrator) Role() domain.Role   { return domain.RoleAdmin }

func (ad Administrator) AppointmentScope(time.Time) appointment.Scope {
	return appointment.Scope{}
}

func (ad Administrator) PatientScope() person.Scope {
	return person.Scope{}
}

func (ad Administrator) AppointmentTitle(a *appointment.Appointment) string {
	return staffTitle(a)
}

// staffTitle names both parties. A staff calendar spans many patients and
// many doctors, so both sides are needed to tell entries apart.
func staffTitle(a *appointment.Appointment) string {
	return a.Doctor.Name + "; " + a.Patient.Name
}
