package actor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthnet/scheduling/internal/domain"
	"github.com/healthnet/scheduling/internal/domain/appointment"
	"github.com/healthnet/scheduling/internal/domain/person"
)

func testPerson(name, username string) person.Person {
	return person.Person{
		ID:       uuid.New(),
		Name:     name,
		Username: username,
	}
}

func titledAppointment(doctorName, patientName string) *appointment.Appointment {
	return &appointment.Appointment{
		ID:      uuid.New(),
		Doctor:  &person.Doctor{Person: testPerson(doctorName, "doc")},
		Patient: &person.Patient{Person: testPerson(patientName, "pat")},
	}
}

func TestPatientVisibility(t *testing.T) {
	record := &person.Patient{Person: testPerson("Alice Park", "apark")}
	p := Patient{Record: record}

	assert.Equal(t, domain.RolePatient, p.Role())

	scope := p.AppointmentScope(time.Now())
	require.NotNil(t, scope.PatientID)
	assert.Equal(t, record.ID, *scope.PatientID)
	assert.Nil(t, scope.HospitalID)
	assert.Nil(t, scope.EndBefore)

	pscope := p.PatientScope()
	require.NotNil(t, pscope.Self)
	assert.Equal(t, record.ID, *pscope.Self)
}

func TestPatientTitleOmitsSelf(t *testing.T) {
	p := Patient{Record: &person.Patient{Person: testPerson("Alice Park", "apark")}}
	a := titledAppointment("Dr. Chen", "Alice Park")

	assert.Equal(t, "Dr. Chen", p.AppointmentTitle(a))
}

func TestDoctorVisibilityUnrestricted(t *testing.T) {
	d := Doctor{Record: &person.Doctor{Person: testPerson("Dr. Chen", "chen")}}

	scope := d.AppointmentScope(time.Now())
	assert.Nil(t, scope.PatientID)
	assert.Nil(t, scope.HospitalID)
	assert.Nil(t, scope.EndBefore)
	assert.True(t, d.PatientScope().Unrestricted())

	a := titledAppointment("Dr. Chen", "Alice Park")
	assert.Equal(t, "Dr. Chen", d.AppointmentTitle(a))
}

func TestNurseVisibilityWindow(t *testing.T) {
	hospitalID := uuid.New()
	n := Nurse{
		Record:    &person.Nurse{Person: testPerson("Nina Ruiz", "nruiz"), HospitalID: hospitalID},
		Lookahead: 7 * 24 * time.Hour,
	}

	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	scope := n.AppointmentScope(now)

	require.NotNil(t, scope.HospitalID)
	assert.Equal(t, hospitalID, *scope.HospitalID)
	require.NotNil(t, scope.EndBefore)
	assert.Equal(t, now.Add(7*24*time.Hour), *scope.EndBefore)

	// The window rolls with the evaluation time.
	later := now.Add(48 * time.Hour)
	assert.Equal(t, later.Add(7*24*time.Hour), *n.AppointmentScope(later).EndBefore)

	pscope := n.PatientScope()
	require.NotNil(t, pscope.HospitalID)
	assert.Equal(t, hospitalID, *pscope.HospitalID)
}

func TestAdministratorVisibility(t *testing.T) {
	ad := Administrator{Record: &person.Administrator{Person: testPerson("Sam Osei", "sosei")}}

	scope := ad.AppointmentScope(time.Now())
	assert.Nil(t, scope.PatientID)
	assert.Nil(t, scope.HospitalID)
	assert.Nil(t, scope.EndBefore)
	assert.True(t, ad.PatientScope().Unrestricted())

	a := titledAppointment("Dr. Chen", "Alice Park")
	assert.Equal(t, "Dr. Chen; Alice Park", ad.AppointmentTitle(a))
}

func TestNurseTitleNamesBothParties(t *testing.T) {
	n := Nurse{Record: &person.Nurse{Person: testPerson("Nina Ruiz", "nruiz")}}
	a := titledAppointment("Dr. Chen", "Alice Park")

	assert.Equal(t, "Dr. Chen; Alice Park", n.AppointmentTitle(a))
}

func TestPatientAffiliation(t *testing.T) {
	hospitalID := uuid.New()
	other := uuid.New()

	preferred := &person.Patient{Person: testPerson("A", "a"), PreferredHospitalID: hospitalID}
	assert.True(t, preferred.AffiliatedWith(hospitalID))
	assert.False(t, preferred.AffiliatedWith(other))

	admitted := &person.Patient{Person: testPerson("B", "b"), PreferredHospitalID: other, AdmittedToID: &hospitalID}
	assert.True(t, admitted.AffiliatedWith(hospitalID))
}
