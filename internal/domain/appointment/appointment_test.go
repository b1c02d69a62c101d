package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = Rules{
	OpenHour:  8,
	CloseHour: 18,
	AllowedDurations: []time.Duration{
		15 * time.Minute, 30 * time.Minute, 45 * time.Minute, 60 * time.Minute,
	},
}

// day anchors test appointments on a fixed future date.
var day = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func appt(doctorID, patientID uuid.UUID, start, end time.Time) *Appointment {
	return &Appointment{
		ID:         uuid.New(),
		Start:      start,
		End:        end,
		DoctorID:   doctorID,
		PatientID:  patientID,
		HospitalID: uuid.New(),
	}
}

func TestConflictsWith(t *testing.T) {
	doctor := uuid.New()
	otherDoctor := uuid.New()
	patient := uuid.New()
	otherPatient := uuid.New()

	tests := []struct {
		name string
		a, b *Appointment
		want bool
	}{
		{
			name: "same doctor overlapping",
			a:    appt(doctor, patient, at(10, 0), at(10, 30)),
			b:    appt(doctor, otherPatient, at(10, 15), at(10, 45)),
			want: true,
		},
		{
			name: "same patient overlapping different doctors",
			a:    appt(doctor, patient, at(10, 0), at(10, 30)),
			b:    appt(otherDoctor, patient, at(10, 15), at(10, 45)),
			want: true,
		},
		{
			name: "different doctor and patient same time",
			a:    appt(doctor, patient, at(10, 0), at(10, 30)),
			b:    appt(otherDoctor, otherPatient, at(10, 0), at(10, 30)),
			want: false,
		},
		{
			name: "same doctor different days",
			a:    appt(doctor, patient, at(10, 0), at(10, 30)),
			b:    appt(doctor, patient, at(10, 0).AddDate(0, 0, 1), at(10, 30).AddDate(0, 0, 1)),
			want: false,
		},
		{
			name: "back to back boundary touch conflicts",
			a:    appt(doctor, patient, at(10, 0), at(10, 30)),
			b:    appt(doctor, otherPatient, at(10, 30), at(11, 0)),
			want: true,
		},
		{
			name: "same doctor disjoint times",
			a:    appt(doctor, patient, at(9, 0), at(9, 30)),
			b:    appt(doctor, otherPatient, at(14, 0), at(14, 30)),
			want: false,
		},
		{
			name: "containment",
			a:    appt(doctor, patient, at(10, 0), at(11, 0)),
			b:    appt(doctor, otherPatient, at(10, 15), at(10, 30)),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ConflictsWith(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.ConflictsWith(tt.a))
		})
	}
}

func TestFirstConflictSkipsSelf(t *testing.T) {
	doctor := uuid.New()
	patient := uuid.New()

	a := appt(doctor, patient, at(10, 0), at(10, 30))

	// Same pointer and same id must both be excluded.
	stored := *a
	assert.Nil(t, FirstConflict(a, []*Appointment{a}))
	assert.Nil(t, FirstConflict(a, []*Appointment{&stored}))

	other := appt(doctor, uuid.New(), at(10, 15), at(10, 45))
	got := FirstConflict(a, []*Appointment{&stored, other})
	require.NotNil(t, got)
	assert.Equal(t, other.ID, got.ID)
}

func TestFirstConflictUnsavedCandidate(t *testing.T) {
	doctor := uuid.New()

	candidate := &Appointment{
		Start:    at(10, 0),
		End:      at(10, 30),
		DoctorID: doctor,
	}
	existing := appt(doctor, uuid.New(), at(10, 0), at(10, 30))

	got := FirstConflict(candidate, []*Appointment{existing})
	require.NotNil(t, got)
	assert.Equal(t, existing.ID, got.ID)
}

func TestValidateBusinessHours(t *testing.T) {
	now := at(0, 0).AddDate(0, 0, -30)
	doctor := uuid.New()
	patient := uuid.New()

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    bool
	}{
		{"start at open", at(8, 0), at(8, 30), false},
		{"end at close", at(17, 0), at(18, 0), false},
		{"start before open", at(7, 59), at(8, 29), true},
		{"end past close", at(17, 45), at(18, 15), true},
		{"start at close", at(18, 0), at(18, 30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := appt(doctor, patient, tt.start, tt.end)
			err := a.Validate(testRules, now, nil)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, RuleBusinessHours, err.Rule)
				assert.Equal(t, "Appointments must be between 08:00 and 18:00.", err.Message)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateDurations(t *testing.T) {
	now := at(0, 0).AddDate(0, 0, -30)
	doctor := uuid.New()
	patient := uuid.New()

	for _, mins := range []int{15, 30, 45, 60} {
		a := appt(doctor, patient, at(10, 0), at(10, mins))
		assert.Nil(t, a.Validate(testRules, now, nil), "duration %d should pass", mins)
	}

	a := appt(doctor, patient, at(10, 0), at(10, 20))
	err := a.Validate(testRules, now, nil)
	require.NotNil(t, err)
	assert.Equal(t, RuleDuration, err.Rule)
	assert.Equal(t, "Duration must be 15, 30, 45, or 60 minutes.", err.Message)
}

func TestValidateConflict(t *testing.T) {
	now := at(0, 0).AddDate(0, 0, -30)
	doctor := uuid.New()
	patient := uuid.New()

	existing := appt(doctor, patient, at(10, 0), at(10, 30))

	candidate := appt(doctor, uuid.New(), at(10, 15), at(10, 45))
	err := candidate.Validate(testRules, now, []*Appointment{existing})
	require.NotNil(t, err)
	assert.Equal(t, RuleConflict, err.Rule)
	assert.Equal(t, "That time conflicts with another appointment.", err.Message)

	// Same slot for an unrelated doctor and patient is fine.
	free := appt(uuid.New(), uuid.New(), at(10, 15), at(10, 45))
	assert.Nil(t, free.Validate(testRules, now, []*Appointment{existing}))
}

func TestValidateOrdering(t *testing.T) {
	now := at(0, 0).AddDate(0, 0, -30)

	a := appt(uuid.New(), uuid.New(), at(10, 0), at(9, 0))
	err := a.Validate(testRules, now, nil)
	require.NotNil(t, err)
	assert.Equal(t, RuleOrdering, err.Rule)
	assert.Equal(t, "End time must be after start time.", err.Message)
}

// Conflict is checked before ordering: an inverted candidate that also
// overlaps an existing appointment reports the conflict, not the ordering.
func TestValidateConflictBeforeOrdering(t *testing.T) {
	now := at(0, 0).AddDate(0, 0, -30)
	doctor := uuid.New()

	existing := appt(doctor, uuid.New(), at(10, 0), at(10, 30))
	inverted := appt(doctor, uuid.New(), at(10, 15), at(9, 15))

	err := inverted.Validate(testRules, now, []*Appointment{existing})
	require.NotNil(t, err)
	assert.Equal(t, RuleConflict, err.Rule)
}

func TestValidatePastDating(t *testing.T) {
	doctor := uuid.New()
	patient := uuid.New()

	a := appt(doctor, patient, at(10, 0), at(10, 30))

	err := a.Validate(testRules, at(11, 0), nil)
	require.NotNil(t, err)
	assert.Equal(t, RulePastDating, err.Rule)
	assert.Equal(t, "Cannot change appointments in the past.", err.Message)

	assert.Nil(t, a.Validate(testRules, at(9, 0), nil))
}
