package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Rule identifies which booking rule a validation failure came from.
type Rule string

const (
	RuleBusinessHours Rule = "business_hours"
	RuleConflict      Rule = "conflict"
	RuleOrdering      Rule = "ordering"
	RuleDuration      Rule = "duration"
	RulePastDating    Rule = "past_dating"
)

// ValidationError is a recoverable, user-facing booking failure. The message
// is surfaced verbatim to the requester and never silently corrected.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrTimeConflict = &ValidationError{
		Rule:    RuleConflict,
		Message: "That time conflicts with another appointment.",
	}
	ErrEndBeforeStart = &ValidationError{
		Rule:    RuleOrdering,
		Message: "End time must be after start time.",
	}
	ErrScheduledInPast = &ValidationError{
		Rule:    RulePastDating,
		Message: "Cannot change appointments in the past.",
	}
)

func errBusinessHours(r Rules) *ValidationError {
	return &ValidationError{
		Rule:    RuleBusinessHours,
		Message: fmt.Sprintf("Appointments must be between %02d:00 and %02d:00.", r.OpenHour, r.CloseHour),
	}
}

func errDuration(r Rules) *ValidationError {
	mins := make([]string, 0, len(r.AllowedDurations))
	for _, d := range r.AllowedDurations {
		mins = append(mins, fmt.Sprintf("%d", int(d/time.Minute)))
	}
	var list string
	if len(mins) > 1 {
		list = strings.Join(mins[:len(mins)-1], ", ") + ", or " + mins[len(mins)-1]
	} else {
		list = strings.Join(mins, "")
	}
	return &ValidationError{
		Rule:    RuleDuration,
		Message: fmt.Sprintf("Duration must be %s minutes.", list),
	}
}
