package person

import "errors"

var (
	ErrPatientNotFound       = errors.New("patient not found")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrNurseNotFound         = errors.New("nurse not found")
	ErrAdministratorNotFound = errors.New("administrator not found")
)
