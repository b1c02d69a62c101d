package person

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthnet/scheduling/internal/domain/hospital"
)

// Person holds the identity fields shared by every role in the network.
// Registration and profile management live elsewhere in the portal; the
// scheduler consumes these records read-mostly.
type Person struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	Name        string    `gorm:"column:name;type:varchar(100);not null"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;not null"`
	ContactInfo string    `gorm:"column:contact_info;type:varchar(200)"`
	Username    string    `gorm:"column:username;type:varchar(30);uniqueIndex;not null"`
}

type Patient struct {
	Person

	PreferredHospitalID uuid.UUID  `gorm:"column:preferred_hospital_id;type:uuid;not null;index"`
	AdmittedToID        *uuid.UUID `gorm:"column:admitted_to_id;type:uuid;index"`
	InsuranceID         string     `gorm:"column:insurance_id;type:varchar(15)"`
	EmergencyContact    string     `gorm:"column:emergency_contact;type:varchar(200)"`

	PreferredHospital *hospital.Hospital `gorm:"foreignKey:PreferredHospitalID"`
	AdmittedTo        *hospital.Hospital `gorm:"foreignKey:AdmittedToID"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

// AffiliatedWith reports whether the patient belongs to the given hospital,
// either by preference or by current admission.
func (p *Patient) AffiliatedWith(hospitalID uuid.UUID) bool {
	if p.PreferredHospitalID == hospitalID {
		return true
	}
	return p.AdmittedToID != nil && *p.AdmittedToID == hospitalID
}

type Doctor struct {
	Person

	HospitalID uuid.UUID          `gorm:"column:hospital_id;type:uuid;not null;index"`
	Hospital   *hospital.Hospital `gorm:"foreignKey:HospitalID"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

type Nurse struct {
	Person

	HospitalID uuid.UUID          `gorm:"column:hospital_id;type:uuid;not null;index"`
	Hospital   *hospital.Hospital `gorm:"foreignKey:HospitalID"`
}

func (Nurse) TableName() string {
	return "clinical.nurses"
}

type Administrator struct {
	Person
}

func (Administrator) TableName() string {
	return "clinical.administrators"
}

// Scope restricts which patients a query may return. The zero value means
// no restriction (all patients).
type Scope struct {
	// Self limits the result to this one patient.
	Self *uuid.UUID
	// HospitalID limits the result to patients whose preferred hospital or
	// current admission matches.
	HospitalID *uuid.UUID
}

// Unrestricted reports whether the scope places no limit on the patient set.
func (s Scope) Unrestricted() bool {
	return s.Self == nil && s.HospitalID == nil
}

// Registry is the person lookup surface the scheduling core depends on.
// Patient filtering follows the visibility policy's Scope.
type Registry interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetNurse(ctx context.Context, id uuid.UUID) (*Nurse, error)
	GetAdministrator(ctx context.Context, id uuid.UUID) (*Administrator, error)

	// ListPatients returns patients visible under the given scope, ordered
	// by name.
	ListPatients(ctx context.Context, scope Scope) ([]*Patient, error)
}
