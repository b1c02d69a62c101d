package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleNurse   Role = "nurse"
	RoleAdmin   Role = "administrator"
)

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleNurse, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to hospital staff rather than a
// patient. Staff roles may book and reschedule on behalf of patients.
func (r Role) IsStaff() bool {
	return r == RoleDoctor || r == RoleNurse || r == RoleAdmin
}

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	Username     string `gorm:"column:username;type:varchar(30);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         Role   `gorm:"column:role;type:varchar(30);not null;index"`

	// Links the login to the patient/doctor/nurse/administrator record the
	// role refers to.
	PersonID uuid.UUID `gorm:"column:person_id;type:uuid;not null;index"`

	IsActive         bool       `gorm:"column:is_active;default:true;index"`
	FailedLoginCount int        `gorm:"column:failed_login_count;default:0"`
	LockedUntil      *time.Time `gorm:"column:locked_until"`
	LastLoginAt      *time.Time `gorm:"column:last_login_at"`
}

func (User) TableName() string {
	return "auth.users"
}

// IsLocked returns true if the account is temporarily locked due to failed logins.
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
)

// EntityKind names the kind of record an audit entry refers to.
type EntityKind string

const (
	EntityPatient       EntityKind = "patient"
	EntityDoctor        EntityKind = "doctor"
	EntityNurse         EntityKind = "nurse"
	EntityAdministrator EntityKind = "administrator"
	EntityAppointment   EntityKind = "appointment"
	EntityHospital      EntityKind = "hospital"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	Username string `gorm:"column:username;type:varchar(30);not null;index"`
	UserRole Role   `gorm:"column:user_role;type:varchar(30);not null"`

	// What
	Action     AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	EntityKind EntityKind  `gorm:"column:entity_kind;type:varchar(30);not null;index"`
	EntityID   string      `gorm:"column:entity_id;type:varchar(50);index"`

	// Changed field name, or "N/A" when the change is not field-scoped.
	Field       string `gorm:"column:field;type:varchar(50)"`
	Description string `gorm:"column:description;type:varchar(200)"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index"`
	IPAddress string `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID   uuid.UUID `json:"sub"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	PersonID uuid.UUID `json:"person_id"`
}
