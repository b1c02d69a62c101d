package hospital

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrHospitalNotFound = errors.New("hospital not found")

// Hospital is a location in the network where visits take place. Records are
// maintained by the registration side of the portal; the scheduler only
// reads them.
type Hospital struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name string `gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
}

func (Hospital) TableName() string {
	return "clinical.hospitals"
}

// Directory is the read-only hospital lookup the scheduling core depends on.
type Directory interface {
	// GetByID retrieves a hospital by primary key. Returns ErrHospitalNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)

	// GetByName retrieves a hospital by its unique name.
	GetByName(ctx context.Context, name string) (*Hospital, error)

	// List returns every hospital in the network, ordered by name.
	List(ctx context.Context) ([]*Hospital, error)
}
