package politician

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("politician not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Politician, error)
	// FindByIdentity matches on normalized name plus birth date. A nil birth
	// date matches on name alone, so rows without one still resolve existing
	// records.
	FindByIdentity(ctx context.Context, name string, birthDate *time.Time) (Politician, error)
	Create(ctx context.Context, p Politician) (Politician, error)
	Update(ctx context.Context, p Politician) error
}
