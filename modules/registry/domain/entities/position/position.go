package position

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Position struct {
	id        uuid.UUID
	name      string
	createdAt time.Time
}

func New(name string) Position {
	return Position{name: strings.TrimSpace(name)}
}

func Hydrate(id uuid.UUID, name string, createdAt time.Time) Position {
	return Position{
		id:        id,
		name:      strings.TrimSpace(name),
		createdAt: createdAt,
	}
}

func (p Position) ID() uuid.UUID { return p.id }

func (p Position) Name() string { return p.name }

func (p Position) CreatedAt() time.Time { return p.createdAt }

func (p Position) IsZero() bool { return p.id == uuid.Nil && p.name == "" }
