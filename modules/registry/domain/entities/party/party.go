package party

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Party struct {
	id        uuid.UUID
	name      string
	createdAt time.Time
}

func New(name string) Party {
	return Party{name: strings.TrimSpace(name)}
}

func Hydrate(id uuid.UUID, name string, createdAt time.Time) Party {
	return Party{
		id:        id,
		name:      strings.TrimSpace(name),
		createdAt: createdAt,
	}
}

func (p Party) ID() uuid.UUID { return p.id }

func (p Party) Name() string { return p.name }

func (p Party) CreatedAt() time.Time { return p.createdAt }

func (p Party) IsZero() bool { return p.id == uuid.Nil && p.name == "" }
