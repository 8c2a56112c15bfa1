package politician

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Politician is a person who may hold office. Identity for import purposes is
// the (normalized name, birth date) pair.
type Politician struct {
	id        uuid.UUID
	name      string
	birthDate *time.Time
	photoURL  string
	shortBio  string
	createdAt time.Time
	updatedAt time.Time
}

func New(name string, birthDate *time.Time) Politician {
	return Politician{
		name:      strings.TrimSpace(name),
		birthDate: birthDate,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	birthDate *time.Time,
	photoURL string,
	shortBio string,
	createdAt time.Time,
	updatedAt time.Time,
) Politician {
	return Politician{
		id:        id,
		name:      strings.TrimSpace(name),
		birthDate: birthDate,
		photoURL:  photoURL,
		shortBio:  shortBio,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (p Politician) ID() uuid.UUID { return p.id }

func (p Politician) Name() string { return p.name }

func (p Politician) BirthDate() *time.Time { return p.birthDate }

func (p Politician) PhotoURL() string { return p.photoURL }

func (p Politician) ShortBio() string { return p.shortBio }

func (p Politician) CreatedAt() time.Time { return p.createdAt }

func (p Politician) UpdatedAt() time.Time { return p.updatedAt }

func (p Politician) IsZero() bool { return p.id == uuid.Nil && p.name == "" }

// WithProfile returns a copy with the mutable profile fields replaced.
func (p Politician) WithProfile(photoURL, shortBio string) Politician {
	out := p
	out.photoURL = photoURL
	out.shortBio = shortBio
	return out
}
