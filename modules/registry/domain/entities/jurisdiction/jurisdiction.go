package jurisdiction

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Type is the scope a position applies to.
type Type string

const (
	TypeNational Type = "national"
	TypeRegion   Type = "region"
	TypeProvince Type = "province"
	TypeCity     Type = "city"
	TypeBarangay Type = "barangay"
	TypeDistrict Type = "district"
)

// Types lists every valid jurisdiction type, in display order.
func Types() []Type {
	return []Type{TypeNational, TypeRegion, TypeProvince, TypeCity, TypeBarangay, TypeDistrict}
}

// TypeNames returns the valid type names as strings, for error suggestions.
func TypeNames() []string {
	types := Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// ParseType matches a raw value against the known types, case-insensitively.
func ParseType(raw string) (Type, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range Types() {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}

var ErrNotFound = errors.New("jurisdiction not found")

// Ref identifies one concrete jurisdiction. National assignments carry no ID.
type Ref struct {
	Type Type
	ID   uuid.UUID
	Name string
}

// NationalRef is the single jurisdiction reference shared by all national positions.
func NationalRef() Ref {
	return Ref{Type: TypeNational}
}

func (r Ref) IsNational() bool {
	return r.Type == TypeNational
}

// Directory resolves jurisdiction names within a type. Lookups are exact
// (case-insensitive); the directory does not offer fuzzy matching.
type Directory interface {
	Lookup(ctx context.Context, t Type, name string) (Ref, error)
}
