package catalog

import (
	"context"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"

	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
	"github.com/openpol/registry/modules/registry/domain/entities/party"
	"github.com/openpol/registry/modules/registry/domain/entities/position"
)

// Catalog is a read-only snapshot of reference data, loaded once per import
// run. Position and party lookups hit the snapshot; jurisdiction lookups go
// to the live directory since jurisdiction lists are too large to preload.
type Catalog struct {
	positions     map[string]position.Position
	parties       map[string]party.Party
	positionNames []string
	partyNames    []string
	directory     jurisdiction.Directory
	lookupTimeout time.Duration
}

type Option func(*Catalog)

// WithLookupTimeout bounds each jurisdiction directory call.
func WithLookupTimeout(d time.Duration) Option {
	return func(c *Catalog) {
		c.lookupTimeout = d
	}
}

func Load(
	ctx context.Context,
	positions position.Repository,
	parties party.Repository,
	directory jurisdiction.Directory,
	opts ...Option,
) (*Catalog, error) {
	allPositions, err := positions.GetAll(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "load positions")
	}
	allParties, err := parties.GetAll(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "load parties")
	}

	c := &Catalog{
		positions: make(map[string]position.Position, len(allPositions)),
		parties:   make(map[string]party.Party, len(allParties)),
		directory: directory,
	}
	for _, p := range allPositions {
		c.positions[strings.ToLower(p.Name())] = p
		c.positionNames = append(c.positionNames, p.Name())
	}
	for _, p := range allParties {
		c.parties[strings.ToLower(p.Name())] = p
		c.partyNames = append(c.partyNames, p.Name())
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Catalog) FindPosition(name string) (position.Position, bool) {
	p, ok := c.positions[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

func (c *Catalog) FindParty(name string) (party.Party, bool) {
	p, ok := c.parties[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

func (c *Catalog) PositionNames() []string {
	return c.positionNames
}

func (c *Catalog) PartyNames() []string {
	return c.partyNames
}

// LookupJurisdiction resolves a (type, name) pair through the directory.
// Returns jurisdiction.ErrNotFound on a miss. No retries; the caller owns
// retry policy.
func (c *Catalog) LookupJurisdiction(ctx context.Context, t jurisdiction.Type, name string) (jurisdiction.Ref, error) {
	if c.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.lookupTimeout)
		defer cancel()
	}
	return c.directory.Lookup(ctx, t, name)
}
