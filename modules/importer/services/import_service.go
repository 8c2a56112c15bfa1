package services

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openpol/registry/modules/importer/catalog"
	"github.com/openpol/registry/modules/importer/domain/importrun"
	"github.com/openpol/registry/modules/importer/reconcile"
	"github.com/openpol/registry/modules/importer/tabular"
	"github.com/openpol/registry/modules/importer/validate"
	"github.com/openpol/registry/modules/registry/domain/entities/jurisdiction"
	"github.com/openpol/registry/modules/registry/domain/entities/party"
	"github.com/openpol/registry/modules/registry/domain/entities/position"
	"github.com/openpol/registry/pkg/eventbus"
)

// ImportService runs the full pipeline for one spreadsheet submission:
// read, validate against a fresh catalog snapshot, reconcile, report.
type ImportService struct {
	positions     position.Repository
	parties       party.Repository
	directory     jurisdiction.Directory
	engine        *reconcile.Engine
	validator     *validate.Validator
	publisher     eventbus.EventBus
	log           *logrus.Logger
	lookupTimeout time.Duration
}

type ImportServiceOptions struct {
	Positions     position.Repository
	Parties       party.Repository
	Directory     jurisdiction.Directory
	Engine        *reconcile.Engine
	Validator     *validate.Validator
	Publisher     eventbus.EventBus
	Logger        *logrus.Logger
	LookupTimeout time.Duration
}

func NewImportService(opts ImportServiceOptions) *ImportService {
	validator := opts.Validator
	if validator == nil {
		validator = validate.New()
	}
	return &ImportService{
		positions:     opts.Positions,
		parties:       opts.Parties,
		directory:     opts.Directory,
		engine:        opts.Engine,
		validator:     validator,
		publisher:     opts.Publisher,
		log:           opts.Logger,
		lookupTimeout: opts.LookupTimeout,
	}
}

// Run executes one import. Structural problems (unreadable workbook, missing
// columns, no data rows) abort before any row is touched and return an error
// with no report. Row-level and reconciliation problems never fail the run;
// they are collected into the returned report, so a report where every row
// failed is still a successful run.
func (s *ImportService) Run(ctx context.Context, filename string, src io.Reader) (*importrun.Report, error) {
	raws, err := tabular.Read(src)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(
		ctx, s.positions, s.parties, s.directory,
		catalog.WithLookupTimeout(s.lookupTimeout),
	)
	if err != nil {
		return nil, err
	}

	rep := &importrun.Report{
		Filename:  filename,
		StartedAt: time.Now(),
		TotalRows: len(raws),
	}

	var valid []importrun.ValidatedRow
	for _, raw := range raws {
		row, errs := s.validator.Validate(ctx, importrun.FromRaw(raw), cat)
		if len(errs) > 0 {
			rep.InvalidRows++
			rep.Errors = append(rep.Errors, errs...)
			continue
		}
		valid = append(valid, row)
	}
	rep.ValidRows = len(valid)

	outcome, failures := s.engine.Reconcile(ctx, valid)
	rep.Created = outcome.Created
	rep.Updated = outcome.Updated
	rep.Archived = outcome.Archived
	rep.Failures = failures

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"file":     filename,
			"total":    rep.TotalRows,
			"valid":    rep.ValidRows,
			"invalid":  rep.InvalidRows,
			"created":  rep.Created,
			"updated":  rep.Updated,
			"archived": rep.Archived,
		}).Info("import completed")
	}
	if s.publisher != nil {
		s.publisher.Publish("import.completed", rep)
	}
	return rep, nil
}
