package importer

import (
	"context"
	"fmt"
	"time"

	"meet-importer/core/errors"
	"meet-importer/core/meetservice"
	"meet-importer/core/reconcile"
	"meet-importer/feature/ledger"
	"meet-importer/feature/legacy"
	"meet-importer/feature/meet"
	"meet-importer/feature/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Policy decides when a failing phase aborts the run.
type Policy struct {
	// ContinueOnBatchFailure isolates rejected entries, results and relays
	// batches record by record instead of aborting.
	ContinueOnBatchFailure bool
	// BlockOnConflict aborts before any team is written when a legacy team
	// matches a remote team by name with a different abbreviation.
	BlockOnConflict bool
}

// Options configures optional collaborators of the Service.
type Options struct {
	Policy Policy
	// Ledger records every run. Defaults to ledger.Nop.
	Ledger ledger.Ledger
	// Archive stores the legacy export of every applied run. Nil disables archiving.
	Archive *snapshot.Archive
	// CacheTTL keeps loaded sources in memory between runs.
	CacheTTL time.Duration
}

// Request asks for an import of one legacy source.
type Request struct {
	Source string `json:"source" yaml:"source"`
	DryRun bool   `json:"dry_run" yaml:"dry_run"`
}

// Service runs imports of legacy meet databases into the remote meet service.
type Service struct {
	remote  meetservice.Service
	opener  Opener
	ledger  ledger.Ledger
	archive *snapshot.Archive
	policy  Policy
	stores  *reconcile.Cache[*legacy.Store]
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new import service.
func NewService(remote meetservice.Service, opener Opener, opts Options, logger *zap.Logger) *Service {
	l := opts.Ledger
	if l == nil {
		l = ledger.Nop{}
	}
	return &Service{
		remote:  remote,
		opener:  opener,
		ledger:  l,
		archive: opts.Archive,
		policy:  opts.Policy,
		stores:  reconcile.NewCache[*legacy.Store](opts.CacheTTL),
		logger:  logger,
		now:     time.Now,
	}
}

// Plan computes what an import of source would do without writing to the
// remote service.
func (s *Service) Plan(ctx context.Context, source string) (*Report, error) {
	return s.Run(ctx, Request{Source: source, DryRun: true})
}

// Run imports a legacy source. The returned report is never nil and
// describes the phases completed before any abort.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	report := &Report{
		ID:        uuid.NewString(),
		Source:    req.Source,
		DryRun:    req.DryRun,
		StartedAt: s.now(),
	}
	log := s.logger.With(zap.String("run_id", report.ID), zap.Bool("dry_run", req.DryRun))
	log.Info("Starting import", zap.String("source", req.Source))

	err := s.run(ctx, req, report, log)
	report.finish(err, s.now())

	if err != nil {
		log.Error("Import aborted", zap.Error(err))
	} else {
		log.Info("Import finished",
			zap.String("meet", report.Meet),
			zap.Int("meet_id", report.MeetID),
			zap.Int("issues", len(report.Issues)))
	}

	if recErr := s.ledger.Record(context.WithoutCancel(ctx), report.Run()); recErr != nil {
		log.Warn("Failed to record import run", zap.Error(recErr))
	}
	return report, err
}

// Runs returns the most recent recorded runs.
func (s *Service) Runs(ctx context.Context, limit int) ([]ledger.Run, error) {
	return s.ledger.List(ctx, limit)
}

// GetRun returns one recorded run.
func (s *Service) GetRun(ctx context.Context, id string) (*ledger.Run, error) {
	return s.ledger.Get(ctx, id)
}

// load reads the legacy tables for source. A store is reused only while the
// opener reports the same version for the source.
func (s *Service) load(ctx context.Context, source string) (*legacy.Store, error) {
	build := func(ctx context.Context) (*legacy.Store, error) {
		exporter, err := s.opener.Open(source)
		if err != nil {
			return nil, err
		}
		return legacy.Load(ctx, exporter)
	}

	versioner, ok := s.opener.(Versioner)
	if !ok {
		return build(ctx)
	}
	version, err := versioner.Version(source)
	if err != nil {
		return nil, err
	}
	return s.stores.GetOrBuild(ctx, source+"@"+version, build)
}

func (s *Service) run(ctx context.Context, req Request, report *Report, log *zap.Logger) error {
	store, err := s.load(ctx, req.Source)
	if err != nil {
		return fmt.Errorf("failed to load legacy source: %w", err)
	}
	for _, dup := range store.Duplicates() {
		report.Issues = append(report.Issues, reconcile.Issue{
			Phase:   "legacy",
			Kind:    reconcile.IssueDuplicate,
			Message: dup.Error(),
			Err:     dup,
		})
	}

	m, err := meet.Translate(store.Meet, store.Events)
	if err != nil {
		return &errors.PhaseError{Phase: meet.Phase, Err: err}
	}
	report.Meet = m.Name

	target := s.remote
	if req.DryRun {
		mirror, err := meetservice.Mirror(ctx, s.remote, m.Name)
		if err != nil {
			return err
		}
		target = mirror
	} else if s.archive != nil && !isSnapshot(req.Source) {
		if err := s.archive.Save(ctx, report.ID, store.Raw); err != nil {
			log.Warn("Failed to archive legacy snapshot", zap.Error(err))
		}
	}

	r := &runner{
		service: s,
		target:  target,
		mutator: &remoteMutator{remote: target},
		store:   store,
		report:  report,
		log:     log,
	}
	return r.execute(ctx, m)
}
