package ledger

import (
	"context"
	"fmt"

	"meet-importer/core/errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("import run not found")

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 20

// Ledger records import runs.
type Ledger interface {
	Record(ctx context.Context, run *Run) error
	List(ctx context.Context, limit int) ([]Run, error)
	Get(ctx context.Context, id string) (*Run, error)
}

// GormLedger stores runs in a relational database.
type GormLedger struct {
	db *gorm.DB
}

// New creates a GormLedger and migrates its tables.
func New(db *gorm.DB) (*GormLedger, error) {
	if err := db.AutoMigrate(&Run{}, &Phase{}, &Issue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger tables: %w", err)
	}
	return &GormLedger{db: db}, nil
}

// Record stores a run with its phases and issues.
func (l *GormLedger) Record(ctx context.Context, run *Run) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(run).Error
	})
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// List returns the most recent runs without their details.
func (l *GormLedger) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var runs []Run
	if err := l.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its phases and issues.
func (l *GormLedger) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := l.db.WithContext(ctx).Preload("Phases").Preload("Issues").Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}

// Nop discards runs. It is used when the database is disabled.
type Nop struct{}

// Record implements Ledger.
func (Nop) Record(context.Context, *Run) error { return nil }

// List implements Ledger.
func (Nop) List(context.Context, int) ([]Run, error) { return nil, nil }

// Get implements Ledger.
func (Nop) Get(_ context.Context, id string) (*Run, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}
