package ledger

import "time"

// Run statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusDryRun    = "dry_run"
)

// Run is one recorded import run.
type Run struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	Source     string    `gorm:"size:512" json:"source" yaml:"source"`
	MeetName   string    `gorm:"size:255;index" json:"meet_name" yaml:"meet_name"`
	MeetID     int       `json:"meet_id" yaml:"meet_id"`
	DryRun     bool      `json:"dry_run" yaml:"dry_run"`
	Status     string    `gorm:"size:16" json:"status" yaml:"status"`
	Error      string    `gorm:"type:text" json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt  time.Time `gorm:"index" json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Phases     []Phase   `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"phases,omitempty" yaml:"phases,omitempty"`
	Issues     []Issue   `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"issues,omitempty" yaml:"issues,omitempty"`
}

// TableName implements the gorm Tabler interface.
func (Run) TableName() string {
	return "import_runs"
}

// Phase holds the counts of one phase of a run.
type Phase struct {
	ID         uint   `gorm:"primaryKey" json:"-" yaml:"-"`
	RunID      string `gorm:"size:36;index" json:"-" yaml:"-"`
	Name       string `gorm:"size:32" json:"name" yaml:"name"`
	Considered int    `json:"considered" yaml:"considered"`
	Planned    int    `json:"planned" yaml:"planned"`
	Applied    int    `json:"applied" yaml:"applied"`
	Skipped    int    `json:"skipped" yaml:"skipped"`
}

// TableName implements the gorm Tabler interface.
func (Phase) TableName() string {
	return "import_phases"
}

// Issue is a reportable problem found during a run.
type Issue struct {
	ID      uint   `gorm:"primaryKey" json:"-" yaml:"-"`
	RunID   string `gorm:"size:36;index" json:"-" yaml:"-"`
	Phase   string `gorm:"size:32" json:"phase" yaml:"phase"`
	Kind    string `gorm:"size:16" json:"kind" yaml:"kind"`
	Message string `gorm:"type:text" json:"message" yaml:"message"`
}

// TableName implements the gorm Tabler interface.
func (Issue) TableName() string {
	return "import_issues"
}
