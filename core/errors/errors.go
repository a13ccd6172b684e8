// Package errors provides the error taxonomy of an import run.
//
// Lookup failures and conflicts are reportable: they are collected on the
// run report and processing continues. Remote failures carry the operation
// that failed so the orchestrator can decide whether the run must abort.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported so callers need a single errors import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinel errors for errors.Is checks.
var (
	// ErrLookup indicates a referenced legacy entity or its remote counterpart was not found.
	ErrLookup = errors.New("lookup failure")

	// ErrConflict indicates a team matched by name but carries a different abbreviation.
	ErrConflict = errors.New("team conflict")

	// ErrRemote indicates a non-success response from the meet-management service.
	ErrRemote = errors.New("remote service failure")

	// ErrReadFailure indicates a read the run depends on could not be completed.
	ErrReadFailure = errors.New("read failure")

	// ErrUnsupported indicates the remote service does not offer an operation.
	ErrUnsupported = errors.New("operation not supported by remote service")
)

// LookupError reports a reference that could not be resolved.
type LookupError struct {
	// Entity is the kind of record that was looked up (athlete, team, event, entry).
	Entity string
	// Key is the value used for the lookup.
	Key string
	// Source is "legacy" or "remote".
	Source string
}

// Error implements the error interface
func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %s %s not found", e.Source, e.Entity, e.Key)
}

// Is implements errors.Is support
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// NewLegacyLookup creates a LookupError for a legacy record.
func NewLegacyLookup(entity string, key any) *LookupError {
	return &LookupError{Entity: entity, Key: fmt.Sprint(key), Source: "legacy"}
}

// NewRemoteLookup creates a LookupError for a remote record.
func NewRemoteLookup(entity string, key any) *LookupError {
	return &LookupError{Entity: entity, Key: fmt.Sprint(key), Source: "remote"}
}

// ConflictError reports a legacy team that matched a remote team by name only.
type ConflictError struct {
	TeamName     string
	RemoteAbbr   string
	LegacyAbbr   string
	RemoteTeamID int
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("found existing team %s with different abbreviation: remote=%s legacy=%s",
		e.TeamName, e.RemoteAbbr, e.LegacyAbbr)
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// RemoteError represents a non-success response from the meet-management service.
type RemoteError struct {
	Operation  string
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s %s returned status %d: %s", e.Operation, e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Operation, e.Method, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *RemoteError) Is(target error) bool {
	if target == ErrRemote {
		return true
	}
	if target == ErrReadFailure {
		return e.Method == "GET"
	}
	return false
}

// Temporary reports whether retrying the request may succeed.
func (e *RemoteError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

// PhaseError wraps the error that aborted an import phase.
type PhaseError struct {
	Phase string
	Err   error
}

// Error implements the error interface
func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %s aborted: %v", e.Phase, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PhaseError) Unwrap() error {
	return e.Err
}

// ProcessError represents a failed external command.
type ProcessError struct {
	Operation string
	Command   string
	Output    string
	Err       error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s failed (%s): %v: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("%s failed (%s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProcessError) Unwrap() error {
	return e.Err
}
