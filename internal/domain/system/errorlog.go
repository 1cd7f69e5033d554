// Package system holds the application error log surfaced to admins.
package system

import (
	"time"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// ErrorSeverity ranks logged errors
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "Info"
	SeverityWarning  ErrorSeverity = "Warning"
	SeverityError    ErrorSeverity = "Error"
	SeverityCritical ErrorSeverity = "Critical"
)

// AllSeverities lists every severity from lowest to highest
func AllSeverities() []ErrorSeverity {
	return []ErrorSeverity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical}
}

// IsValid checks if the severity is known
func (s ErrorSeverity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	}
	return false
}

// Rank orders severities, higher is worse. Unknown values rank 0.
func (s ErrorSeverity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// Label returns the display name of the severity
func (s ErrorSeverity) Label() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityCritical:
		return "Critical"
	}
	return string(s)
}

// Tone returns the badge emphasis for the severity
func (s ErrorSeverity) Tone() shared.Tone {
	switch s {
	case SeverityInfo:
		return shared.ToneInfo
	case SeverityWarning:
		return shared.ToneWarning
	case SeverityError, SeverityCritical:
		return shared.ToneDanger
	}
	return shared.ToneNeutral
}

// ErrorLogType is a lookup value classifying errors
type ErrorLogType struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	NameAr string `json:"nameAr,omitempty"`
}

// ErrorLog is one recorded application error
type ErrorLog struct {
	ID         int64         `json:"id"`
	Type       string        `json:"type"`
	Severity   ErrorSeverity `json:"severity"`
	Source     string        `json:"source"`
	Message    string        `json:"message"`
	StackTrace string        `json:"stackTrace,omitempty"`
	Path       string        `json:"path,omitempty"`
	UserID     string        `json:"userId,omitempty"`
	IsResolved bool          `json:"isResolved"`
	ResolvedAt *time.Time    `json:"resolvedAt,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// ErrorLogFilter narrows the error log list
type ErrorLogFilter struct {
	Type       string
	Severity   ErrorSeverity
	IsResolved *bool
	From       *time.Time
	To         *time.Time
	Search     string
}

// Params converts the filter into query parameters
func (f ErrorLogFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("type", f.Type).
		SetString("severity", string(f.Severity)).
		SetBoolPtr("isResolved", f.IsResolved).
		SetTimePtr("fromDate", f.From).
		SetTimePtr("toDate", f.To).
		SetString("search", f.Search)
}

// ResolveRequest marks an error log as resolved
type ResolveRequest struct {
	Note string `json:"note,omitempty" validate:"max=500"`
}
