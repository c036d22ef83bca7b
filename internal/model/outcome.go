package model

import (
	"fmt"
	"strings"
	"time"
)

// FormatCandidate is an ordered list of format-selection expressions, most
// restrictive first. The expressions are opaque to this program; only the
// extraction tool interprets them.
type FormatCandidate []string

// Last returns the final (fallback) expression
func (c FormatCandidate) Last() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// NeedsMerge reports whether an expression joins separate video and audio
// streams, which requires FFmpeg
func NeedsMerge(expr string) bool {
	return strings.Contains(expr, "+")
}

// Progress is one progress event for a running download
type Progress struct {
	Downloaded int64         // cumulative bytes across all streams of the request
	Total      int64         // cumulative expected bytes, 0 if unknown
	Percent    float64       // 0..100 for the current stream
	Stream     int           // 1-based index of the stream being fetched
	Speed      float64       // bytes per second, 0 if unknown
	ETA        time.Duration // 0 if unknown
	Title      string
}

// GetETAString returns ETA formatted as hh:mm:ss or mm:ss, or "—" if unknown
func (p Progress) GetETAString() string {
	sec := int(p.ETA.Seconds())
	if sec <= 0 {
		return "—"
	}
	hours := sec / 3600
	minutes := (sec % 3600) / 60
	seconds := sec % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// DownloadOutcome is the terminal result of a request
type DownloadOutcome struct {
	Success   bool
	FilePath  string // set on success
	Candidate string // expression that produced the file
	Err       error  // set on failure
	StartedAt time.Time
	EndedAt   time.Time
}

// FailureReason returns the error text, or "" on success
func (o DownloadOutcome) FailureReason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
