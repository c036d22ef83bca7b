package model

// Stage represents where a single request currently is in its lifecycle
type Stage string

const (
	// StageIdle means nothing has been submitted yet
	StageIdle Stage = "Idle"

	// StageFetchingMetadata means a metadata-only query is running
	StageFetchingMetadata Stage = "Fetching metadata"

	// StageSelecting means the user is choosing a stream (interactive mode)
	StageSelecting Stage = "Selecting"

	// StageDownloading means the extraction tool is downloading
	StageDownloading Stage = "Downloading"

	// StageDone means the file was written successfully
	StageDone Stage = "Done"

	// StageFailed means the request ended with an error
	StageFailed Stage = "Failed"
)

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}

// IsActive returns true if work is in flight for this stage
func (s Stage) IsActive() bool {
	return s == StageFetchingMetadata || s == StageDownloading
}

// IsFinished returns true if the request reached a terminal stage
func (s Stage) IsFinished() bool {
	return s == StageDone || s == StageFailed
}

// CanAdvance reports whether the linear lifecycle allows moving from s to next.
// Selecting is optional, may query metadata again, and any non-terminal stage
// may fail.
func (s Stage) CanAdvance(next Stage) bool {
	if s.IsFinished() {
		return next == StageIdle
	}
	if next == StageFailed {
		return true
	}
	switch s {
	case StageIdle:
		return next == StageFetchingMetadata || next == StageDownloading
	case StageFetchingMetadata:
		return next == StageSelecting || next == StageDownloading || next == StageIdle
	case StageSelecting:
		return next == StageFetchingMetadata || next == StageDownloading || next == StageIdle
	case StageDownloading:
		return next == StageDone
	}
	return false
}

// Lifecycle tracks the stage of one request and refuses moves CanAdvance
// does not allow. The zero value is idle. It is not safe for concurrent use.
type Lifecycle struct {
	current Stage
}

// Current returns the stage the request is in
func (l *Lifecycle) Current() Stage {
	if l.current == "" {
		return StageIdle
	}
	return l.current
}

// Advance moves to next and reports whether the move was allowed
func (l *Lifecycle) Advance(next Stage) bool {
	if !l.Current().CanAdvance(next) {
		return false
	}
	l.current = next
	return true
}
