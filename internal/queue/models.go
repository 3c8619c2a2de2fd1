package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a dubbing job.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// DaemonStopReason is the error message set when jobs are failed due to daemon shutdown.
const DaemonStopReason = "Daemon stopped"

var allStatuses = []Status{
	StatusQueued,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Job represents a dubbing job persisted in SQLite.
type Job struct {
	ID               string
	Status           Status
	Progress         int
	Step             string
	SourceLanguage   string
	TargetLanguage   string
	DetectedLanguage string
	InputPath        string
	OutputPath       string
	ErrorMessage     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StatusSummary describes aggregated job counts per lifecycle state.
type StatusSummary struct {
	Total      int
	Queued     int
	Processing int
	Completed  int
	Failed     int
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether the job has finished, successfully or not.
func (j Job) IsTerminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// SetProgress advances the job to a step and percentage. Progress is
// monotonic: a caller reporting a lower percentage than already recorded
// keeps the recorded value, and values are clamped to [0, 100].
func (j *Job) SetProgress(step string, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent > j.Progress {
		j.Progress = percent
	}
	j.Step = step
}

// SetFailed marks the job as failed with the given error message. The
// recorded progress is kept so observers can see how far the job got.
func (j *Job) SetFailed(message string) {
	j.Status = StatusFailed
	j.ErrorMessage = message
	j.Step = "failed"
}

// SetCompleted marks the job as finished with its output location.
func (j *Job) SetCompleted(outputPath string) {
	j.Status = StatusCompleted
	j.OutputPath = outputPath
	j.ErrorMessage = ""
	j.SetProgress("completed", 100)
}
