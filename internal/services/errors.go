package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for pipeline failure classification. Stage code wraps
// collaborator failures with exactly one marker so the runner can decide
// between aborting the job and degrading output.
var (
	// ErrMedia marks unreadable or unwritable audio/video. Fatal.
	ErrMedia = errors.New("media error")
	// ErrTranscription marks a speech-to-text engine failure. Fatal.
	ErrTranscription = errors.New("transcription error")
	// ErrSegment marks a single failed translation or synthesis call.
	// Non-fatal: the segment degrades and the job continues.
	ErrSegment = errors.New("segment error")
	// ErrResource marks a cleanup failure. Logged, never propagated as a
	// job failure.
	ErrResource = errors.New("resource error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrMedia
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether a stage error must abort the remaining pipeline.
// Per-segment and resource errors degrade output but never fail the job.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrSegment) && !errors.Is(err, ErrResource)
}

// Message extracts a human-readable cause suitable for Job.ErrorMessage,
// stripping the sentinel prefix when present.
func Message(err error) string {
	if err == nil {
		return ""
	}
	text := strings.TrimSpace(err.Error())
	for _, marker := range []error{ErrMedia, ErrTranscription, ErrSegment, ErrResource} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(text, prefix))
		}
	}
	return text
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
