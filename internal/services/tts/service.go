// Package tts synthesizes speech clips for translated segments by shelling
// out to a gTTS-compatible command line tool. Like translation, a failure
// here is per-segment: the caller leaves a silent gap and moves on.
package tts

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"revoice/internal/services"
)

// DefaultCommand is the gTTS command line entry point.
const DefaultCommand = "gtts-cli"

// Service synthesizes speech from text.
type Service struct {
	command       string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a synthesis service using the given command. An empty
// command falls back to gtts-cli on PATH.
func NewService(command string) *Service {
	if command == "" {
		command = DefaultCommand
	}
	return &Service{command: command}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

func (s *Service) run(ctx context.Context, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, s.command, args...)
	}
	cmd := exec.CommandContext(ctx, s.command, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.command, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Synthesize renders text as speech in lang, writing an MP3 clip to dest.
func (s *Service) Synthesize(ctx context.Context, text, lang, dest string) error {
	if strings.TrimSpace(text) == "" {
		return services.Wrap(services.ErrSegment, "synthesize", "tts", "empty text", nil)
	}
	args := []string{"--lang", lang, "--output", dest, text}
	if err := s.run(ctx, args...); err != nil {
		return services.Wrap(services.ErrSegment, "synthesize", "tts", "render speech clip", err)
	}
	return nil
}
