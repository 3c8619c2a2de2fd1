package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"revoice/internal/services"
	"revoice/internal/subtitles"
)

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe runs WhisperX over the audio file and returns the detected
// language alongside the timed segments. Passing a non-empty language pins
// detection instead of letting the model guess. An audio file with no speech
// yields zero segments and no error.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir, language string) (string, []subtitles.Segment, error) {
	if audioPath == "" {
		return "", nil, services.Wrap(services.ErrTranscription, "transcribe", "whisperx", "audio path required", nil)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", nil, services.Wrap(services.ErrTranscription, "transcribe", "whisperx", "ensure output dir", err)
	}

	args := s.buildArgs(audioPath, outputDir, language)
	if err := s.run(ctx, UVXCommand, args...); err != nil {
		return "", nil, services.Wrap(services.ErrTranscription, "transcribe", "whisperx", "run transcriber", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	detected, segments, err := loadTranscript(jsonPath)
	if err != nil {
		return "", nil, services.Wrap(services.ErrTranscription, "transcribe", "whisperx", "read transcript", err)
	}
	return detected, segments, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(audioPath, outputDir, language string) []string {
	args := make([]string, 0, 24)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		audioPath,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
	)

	if language != "" {
		args = append(args, "--language", language)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

type transcriptSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type transcriptPayload struct {
	Language string              `json:"language"`
	Segments []transcriptSegment `json:"segments"`
}

func loadTranscript(jsonPath string) (string, []subtitles.Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", nil, err
	}
	var payload transcriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", nil, fmt.Errorf("parse transcript json: %w", err)
	}
	segments := make([]subtitles.Segment, 0, len(payload.Segments))
	for _, seg := range payload.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, subtitles.Segment{Start: seg.Start, End: seg.End, Text: text})
	}
	return payload.Language, segments, nil
}
