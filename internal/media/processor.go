// Package media wraps the ffmpeg invocations the pipeline needs: pulling a
// mono transcription track out of an upload, decoding synthesized clips to
// raw PCM, and muxing the dubbed track back over the original video.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"revoice/internal/services"
)

// Processor runs ffmpeg. The zero binary name falls back to "ffmpeg" on PATH.
type Processor struct {
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewProcessor creates a processor using the given ffmpeg binary.
func NewProcessor(ffmpegBinary string) *Processor {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Processor{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (p *Processor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	p.commandRunner = runner
}

func (p *Processor) run(ctx context.Context, args ...string) ([]byte, error) {
	if p.commandRunner != nil {
		return p.commandRunner(ctx, p.ffmpegBinary, args...)
	}
	cmd := exec.CommandContext(ctx, p.ffmpegBinary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", p.ffmpegBinary, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// ExtractAudio pulls the audio stream out of source as a mono 16 kHz
// 16-bit WAV suitable for transcription.
func (p *Processor) ExtractAudio(ctx context.Context, source, dest string) error {
	if _, err := p.run(ctx, buildExtractArgs(source, dest)...); err != nil {
		return services.Wrap(services.ErrMedia, "extract", "ffmpeg", "extract audio track", err)
	}
	return nil
}

// DecodePCM decodes an audio clip to raw signed 16-bit little-endian mono
// samples at the given rate, returned on stdout.
func (p *Processor) DecodePCM(ctx context.Context, clip string, sampleRate int) ([]byte, error) {
	pcm, err := p.run(ctx, buildDecodeArgs(clip, sampleRate)...)
	if err != nil {
		return nil, services.Wrap(services.ErrMedia, "synthesize", "ffmpeg", "decode clip to pcm", err)
	}
	return pcm, nil
}

// Mux replaces the audio of video with audioTrack, re-encoding to H.264/AAC
// in an MP4 container at dest.
func (p *Processor) Mux(ctx context.Context, video, audioTrack, dest string) error {
	if _, err := p.run(ctx, buildMuxArgs(video, audioTrack, dest)...); err != nil {
		return services.Wrap(services.ErrMedia, "mux", "ffmpeg", "mux dubbed audio", err)
	}
	return nil
}

func buildExtractArgs(source, dest string) []string {
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", source,
		"-vn", "-sn", "-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

func buildDecodeArgs(clip string, sampleRate int) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-i", clip,
		"-f", "s16le",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"pipe:1",
	}
}

func buildMuxArgs(video, audioTrack, dest string) []string {
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", video,
		"-i", audioTrack,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-movflags", "+faststart",
		dest,
	}
}
