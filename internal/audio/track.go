// Package audio assembles the dubbed audio track. Synthesized clips are
// decoded to raw PCM elsewhere and placed here at their subtitle offsets,
// with silence filling the gaps between them.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

const bytesPerSample = 2 // signed 16-bit mono

// TrackBuilder accumulates a mono 16-bit PCM track. Clips are placed in
// ascending start order; when a clip runs past the next clip's start the
// track simply keeps growing and later timing drifts, which is accepted
// rather than time-stretching the speech.
type TrackBuilder struct {
	sampleRate int
	pcm        []byte
}

// NewTrackBuilder creates a builder for the given sample rate.
func NewTrackBuilder(sampleRate int) (*TrackBuilder, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", sampleRate)
	}
	return &TrackBuilder{sampleRate: sampleRate}, nil
}

// SampleRate returns the track's sample rate.
func (b *TrackBuilder) SampleRate() int {
	return b.sampleRate
}

// Duration returns the current track length in seconds.
func (b *TrackBuilder) Duration() float64 {
	return float64(len(b.pcm)) / float64(b.sampleRate*bytesPerSample)
}

// PlaceClip appends a clip that should begin at startSec. If the track is
// shorter than startSec the gap is padded with silence first; if the track
// already runs past startSec the clip is appended immediately after it.
func (b *TrackBuilder) PlaceClip(startSec float64, pcm []byte) error {
	if startSec < 0 {
		return fmt.Errorf("audio: negative clip start %.3f", startSec)
	}
	if gap := startSec - b.Duration(); gap > 0 {
		b.AppendSilence(gap)
	}
	b.pcm = append(b.pcm, alignSamples(pcm)...)
	return nil
}

// AppendSilence extends the track with seconds of silence.
func (b *TrackBuilder) AppendSilence(seconds float64) {
	if seconds <= 0 {
		return
	}
	samples := int(math.Round(seconds * float64(b.sampleRate)))
	b.pcm = append(b.pcm, make([]byte, samples*bytesPerSample)...)
}

// PCM returns the raw track bytes.
func (b *TrackBuilder) PCM() []byte {
	return b.pcm
}

// WriteWAV writes the track as a 16-bit mono RIFF/WAVE file.
func (b *TrackBuilder) WriteWAV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create track file: %w", err)
	}
	if err := b.writeWAV(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("audio: close track file: %w", err)
	}
	return nil
}

func (b *TrackBuilder) writeWAV(file *os.File) error {
	dataLen := uint32(len(b.pcm))
	byteRate := uint32(b.sampleRate * bytesPerSample)

	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, 36+dataLen)
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16)
	header = binary.LittleEndian.AppendUint16(header, 1) // PCM
	header = binary.LittleEndian.AppendUint16(header, 1) // mono
	header = binary.LittleEndian.AppendUint32(header, uint32(b.sampleRate))
	header = binary.LittleEndian.AppendUint32(header, byteRate)
	header = binary.LittleEndian.AppendUint16(header, bytesPerSample)
	header = binary.LittleEndian.AppendUint16(header, 16) // bits per sample
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, dataLen)

	if _, err := file.Write(header); err != nil {
		return fmt.Errorf("audio: write wav header: %w", err)
	}
	if _, err := file.Write(b.pcm); err != nil {
		return fmt.Errorf("audio: write wav data: %w", err)
	}
	return nil
}

// alignSamples trims a trailing odd byte so the track stays sample-aligned.
func alignSamples(pcm []byte) []byte {
	if len(pcm)%bytesPerSample != 0 {
		return pcm[:len(pcm)-1]
	}
	return pcm
}
