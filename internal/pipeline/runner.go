package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"revoice/internal/audio"
	"revoice/internal/logging"
	"revoice/internal/queue"
	"revoice/internal/services"
	"revoice/internal/subtitles"
	"revoice/internal/workdir"
)

// Progress checkpoints reported as a job moves through the pipeline. The
// translate and synthesize stages additionally report per-segment progress
// inside their windows (50-60 and 65-80).
const (
	progressExtractStart    = 10
	progressTranscribeStart = 25
	progressTranscribed     = 40
	progressTranslateStart  = 50
	progressTranslateSpan   = 10
	progressSynthesizeStart = 65
	progressSynthesizeSpan  = 15
	progressMuxStart        = 85
)

// Transcriber produces timed transcript segments from extracted audio.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputDir, language string) (string, []subtitles.Segment, error)
}

// Translator converts one segment of text between languages.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// Synthesizer renders one segment of text as a speech clip.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang, dest string) error
}

// MediaProcessor covers the ffmpeg operations the pipeline needs.
type MediaProcessor interface {
	ExtractAudio(ctx context.Context, source, dest string) error
	DecodePCM(ctx context.Context, clip string, sampleRate int) ([]byte, error)
	Mux(ctx context.Context, video, audioTrack, dest string) error
}

// Runner executes dubbing jobs against a set of collaborators.
type Runner struct {
	store       *queue.Store
	workdir     *workdir.Manager
	media       MediaProcessor
	transcriber Transcriber
	translator  Translator
	synthesizer Synthesizer
	logger      *slog.Logger
	outputDir   string
	sampleRate  int
}

// NewRunner wires a runner. sampleRate is the PCM rate of the assembled
// dubbed track.
func NewRunner(
	store *queue.Store,
	wd *workdir.Manager,
	media MediaProcessor,
	transcriber Transcriber,
	translator Translator,
	synthesizer Synthesizer,
	logger *slog.Logger,
	outputDir string,
	sampleRate int,
) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		store:       store,
		workdir:     wd,
		media:       media,
		transcriber: transcriber,
		translator:  translator,
		synthesizer: synthesizer,
		logger:      logger,
		outputDir:   outputDir,
		sampleRate:  sampleRate,
	}
}

// Run processes a claimed job until it completes or fails. Fatal stage
// errors mark the job failed, reclaim its scratch files, and are returned.
// A context cancellation is returned without touching the job so the caller
// can record why the run stopped.
func (r *Runner) Run(ctx context.Context, job *queue.Job) error {
	ctx = services.WithJobID(ctx, job.ID)
	logger := logging.WithContext(ctx, r.logger)

	err := r.process(ctx, job, logger)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	logger.Error("job failed", logging.Error(err))
	job.SetFailed(services.Message(err))
	if updateErr := r.store.Update(context.Background(), job); updateErr != nil {
		logger.Error("record job failure", logging.Error(updateErr))
	}
	r.reclaim(job.ID, logger)
	return err
}

func (r *Runner) process(ctx context.Context, job *queue.Job, logger *slog.Logger) error {
	if err := r.workdir.Ensure(); err != nil {
		return err
	}

	// Extract.
	if err := r.progress(ctx, job, "extract", progressExtractStart); err != nil {
		return err
	}
	audioPath := r.workdir.Path(job.ID, "extracted.wav")
	if err := r.media.ExtractAudio(ctx, job.InputPath, audioPath); err != nil {
		return err
	}

	// Transcribe.
	if err := r.progress(ctx, job, "transcribe", progressTranscribeStart); err != nil {
		return err
	}
	detected, segments, err := r.transcriber.Transcribe(ctx, audioPath, r.workdir.Root(), job.SourceLanguage)
	if err != nil {
		return err
	}
	if job.SourceLanguage != "" {
		// A caller-supplied source language overrides detection.
		detected = job.SourceLanguage
	}
	job.DetectedLanguage = detected
	transcript := subtitles.NewDocument(detected, segments)
	if err := transcript.WriteFile(r.workdir.Path(job.ID, "transcript.srt")); err != nil {
		return services.Wrap(services.ErrResource, "transcribe", "srt", "write transcript", err)
	}
	logger.Info("transcription complete",
		logging.String("language", detected),
		logging.Int("segments", len(transcript.Segments)))
	if err := r.progress(ctx, job, "translate", progressTranscribed); err != nil {
		return err
	}

	// Translate.
	translated, err := r.translate(ctx, job, transcript, logger)
	if err != nil {
		return err
	}
	if err := translated.WriteFile(r.workdir.Path(job.ID, "translated.srt")); err != nil {
		return services.Wrap(services.ErrResource, "translate", "srt", "write translated transcript", err)
	}

	// Synthesize and assemble the dubbed track.
	track, err := r.synthesize(ctx, job, translated, logger)
	if err != nil {
		return err
	}
	if gap := transcript.Duration() - track.Duration(); gap > 0 {
		track.AppendSilence(gap)
	}
	trackPath := r.workdir.Path(job.ID, "dubbed.wav")
	if err := track.WriteWAV(trackPath); err != nil {
		return services.Wrap(services.ErrMedia, "synthesize", "wav", "write dubbed track", err)
	}

	// Mux.
	if err := r.progress(ctx, job, "mux", progressMuxStart); err != nil {
		return err
	}
	outputPath := filepath.Join(r.outputDir, job.ID+"_dubbed.mp4")
	if err := r.media.Mux(ctx, job.InputPath, trackPath, outputPath); err != nil {
		return err
	}

	job.SetCompleted(outputPath)
	if err := r.store.Update(ctx, job); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	r.reclaim(job.ID, logger)
	r.removeInput(job.InputPath, logger)
	logger.Info("job completed", logging.String("output", outputPath))
	return nil
}

// translate converts every transcript segment into the target language. A
// failed segment keeps its original text and the job continues.
func (r *Runner) translate(ctx context.Context, job *queue.Job, transcript *subtitles.Document, logger *slog.Logger) (*subtitles.Document, error) {
	segments := make([]subtitles.Segment, len(transcript.Segments))
	copy(segments, transcript.Segments)

	total := len(segments)
	for i := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := r.translator.Translate(ctx, segments[i].Text, transcript.Language, job.TargetLanguage)
		if err != nil {
			if services.IsFatal(err) {
				return nil, err
			}
			logger.Warn("segment translation failed, keeping original text",
				logging.Int(logging.FieldSegmentIndex, i),
				logging.Error(err))
		} else {
			segments[i].Text = text
		}
		percent := progressTranslateStart + (i+1)*progressTranslateSpan/total
		if err := r.progress(ctx, job, "translate", percent); err != nil {
			return nil, err
		}
	}
	if total == 0 {
		if err := r.progress(ctx, job, "translate", progressTranslateStart+progressTranslateSpan); err != nil {
			return nil, err
		}
	}
	return subtitles.NewDocument(job.TargetLanguage, segments), nil
}

// synthesize renders each translated segment as speech and places it on the
// dubbed track at the segment's start offset. A failed segment leaves a
// silent span in its place.
func (r *Runner) synthesize(ctx context.Context, job *queue.Job, translated *subtitles.Document, logger *slog.Logger) (*audio.TrackBuilder, error) {
	if err := r.progress(ctx, job, "synthesize", progressSynthesizeStart); err != nil {
		return nil, err
	}
	track, err := audio.NewTrackBuilder(r.sampleRate)
	if err != nil {
		return nil, err
	}

	total := len(translated.Segments)
	for i, seg := range translated.Segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clipPath := r.workdir.Path(job.ID, fmt.Sprintf("seg_%d.mp3", i))
		if err := r.synthesizer.Synthesize(ctx, seg.Text, translated.Language, clipPath); err != nil {
			if services.IsFatal(err) {
				return nil, err
			}
			logger.Warn("segment synthesis failed, leaving silence",
				logging.Int(logging.FieldSegmentIndex, i),
				logging.Error(err))
		} else {
			pcm, err := r.media.DecodePCM(ctx, clipPath, r.sampleRate)
			if err != nil {
				return nil, err
			}
			if err := track.PlaceClip(seg.Start, pcm); err != nil {
				return nil, services.Wrap(services.ErrMedia, "synthesize", "track", "place clip", err)
			}
		}
		percent := progressSynthesizeStart + (i+1)*progressSynthesizeSpan/total
		if err := r.progress(ctx, job, "synthesize", percent); err != nil {
			return nil, err
		}
	}
	if total == 0 {
		if err := r.progress(ctx, job, "synthesize", progressSynthesizeStart+progressSynthesizeSpan); err != nil {
			return nil, err
		}
	}
	return track, nil
}

func (r *Runner) progress(ctx context.Context, job *queue.Job, step string, percent int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	job.SetProgress(step, percent)
	if err := r.store.Update(ctx, job); err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	return nil
}

// reclaim removes the job's scratch files. Cleanup failures are logged and
// never turn into job failures.
func (r *Runner) reclaim(jobID string, logger *slog.Logger) {
	if err := r.workdir.Reclaim(jobID); err != nil {
		logger.Warn("scratch cleanup failed", logging.Error(err))
	}
}

// removeInput deletes the uploaded source, best effort.
func (r *Runner) removeInput(path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("input cleanup failed", logging.Error(err))
	}
}
