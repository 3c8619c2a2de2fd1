// Command revoiced runs the dubbing daemon: it serves the job API, claims
// queued jobs with a bounded worker pool, and drives each one through the
// dubbing pipeline.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"revoice/internal/api"
	"revoice/internal/config"
	"revoice/internal/daemon"
	"revoice/internal/logging"
	"revoice/internal/media"
	"revoice/internal/pipeline"
	"revoice/internal/queue"
	"revoice/internal/services/translate"
	"revoice/internal/services/tts"
	"revoice/internal/services/whisper"
	"revoice/internal/workdir"
	"revoice/internal/workflow"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, configPath, exists, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Paths:  cfg.LogPaths(),
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if exists {
		logger.Info("configuration loaded", logging.String("path", configPath))
	} else {
		logger.Info("no configuration file found, using defaults")
	}

	store, err := queue.Open(cfg)
	if err != nil {
		log.Fatalf("open job store: %v", err)
	}

	// Jobs left queued or processing by a previous run can never resume;
	// fail them up front so their state is honest.
	if failed, err := store.FailInFlight(ctx, queue.DaemonStopReason); err != nil {
		logger.Warn("fail in-flight jobs", logging.Error(err))
	} else if failed > 0 {
		logger.Info("failed jobs from previous run", logging.Int64("jobs", failed))
	}

	scratch := workdir.NewManager(cfg.ScratchDir(), logger)
	if err := scratch.ReclaimAll(); err != nil {
		logger.Warn("sweep stale scratch files", logging.Error(err))
	}

	runner := pipeline.NewRunner(
		store,
		scratch,
		media.NewProcessor(cfg.FFmpegBinary()),
		whisper.NewService(whisper.Config{
			Model:       cfg.Transcriber.Model,
			CUDAEnabled: cfg.Transcriber.CUDAEnabled,
		}),
		translate.NewClient(translate.Config{
			BaseURL: cfg.Translator.BaseURL,
			Timeout: time.Duration(cfg.Translator.TimeoutSeconds) * time.Second,
			Email:   cfg.Translator.Email,
		}),
		tts.NewService(cfg.Synthesizer.Command),
		logger,
		cfg.Paths.OutputDir,
		cfg.Synthesizer.SampleRate,
	)

	workflowManager := workflow.NewManager(cfg, store, runner, logger)
	apiServer := api.NewServer(cfg, store, logger)

	d, err := daemon.New(cfg, store, workflowManager, apiServer, logger)
	if err != nil {
		log.Fatalf("create daemon: %v", err)
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		log.Fatalf("start daemon: %v", err)
	}

	<-ctx.Done()
	logger.Info("revoiced shutting down")
}
