package daemon_test

import (
	"context"
	"testing"

	"revoice/internal/daemon"
	"revoice/internal/queue"
	"revoice/internal/testsupport"
	"revoice/internal/workflow"
)

type idleRunner struct{}

func (idleRunner) Run(ctx context.Context, job *queue.Job) error {
	<-ctx.Done()
	return ctx.Err()
}

func newDaemon(t *testing.T) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithWorkers(1))
	store := testsupport.MustOpenStore(t, cfg)
	mgr := workflow.NewManager(cfg, store, idleRunner{}, nil)
	d, err := daemon.New(cfg, store, mgr, nil, nil)
	if err != nil {
		t.Fatalf("daemon.New failed: %v", err)
	}
	return d
}

func TestStartStop(t *testing.T) {
	d := newDaemon(t)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !d.Running() {
		t.Fatal("daemon not running after Start")
	}
	d.Stop()
	if d.Running() {
		t.Fatal("daemon still running after Stop")
	}
}

func TestStartTwiceFails(t *testing.T) {
	d := newDaemon(t)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop()

	if err := d.Start(context.Background()); err == nil {
		t.Fatal("second Start succeeded")
	}
}

func TestRestartAfterStop(t *testing.T) {
	d := newDaemon(t)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	d.Stop()
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	d.Stop()
}
