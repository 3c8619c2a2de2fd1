package queue_test

import (
	"testing"

	"revoice/internal/queue"
)

func TestSetProgressIsMonotonic(t *testing.T) {
	job := &queue.Job{}
	job.SetProgress("extract", 25)
	job.SetProgress("transcribe", 40)
	job.SetProgress("late report", 10)
	if job.Progress != 40 {
		t.Fatalf("progress regressed to %d", job.Progress)
	}
	if job.Step != "late report" {
		t.Fatalf("step = %q", job.Step)
	}

	job.SetProgress("overflow", 150)
	if job.Progress != 100 {
		t.Fatalf("progress not clamped: %d", job.Progress)
	}
	job.SetProgress("underflow", -5)
	if job.Progress != 100 {
		t.Fatalf("negative progress accepted: %d", job.Progress)
	}
}

func TestSetFailedKeepsProgress(t *testing.T) {
	job := &queue.Job{}
	job.SetProgress("translate", 55)
	job.SetFailed("translation backend down")
	if job.Status != queue.StatusFailed {
		t.Fatalf("status = %q", job.Status)
	}
	if job.Progress != 55 {
		t.Fatalf("failure reset progress to %d", job.Progress)
	}
	if !job.IsTerminal() {
		t.Fatal("failed job not terminal")
	}
}

func TestSetCompleted(t *testing.T) {
	job := &queue.Job{}
	job.SetProgress("mux", 85)
	job.SetCompleted("/outputs/x_dubbed.mp4")
	if job.Status != queue.StatusCompleted || job.Progress != 100 {
		t.Fatalf("job = %#v", job)
	}
	if job.OutputPath != "/outputs/x_dubbed.mp4" {
		t.Fatalf("output path = %q", job.OutputPath)
	}
	if !job.IsTerminal() {
		t.Fatal("completed job not terminal")
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want queue.Status
		ok   bool
	}{
		{"queued", queue.StatusQueued, true},
		{" Processing ", queue.StatusProcessing, true},
		{"COMPLETED", queue.StatusCompleted, true},
		{"failed", queue.StatusFailed, true},
		{"bogus", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := queue.ParseStatus(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseStatus(%q) = %q, %v", tc.in, got, ok)
		}
	}
}
