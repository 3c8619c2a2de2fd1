package services_test

import (
	"errors"
	"testing"

	"revoice/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrMedia, "merge", "mux streams", "ffmpeg failed", base)
	if !errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected ErrMedia, got %v", err)
	}
	if errors.Is(err, services.ErrSegment) {
		t.Fatal("unexpected ErrSegment classification")
	}
	if !errors.Is(err, base) {
		t.Fatal("wrapped cause lost")
	}
}

func TestIsFatal(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"media", services.Wrap(services.ErrMedia, "extract", "", "", nil), true},
		{"transcription", services.Wrap(services.ErrTranscription, "transcribe", "", "", nil), true},
		{"segment", services.Wrap(services.ErrSegment, "translate", "segment 2", "", nil), false},
		{"resource", services.Wrap(services.ErrResource, "cleanup", "", "", nil), false},
		{"untagged", errors.New("boom"), true},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := services.IsFatal(tc.err); got != tc.fatal {
			t.Errorf("%s: IsFatal = %v, want %v", tc.name, got, tc.fatal)
		}
	}
}

func TestMessageStripsMarker(t *testing.T) {
	err := services.Wrap(services.ErrTranscription, "transcribe", "run engine", "no output produced", nil)
	got := services.Message(err)
	want := "transcribe: run engine: no output produced"
	if got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
	if services.Message(nil) != "" {
		t.Fatal("expected empty message for nil error")
	}
}
