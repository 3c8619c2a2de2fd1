package media

import (
	"context"
	"errors"
	"slices"
	"testing"

	"revoice/internal/services"
)

func TestExtractAudioArgs(t *testing.T) {
	p := NewProcessor("")
	var gotName string
	var gotArgs []string
	p.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return nil, nil
	})

	if err := p.ExtractAudio(context.Background(), "/in/video.mp4", "/tmp/audio.wav"); err != nil {
		t.Fatalf("ExtractAudio failed: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Fatalf("binary = %q", gotName)
	}
	for _, want := range [][]string{
		{"-i", "/in/video.mp4"},
		{"-ac", "1"},
		{"-ar", "16000"},
		{"-c:a", "pcm_s16le"},
	} {
		if !containsSequence(gotArgs, want) {
			t.Errorf("args missing %v: %v", want, gotArgs)
		}
	}
	if gotArgs[len(gotArgs)-1] != "/tmp/audio.wav" {
		t.Errorf("destination not last arg: %v", gotArgs)
	}
}

func TestDecodePCMArgsAndOutput(t *testing.T) {
	p := NewProcessor("")
	p.WithCommandRunner(func(_ context.Context, _ string, args ...string) ([]byte, error) {
		if !containsSequence(args, []string{"-f", "s16le"}) || !containsSequence(args, []string{"-ar", "24000"}) {
			t.Errorf("unexpected decode args: %v", args)
		}
		if args[len(args)-1] != "pipe:1" {
			t.Errorf("decode must write to stdout: %v", args)
		}
		return []byte{0x01, 0x02}, nil
	})

	pcm, err := p.DecodePCM(context.Background(), "/tmp/clip.mp3", 24000)
	if err != nil {
		t.Fatalf("DecodePCM failed: %v", err)
	}
	if len(pcm) != 2 {
		t.Fatalf("pcm = %v", pcm)
	}
}

func TestMuxArgs(t *testing.T) {
	p := NewProcessor("")
	var gotArgs []string
	p.WithCommandRunner(func(_ context.Context, _ string, args ...string) ([]byte, error) {
		gotArgs = args
		return nil, nil
	})

	if err := p.Mux(context.Background(), "/in/video.mp4", "/tmp/dubbed.wav", "/out/final.mp4"); err != nil {
		t.Fatalf("Mux failed: %v", err)
	}
	for _, want := range [][]string{
		{"-map", "0:v:0"},
		{"-map", "1:a:0"},
		{"-c:v", "libx264"},
		{"-c:a", "aac"},
		{"-movflags", "+faststart"},
	} {
		if !containsSequence(gotArgs, want) {
			t.Errorf("args missing %v: %v", want, gotArgs)
		}
	}
}

func TestFailuresAreMediaErrors(t *testing.T) {
	p := NewProcessor("")
	p.WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})

	err := p.ExtractAudio(context.Background(), "in", "out")
	if !errors.Is(err, services.ErrMedia) {
		t.Fatalf("expected media error, got %v", err)
	}
	if services.IsFatal(err) != true {
		t.Fatal("media errors must be fatal")
	}
}

func containsSequence(haystack, needle []string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}
