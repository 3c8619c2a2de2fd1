package subtitles_test

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"revoice/internal/subtitles"
)

func TestFormatTimestampStrictPadding(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{7.04, "00:00:07,040"},
		{61.5, "00:01:01,500"},
		{3661.25, "01:01:01,250"},
		{59.9996, "00:01:00,000"}, // millisecond rounding carries into the minute
		{-1, "00:00:00,000"},
	}
	for _, tc := range cases {
		if got := subtitles.FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestParseTimestampAcceptsVariableWidthSeconds(t *testing.T) {
	// Earlier builds wrote a one-digit seconds field; parsing stays lax.
	got, err := subtitles.ParseTimestamp("00:00:7,040")
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if math.Abs(got-7.04) > 0.0005 {
		t.Fatalf("ParseTimestamp = %v, want 7.04", got)
	}

	// Period in place of the millisecond comma.
	got, err = subtitles.ParseTimestamp("00:01:02.500")
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if math.Abs(got-62.5) > 0.0005 {
		t.Fatalf("ParseTimestamp = %v, want 62.5", got)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "1:2", "aa:bb:cc,ddd", "00:00:01"} {
		if _, err := subtitles.ParseTimestamp(value); err == nil {
			t.Errorf("ParseTimestamp(%q) unexpectedly succeeded", value)
		}
	}
}

func TestRoundTripPreservesTimingAndText(t *testing.T) {
	doc := subtitles.NewDocument("en", []subtitles.Segment{
		{Start: 0, End: 2, Text: "Hello"},
		{Start: 3.017, End: 5.249, Text: "World"},
		{Start: 6.5, End: 8.125, Text: ""},
		{Start: 9, End: 12.75, Text: "two lines\nof text"},
	})

	var buf bytes.Buffer
	if err := subtitles.Generate(&buf, doc); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsed, err := subtitles.Parse(strings.NewReader(buf.String()), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(parsed.Segments) != len(doc.Segments) {
		t.Fatalf("segment count changed: %d -> %d", len(doc.Segments), len(parsed.Segments))
	}
	for i, want := range doc.Segments {
		got := parsed.Segments[i]
		if math.Abs(got.Start-want.Start) > 0.001 || math.Abs(got.End-want.End) > 0.001 {
			t.Errorf("segment %d timing changed: (%v,%v) -> (%v,%v)", i, want.Start, want.End, got.Start, got.End)
		}
		if got.Text != want.Text {
			t.Errorf("segment %d text changed: %q -> %q", i, want.Text, got.Text)
		}
	}
}

func TestGenerateLayout(t *testing.T) {
	doc := subtitles.NewDocument("en", []subtitles.Segment{
		{Start: 0, End: 2, Text: "Hello"},
	})
	var buf bytes.Buffer
	if err := subtitles.Generate(&buf, doc); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:02,000\nHello\n\n"
	if buf.String() != want {
		t.Fatalf("Generate output = %q, want %q", buf.String(), want)
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc, err := subtitles.Parse(strings.NewReader(""), "en")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Segments) != 0 {
		t.Fatalf("expected no segments, got %d", len(doc.Segments))
	}
}

func TestWriteAndParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	doc := subtitles.NewDocument("es", []subtitles.Segment{
		{Start: 1.5, End: 3, Text: "Hola"},
	})
	if err := doc.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	parsed, err := subtitles.ParseFile(path, "es")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if parsed.Language != "es" || len(parsed.Segments) != 1 || parsed.Segments[0].Text != "Hola" {
		t.Fatalf("unexpected parsed document: %#v", parsed)
	}
}
