package subtitles_test

import (
	"testing"

	"revoice/internal/subtitles"
)

func TestNewDocumentOrdersByStart(t *testing.T) {
	doc := subtitles.NewDocument("en", []subtitles.Segment{
		{Start: 3, End: 5, Text: "second"},
		{Start: 0, End: 2, Text: "first"},
	})
	if doc.Segments[0].Text != "first" || doc.Segments[1].Text != "second" {
		t.Fatalf("segments not ordered: %#v", doc.Segments)
	}
}

func TestValidate(t *testing.T) {
	valid := subtitles.NewDocument("en", []subtitles.Segment{
		{Start: 0, End: 2, Text: "a"},
		{Start: 2, End: 4, Text: "b"},
	})
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	bad := &subtitles.Document{Segments: []subtitles.Segment{{Start: 2, End: 2, Text: "x"}}}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for start == end")
	}

	negative := &subtitles.Document{Segments: []subtitles.Segment{{Start: -1, End: 2, Text: "x"}}}
	if err := negative.Validate(); err == nil {
		t.Fatal("expected error for negative start")
	}
}

func TestDuration(t *testing.T) {
	doc := subtitles.NewDocument("en", []subtitles.Segment{
		{Start: 0, End: 2.5, Text: "a"},
		{Start: 3, End: 4.25, Text: "b"},
	})
	if got := doc.Duration(); got != 4.25 {
		t.Fatalf("Duration = %v, want 4.25", got)
	}
	empty := subtitles.NewDocument("en", nil)
	if got := empty.Duration(); got != 0 {
		t.Fatalf("empty Duration = %v, want 0", got)
	}
}
