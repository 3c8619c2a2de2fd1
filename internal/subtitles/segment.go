package subtitles

import (
	"fmt"
	"sort"
)

// Segment is a time-bounded span of transcribed or translated speech.
// Offsets are seconds from the start of the source audio.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Document is an ordered sequence of segments with a language tag. The
// source-language and target-language documents of one job correspond
// index-for-index.
type Document struct {
	Language string
	Segments []Segment
}

// NewDocument builds a document, ordering segments by start offset.
func NewDocument(lang string, segments []Segment) *Document {
	ordered := make([]Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })
	return &Document{Language: lang, Segments: ordered}
}

// Validate checks segment timing invariants: non-negative start, start
// strictly before end, and ordering by start offset.
func (d *Document) Validate() error {
	var prev float64
	for i, seg := range d.Segments {
		if seg.Start < 0 {
			return fmt.Errorf("segment %d: negative start %.3f", i+1, seg.Start)
		}
		if seg.Start >= seg.End {
			return fmt.Errorf("segment %d: start %.3f not before end %.3f", i+1, seg.Start, seg.End)
		}
		if seg.Start < prev {
			return fmt.Errorf("segment %d: out of order (start %.3f before %.3f)", i+1, seg.Start, prev)
		}
		prev = seg.Start
	}
	return nil
}

// Duration returns the end offset of the last segment, or zero for an empty
// document.
func (d *Document) Duration() float64 {
	if len(d.Segments) == 0 {
		return 0
	}
	var last float64
	for _, seg := range d.Segments {
		if seg.End > last {
			last = seg.End
		}
	}
	return last
}
