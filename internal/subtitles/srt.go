package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Generate writes the document in SubRip form: a 1-based index line, a
// "start --> end" timestamp line, the text, and a blank separator per
// segment. Timestamps use strict HH:MM:SS,mmm with two-digit seconds; see
// ParseTimestamp for the laxer form accepted on input.
func Generate(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	for i, seg := range doc.Segments {
		fmt.Fprintf(bw, "%d\n", i+1)
		fmt.Fprintf(bw, "%s --> %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End))
		fmt.Fprintln(bw, seg.Text)
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// WriteFile serializes the document to path in SubRip form.
func (d *Document) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create subtitle file: %w", err)
	}
	if err := Generate(file, d); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Parse reads SubRip content back into a document. It is the exact inverse
// of Generate: a document round-tripped through Generate and Parse keeps
// every segment's text and timing at millisecond resolution.
func Parse(r io.Reader, lang string) (*Document, error) {
	doc := &Document{Language: lang}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		inCue bool
		seg   Segment
		text  []string
	)
	flush := func() {
		if inCue {
			seg.Text = strings.Join(text, "\n")
			doc.Segments = append(doc.Segments, seg)
		}
		inCue = false
		seg = Segment{}
		text = nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if !inCue {
			// Index line; the next line carries the timing.
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err != nil {
				return nil, fmt.Errorf("parse srt: expected cue index, got %q", line)
			}
			if !scanner.Scan() {
				return nil, fmt.Errorf("parse srt: missing timestamp line after index %q", line)
			}
			timing := strings.TrimSpace(scanner.Text())
			start, end, err := parseTimingLine(timing)
			if err != nil {
				return nil, err
			}
			seg.Start, seg.End = start, end
			inCue = true
			continue
		}
		text = append(text, strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse srt: %w", err)
	}
	flush()
	return doc, nil
}

// ParseFile reads a SubRip file into a document.
func ParseFile(path, lang string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitle file: %w", err)
	}
	defer file.Close()
	return Parse(file, lang)
}

func parseTimingLine(line string) (float64, float64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("parse srt: invalid timing line %q", line)
	}
	start, err := ParseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// FormatTimestamp renders seconds as HH:MM:SS,mmm. Seconds are zero-padded
// to two digits: earlier builds emitted a variable-width seconds field and
// some SubRip consumers rejected it, so the strict form is pinned here.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	hours := millis / 3_600_000
	millis -= hours * 3_600_000
	minutes := millis / 60_000
	millis -= minutes * 60_000
	secs := millis / 1000
	millis -= secs * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp converts an SRT timestamp to seconds. It accepts the strict
// HH:MM:SS,mmm form, a variable-width seconds field, and a period in place
// of the millisecond comma.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ".", ","))
	if value == "" {
		return 0, fmt.Errorf("parse srt: empty timestamp")
	}
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("parse srt: invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("parse srt: invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("parse srt: invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("parse srt: invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
