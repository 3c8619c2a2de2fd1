// Package subtitles models timed text segments and the SubRip (SRT) textual
// form used to hand transcripts between pipeline stages.
package subtitles
