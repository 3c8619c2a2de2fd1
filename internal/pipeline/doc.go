// Package pipeline drives one dubbing job end to end: extract the audio
// track, transcribe it, translate the transcript, synthesize speech for the
// translation, assemble the dubbed track, and mux it back over the video.
package pipeline
