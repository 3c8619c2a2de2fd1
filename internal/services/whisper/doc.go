// Package whisper runs WhisperX speech-to-text over extracted audio and
// returns timed transcript segments plus the detected source language.
package whisper
