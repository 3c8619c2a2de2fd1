// Package language defines the dubbing-supported language catalog and
// normalizes user-supplied codes against it.
package language
