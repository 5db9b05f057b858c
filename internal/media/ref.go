// Package media turns user file selections into references the player engine can load.
package media

import (
	"path/filepath"
	"strings"
)

// Ref is an opaque, already-authorized handle to an audio resource.
// The engine only relies on Path; the rest is display metadata.
type Ref struct {
	Path   string
	Title  string
	Author string
	Book   string // album tag, usually the book or series name
	Format string // "MP3", "M4B", ...
	Size   int64
}

// Name returns the file name of the reference.
func (r *Ref) Name() string {
	if r == nil {
		return ""
	}
	return filepath.Base(r.Path)
}

// Ext returns the lowercased file extension, including the dot.
func (r *Ref) Ext() string {
	if r == nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(r.Path))
}

// Supported file extensions.
const (
	ExtMP3  = ".mp3"
	ExtM4A  = ".m4a"
	ExtM4B  = ".m4b"
	ExtMP4  = ".mp4"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
)

var supportedExts = map[string]string{
	ExtMP3:  "MP3",
	ExtM4A:  "M4A",
	ExtM4B:  "M4B",
	ExtMP4:  "MP4",
	ExtFLAC: "FLAC",
	ExtWAV:  "WAV",
}

// IsSupported reports whether the path has an extension the engine can decode.
func IsSupported(path string) bool {
	_, ok := supportedExts[strings.ToLower(filepath.Ext(path))]
	return ok
}
