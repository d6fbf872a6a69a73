// Package media classifies uploaded files into the kinds the pipeline can
// process. Classification is by file extension only; the content is never
// inspected here.
package media

import (
	"path/filepath"
	"strings"
)

type Kind string

const (
	KindImage       Kind = "image"
	KindAudio       Kind = "audio"
	KindUnsupported Kind = "unsupported"
)

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"bmp": true, "tiff": true, "webp": true,
}

var audioExtensions = map[string]bool{
	"mp3": true, "wav": true, "aac": true,
	"flac": true, "ogg": true, "m4a": true,
}

// Classify returns the kind of file the name refers to. Extension matching is
// case-insensitive; a name without an extension is unsupported.
func Classify(fileName string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))

	switch {
	case imageExtensions[ext]:
		return KindImage
	case audioExtensions[ext]:
		return KindAudio
	default:
		return KindUnsupported
	}
}
