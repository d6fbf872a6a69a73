// Package audio converts uploaded audio to the one format the transcription
// provider is guaranteed to accept.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// UnsupportedFormatError means ffmpeg could not decode the input. It fires
// before any transcription is attempted.
type UnsupportedFormatError struct {
	Path   string
	Detail string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("cannot decode audio %s: %s", e.Path, e.Detail)
}

// Normalize re-encodes the audio file at inputPath to mp3 in a temporary
// file. The container and codec are inferred from the content, not the file
// name. The returned cleanup func removes the temporary file and must be
// called on success and failure paths alike.
func Normalize(ctx context.Context, inputPath string) (string, func(), error) {
	if err := exec.Command("ffmpeg", "-version").Run(); err != nil {
		return "", nil, fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	tmp, err := os.CreateTemp("", "mediaglot-*.mp3")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp.Close()
	cleanup := func() { os.Remove(tmp.Name()) }

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", inputPath, "-acodec", "mp3", tmp.Name())
	output, err := cmd.CombinedOutput()
	if err != nil {
		cleanup()
		return "", nil, &UnsupportedFormatError{
			Path:   inputPath,
			Detail: lastLine(string(output)),
		}
	}

	return tmp.Name(), cleanup, nil
}

// lastLine keeps the end of ffmpeg's stderr, which is where the actual
// decode error lands.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 {
		return "unknown ffmpeg error"
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
