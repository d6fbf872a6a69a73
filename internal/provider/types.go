// Package provider wraps the remote services that extract text from media
// files and translate it. Each adapter is an all-or-nothing request/response
// boundary: no partial results and no built-in retry.
package provider

import "context"

const (
	NameGoogle = "google"
	NameOpenAI = "openai"
)

// ImageTranslator extracts the text visible in an image and translates it.
// Both returned strings come from the same provider path, so two adapters
// may disagree on the extracted source text for the same image.
type ImageTranslator interface {
	Name() string
	ExtractAndTranslate(ctx context.Context, image []byte, sourceLang, targetLang string) (sourceText, translatedText string, err error)
}

// AudioTranslator transcribes an audio file and translates the transcript.
// The file at audioPath is expected to already be in a format the provider
// accepts (the pipeline normalizes to mp3 first).
type AudioTranslator interface {
	Name() string
	TranscribeAndTranslate(ctx context.Context, audioPath string, sourceLang, targetLang string) (sourceText, translatedText string, err error)
}
