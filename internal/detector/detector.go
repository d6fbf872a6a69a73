// Package detector identifies the language of extracted text. It backs the
// "auto" source-language mode: OCR and transcription run before the source
// language is needed, so the language can be inferred from their output.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// DetectISO returns the lowercase ISO 639-1 code of the most likely language
// of text. ok is false when the text is empty or the detection is unreliable.
func (d *Detector) DetectISO(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok || lang == lingua.Unknown {
		return "", false
	}

	return strings.ToLower(lang.IsoCode639_1().String()), true
}
