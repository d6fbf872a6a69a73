package internal

import (
	"time"

	"github.com/mediaglot/mediaglot/internal/media"
)

// Outcome is one provider's extraction-plus-translation of a single file,
// together with its quality-estimation score. The score is a raw regression
// value from the QE model; it is not bounded to [0,1] and can be negative.
type Outcome struct {
	Provider       string  `json:"provider"`
	SourceText     string  `json:"source_text"`
	TranslatedText string  `json:"translated_text"`
	QualityScore   float64 `json:"quality_score"`
}

// Record is the unit of pipeline output for one uploaded file. Image records
// carry exactly two outcomes (google, then openai); audio records carry one.
// Records are immutable once created.
type Record struct {
	ID        string     `json:"id"`
	Kind      media.Kind `json:"kind"`
	FileName  string     `json:"file_name"`
	Outcomes  []Outcome  `json:"outcomes"`
	Timestamp time.Time  `json:"timestamp"`
}
