// Package pipeline runs one uploaded file through extraction, translation,
// and quality scoring, and records the result in the session store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediaglot/mediaglot/internal"
	"github.com/mediaglot/mediaglot/internal/audio"
	"github.com/mediaglot/mediaglot/internal/media"
	"github.com/mediaglot/mediaglot/internal/provider"
	"github.com/mediaglot/mediaglot/internal/scorer"
	"github.com/mediaglot/mediaglot/internal/store"
)

// ErrUnsupportedFileType is returned before any remote call when the file
// extension is neither an image nor an audio one.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// File is one upload: the user-visible name (used for classification) and
// the on-disk location of its bytes.
type File struct {
	Name string
	Path string
}

// NormalizeFunc converts an audio file to mp3 and returns the converted path
// plus a cleanup for the temporary file.
type NormalizeFunc func(ctx context.Context, inputPath string) (string, func(), error)

// Config wires the pipeline's collaborators. Google, OpenAI, Audio, Scorer,
// and Store are required; Normalize defaults to the ffmpeg normalizer and
// Logger to a no-op logger.
type Config struct {
	Google      provider.ImageTranslator
	OpenAI      provider.ImageTranslator
	Audio       provider.AudioTranslator
	Scorer      scorer.Scorer
	Store       *store.Store
	Normalize   NormalizeFunc
	Logger      zerolog.Logger
	DisableMemo bool
}

type Pipeline struct {
	cfg Config
}

func New(cfg Config) (*Pipeline, error) {
	if cfg.Google == nil || cfg.OpenAI == nil || cfg.Audio == nil {
		return nil, fmt.Errorf("all three provider adapters are required")
	}
	if cfg.Scorer == nil {
		return nil, fmt.Errorf("a scorer is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("a result store is required")
	}
	if cfg.Normalize == nil {
		cfg.Normalize = audio.Normalize
	}
	return &Pipeline{cfg: cfg}, nil
}

// Run processes one file end to end. On success the record has been appended
// to the store; on any failure nothing is stored and the error carries the
// failing stage. There is no retry: a retry is a brand-new Run with the same
// inputs, which the memo then serves without repeating the remote calls.
func (p *Pipeline) Run(ctx context.Context, file File, sourceLang, targetLang string) (*internal.Record, error) {
	kind := media.Classify(file.Name)
	if kind == media.KindUnsupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, file.Name)
	}

	log := p.cfg.Logger.With().Str("file", file.Name).Str("kind", string(kind)).Logger()

	content, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}

	memoKey := store.MemoKey(content, sourceLang, targetLang)
	if !p.cfg.DisableMemo {
		if outcomes, ok := p.cfg.Store.Memoized(memoKey); ok {
			log.Info().Msg("replaying memoized outcomes")
			rec := newRecord(kind, file.Name, outcomes)
			p.cfg.Store.Append(rec)
			return rec, nil
		}
	}

	var rec *internal.Record
	switch kind {
	case media.KindImage:
		rec, err = p.runImage(ctx, log, file.Name, content, sourceLang, targetLang)
	case media.KindAudio:
		rec, err = p.runAudio(ctx, log, file, sourceLang, targetLang)
	}
	if err != nil {
		log.Error().Err(err).Msg("pipeline run failed")
		return nil, err
	}

	p.cfg.Store.Append(rec)
	if !p.cfg.DisableMemo {
		p.cfg.Store.Memoize(memoKey, rec)
	}
	log.Info().Int("outcomes", len(rec.Outcomes)).Msg("pipeline run completed")
	return rec, nil
}

// runImage fans out to both image providers concurrently. Outcome order is
// fixed by provider identity (google before openai), never by completion
// time; the results slice is indexed, not appended to.
func (p *Pipeline) runImage(ctx context.Context, log zerolog.Logger, name string, content []byte, sourceLang, targetLang string) (*internal.Record, error) {
	adapters := []provider.ImageTranslator{p.cfg.Google, p.cfg.OpenAI}

	type extraction struct {
		sourceText     string
		translatedText string
		err            error
	}
	results := make([]extraction, len(adapters))

	log.Info().Msg("extracting and translating")
	var wg sync.WaitGroup
	for i, adapter := range adapters {
		wg.Add(1)
		go func(i int, adapter provider.ImageTranslator) {
			defer wg.Done()
			src, translated, err := adapter.ExtractAndTranslate(ctx, content, sourceLang, targetLang)
			results[i] = extraction{sourceText: src, translatedText: translated, err: err}
		}(i, adapter)
	}
	wg.Wait()

	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("%s adapter failed: %w", adapters[i].Name(), r.err)
		}
	}

	pairs := make([]scorer.Pair, len(results))
	for i, r := range results {
		pairs[i] = scorer.Pair{Source: r.sourceText, Translation: r.translatedText}
	}

	log.Info().Msg("scoring translations")
	scores, err := p.cfg.Scorer.Score(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}
	if len(scores) != len(pairs) {
		return nil, fmt.Errorf("scorer returned %d scores for %d pairs", len(scores), len(pairs))
	}

	outcomes := make([]internal.Outcome, len(adapters))
	for i, adapter := range adapters {
		outcomes[i] = internal.Outcome{
			Provider:       adapter.Name(),
			SourceText:     results[i].sourceText,
			TranslatedText: results[i].translatedText,
			QualityScore:   scores[i],
		}
	}

	return newRecord(media.KindImage, name, outcomes), nil
}

func (p *Pipeline) runAudio(ctx context.Context, log zerolog.Logger, file File, sourceLang, targetLang string) (*internal.Record, error) {
	log.Info().Msg("normalizing audio")
	mp3Path, cleanup, err := p.cfg.Normalize(ctx, file.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	log.Info().Msg("transcribing and translating")
	sourceText, translatedText, err := p.cfg.Audio.TranscribeAndTranslate(ctx, mp3Path, sourceLang, targetLang)
	if err != nil {
		return nil, fmt.Errorf("%s adapter failed: %w", p.cfg.Audio.Name(), err)
	}

	log.Info().Msg("scoring translation")
	scores, err := p.cfg.Scorer.Score(ctx, []scorer.Pair{{Source: sourceText, Translation: translatedText}})
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}
	if len(scores) != 1 {
		return nil, fmt.Errorf("scorer returned %d scores for 1 pair", len(scores))
	}

	outcome := internal.Outcome{
		Provider:       p.cfg.Audio.Name(),
		SourceText:     sourceText,
		TranslatedText: translatedText,
		QualityScore:   scores[0],
	}

	return newRecord(media.KindAudio, file.Name, []internal.Outcome{outcome}), nil
}

func newRecord(kind media.Kind, fileName string, outcomes []internal.Outcome) *internal.Record {
	return &internal.Record{
		ID:        uuid.New().String(),
		Kind:      kind,
		FileName:  fileName,
		Outcomes:  outcomes,
		Timestamp: time.Now(),
	}
}
