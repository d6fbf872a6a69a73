// Package scorer estimates machine-translation quality without a reference
// translation. Scoring runs on a COMET-QE model behind an inference server;
// this package holds the client plus the batching and serialization rules
// around the shared model.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Pair is one (source, machine translation) input to the model. The JSON
// field names follow the COMET data format.
type Pair struct {
	Source      string `json:"src"`
	Translation string `json:"mt"`
}

// Scorer returns one quality score per input pair, order-preserving. Scores
// are raw regression values: unbounded and possibly negative.
type Scorer interface {
	Score(ctx context.Context, pairs []Pair) ([]float64, error)
}

const (
	// DefaultModel is the reference-free QE checkpoint the server is
	// expected to have loaded.
	DefaultModel = "Unbabel/wmt20-comet-qe-da"

	// batchSize limits how many pairs go to the server per request. Purely a
	// resource detail; callers always see one flat result slice.
	batchSize = 8
)

// CometScorer scores pairs against a COMET inference server. The underlying
// model is a single shared resource that is not assumed reentrant, so calls
// are serialized, and the server is probed exactly once before first use.
type CometScorer struct {
	model   string
	baseURL string
	client  *http.Client

	mu       sync.Mutex
	initOnce sync.Once
	initErr  error
}

func NewCometScorer(model, baseURL string) *CometScorer {
	if model == "" {
		model = DefaultModel
	}
	return &CometScorer{
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type scoreRequest struct {
	Model     string `json:"model"`
	Data      []Pair `json:"data"`
	BatchSize int    `json:"batch_size"`
}

type scoreResponse struct {
	Scores []float64 `json:"scores"`
}

func (s *CometScorer) Score(ctx context.Context, pairs []Pair) ([]float64, error) {
	if len(pairs) == 0 {
		return []float64{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.initOnce.Do(func() {
		s.initErr = s.probe(ctx)
	})
	if s.initErr != nil {
		return nil, fmt.Errorf("scorer unavailable: %w", s.initErr)
	}

	scores := make([]float64, 0, len(pairs))
	for start := 0; start < len(pairs); start += batchSize {
		end := start + batchSize
		if end > len(pairs) {
			end = len(pairs)
		}

		batch, err := s.scoreBatch(ctx, pairs[start:end])
		if err != nil {
			return nil, err
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("scorer returned %d scores for %d pairs", len(batch), end-start)
		}
		scores = append(scores, batch...)
	}

	return scores, nil
}

func (s *CometScorer) scoreBatch(ctx context.Context, pairs []Pair) ([]float64, error) {
	body, err := json.Marshal(scoreRequest{
		Model:     s.model,
		Data:      pairs,
		BatchSize: batchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/predict", s.baseURL), bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("score request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scorer returned status %d", resp.StatusCode)
	}

	var parsed scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode score response: %w", err)
	}

	return parsed.Scores, nil
}

// probe checks that the server is up and has the model loaded. It runs once
// per process; a failed probe makes every later Score call fail fast.
func (s *CometScorer) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/health", s.baseURL), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}
