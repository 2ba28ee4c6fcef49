package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/BTECHK/sql-coach/internal/curriculum"
	"github.com/BTECHK/sql-coach/internal/llm"
)

// Review is the coach's verdict on an incorrect submission. It never
// contains the answer query.
type Review struct {
	Diagnosis string
	Nudge     string
	Concept   string
}

// ReviewInput holds all context needed to review a submission.
type ReviewInput struct {
	Lesson    *curriculum.Lesson
	Query     string
	Reason    string
	HintsUsed int
}

// Config holds review generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for review generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   384,
		Temperature: 0.4,
	}
}

// Service generates submission reviews, optionally asynchronously for
// the TUI. A nil *Service is valid and reports Available() == false.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *Review
	err     error
	ready   bool
}

// NewService creates a review service over the given provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Available reports whether an LLM provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// Review generates a review synchronously.
func (s *Service) Review(ctx context.Context, input ReviewInput) (*Review, error) {
	if !s.Available() {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	return s.generate(ctx, input)
}

// RequestReview starts async review generation. Only one review is
// in-flight at a time — new requests replace pending ones.
func (s *Service) RequestReview(ctx context.Context, input ReviewInput) {
	if !s.Available() {
		return
	}
	go func() {
		review, err := s.generate(ctx, input)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = review
		s.err = err
		s.ready = true
	}()
}

// ConsumeReview returns the pending review if one is ready.
// Returns (nil, false) while generation is still in flight or when
// generation failed. After consumption, the pending slot is cleared.
func (s *Service) ConsumeReview() (*Review, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	review := s.pending
	s.pending = nil
	s.ready = false
	s.err = nil
	return review, review != nil
}

type reviewOutput struct {
	Diagnosis string `json:"diagnosis"`
	Nudge     string `json:"nudge"`
	Concept   string `json:"concept"`
}

func (s *Service) generate(ctx context.Context, input ReviewInput) (*Review, error) {
	ctx = llm.WithPurpose(ctx, "coach-review")

	req := llm.Request{
		System: reviewSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReviewUserMessage(input)},
		},
		Schema:      ReviewSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("review generation: %w", err)
	}

	var out reviewOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse review response: %w", err)
	}

	return &Review{
		Diagnosis: out.Diagnosis,
		Nudge:     out.Nudge,
		Concept:   out.Concept,
	}, nil
}
