package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"lawwatch-backend/llm"
	"lawwatch-backend/models"
)

var (
	ErrProviderNotSet  = errors.New("completion provider not set")
	ErrValidatorNotSet = errors.New("validator not set")

	// ErrUndecodableReply marks a reply that is not valid JSON even after
	// the bounded repair. It is attempt-fatal: the request is retried.
	ErrUndecodableReply = errors.New("reply is not valid JSON after repair")
)

// RetryExhaustedError reports that every attempt against the provider
// produced an undecodable reply. It is distinct from validation failures,
// which are surfaced immediately and never retried.
type RetryExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("no decodable reply after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *RetryExhaustedError) Unwrap() error { return e.LastErr }

const defaultMaxRetries = 3

// AnalysisService drives one provider-agnostic request/response cycle per
// document: build the request, invoke the provider, strictly decode the
// reply (falling back to the bounded repair), and validate the result.
// Decode failures are retried up to the budget; validation failures are
// not, since retrying cannot fix a grammar mismatch in the provider's own
// output.
type AnalysisService struct {
	provider   llm.Provider
	validator  *Validator
	maxRetries int
	backoff    time.Duration
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// WithProvider sets the completion provider adapter
func WithProvider(p llm.Provider) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.provider = p
	}
}

// WithValidator sets the record validator
func WithValidator(v *Validator) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.validator = v
	}
}

// WithMaxRetries sets the per-document retry budget
func WithMaxRetries(n int) AnalysisServiceOption {
	return func(s *AnalysisService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithBackoff sets the delay applied before each retry attempt
func WithBackoff(d time.Duration) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.backoff = d
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{
		maxRetries: defaultMaxRetries,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the configured provider adapter, or nil.
func (s *AnalysisService) Provider() llm.Provider {
	return s.provider
}

// Analyze runs one full analysis cycle over documentText and returns the
// validated record. Steps within the cycle are strictly sequential; the
// only blocking operation is the provider call itself.
func (s *AnalysisService) Analyze(ctx context.Context, instructions, documentText string) (*models.LegalAnalysis, error) {
	if s.provider == nil {
		return nil, ErrProviderNotSet
	}
	if s.validator == nil {
		return nil, ErrValidatorNotSet
	}

	prompt := instructions + "\nText to analyze:\n" + documentText

	var lastErr error
	backoff := s.backoff
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		reply, err := s.provider.Complete(ctx, prompt)
		if err != nil {
			log.Printf("Warning: provider %s attempt %d failed: %v", s.provider.Name(), attempt+1, err)
			lastErr = err
			continue
		}

		raw, err := decodeAnalysisReply(reply)
		if err != nil {
			log.Printf("Warning: undecodable reply on attempt %d: %v", attempt+1, err)
			lastErr = err
			continue
		}

		// Decoded: validation outcomes are final for this record.
		return s.validator.Validate(raw)
	}

	return nil, &RetryExhaustedError{Attempts: s.maxRetries, LastErr: lastErr}
}

// GenerateSummaries runs one cycle producing the three Federal Register
// audience summaries.
func (s *AnalysisService) GenerateSummaries(ctx context.Context, instructions, documentText string) (*models.AudienceSummaries, error) {
	if s.provider == nil {
		return nil, ErrProviderNotSet
	}

	prompt := instructions + "\nText to analyze:\n" + documentText

	var lastErr error
	backoff := s.backoff
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		reply, err := s.provider.Complete(ctx, prompt)
		if err != nil {
			log.Printf("Warning: provider %s attempt %d failed: %v", s.provider.Name(), attempt+1, err)
			lastErr = err
			continue
		}

		var summaries models.AudienceSummaries
		if err := json.Unmarshal([]byte(StripCodeFence(reply)), &summaries); err != nil {
			log.Printf("Warning: undecodable summary reply on attempt %d: %v", attempt+1, err)
			lastErr = fmt.Errorf("%w: %v", ErrUndecodableReply, err)
			continue
		}
		return &summaries, nil
	}

	return nil, &RetryExhaustedError{Attempts: s.maxRetries, LastErr: lastErr}
}

// GenerateOverview runs one cycle producing the single-field news overview
// summary. The reply's summary field goes through the same bounded repair
// as analysis replies, with only the closing brace as boundary.
func (s *AnalysisService) GenerateOverview(ctx context.Context, instructions, articles string) (string, error) {
	if s.provider == nil {
		return "", ErrProviderNotSet
	}

	prompt := instructions + "\nText to analyze:\n" + articles

	var lastErr error
	backoff := s.backoff
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		reply, err := s.provider.Complete(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		body := StripCodeFence(reply)
		var decoded struct {
			Summary string `json:"summary"`
		}
		if err := json.Unmarshal([]byte(body), &decoded); err == nil && decoded.Summary != "" {
			return decoded.Summary, nil
		}
		if fixed, ok := RepairQuotedField(body, "summary", []string{"}"}); ok {
			if err := json.Unmarshal([]byte(fixed), &decoded); err == nil && decoded.Summary != "" {
				return decoded.Summary, nil
			}
		}
		lastErr = ErrUndecodableReply
	}

	return "", &RetryExhaustedError{Attempts: s.maxRetries, LastErr: lastErr}
}

// decodeAnalysisReply strips an optional code fence and strictly decodes
// the reply; on failure it applies the bounded summary repair once and
// decodes again. Numbers are preserved as literals for the validator.
func decodeAnalysisReply(reply string) (*models.RawAnalysis, error) {
	body := StripCodeFence(reply)

	raw, err := unmarshalAnalysis(body)
	if err == nil {
		return raw, nil
	}

	fixed, ok := RepairAnalysisReply(body)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableReply, err)
	}
	raw, err = unmarshalAnalysis(fixed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableReply, err)
	}
	return raw, nil
}

func unmarshalAnalysis(body string) (*models.RawAnalysis, error) {
	var raw models.RawAnalysis
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
