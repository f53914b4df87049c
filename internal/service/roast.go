package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/faizanfirdousi/roast-my-gpa/common/id"
	"github.com/faizanfirdousi/roast-my-gpa/common/llm"
	"github.com/faizanfirdousi/roast-my-gpa/common/logger"
	"github.com/faizanfirdousi/roast-my-gpa/internal/store"
	"github.com/faizanfirdousi/roast-my-gpa/internal/transcript"
)

var (
	// ErrNoSubjectsParsed means the document had text but no subject rows.
	ErrNoSubjectsParsed = fmt.Errorf("could not parse any subjects and grades: %w", transcript.ErrNoRecords)
	ErrEmptyRoast       = errors.New("model returned an empty roast")
)

type RoastResponse struct {
	Roast string `json:"roast" jsonschema_description:"The roast of the student's grade report, plain text"`
}

var roastSchema = llm.GenerateSchema[RoastResponse]()

type RoastParams struct {
	FileName string
	Text     string
}

type RoastResult struct {
	RequestID  int64
	Roast      string
	Cached     bool
	Extraction transcript.ExtractionResult
}

type RoastConfig struct {
	MaxTokens   int
	MaxAttempts int
	// Backoff is the first retry delay; it doubles on every further attempt.
	Backoff time.Duration
}

type RoastService interface {
	Roast(ctx context.Context, params RoastParams) (*RoastResult, error)
}

type roastService struct {
	llm   llm.Client
	cache store.RoastCache
	cfg   RoastConfig
}

func NewRoastService(client llm.Client, cache store.RoastCache, cfg RoastConfig) RoastService {
	if cache == nil {
		cache = store.NoopRoastCache{}
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	return &roastService{
		llm:   client,
		cache: cache,
		cfg:   cfg,
	}
}

func (s *roastService) Roast(ctx context.Context, params RoastParams) (*RoastResult, error) {
	requestID := id.New()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RequestID: logger.Ptr(requestID),
		FileName:  logger.Ptr(params.FileName),
		Component: "roast.service",
	})

	sc := logger.StartSpan(ctx, "roast.generate")
	defer sc.End()
	ctx = sc.Context()

	extraction := transcript.Extract(params.Text)
	if extraction.Empty() {
		slog.InfoContext(ctx, "no subjects parsed", "text_length", len(params.Text))
		return nil, ErrNoSubjectsParsed
	}

	slog.InfoContext(ctx, "transcript extracted",
		"record_count", len(extraction.Records),
		"term_work_count", extraction.TermWorkCount(),
		"has_gpa", extraction.GPA.HasGPA(),
		"gpa_line_count", len(extraction.GPA.Lines))

	result := &RoastResult{
		RequestID:  requestID,
		Extraction: extraction,
	}

	key := store.CacheKey(params.Text, s.llm.Model())
	if roast, found, err := s.cache.Get(ctx, key); err != nil {
		slog.WarnContext(ctx, "roast cache lookup failed", "error", err)
	} else if found {
		slog.InfoContext(ctx, "roast served from cache")
		result.Roast = roast
		result.Cached = true
		return result, nil
	}

	roast, err := s.generate(ctx, BuildRoastPrompt(extraction))
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}
	result.Roast = roast

	if err := s.cache.Set(ctx, key, roast); err != nil {
		slog.WarnContext(ctx, "roast cache store failed", "error", err)
	}

	return result, nil
}

func (s *roastService) generate(ctx context.Context, prompt string) (string, error) {
	var (
		response RoastResponse
		llmResp  *llm.Response
		err      error
	)
	start := time.Now()

	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		llmResp, err = s.llm.Chat(ctx, llm.Request{
			SystemPrompt: roastSystemPrompt,
			UserPrompt:   prompt,
			SchemaName:   "roast_response",
			Schema:       roastSchema,
			MaxTokens:    s.cfg.MaxTokens,
			Temperature:  llm.Temp(0.9),
		}, &response)

		if err == nil {
			break
		}
		if !llm.IsRetryable(ctx, err) {
			return "", fmt.Errorf("roast generation: %w", err)
		}
		if attempt == s.cfg.MaxAttempts-1 {
			break
		}

		delay := s.cfg.Backoff << attempt
		slog.WarnContext(ctx, "roast generation retry",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("roast generation: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
	if err != nil {
		return "", fmt.Errorf("roast generation after %d attempts: %w", s.cfg.MaxAttempts, err)
	}

	roast := strings.TrimSpace(response.Roast)
	if roast == "" {
		return "", ErrEmptyRoast
	}

	slog.InfoContext(ctx, "roast generated",
		"model", s.llm.Model(),
		"prompt_tokens", llmResp.PromptTokens,
		"completion_tokens", llmResp.CompletionTokens,
		"latency_ms", time.Since(start).Milliseconds())

	return roast, nil
}
