package service

import (
	"context"
	"log/slog"

	"github.com/faizanfirdousi/roast-my-gpa/internal/transcript"
)

type ExtractService interface {
	// Extract parses text into records and GPA figures. An empty record list
	// is reported as ErrNoSubjectsParsed alongside the (partial) result.
	Extract(ctx context.Context, text string) (transcript.ExtractionResult, error)
}

type extractService struct{}

func NewExtractService() ExtractService {
	return &extractService{}
}

func (s *extractService) Extract(ctx context.Context, text string) (transcript.ExtractionResult, error) {
	result := transcript.Extract(text)
	if result.Empty() {
		return result, ErrNoSubjectsParsed
	}

	slog.DebugContext(ctx, "transcript extracted",
		"record_count", len(result.Records),
		"has_gpa", result.GPA.HasGPA())
	return result, nil
}
