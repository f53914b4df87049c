package service

import (
	"github.com/faizanfirdousi/roast-my-gpa/common/llm"
	"github.com/faizanfirdousi/roast-my-gpa/core/config"
	"github.com/faizanfirdousi/roast-my-gpa/internal/store"
)

type Services struct {
	llm   llm.Client
	cache store.RoastCache
	cfg   config.LLMConfig
}

func NewServices(client llm.Client, cache store.RoastCache, cfg config.LLMConfig) *Services {
	return &Services{
		llm:   client,
		cache: cache,
		cfg:   cfg,
	}
}

func (s *Services) Roasts() RoastService {
	return NewRoastService(s.llm, s.cache, RoastConfig{
		MaxTokens:   s.cfg.MaxTokens,
		MaxAttempts: s.cfg.MaxAttempts,
	})
}

func (s *Services) Extracts() ExtractService {
	return NewExtractService()
}
