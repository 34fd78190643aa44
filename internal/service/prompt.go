package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitbuilder587/chatgpt-plugin/internal/llm"
)

const provider = "chatgpt"

type Recorder interface {
	RecordRun(status string, duration time.Duration)
	RecordLLMRequest(provider, op, status string, duration time.Duration)
	RecordResponseSize(provider string, size int)
	IncRequestsInFlight()
	DecRequestsInFlight()
}

type PromptService interface {
	// Run авторизуется один раз и последовательно отправляет промпты.
	// Первая ошибка прерывает прогон, частичных результатов нет.
	Run(ctx context.Context, prompts ...string) ([]string, error)
}

type PromptServiceDeps struct {
	LLM     llm.Client
	Logger  *zap.Logger
	Metrics Recorder
}

type promptService struct {
	llm     llm.Client
	logger  *zap.Logger
	metrics Recorder
}

func NewPromptService(deps PromptServiceDeps) PromptService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = nopRecorder{}
	}

	return &promptService{
		llm:     deps.LLM,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}
}

func (s *promptService) Run(ctx context.Context, prompts ...string) ([]string, error) {
	start := time.Now()
	logger := s.logger.With(zap.String("run_id", uuid.New().String()))

	s.metrics.IncRequestsInFlight()
	defer s.metrics.DecRequestsInFlight()

	responses, err := s.run(ctx, logger, prompts)
	status := statusOf(err)
	s.metrics.RecordRun(status, time.Since(start))

	if err != nil {
		logger.Error("run failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	logger.Info("run completed",
		zap.Int("prompts", len(prompts)),
		zap.Duration("duration", time.Since(start)),
	)
	return responses, nil
}

func (s *promptService) run(ctx context.Context, logger *zap.Logger, prompts []string) ([]string, error) {
	authStart := time.Now()
	err := s.llm.Authenticate(ctx)
	s.metrics.RecordLLMRequest(provider, "auth", statusOf(err), time.Since(authStart))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	logger.Debug("authenticated", zap.Duration("duration", time.Since(authStart)))

	responses := make([]string, 0, len(prompts))
	for i, prompt := range prompts {
		reqStart := time.Now()
		resp, err := s.llm.SendPrompt(ctx, prompt)
		if err == nil && resp == "" {
			err = llm.ErrEmptyResponse
		}
		s.metrics.RecordLLMRequest(provider, "prompt", statusOf(err), time.Since(reqStart))
		if err != nil {
			return nil, fmt.Errorf("prompt %d: %w", i+1, err)
		}
		s.metrics.RecordResponseSize(provider, len(resp))

		logger.Debug("prompt sent",
			zap.Int("index", i),
			zap.Int("prompt_len", len(prompt)),
			zap.Int("response_len", len(resp)),
			zap.Duration("duration", time.Since(reqStart)),
		)
		responses = append(responses, resp)
	}

	return responses, nil
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, llm.ErrNotAuthenticated), errors.Is(err, llm.ErrAuthFailed):
		return "auth_error"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "empty"
	case errors.Is(err, llm.ErrRateLimit):
		return "rate_limited"
	default:
		return "error"
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordRun(string, time.Duration) {}
func (nopRecorder) RecordLLMRequest(string, string, string, time.Duration) {}
func (nopRecorder) RecordResponseSize(string, int) {}
func (nopRecorder) IncRequestsInFlight() {}
func (nopRecorder) DecRequestsInFlight() {}
