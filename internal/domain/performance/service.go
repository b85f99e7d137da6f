package performance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/yanqian/perf-summaries/pkg/errors"
	"github.com/yanqian/perf-summaries/pkg/metrics"
)

// ErrNotConfigured is returned when no completion credential is available.
var ErrNotConfigured = apperrors.Wrap(apperrors.CodeNotConfigured,
	"OpenAI API key not configured. Set OPENAI_API_KEY environment variable.", nil)

// Service generates performance summaries.
type Service interface {
	GenerateSummaries(ctx context.Context, employees []EmployeeRecord) ([]SummaryRecord, error)
	GenerateSummary(ctx context.Context, emp EmployeeRecord) (SummaryRecord, error)
	Configured() bool
}

// Completer is a single-turn text completion capability.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TokenCounter estimates prompt sizes for metrics.
type TokenCounter interface {
	Count(text string) int
}

type service struct {
	cfg       Config
	completer Completer
	tokens    TokenCounter
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

// NewService wires the summary generator. A nil completer means the
// credential is missing; the service then refuses to generate.
func NewService(cfg Config, completer Completer, tokens TokenCounter, recorder *metrics.Recorder, logger *slog.Logger) Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &service{
		cfg:       cfg,
		completer: completer,
		tokens:    tokens,
		metrics:   recorder,
		logger:    logger.With("component", "performance.service"),
	}
}

func (s *service) Configured() bool {
	return s.completer != nil
}

// GenerateSummaries returns one summary per employee in input order, or the
// first error. No external call starts after a failure.
func (s *service) GenerateSummaries(ctx context.Context, employees []EmployeeRecord) ([]SummaryRecord, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	out := make([]SummaryRecord, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, emp := range employees {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := s.GenerateSummary(gctx, emp)
			if err != nil {
				return err
			}
			out[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.ObserveBatch(metrics.OutcomeFailure)
		s.logger.Error("summary batch failed", "employees", len(employees), "error", err)
		return nil, err
	}

	s.metrics.ObserveBatch(metrics.OutcomeSuccess)
	s.logger.Info("summary batch generated", "employees", len(employees))
	return out, nil
}

func (s *service) GenerateSummary(ctx context.Context, emp EmployeeRecord) (SummaryRecord, error) {
	if !s.Configured() {
		return SummaryRecord{}, ErrNotConfigured
	}

	prompt := BuildPrompt(emp)
	if s.tokens != nil {
		n := s.tokens.Count(prompt)
		s.metrics.ObservePromptTokens(n)
		s.logger.Debug("prompt built", "employee_id", emp.ID, "prompt_tokens", n)
	}

	text, err := s.completer.Complete(ctx, s.cfg.SystemPrompt, prompt)
	if err != nil {
		s.metrics.ObserveSummary(metrics.OutcomeFailure)
		s.logger.Error("summary generation failed", "employee_id", emp.ID, "employee", emp.Name, "error", err)
		return SummaryRecord{}, apperrors.Wrap(apperrors.CodeLLM,
			fmt.Sprintf("generate summary for employee %s (%s)", emp.ID, emp.Name), err)
	}

	s.metrics.ObserveSummary(metrics.OutcomeSuccess)
	return toSummaryRecord(emp, text), nil
}

// IsNotConfigured reports whether err stems from a missing credential.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured) || apperrors.IsCode(err, apperrors.CodeNotConfigured)
}
