package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/yanqian/perf-summaries/internal/domain/performance"
)

// BatchRunner runs one summary batch outside of the HTTP server, reading the
// same {"employees": [...]} document the API accepts.
type BatchRunner struct {
	svc       performance.Service
	validator *performance.Validator
	logger    *slog.Logger
}

// NewBatchRunner is used by Wire to build the CLI batch mode.
func NewBatchRunner(svc performance.Service, validator *performance.Validator, logger *slog.Logger) *BatchRunner {
	return &BatchRunner{svc: svc, validator: validator, logger: logger.With("component", "bootstrap.batch")}
}

// Run decodes r, generates every summary and writes {"summaries": [...]} to w.
// Nothing is written when any record fails.
func (b *BatchRunner) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	employees, err := b.validator.DecodeBatch(data)
	if err != nil {
		return err
	}
	if !b.svc.Configured() {
		return performance.ErrNotConfigured
	}

	b.logger.Info("batch started", "employees", len(employees))
	summaries, err := b.svc.GenerateSummaries(ctx, employees)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(performance.Response{Summaries: summaries}); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
