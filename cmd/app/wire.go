//go:build wireinject
// +build wireinject

package main

import (
	"io"

	"github.com/google/wire"

	"github.com/yanqian/perf-summaries/internal/bootstrap"
	"github.com/yanqian/perf-summaries/internal/domain/performance"
	"github.com/yanqian/perf-summaries/internal/infra/config"
	httpiface "github.com/yanqian/perf-summaries/internal/interface/http"
	"github.com/yanqian/perf-summaries/pkg/metrics"
)

var generationSet = wire.NewSet(
	config.Load,
	metrics.NewRecorder,
	providePerformanceConfig,
	provideCompleter,
	provideTokenCounter,
	performance.NewValidator,
	performance.NewService,
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		generationSet,
		provideLogger,
		httpiface.NewSummaryHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}

func initializeBatchRunner(logOutput io.Writer) (*bootstrap.BatchRunner, error) {
	wire.Build(
		generationSet,
		provideBatchLogger,
		bootstrap.NewBatchRunner,
	)
	return nil, nil
}
