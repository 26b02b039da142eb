package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds interval-runner configuration.
type RunnerConfig struct {
	Interval time.Duration // time between runs (default: 15m)
}

// DefaultRunnerConfig returns sensible defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Interval: 15 * time.Minute,
	}
}

// Runner executes the pipeline on a fixed interval.
type Runner struct {
	cfg      RunnerConfig
	pipeline *Pipeline
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a Runner around p.
func NewRunner(cfg RunnerConfig, p *Pipeline, logger *slog.Logger) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRunnerConfig().Interval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		pipeline: p,
		logger:   logger,
	}
}

// Start begins the run loop. The first run happens immediately.
func (r *Runner) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("pipeline runner started", "interval", r.cfg.Interval)
	return nil
}

// Stop gracefully shuts down the runner, waiting for an in-flight run.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("pipeline runner stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.runOnce()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.runOnce()
		}
	}
}

func (r *Runner) runOnce() {
	if _, err := r.pipeline.Run(r.ctx); err != nil {
		r.logger.Error("pipeline run failed", "err", err)
	}
}
