package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/medtrade/signals/internal/model"
	"github.com/medtrade/signals/internal/pipeline"
)

// DB is the subset of pgxpool.Pool the writer uses.
type DB interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Config contains configuration for the batch signal writer.
type Config struct {
	// BatchSize is the number of rows to accumulate before flushing.
	BatchSize int

	// FlushInterval is the maximum time between flushes.
	FlushInterval time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:     500,
		FlushInterval: 5 * time.Second,
	}
}

// Entry pairs a signal with its validation verdict for persistence.
type Entry struct {
	Signal model.Signal
	Result model.ValidationResult
}

// signalRow is one row for the signals table.
type signalRow struct {
	SignalID       string
	SignalType     string
	Ticker         string
	CompanyName    string
	Headline       string
	Summary        string
	Confidence     int
	Sentiment      string
	TargetUpside   *float64
	TargetDownside *float64
	Sources        []string
	CollectedAt    string
	CreatedAt      string
	IsValid        bool
	ValidityScore  int
	Flags          []string
	Warnings       []string
}

// Metrics holds writer throughput counters.
type Metrics struct {
	Inserts   int64
	Conflicts int64
	Errors    int64
	Flushes   int64
}

// SignalWriter consumes entries from its input buffer and writes them to the
// signals table in batches. It implements pipeline.Sink: WriteRun enqueues
// both accepted and rejected signals, keeping the rejection audit trail.
type SignalWriter struct {
	cfg    Config
	logger *slog.Logger

	input *Buffer[Entry]
	db    DB

	batch       []signalRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics Metrics
}

// NewSignalWriter creates a SignalWriter.
func NewSignalWriter(cfg Config, db DB, logger *slog.Logger) *SignalWriter {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultConfig().FlushInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SignalWriter{
		cfg:    cfg,
		input:  NewBuffer[Entry](cfg.BatchSize),
		db:     db,
		logger: logger,
		batch:  make([]signalRow, 0, cfg.BatchSize),
	}
}

// WriteRun enqueues every signal from the run for persistence.
func (w *SignalWriter) WriteRun(_ context.Context, res *pipeline.Result) error {
	for _, sig := range res.Signals {
		w.input.Send(Entry{Signal: sig, Result: res.Validation[sig.ID]})
	}
	for _, rej := range res.Rejected {
		w.input.Send(Entry{Signal: rej.Signal, Result: rej.Result})
	}
	return nil
}

// Start begins consuming entries and writing to the database.
func (w *SignalWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.consumeLoop()

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("signal writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the writer and flushes the remaining batch.
func (w *SignalWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping signal writer")

	if w.cancel != nil {
		w.cancel()
	}
	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("signal writer stopped")
	case <-ctx.Done():
		w.logger.Warn("signal writer stop timed out")
	}

	// The writer's own context is already cancelled at this point; the final
	// flush runs on a fresh one so the tail batch still lands.
	w.drainInput()
	w.flush(context.Background())

	return nil
}

// Stats returns current metrics.
func (w *SignalWriter) Stats() Metrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// consumeLoop moves entries from the input buffer into the batch.
func (w *SignalWriter) consumeLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			entry, ok := w.input.TryReceive()
			if !ok {
				select {
				case <-w.ctx.Done():
					return
				case <-time.After(10 * time.Millisecond):
					continue
				}
			}

			w.handleEntry(entry)
		}
	}
}

// flushLoop periodically flushes the batch.
func (w *SignalWriter) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush(w.ctx)
		}
	}
}

// handleEntry transforms and adds an entry to the batch.
func (w *SignalWriter) handleEntry(entry Entry) {
	row := w.transform(entry)

	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush(w.ctx)
	}
}

// drainInput moves anything still queued into the batch. Called on Stop after
// the consumer goroutine has exited.
func (w *SignalWriter) drainInput() {
	for _, entry := range w.input.DrainTo(0) {
		row := w.transform(entry)
		w.batchMu.Lock()
		w.batch = append(w.batch, row)
		w.batchMu.Unlock()
	}
}

// transform converts an Entry to a signalRow.
func (w *SignalWriter) transform(entry Entry) signalRow {
	sig := entry.Signal

	flags := make([]string, 0, len(entry.Result.Flags))
	for _, f := range entry.Result.Flags {
		flags = append(flags, string(f))
	}

	return signalRow{
		SignalID:       sig.ID,
		SignalType:     string(sig.Type),
		Ticker:         sig.Ticker,
		CompanyName:    sig.CompanyName,
		Headline:       sig.Headline,
		Summary:        sig.Summary,
		Confidence:     sig.Confidence,
		Sentiment:      string(sig.Sentiment),
		TargetUpside:   sig.TargetUpside,
		TargetDownside: sig.TargetDownside,
		Sources:        sig.Sources,
		CollectedAt:    sig.CollectedAt,
		CreatedAt:      sig.CreatedAt,
		IsValid:        entry.Result.IsValid,
		ValidityScore:  entry.Result.Score,
		Flags:          flags,
		Warnings:       entry.Result.Warnings,
	}
}

// flush writes the current batch to the database.
func (w *SignalWriter) flush(ctx context.Context) {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}

	batch := w.batch
	w.batch = make([]signalRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	conflicts, err := w.batchInsert(ctx, batch)
	if err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch) - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed signals",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *SignalWriter) batchInsert(ctx context.Context, rows []signalRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO signals (
				signal_id, signal_type, ticker, company_name, headline, summary,
				confidence, sentiment, target_upside, target_downside, sources,
				collected_at, created_at, is_valid, validity_score, flags, warnings
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			ON CONFLICT (signal_id) DO NOTHING
		`, r.SignalID, r.SignalType, r.Ticker, r.CompanyName, r.Headline, r.Summary,
			r.Confidence, r.Sentiment, r.TargetUpside, r.TargetDownside, r.Sources,
			r.CollectedAt, r.CreatedAt, r.IsValid, r.ValidityScore, r.Flags, r.Warnings)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
