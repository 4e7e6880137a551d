package sentiment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/umutakkman/SocialMediaMonitoring/internal/metrics"
	"github.com/umutakkman/SocialMediaMonitoring/internal/models"
)

const defaultWorkerCount = 4

// Analyzer runs the full aggregation pipeline: batch classification through
// the oracle, count reconciliation, timestamp normalization, time bucketing,
// and the final cross-check. Its contract is total: any well-formed input
// yields a structurally valid AggregateResult, never an error.
type Analyzer struct {
	completer Completer
	clock     clockwork.Clock
	batchSize int
	workers   int
	interval  string
}

type Option func(*Analyzer)

func WithBatchSize(size int) Option {
	return func(a *Analyzer) {
		if size > 0 {
			a.batchSize = size
		}
	}
}

func WithWorkerCount(workers int) Option {
	return func(a *Analyzer) {
		if workers > 0 {
			a.workers = workers
		}
	}
}

func WithTimeInterval(interval string) Option {
	return func(a *Analyzer) {
		switch interval {
		case IntervalHour, IntervalDay, IntervalWeek:
			a.interval = interval
		}
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(a *Analyzer) { a.clock = clock }
}

func NewAnalyzer(completer Completer, opts ...Option) *Analyzer {
	a := &Analyzer{
		completer: completer,
		clock:     clockwork.NewRealClock(),
		batchSize: DefaultBatchSize,
		workers:   defaultWorkerCount,
		interval:  IntervalDay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// accumulator collects per-batch results keyed by global index, so batches
// finishing out of order can neither duplicate nor drop a post.
type accumulator struct {
	mu        sync.Mutex
	counts    models.SentimentCounts
	labels    map[int]string
	processed map[int]struct{}
}

func newAccumulator(size int) *accumulator {
	return &accumulator{
		labels:    make(map[int]string, size),
		processed: make(map[int]struct{}, size),
	}
}

func (acc *accumulator) merge(batch Batch, counts models.SentimentCounts, labels map[int]string) {
	acc.mu.Lock()
	defer acc.mu.Unlock()

	acc.counts = acc.counts.Add(counts)
	for i := range batch.Posts {
		index := batch.Offset + i
		if _, seen := acc.processed[index]; seen {
			continue
		}
		label, ok := labels[index]
		if !ok {
			label = models.SentimentNeutral
		}
		acc.labels[index] = label
		acc.processed[index] = struct{}{}
	}
}

// fillGaps is the closing consistency check: any index that no batch covered
// is defaulted to neutral. Runs after all batches have resolved.
func (acc *accumulator) fillGaps(total int) {
	missing := 0
	for i := 0; i < total; i++ {
		if _, seen := acc.processed[i]; seen {
			continue
		}
		acc.labels[i] = models.SentimentNeutral
		acc.processed[i] = struct{}{}
		acc.counts.Neutral++
		missing++
	}
	if missing > 0 {
		slog.Warn("[SentimentAnalyzer] Not all posts were processed, defaulting the rest to neutral",
			slog.Int("missing", missing),
			slog.Int("total", total))
	}
}

// Analyze classifies posts in concurrent batches and aggregates the results
// into an overall distribution plus a time-bucketed series. Posts with empty
// text are dropped up front; an empty input short-circuits to an all-zero
// result.
func (a *Analyzer) Analyze(ctx context.Context, posts []models.Post) models.AggregateResult {
	valid := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.Text != "" {
			valid = append(valid, post)
		}
	}
	if len(valid) == 0 {
		slog.Warn("[SentimentAnalyzer] No valid posts provided for sentiment analysis")
		return models.AggregateResult{OverTime: []models.TimePeriod{}}
	}

	slog.Info("[SentimentAnalyzer] Analyzing posts",
		slog.Int("posts", len(valid)),
		slog.Int("batch_size", a.batchSize))

	batches := SplitBatches(valid, a.batchSize)
	acc := newAccumulator(len(valid))

	var wg sync.WaitGroup
	sem := make(chan struct{}, a.workers)
	for _, batch := range batches {
		wg.Add(1)
		sem <- struct{}{}
		go func(b Batch) {
			defer wg.Done()
			defer func() { <-sem }()
			counts, labels := a.classifyBatch(ctx, b)
			acc.merge(b, counts, labels)
		}(batch)
	}
	wg.Wait()

	acc.fillGaps(len(valid))

	for i := range valid {
		valid[i].Sentiment = acc.labels[i]
	}

	slog.Info("[SentimentAnalyzer] Sentiment counts",
		slog.Int("positive", acc.counts.Positive),
		slog.Int("neutral", acc.counts.Neutral),
		slog.Int("negative", acc.counts.Negative))

	overall := PercentagesFromCounts(acc.counts)

	NormalizeTimestamps(valid, a.clock)
	overTime := GroupByTime(valid, a.interval)
	overall = CrossCheck(overall, overTime)

	if overTime == nil {
		overTime = []models.TimePeriod{}
	}
	return models.AggregateResult{Overall: overall, OverTime: overTime}
}

// classifyBatch performs one oracle round trip. An oracle failure is not
// retried here; the empty response degrades through the parser to an
// all-neutral batch so the pipeline always terminates with a full result.
func (a *Analyzer) classifyBatch(ctx context.Context, batch Batch) (models.SentimentCounts, map[int]string) {
	prompt := BuildPrompt(batch)

	raw, err := a.completer.Complete(ctx, Instructions, prompt)
	if err != nil {
		slog.Error("[SentimentAnalyzer] Oracle call failed for batch",
			slog.Int("batch_offset", batch.Offset),
			slog.String("error", err.Error()))
		metrics.BatchesProcessed.WithLabelValues("oracle_error").Inc()
		raw = ""
	} else {
		metrics.BatchesProcessed.WithLabelValues("ok").Inc()
	}

	counts, labels := ParseBatchResponse(raw, batch)
	return ReconcileCounts(counts, len(batch.Posts)), labels
}
