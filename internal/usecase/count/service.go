package count

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"charcount/internal/observability/logging"
	"charcount/internal/observability/metrics"
	"charcount/internal/observability/tracing"
	"charcount/internal/utils/text"
	"charcount/pkg/charcount"
)

// Operation names reported in results, metrics and spans.
const (
	OpCount                 = "count"
	OpCountInRange          = "count_in_range"
	OpCountInRangeWithLimit = "count_in_range_with_limit"
)

const defaultParallelism = 4

// MetricsRecorder records business metrics for counting operations.
type MetricsRecorder interface {
	RecordCount(operation string, matches, textRunes int, capped bool)
	RecordCountFailure(operation, outcome string)
	RecordBatch(size int)
}

// Input is a counting request as received from a transport.
// Nil fields were not supplied by the caller.
type Input struct {
	Text    *string
	Targets *string
	Start   *int
	End     *int
	Limit   *int
}

// Operation reports which counting operation the input selects:
// a limit selects the limited count, a range alone the ranged count,
// neither the whole-string count.
func (in Input) Operation() string {
	switch {
	case in.Limit != nil:
		return OpCountInRangeWithLimit
	case in.Start != nil || in.End != nil:
		return OpCountInRange
	default:
		return OpCount
	}
}

// Result is the outcome of a successful count.
type Result struct {
	Count     int
	Operation string
	// Capped reports whether the limit stopped the count early.
	Capped bool
}

// BatchItem holds the result or the error for one batch input.
type BatchItem struct {
	Result Result
	Err    error
}

// Service provides the counting use cases.
type Service struct {
	Logger  *slog.Logger
	Metrics MetricsRecorder

	// MaxTextRunes rejects longer texts with ErrTextTooLong. Zero disables the check.
	MaxTextRunes int
	// MaxBatchItems rejects larger batches with ErrBatchTooLarge. Zero disables the check.
	MaxBatchItems int
	// Parallelism bounds concurrent evaluation in CountBatch.
	Parallelism int
}

// NewService creates a Service recording to the Prometheus registry.
func NewService(logger *slog.Logger, maxTextRunes, maxBatchItems, parallelism int) *Service {
	return &Service{
		Logger:        logger,
		Metrics:       metrics.Recorder{},
		MaxTextRunes:  maxTextRunes,
		MaxBatchItems: maxBatchItems,
		Parallelism:   parallelism,
	}
}

// Count evaluates a single input.
//
// A missing text or target set yields a NullArgument error for "str" or
// "targets". A limit without a range applies over the whole string, with the
// same empty-input shortcut as the whole-string count.
func (s *Service) Count(ctx context.Context, in Input) (Result, error) {
	op := in.Operation()
	ctx, span := tracing.StartSpan(ctx, "charcount.count", attribute.String("charcount.operation", op))
	defer span.End()

	res, runes, err := s.count(ctx, in, op)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.recorder().RecordCountFailure(op, Outcome(err))
		s.logger(ctx).Debug("count rejected",
			slog.String("operation", op),
			slog.String("param", charcount.Param(err)),
			slog.Any("error", err))
		return Result{}, err
	}

	span.SetAttributes(
		attribute.Int("charcount.text_runes", runes),
		attribute.Int("charcount.count", res.Count),
		attribute.Bool("charcount.capped", res.Capped),
	)
	s.recorder().RecordCount(op, res.Count, runes, res.Capped)
	s.logger(ctx).Debug("count completed",
		slog.String("operation", op),
		slog.Int("text_runes", runes),
		slog.Int("count", res.Count),
		slog.Bool("capped", res.Capped))
	return res, nil
}

func (s *Service) count(ctx context.Context, in Input, op string) (Result, int, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, 0, err
	}
	if in.Text == nil {
		return Result{}, 0, charcount.NullArgument(charcount.ParamStr)
	}
	if in.Targets == nil {
		return Result{}, 0, charcount.NullArgument(charcount.ParamTargets)
	}
	if (in.Start == nil) != (in.End == nil) {
		return Result{}, 0, ErrIncompleteRange
	}

	str := *in.Text
	runes := text.CountRunes(str)
	if s.MaxTextRunes > 0 && runes > s.MaxTextRunes {
		return Result{}, runes, fmt.Errorf("%w: %d runes exceeds maximum of %d", ErrTextTooLong, runes, s.MaxTextRunes)
	}
	targets := text.ParseTargets(*in.Targets)

	res := Result{Operation: op}
	var err error
	switch op {
	case OpCount:
		res.Count, err = charcount.Count(str, targets)
	case OpCountInRange:
		res.Count, err = charcount.CountInRange(str, targets, *in.Start, *in.End)
	case OpCountInRangeWithLimit:
		res.Count, res.Capped, err = countWithLimit(str, targets, runes, in)
	}
	if err != nil {
		return Result{}, runes, err
	}
	return res, runes, nil
}

func countWithLimit(str string, targets []rune, runes int, in Input) (int, bool, error) {
	limit := *in.Limit
	start, end := 0, runes-1
	if in.Start != nil {
		start, end = *in.Start, *in.End
	} else if runes == 0 || len(targets) == 0 {
		if limit < 0 {
			return 0, false, charcount.InvalidArgument(charcount.ParamLimit, "limit is negative")
		}
		return 0, false, nil
	}

	n, err := charcount.CountInRangeWithLimit(str, targets, start, end, limit)
	if err != nil {
		return 0, false, err
	}
	if n < limit {
		return n, false, nil
	}

	full, err := charcount.CountInRange(str, targets, start, end)
	if err != nil {
		return 0, false, err
	}
	return n, full > n, nil
}

// CountBatch evaluates independent inputs concurrently, at most Parallelism
// at a time. Per-input failures are reported in the matching BatchItem and do
// not stop the batch; cancellation of ctx does.
func (s *Service) CountBatch(ctx context.Context, inputs []Input) ([]BatchItem, error) {
	if s.MaxBatchItems > 0 && len(inputs) > s.MaxBatchItems {
		return nil, fmt.Errorf("%w: %d items exceeds maximum of %d", ErrBatchTooLarge, len(inputs), s.MaxBatchItems)
	}

	ctx, span := tracing.StartSpan(ctx, "charcount.count_batch", attribute.Int("charcount.batch_size", len(inputs)))
	defer span.End()
	s.recorder().RecordBatch(len(inputs))

	items := make([]BatchItem, len(inputs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.parallelism())

	for i, in := range inputs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := s.Count(egCtx, in)
			items[i] = BatchItem{Result: res, Err: err}
			return nil
		})
	}

	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("count batch: %w", err)
	}
	return items, nil
}

// logger prefers the request-scoped logger stored in ctx.
func (s *Service) logger(ctx context.Context) *slog.Logger {
	if l := logging.FromContext(ctx); l != slog.Default() || s.Logger == nil {
		return l
	}
	return s.Logger
}

func (s *Service) recorder() MetricsRecorder {
	if s.Metrics == nil {
		return metrics.Recorder{}
	}
	return s.Metrics
}

func (s *Service) parallelism() int {
	if s.Parallelism <= 0 {
		return defaultParallelism
	}
	return s.Parallelism
}
