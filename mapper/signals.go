package mapper

import (
	"context"
	"log/slog"
	"time"

	"github.com/zoobzio/capitan"

	"struct-mapper/internal/metrics"
	"struct-mapper/internal/plan"
)

// Signals emitted by every Mapper.
var (
	SignalPlanCompiled = capitan.NewSignal("mapper.plan.compiled", "Type map compiled")
	SignalPlanMerged   = capitan.NewSignal("mapper.plan.merged", "Definition merged into a type map")
	SignalPlanFailed   = capitan.NewSignal("mapper.plan.failed", "Type map compilation failed")
	SignalMapComplete  = capitan.NewSignal("mapper.map.complete", "Mapping call finished")
)

// Field keys for signal data.
var (
	KeyPair     = capitan.NewStringKey("pair")
	KeyMappings = capitan.NewIntKey("mappings")
	KeyUnmapped = capitan.NewIntKey("unmapped")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

func emitPlanCompiled(ctx context.Context, pair string, mappings, unmapped int, duration time.Duration) {
	capitan.Emit(ctx, SignalPlanCompiled,
		KeyPair.Field(pair),
		KeyMappings.Field(mappings),
		KeyUnmapped.Field(unmapped),
		KeyDuration.Field(duration),
	)
}

func emitPlanMerged(ctx context.Context, pair string, mappings, unmapped int) {
	capitan.Emit(ctx, SignalPlanMerged,
		KeyPair.Field(pair),
		KeyMappings.Field(mappings),
		KeyUnmapped.Field(unmapped),
	)
}

func emitPlanFailed(ctx context.Context, pair string, err error) {
	capitan.Error(ctx, SignalPlanFailed,
		KeyPair.Field(pair),
		KeyError.Field(err),
	)
}

func emitMapComplete(ctx context.Context, pair string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyPair.Field(pair),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMapComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMapComplete, fields...)
	}
}

// observer reports store events to the logger, the collector and capitan.
type observer struct {
	logger    *slog.Logger
	collector *metrics.Collector
}

func (o observer) PlanCompiled(tm *plan.TypeMap, elapsed time.Duration) {
	pair := tm.Pair().String()

	o.logger.Debug("type map compiled",
		slog.String("pair", pair),
		slog.Int("mappings", len(tm.Steps())),
		slog.Duration("elapsed", elapsed),
	)

	for _, p := range tm.Unmapped() {
		o.logger.Warn("unmapped destination path", slog.String("pair", pair), slog.String("path", p.String()))
	}

	if o.collector != nil {
		o.collector.RecordCompile(elapsed)
	}

	emitPlanCompiled(context.Background(), pair, len(tm.Steps()), len(tm.Unmapped()), elapsed)
}

func (o observer) PlanMerged(tm *plan.TypeMap) {
	pair := tm.Pair().String()

	o.logger.Debug("type map merged", slog.String("pair", pair), slog.Int("mappings", len(tm.Steps())))

	if o.collector != nil {
		o.collector.RecordMerge()
	}

	emitPlanMerged(context.Background(), pair, len(tm.Steps()), len(tm.Unmapped()))
}

func (o observer) PlanFailed(pair plan.TypePair, err error) {
	o.logger.Debug("type map failed", slog.String("pair", pair.String()), slog.Any("error", err))

	if o.collector != nil {
		o.collector.RecordCompileFailure()
	}

	emitPlanFailed(context.Background(), pair.String(), err)
}
