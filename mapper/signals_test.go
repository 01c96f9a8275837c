package mapper

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"struct-mapper/internal/plan"
)

func TestEmitPlanCompiled(_ *testing.T) {
	emitPlanCompiled(context.Background(), "a.A -> b.B", 3, 1, time.Millisecond)
}

func TestEmitPlanMerged(_ *testing.T) {
	emitPlanMerged(context.Background(), "a.A -> b.B", 4, 0)
}

func TestEmitPlanFailed(_ *testing.T) {
	emitPlanFailed(context.Background(), "a.A -> b.B", errors.New("test error"))
}

func TestEmitMapComplete_Success(_ *testing.T) {
	emitMapComplete(context.Background(), "a.A -> b.B", time.Millisecond, nil)
}

func TestEmitMapComplete_Error(_ *testing.T) {
	emitMapComplete(context.Background(), "a.A -> b.B", time.Millisecond, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	for name, s := range map[string]any{
		"SignalPlanCompiled": SignalPlanCompiled,
		"SignalPlanMerged":   SignalPlanMerged,
		"SignalPlanFailed":   SignalPlanFailed,
		"SignalMapComplete":  SignalMapComplete,
		"KeyPair":            KeyPair,
		"KeyMappings":        KeyMappings,
		"KeyUnmapped":        KeyUnmapped,
		"KeyDuration":        KeyDuration,
		"KeyError":           KeyError,
	} {
		assert.NotNil(t, s, name)
	}
}

type source struct{ Name string }

type target struct {
	Name  string
	Extra int
}

func TestObserver_Logs(t *testing.T) {
	var buf bytes.Buffer

	o := observer{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	m := New(WithLogger(o.logger))

	tm, err := m.CreateTypeMap(reflect.TypeFor[source](), reflect.TypeFor[target]())
	assert.NoError(t, err)

	assert.Contains(t, buf.String(), "type map compiled")
	assert.Contains(t, buf.String(), "path=Extra")

	buf.Reset()
	o.PlanMerged(tm)
	o.PlanFailed(plan.NewTypePair(reflect.TypeFor[source](), reflect.TypeFor[int]()), errors.New("boom"))

	assert.Contains(t, buf.String(), "type map merged")
	assert.Contains(t, buf.String(), "error=boom")
}
