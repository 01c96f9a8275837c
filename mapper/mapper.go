package mapper

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"struct-mapper/convert"
	"struct-mapper/internal/access"
	"struct-mapper/internal/engine"
	"struct-mapper/internal/metrics"
	"struct-mapper/internal/plan"
	"struct-mapper/options"
)

// Mapper compiles, caches and executes type maps.
type Mapper struct {
	cfg       options.Config
	logger    *slog.Logger
	registry  *convert.Registry
	collector *metrics.Collector
	store     *plan.Store
	engine    *engine.Engine

	mu         sync.RWMutex
	transforms map[string]convert.Converter
	conditions map[string]convert.Condition
}

type settings struct {
	cfg        options.Config
	logger     *slog.Logger
	converters []convert.Converter
	provider   convert.Provider
	registerer prometheus.Registerer
	namespace  string
}

// Option configures a Mapper.
type Option func(*settings)

// WithConfig replaces the policy snapshot.
func WithConfig(cfg options.Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithOptions applies policy options on top of the current snapshot.
func WithOptions(opts ...options.Option) Option {
	return func(s *settings) { s.cfg = s.cfg.With(opts...) }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithConverter registers converters in front of the built-in ones.
func WithConverter(converters ...convert.Converter) Option {
	return func(s *settings) { s.converters = append(s.converters, converters...) }
}

// WithProvider sets the global provider asked after mapping and plan providers.
func WithProvider(p convert.Provider) Option {
	return func(s *settings) { s.provider = p }
}

// WithMetrics registers Prometheus metrics under namespace on registerer.
func WithMetrics(namespace string, registerer prometheus.Registerer) Option {
	return func(s *settings) {
		s.namespace = namespace
		s.registerer = registerer
	}
}

// New returns a Mapper with its own store and registries.
func New(opts ...Option) *Mapper {
	s := settings{cfg: options.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	m := &Mapper{
		cfg:        s.cfg,
		logger:     s.logger,
		registry:   convert.NewRegistry(s.cfg.Conversions),
		transforms: map[string]convert.Converter{},
		conditions: convert.Conditions(),
	}

	m.registry.Register(s.converters...)

	if s.registerer != nil {
		m.collector = metrics.NewCollector(s.namespace, s.registerer)
	}

	compiler := plan.NewCompiler(s.cfg, access.New(s.cfg), m.registry)
	m.store = plan.NewStore(compiler, observer{logger: m.logger, collector: m.collector})
	m.engine = engine.New(m.store, m.registry, s.provider)

	return m
}

// Config returns the policy snapshot.
func (m *Mapper) Config() options.Config { return m.cfg }

// RegisterConverter adds converters in front of those already registered.
// Plans compiled earlier keep the routes they found.
func (m *Mapper) RegisterConverter(converters ...convert.Converter) {
	m.registry.Register(converters...)
}

// Map maps src into a new value of type dst.
func (m *Mapper) Map(src any, dst reflect.Type) (any, error) {
	start := time.Now()

	out, err := m.engine.Map(src, dst)
	m.observe(reflect.TypeOf(src), dst, time.Since(start), err)

	if err != nil {
		return nil, err
	}

	return out.Interface(), nil
}

// MapTo maps src onto the value dst points to.
func (m *Mapper) MapTo(src, dst any) error {
	start := time.Now()

	err := m.engine.MapInto(src, dst)

	var dstType reflect.Type
	if t := reflect.TypeOf(dst); t != nil && t.Kind() == reflect.Ptr {
		dstType = t.Elem()
	}

	m.observe(reflect.TypeOf(src), dstType, time.Since(start), err)

	return err
}

// Map maps src into a new D.
func Map[D any](m *Mapper, src any) (D, error) {
	var zero D

	out, err := m.Map(src, reflect.TypeFor[D]())
	if err != nil {
		return zero, err
	}

	d, ok := out.(D)
	if !ok {
		// interface destinations come back as nil for nil sources
		return zero, nil
	}

	return d, nil
}

func (m *Mapper) observe(src, dst reflect.Type, elapsed time.Duration, err error) {
	if m.collector != nil {
		m.collector.RecordMapping(elapsed, err)
	}

	emitMapComplete(context.Background(), plan.NewTypePair(src, dst).String(), elapsed, err)
}

// CreateTypeMap compiles an implicit type map for the pair, replacing any
// stored one.
func (m *Mapper) CreateTypeMap(src, dst reflect.Type) (*TypeMap, error) {
	return m.store.Create(src, dst)
}

// TypeMap returns the type map for the pair, compiling it when missing.
// Definitions are merged into the type map in order.
func (m *Mapper) TypeMap(src, dst reflect.Type, defs ...Definition) (*TypeMap, error) {
	if len(defs) == 0 {
		return m.store.GetOrCreate(src, dst, Definition{})
	}

	var (
		tm  *TypeMap
		err error
	)

	for _, def := range defs {
		if tm, err = m.store.GetOrCreate(src, dst, def); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// AddMappings merges explicit declarations into the type map of the pair.
func (m *Mapper) AddMappings(src, dst reflect.Type, decls ...Declaration) (*TypeMap, error) {
	return m.store.GetOrCreate(src, dst, Definition{Declarations: decls})
}

// AddConverter makes c the whole-plan converter of the pair.
func (m *Mapper) AddConverter(src, dst reflect.Type, c convert.Converter) (*TypeMap, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil converter for %s", ErrConfiguration, plan.NewTypePair(src, dst))
	}

	return m.store.GetOrCreate(src, dst, Definition{Converter: c})
}

// GetTypeMap returns the stored type map accepting the pair, or nil.
func (m *Mapper) GetTypeMap(src, dst reflect.Type) *TypeMap {
	return m.store.Get(src, dst)
}

// TypeMaps returns every stored type map in registration order.
func (m *Mapper) TypeMaps() []*TypeMap {
	return m.store.All()
}

// Reset drops every stored type map.
func (m *Mapper) Reset() {
	m.store.Reset()
}
