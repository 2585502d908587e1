package storemod

import (
	"context"
	"log/slog"

	"github.com/modware/sesskv/internal/host"
	"github.com/modware/sesskv/internal/storage/memory"
	"github.com/modware/sesskv/internal/telemetry/metric"
)

// ModuleName is the name the store module loads under.
const ModuleName = "custom_store"

// Module exposes a memory.Store through the CUSTOM.* commands and the
// exported store API.
type Module struct {
	store   *memory.Store
	logger  *slog.Logger
	metrics *metric.Metrics
	buffers *bufferPool
}

// New creates the store module around an existing store. The store is
// injected rather than owned so it can be shared with tests and the
// process wiring.
func New(store *memory.Store, logger *slog.Logger, metrics *metric.Metrics) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	return &Module{
		store:   store,
		logger:  logger.With("module", ModuleName),
		metrics: metrics,
		buffers: newBufferPool(),
	}
}

// Name implements host.Module.
func (m *Module) Name() string { return ModuleName }

// Load implements host.Module: it registers the command surface and
// publishes the exported API symbols.
func (m *Module) Load(rt *host.Runtime) error {
	rt.RegisterCommand(host.Command{Name: "CUSTOM.SET", Arity: 2, Handler: m.cmdSet})
	rt.RegisterCommand(host.Command{Name: "CUSTOM.GET", Arity: 1, Handler: m.cmdGet})
	rt.RegisterCommand(host.Command{Name: "CUSTOM.DEL", Arity: 1, Handler: m.cmdDel})
	rt.RegisterCommand(host.Command{Name: "CUSTOM.EXISTS", Arity: 1, Handler: m.cmdExists})
	rt.RegisterCommand(host.Command{Name: "CUSTOM.KEYS", Arity: 0, Handler: m.cmdKeys})

	m.exportAPI(rt)
	return nil
}

func (m *Module) cmdSet(_ context.Context, args []string) (host.Reply, error) {
	if err := m.store.Set(args[0], args[1]); err != nil {
		return host.Nil(), err
	}
	m.metrics.SetStoreKeys(m.store.Len())
	return host.SimpleString("OK"), nil
}

func (m *Module) cmdGet(_ context.Context, args []string) (host.Reply, error) {
	v, ok, err := m.store.Get(args[0])
	if err != nil {
		return host.Nil(), err
	}
	if !ok {
		return host.Nil(), nil
	}
	return host.Bulk(v), nil
}

func (m *Module) cmdDel(_ context.Context, args []string) (host.Reply, error) {
	removed, err := m.store.Del(args[0])
	if err != nil {
		return host.Nil(), err
	}
	m.metrics.SetStoreKeys(m.store.Len())
	if removed {
		return host.Integer(1), nil
	}
	return host.Integer(0), nil
}

func (m *Module) cmdExists(_ context.Context, args []string) (host.Reply, error) {
	ok, err := m.store.Exists(args[0])
	if err != nil {
		return host.Nil(), err
	}
	if ok {
		return host.Integer(1), nil
	}
	return host.Integer(0), nil
}

func (m *Module) cmdKeys(_ context.Context, _ []string) (host.Reply, error) {
	keys, err := m.store.Keys()
	if err != nil {
		return host.Nil(), err
	}
	elems := make([]host.Reply, 0, len(keys))
	for _, k := range keys {
		elems = append(elems, host.Bulk(k))
	}
	return host.Array(elems), nil
}
