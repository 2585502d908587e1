package host

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/modware/sesskv/internal/core/domain"
)

// Handler executes one command invocation. args excludes the command name.
type Handler func(ctx context.Context, args []string) (Reply, error)

// Command describes a registered command.
type Command struct {
	// Name is the full command name ("CUSTOM.SET"). Case-insensitive.
	Name string
	// Arity is the exact argument count, or -1 for variadic.
	Arity int
	// Handler executes the command.
	Handler Handler
}

// Module is a loadable host extension. Load registers the module's commands
// and exported symbols on the runtime. Load order is significant: a module
// that binds another module's symbols must be loaded after it.
type Module interface {
	Name() string
	Load(rt *Runtime) error
}

// Caller issues a command through the generic dispatch path, exactly as an
// external client would. It is the fallback transport between modules.
type Caller interface {
	Call(ctx context.Context, name string, args ...string) (Reply, error)
}

// Runtime is the host's command-registration and dispatch runtime plus the
// shared-symbol table modules publish in-process APIs through.
type Runtime struct {
	mu       sync.RWMutex
	commands map[string]Command
	symbols  map[string]any
	modules  []string
	logger   *slog.Logger
}

// NewRuntime creates an empty runtime.
func NewRuntime(logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runtime{
		commands: make(map[string]Command),
		symbols:  make(map[string]any),
		logger:   logger,
	}
}

// LoadModule loads a module, registering its commands and symbols.
func (rt *Runtime) LoadModule(m Module) error {
	if err := m.Load(rt); err != nil {
		return err
	}
	rt.mu.Lock()
	rt.modules = append(rt.modules, m.Name())
	rt.mu.Unlock()
	rt.logger.Info("module loaded", "module", m.Name())
	return nil
}

// Modules returns the names of loaded modules in load order.
func (rt *Runtime) Modules() []string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	out := make([]string, len(rt.modules))
	copy(out, rt.modules)
	return out
}

// RegisterCommand registers a command handler. Registering the same name
// twice replaces the previous handler.
func (rt *Runtime) RegisterCommand(cmd Command) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.commands[strings.ToUpper(cmd.Name)] = cmd
}

// Call dispatches a command by name. It is used both by the wire-protocol
// front end and by modules calling each other through the fallback path.
func (rt *Runtime) Call(ctx context.Context, name string, args ...string) (Reply, error) {
	rt.mu.RLock()
	cmd, ok := rt.commands[strings.ToUpper(name)]
	rt.mu.RUnlock()

	if !ok {
		return Nil(), domain.ErrUnknownCommand.WithDetails("'" + name + "'")
	}
	if cmd.Arity >= 0 && len(args) != cmd.Arity {
		return Nil(), domain.ErrMissingArgument.WithDetails(
			"wrong number of arguments for '" + cmd.Name + "'")
	}
	return cmd.Handler(ctx, args)
}

// ExportSymbol publishes an in-process API symbol under the given name.
// Published symbols must never change signature once a consumer may have
// bound them.
func (rt *Runtime) ExportSymbol(name string, value any) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.symbols[name] = value
}

// LookupSymbol resolves a published symbol by name. The second return value
// reports whether the symbol is present.
func (rt *Runtime) LookupSymbol(name string) (any, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	v, ok := rt.symbols[name]
	return v, ok
}
