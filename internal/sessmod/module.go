package sessmod

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/modware/sesskv/internal/core/domain"
	"github.com/modware/sesskv/internal/core/service"
	"github.com/modware/sesskv/internal/host"
)

// ModuleName is the name the session module loads under.
const ModuleName = "session_manager"

// Module exposes a SessionRegistry through the SESSION.* commands.
type Module struct {
	registry *service.SessionRegistry
	logger   *slog.Logger
}

// New creates the session module around an existing registry.
func New(registry *service.SessionRegistry, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	return &Module{
		registry: registry,
		logger:   logger.With("module", ModuleName),
	}
}

// Name implements host.Module.
func (m *Module) Name() string { return ModuleName }

// Load implements host.Module.
func (m *Module) Load(rt *host.Runtime) error {
	rt.RegisterCommand(host.Command{Name: "SESSION.CREATE", Arity: 1, Handler: m.cmdCreate})
	rt.RegisterCommand(host.Command{Name: "SESSION.GET", Arity: 1, Handler: m.cmdGet})
	rt.RegisterCommand(host.Command{Name: "SESSION.LIST", Arity: 0, Handler: m.cmdList})
	rt.RegisterCommand(host.Command{Name: "SESSION.ADD_DATA", Arity: 3, Handler: m.cmdAddData})
	rt.RegisterCommand(host.Command{Name: "SESSION.GET_DATA", Arity: 2, Handler: m.cmdGetData})
	rt.RegisterCommand(host.Command{Name: "SESSION.DELETE", Arity: 1, Handler: m.cmdDelete})
	return nil
}

func (m *Module) cmdCreate(ctx context.Context, args []string) (host.Reply, error) {
	resp, err := m.registry.Create(ctx, &service.CreateSessionRequest{UserKey: args[0]})
	if err != nil {
		return host.Nil(), err
	}

	switch resp.Outcome {
	case service.OutcomeExists:
		return host.SimpleString("Session exists: " + resp.Session.ID), nil
	case service.OutcomeRecreated:
		return host.SimpleString("Session recreated: " + resp.Session.ID), nil
	default:
		return host.SimpleString("Session created: " + resp.Session.ID), nil
	}
}

func (m *Module) cmdGet(ctx context.Context, args []string) (host.Reply, error) {
	session, err := m.registry.Get(ctx, &service.GetSessionRequest{SessionID: args[0]})
	if err != nil {
		if domain.IsDomainError(err, domain.ErrSessionNotFound.Code) {
			return host.Nil(), nil
		}
		return host.Nil(), err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return host.Nil(), domain.ErrInternal.WithCause(err)
	}
	return host.Bulk(string(data)), nil
}

func (m *Module) cmdList(ctx context.Context, _ []string) (host.Reply, error) {
	var elems []host.Reply
	for summary := range m.registry.List(ctx) {
		elems = append(elems, host.Bulk(summary))
	}
	return host.Array(elems), nil
}

func (m *Module) cmdAddData(ctx context.Context, args []string) (host.Reply, error) {
	err := m.registry.AddData(ctx, &service.AddDataRequest{
		SessionID: args[0],
		Key:       args[1],
		Value:     args[2],
	})
	if err != nil {
		return host.Nil(), err
	}
	return host.SimpleString("OK"), nil
}

func (m *Module) cmdGetData(ctx context.Context, args []string) (host.Reply, error) {
	v, err := m.registry.GetData(ctx, &service.GetDataRequest{
		SessionID: args[0],
		Key:       args[1],
	})
	if err != nil {
		if domain.IsDomainError(err, domain.ErrDataKeyNotFound.Code) {
			return host.Nil(), nil
		}
		return host.Nil(), err
	}
	return host.Bulk(v), nil
}

func (m *Module) cmdDelete(ctx context.Context, args []string) (host.Reply, error) {
	resp, err := m.registry.Delete(ctx, &service.DeleteSessionRequest{SessionID: args[0]})
	if err != nil {
		return host.Nil(), err
	}
	if resp.Existed {
		return host.Integer(1), nil
	}
	return host.Integer(0), nil
}
