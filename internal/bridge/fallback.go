package bridge

import (
	"context"
	"fmt"

	"github.com/modware/sesskv/internal/core/domain"
	"github.com/modware/sesskv/internal/host"
	"github.com/modware/sesskv/internal/telemetry/metric"
)

// fallbackClient performs store operations by issuing the equivalent
// CUSTOM.* command through the host's generic dispatch interface and
// mapping the reply kinds back onto the StoreClient contract.
type fallbackClient struct {
	caller  host.Caller
	metrics *metric.Metrics
}

func newFallback(caller host.Caller, metrics *metric.Metrics) *fallbackClient {
	return &fallbackClient{caller: caller, metrics: metrics}
}

// call wraps dispatch errors. A poisoned store passes through unchanged so
// callers can still tell corruption from unavailability; everything else
// (store module not loaded, malformed reply) becomes ErrStoreUnavailable.
func (c *fallbackClient) call(ctx context.Context, name string, args ...string) (host.Reply, error) {
	c.metrics.IncBridgeCall("fallback")
	reply, err := c.caller.Call(ctx, name, args...)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrStoreCorrupted.Code) {
			return host.Nil(), err
		}
		return host.Nil(), domain.ErrStoreUnavailable.WithCause(err)
	}
	return reply, nil
}

func (c *fallbackClient) Set(ctx context.Context, key, value string) error {
	reply, err := c.call(ctx, "CUSTOM.SET", key, value)
	if err != nil {
		return err
	}
	if reply.Kind != host.ReplySimple {
		return badReply("CUSTOM.SET", reply)
	}
	return nil
}

func (c *fallbackClient) Get(ctx context.Context, key string) (string, bool, error) {
	reply, err := c.call(ctx, "CUSTOM.GET", key)
	if err != nil {
		return "", false, err
	}
	switch reply.Kind {
	case host.ReplyNil:
		return "", false, nil
	case host.ReplyBulk:
		return reply.Str, true, nil
	default:
		return "", false, badReply("CUSTOM.GET", reply)
	}
}

func (c *fallbackClient) Del(ctx context.Context, key string) (bool, error) {
	reply, err := c.call(ctx, "CUSTOM.DEL", key)
	if err != nil {
		return false, err
	}
	if reply.Kind != host.ReplyInteger {
		return false, badReply("CUSTOM.DEL", reply)
	}
	return reply.Int == 1, nil
}

func (c *fallbackClient) Exists(ctx context.Context, key string) (bool, error) {
	reply, err := c.call(ctx, "CUSTOM.EXISTS", key)
	if err != nil {
		return false, err
	}
	if reply.Kind != host.ReplyInteger {
		return false, badReply("CUSTOM.EXISTS", reply)
	}
	return reply.Int == 1, nil
}

func (c *fallbackClient) Keys(ctx context.Context) ([]string, error) {
	reply, err := c.call(ctx, "CUSTOM.KEYS")
	if err != nil {
		return nil, err
	}
	if reply.Kind != host.ReplyArray {
		return nil, badReply("CUSTOM.KEYS", reply)
	}

	keys := make([]string, 0, len(reply.Elems))
	for _, e := range reply.Elems {
		if e.Kind != host.ReplyBulk {
			return nil, badReply("CUSTOM.KEYS", e)
		}
		keys = append(keys, e.Str)
	}
	return keys, nil
}

func badReply(cmd string, reply host.Reply) error {
	return domain.ErrStoreUnavailable.WithDetails(
		fmt.Sprintf("unexpected reply kind %d from %s", reply.Kind, cmd))
}
