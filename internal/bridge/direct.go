package bridge

import (
	"context"
	"fmt"

	"github.com/modware/sesskv/internal/core/domain"
	"github.com/modware/sesskv/internal/host"
	"github.com/modware/sesskv/internal/storeapi"
	"github.com/modware/sesskv/internal/telemetry/metric"
)

// directClient calls the store module through its exported symbols.
// Buffers handed over by the provider are released before returning, so
// ownership never leaks past a single call.
type directClient struct {
	set     storeapi.SetFunc
	get     storeapi.GetFunc
	del     storeapi.DelFunc
	exists  storeapi.ExistsFunc
	keys    storeapi.KeysFunc
	release storeapi.ReleaseFunc
	metrics *metric.Metrics
}

// bindDirect resolves and type-checks every exported symbol, including the
// version marker. Any missing or incompatible symbol fails the whole bind;
// a half-bound handle would be worse than the fallback.
func bindDirect(rt *host.Runtime, metrics *metric.Metrics) (*directClient, error) {
	version, err := lookupSymbol[storeapi.VersionFunc](rt, storeapi.SymVersion)
	if err != nil {
		return nil, err
	}
	if v := version(); v != storeapi.Version {
		return nil, fmt.Errorf("store api version %d, want %d", v, storeapi.Version)
	}

	c := &directClient{metrics: metrics}
	if c.set, err = lookupSymbol[storeapi.SetFunc](rt, storeapi.SymSet); err != nil {
		return nil, err
	}
	if c.get, err = lookupSymbol[storeapi.GetFunc](rt, storeapi.SymGet); err != nil {
		return nil, err
	}
	if c.del, err = lookupSymbol[storeapi.DelFunc](rt, storeapi.SymDel); err != nil {
		return nil, err
	}
	if c.exists, err = lookupSymbol[storeapi.ExistsFunc](rt, storeapi.SymExists); err != nil {
		return nil, err
	}
	if c.keys, err = lookupSymbol[storeapi.KeysFunc](rt, storeapi.SymKeys); err != nil {
		return nil, err
	}
	if c.release, err = lookupSymbol[storeapi.ReleaseFunc](rt, storeapi.SymRelease); err != nil {
		return nil, err
	}
	return c, nil
}

func lookupSymbol[T any](rt *host.Runtime, name string) (T, error) {
	var zero T
	v, ok := rt.LookupSymbol(name)
	if !ok {
		return zero, fmt.Errorf("symbol %q not found", name)
	}
	fn, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("symbol %q has incompatible type %T", name, v)
	}
	return fn, nil
}

func (c *directClient) Set(_ context.Context, key, value string) error {
	c.metrics.IncBridgeCall("direct")
	if st := c.set([]byte(key), []byte(value)); st != storeapi.StatusOK {
		return statusErr(st)
	}
	return nil
}

func (c *directClient) Get(_ context.Context, key string) (string, bool, error) {
	c.metrics.IncBridgeCall("direct")
	buf, st := c.get([]byte(key))
	switch st {
	case storeapi.StatusOK:
		v := string(buf)
		c.release(buf)
		return v, true, nil
	case storeapi.StatusNotFound:
		return "", false, nil
	default:
		return "", false, statusErr(st)
	}
}

func (c *directClient) Del(_ context.Context, key string) (bool, error) {
	c.metrics.IncBridgeCall("direct")
	switch st := c.del([]byte(key)); st {
	case storeapi.StatusOK:
		return true, nil
	case storeapi.StatusNotFound:
		return false, nil
	default:
		return false, statusErr(st)
	}
}

func (c *directClient) Exists(_ context.Context, key string) (bool, error) {
	c.metrics.IncBridgeCall("direct")
	switch st := c.exists([]byte(key)); st {
	case storeapi.StatusOK:
		return true, nil
	case storeapi.StatusNotFound:
		return false, nil
	default:
		return false, statusErr(st)
	}
}

func (c *directClient) Keys(_ context.Context) ([]string, error) {
	c.metrics.IncBridgeCall("direct")
	buf, st := c.keys()
	if st != storeapi.StatusOK {
		return nil, statusErr(st)
	}
	defer c.release(buf)

	keys, err := storeapi.UnpackStrings(buf)
	if err != nil {
		return nil, domain.ErrStoreUnavailable.WithCause(err)
	}
	return keys, nil
}

// statusErr maps a non-OK status back to the domain error the store would
// have returned in-process.
func statusErr(st int32) error {
	if st == storeapi.StatusCorrupted {
		return domain.ErrStoreCorrupted
	}
	return domain.ErrStoreUnavailable.WithDetails(fmt.Sprintf("unexpected status %d", st))
}
