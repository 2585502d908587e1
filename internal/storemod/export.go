package storemod

import (
	"sync"

	"github.com/modware/sesskv/internal/host"
	"github.com/modware/sesskv/internal/storage/memory"
	"github.com/modware/sesskv/internal/storeapi"
)

// exportAPI publishes the store API symbols. The signatures are part of
// the frozen storeapi contract; only status codes and buffers cross here.
func (m *Module) exportAPI(rt *host.Runtime) {
	rt.ExportSymbol(storeapi.SymSet, storeapi.SetFunc(m.apiSet))
	rt.ExportSymbol(storeapi.SymGet, storeapi.GetFunc(m.apiGet))
	rt.ExportSymbol(storeapi.SymDel, storeapi.DelFunc(m.apiDel))
	rt.ExportSymbol(storeapi.SymExists, storeapi.ExistsFunc(m.apiExists))
	rt.ExportSymbol(storeapi.SymKeys, storeapi.KeysFunc(m.apiKeys))
	rt.ExportSymbol(storeapi.SymRelease, storeapi.ReleaseFunc(m.apiRelease))
	rt.ExportSymbol(storeapi.SymVersion, storeapi.VersionFunc(func() int32 {
		return storeapi.Version
	}))
}

func statusFromErr(err error) int32 {
	if err != nil {
		return storeapi.StatusCorrupted
	}
	return storeapi.StatusOK
}

func (m *Module) apiSet(key, value []byte) int32 {
	err := m.store.Set(string(key), string(value))
	if err == nil {
		m.metrics.SetStoreKeys(m.store.Len())
	}
	return statusFromErr(err)
}

func (m *Module) apiGet(key []byte) ([]byte, int32) {
	v, ok, err := m.store.Get(string(key))
	if err != nil {
		return nil, storeapi.StatusCorrupted
	}
	if !ok {
		return nil, storeapi.StatusNotFound
	}
	return m.buffers.lease([]byte(v)), storeapi.StatusOK
}

func (m *Module) apiDel(key []byte) int32 {
	removed, err := m.store.Del(string(key))
	if err != nil {
		return storeapi.StatusCorrupted
	}
	m.metrics.SetStoreKeys(m.store.Len())
	if !removed {
		return storeapi.StatusNotFound
	}
	return storeapi.StatusOK
}

func (m *Module) apiExists(key []byte) int32 {
	ok, err := m.store.Exists(string(key))
	if err != nil {
		return storeapi.StatusCorrupted
	}
	if !ok {
		return storeapi.StatusNotFound
	}
	return storeapi.StatusOK
}

func (m *Module) apiKeys() ([]byte, int32) {
	keys, err := m.store.Keys()
	if err != nil {
		return nil, storeapi.StatusCorrupted
	}
	return m.buffers.lease(storeapi.PackStrings(keys)), storeapi.StatusOK
}

func (m *Module) apiRelease(buf []byte) {
	m.buffers.give(buf)
}

// Store returns the wrapped store. Used by process wiring that needs the
// store itself (gauges, diagnostics).
func (m *Module) Store() *memory.Store { return m.store }

// bufferPool hands out owned copies of values crossing the exported API
// boundary. Callers return buffers through apiRelease; ownership is theirs
// in between.
type bufferPool struct {
	pool sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() any {
				b := make([]byte, 0, 256)
				return &b
			},
		},
	}
}

// lease copies src into a pooled buffer and transfers ownership to the
// caller.
func (p *bufferPool) lease(src []byte) []byte {
	bp := p.pool.Get().(*[]byte)
	b := *bp
	if cap(b) < len(src) {
		b = make([]byte, 0, len(src))
	}
	b = b[:len(src)]
	copy(b, src)
	return b
}

// give returns a leased buffer to the pool. Releasing nil is a no-op.
func (p *bufferPool) give(buf []byte) {
	if buf == nil {
		return
	}
	buf = buf[:0]
	p.pool.Put(&buf)
}
