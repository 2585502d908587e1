package storeapi

// Version is the exported API revision. Consumers refuse to bind a
// provider reporting a different major revision.
const Version int32 = 1

// Exported symbol names.
const (
	SymSet     = "store_set"
	SymGet     = "store_get"
	SymDel     = "store_del"
	SymExists  = "store_exists"
	SymKeys    = "store_keys"
	SymRelease = "store_release"
	SymVersion = "store_api_version"
)

// Status codes returned across the boundary. Errors never cross as
// anything richer than these.
const (
	// StatusOK: the operation succeeded. For del/exists this means the
	// mapping existed.
	StatusOK int32 = 0
	// StatusNotFound: no mapping under the requested key.
	StatusNotFound int32 = 1
	// StatusCorrupted: the store is poisoned; no call will ever succeed
	// again in this process.
	StatusCorrupted int32 = 2
)

// Function signatures of the exported symbols. Buffers returned by GetFunc
// and KeysFunc are owned by the caller until passed to ReleaseFunc.
type (
	// SetFunc stores value under key.
	SetFunc func(key, value []byte) int32

	// GetFunc returns the value under key as an owned buffer.
	// The buffer is nil when status != StatusOK.
	GetFunc func(key []byte) ([]byte, int32)

	// DelFunc removes the mapping under key.
	DelFunc func(key []byte) int32

	// ExistsFunc reports whether a mapping exists under key.
	ExistsFunc func(key []byte) int32

	// KeysFunc returns all keys packed into one owned buffer
	// (see PackStrings).
	KeysFunc func() ([]byte, int32)

	// ReleaseFunc returns an owned buffer to the provider.
	ReleaseFunc func(buf []byte)

	// VersionFunc reports the provider's API revision.
	VersionFunc func() int32
)
