package storeapi

import (
	"encoding/binary"
	"fmt"
)

// Multi-string values cross the boundary packed into a single buffer:
// a big-endian uint32 element count, then per element a big-endian uint32
// length followed by the bytes. Both sides of the boundary share this
// codec; the format is part of the frozen contract.

// PackStrings encodes elems into a single buffer.
func PackStrings(elems []string) []byte {
	size := 4
	for _, e := range elems {
		size += 4 + len(e)
	}

	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(elems)))
	for _, e := range elems {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(e)))
		buf = append(buf, e...)
	}
	return buf
}

// UnpackStrings decodes a buffer produced by PackStrings.
func UnpackStrings(buf []byte) ([]string, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("storeapi: packed buffer too short (%d bytes)", len(buf))
	}

	count := binary.BigEndian.Uint32(buf)
	buf = buf[4:]

	out := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(buf) < 4 {
			return nil, fmt.Errorf("storeapi: truncated element header at %d", i)
		}
		n := binary.BigEndian.Uint32(buf)
		buf = buf[4:]
		if uint32(len(buf)) < n {
			return nil, fmt.Errorf("storeapi: truncated element body at %d", i)
		}
		out = append(out, string(buf[:n]))
		buf = buf[n:]
	}

	if len(buf) != 0 {
		return nil, fmt.Errorf("storeapi: %d trailing bytes after last element", len(buf))
	}
	return out, nil
}
