package ipc

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Frame limits, including the NUL terminator.
const (
	MaxQueryFrame = 1000
	MaxPathFrame  = 100
)

// CountFrameSize is the width of a result frame: a little-endian int32.
const CountFrameSize = 4

// EncodeString builds a NUL-terminated frame no longer than limit bytes.
// A payload that does not fit is truncated to limit-1 bytes, so the reader
// always sees the same prefix for the same input.
func EncodeString(payload string, limit int) []byte {
	if limit < 1 {
		limit = 1
	}
	n := len(payload)
	if n > limit-1 {
		n = limit - 1
	}
	frame := make([]byte, n+1)
	copy(frame, payload[:n])
	return frame
}

// DecodeString returns the payload up to the first NUL byte.
func DecodeString(frame []byte) (string, error) {
	i := bytes.IndexByte(frame, 0)
	if i < 0 {
		return "", fmt.Errorf("%w: missing terminator in %d byte frame", ErrMalformedFrame, len(frame))
	}
	return string(frame[:i]), nil
}

func EncodeCount(n int) []byte {
	frame := make([]byte, CountFrameSize)
	binary.LittleEndian.PutUint32(frame, uint32(int32(n)))
	return frame
}

func DecodeCount(frame []byte) (int, error) {
	if len(frame) != CountFrameSize {
		return 0, fmt.Errorf("%w: count frame has %d bytes, want %d", ErrMalformedFrame, len(frame), CountFrameSize)
	}
	return int(int32(binary.LittleEndian.Uint32(frame))), nil
}
