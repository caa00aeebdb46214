// Package ipc implements the coordinator/worker channels. Each channel is a
// one-way stream of byte frames with exactly one writer end and one reader
// end. Either end can be closed by its owner:
//
//   - closing the writer lets the reader drain what is buffered, then every
//     read fails with ErrClosed (end of stream);
//   - closing the reader makes every pending and future write fail with
//     ErrClosed (broken pipe).
package ipc

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned on a read from a drained stream whose writer
	// closed, and on a write to a stream whose reader closed.
	ErrClosed = errors.New("ipc: channel closed")

	// ErrCancelled is returned when a blocked read or write is interrupted
	// by the caller's cancellation channel.
	ErrCancelled = errors.New("ipc: operation cancelled")

	// ErrMalformedFrame is returned when a frame cannot be decoded.
	ErrMalformedFrame = errors.New("ipc: malformed frame")
)

// frameBuffer is how many frames a stream holds before a write blocks.
// One outstanding frame per direction is all the protocol ever needs.
const frameBuffer = 1

type pipe struct {
	frames     chan []byte
	readerGone chan struct{}

	writerOnce sync.Once
	readerOnce sync.Once
	mu         sync.Mutex
	writerDone bool
}

func newPipe() *pipe {
	return &pipe{
		frames:     make(chan []byte, frameBuffer),
		readerGone: make(chan struct{}),
	}
}

func (p *pipe) write(frame []byte, cancel <-chan struct{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writerDone {
		return ErrClosed
	}

	select {
	case <-p.readerGone:
		return ErrClosed
	case <-cancel:
		return ErrCancelled
	default:
	}

	select {
	case p.frames <- frame:
		return nil
	case <-p.readerGone:
		return ErrClosed
	case <-cancel:
		return ErrCancelled
	}
}

func (p *pipe) read(cancel <-chan struct{}) ([]byte, error) {
	// cancellation wins over a frame that is already buffered
	select {
	case <-cancel:
		return nil, ErrCancelled
	default:
	}

	select {
	case frame, ok := <-p.frames:
		if !ok {
			return nil, ErrClosed
		}
		return frame, nil
	case <-cancel:
		return nil, ErrCancelled
	}
}

// closeWriter waits for an in-flight write (if any) to finish, so it must
// only be called by the goroutine that owns the writer end.
func (p *pipe) closeWriter() {
	p.writerOnce.Do(func() {
		p.mu.Lock()
		p.writerDone = true
		close(p.frames)
		p.mu.Unlock()
	})
}

func (p *pipe) closeReader() {
	p.readerOnce.Do(func() { close(p.readerGone) })
}
