package ipc

// CommandWriter is the coordinator's end of a command channel
type CommandWriter struct{ p *pipe }

// CommandReader is the worker's end of a command channel
type CommandReader struct{ p *pipe }

// ResultWriter is the worker's end of a result channel
type ResultWriter struct{ p *pipe }

// ResultReader is the coordinator's end of a result channel
type ResultReader struct{ p *pipe }

// CoordinatorEnds are kept by the coordinator after a worker is spawned.
type CoordinatorEnds struct {
	Commands *CommandWriter
	Results  *ResultReader
}

// WorkerEnds are handed to the worker.
type WorkerEnds struct {
	Commands *CommandReader
	Results  *ResultWriter
}

// NewChannelPair creates the command and result channels for one worker.
func NewChannelPair() (CoordinatorEnds, WorkerEnds) {
	cmd, res := newPipe(), newPipe()
	return CoordinatorEnds{
			Commands: &CommandWriter{p: cmd},
			Results:  &ResultReader{p: res},
		}, WorkerEnds{
			Commands: &CommandReader{p: cmd},
			Results:  &ResultWriter{p: res},
		}
}

// Send frames payload with the given limit and blocks until the channel has
// room or the worker has closed its end.
func (w *CommandWriter) Send(payload string, limit int) error {
	return w.p.write(EncodeString(payload, limit), nil)
}

func (w *CommandWriter) Close() { w.p.closeWriter() }

// Recv blocks for the next frame. A close of cancel interrupts the wait with
// ErrCancelled.
func (r *CommandReader) Recv(cancel <-chan struct{}) (string, error) {
	frame, err := r.p.read(cancel)
	if err != nil {
		return "", err
	}
	return DecodeString(frame)
}

func (r *CommandReader) Close() { r.p.closeReader() }

func (w *ResultWriter) Send(count int, cancel <-chan struct{}) error {
	return w.p.write(EncodeCount(count), cancel)
}

func (w *ResultWriter) Close() { w.p.closeWriter() }

// Recv blocks until the worker sends a count or closes its end.
func (r *ResultReader) Recv() (int, error) {
	frame, err := r.p.read(nil)
	if err != nil {
		return 0, err
	}
	return DecodeCount(frame)
}

// Frames exposes the underlying stream so several result channels can be
// waited on at once. Decode received frames with DecodeCount; a receive that
// reports !ok means ErrClosed.
func (r *ResultReader) Frames() <-chan []byte { return r.p.frames }

func (r *ResultReader) Close() { r.p.closeReader() }
