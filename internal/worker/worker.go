package worker

import (
	"errors"
	"log"
	"sync/atomic"

	"github.com/digimosa/concurrent-text-search/internal/extractor"
	"github.com/digimosa/concurrent-text-search/internal/ipc"
	"github.com/digimosa/concurrent-text-search/internal/models"
)

type State int32

const (
	StateInit State = iota
	StateReady
	StateSearching
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateReady:
		return "ready"
	case StateSearching:
		return "searching"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Loader reads a file into one buffer. *extractor.Factory implements it.
type Loader interface {
	Load(path string) (string, error)
}

// Worker owns one file's content and answers match-count queries about it.
// The content never leaves the worker; only counts go back over the result
// channel.
type Worker struct {
	id      int
	ends    ipc.WorkerEnds
	stop    <-chan struct{}
	loader  Loader
	verbose bool

	state   atomic.Int32
	path    string
	content string
}

// New binds a worker to its channel ends and its shutdown signal. The file
// path arrives later as the first command frame.
func New(id int, ends ipc.WorkerEnds, stop <-chan struct{}, loader Loader, verbose bool) *Worker {
	return &Worker{
		id:      id,
		ends:    ends,
		stop:    stop,
		loader:  loader,
		verbose: verbose,
	}
}

func (w *Worker) ID() int { return w.id }

func (w *Worker) State() State { return State(w.state.Load()) }

func (w *Worker) setState(s State) { w.state.Store(int32(s)) }

// Run drives the worker until shutdown or a channel failure and returns the
// exit status: StatusOK after a shutdown signal, StatusIOError otherwise.
func (w *Worker) Run() int {
	defer w.setState(StateTerminated)
	// the worker only closes the ends it owns
	defer w.ends.Results.Close()
	defer w.ends.Commands.Close()

	path, err := w.ends.Commands.Recv(w.stop)
	if err != nil {
		return w.exit("read path", err)
	}
	w.load(path)

	for {
		w.setState(StateReady)
		query, err := w.ends.Commands.Recv(w.stop)
		if err != nil {
			return w.exit("read query", err)
		}

		w.setState(StateSearching)
		count := w.search(query)

		if err := w.ends.Results.Send(count, w.stop); err != nil {
			return w.exit("write result", err)
		}
	}
}

func (w *Worker) load(path string) {
	w.path = path
	content, err := w.loader.Load(path)
	if err != nil {
		// unreadable files are searched as empty
		if w.verbose {
			log.Printf("[WORKER %d] %s: %v", w.id, path, err)
		}
		content = ""
	}
	w.content = content

	if w.verbose {
		log.Printf("[WORKER %d] loaded %d bytes from %s", w.id, len(w.content), w.path)
	}
}

func (w *Worker) search(query string) int {
	count, err := extractor.CountMatches(query, w.content)
	if err != nil {
		// unreachable through the coordinator's letters-and-spaces filter
		log.Printf("[WORKER %d] bad pattern %q: %v", w.id, query, err)
		return 0
	}
	if w.verbose {
		log.Printf("[WORKER %d] %q: %d matches in %s", w.id, query, count, w.path)
	}
	return count
}

func (w *Worker) exit(op string, err error) int {
	if errors.Is(err, ipc.ErrCancelled) {
		if w.verbose {
			log.Printf("[WORKER %d] shutdown signal received", w.id)
		}
		return models.StatusOK
	}
	log.Printf("[ERROR] worker %d: %s: %v", w.id, op, err)
	return models.StatusIOError
}
