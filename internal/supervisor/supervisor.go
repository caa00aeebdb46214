package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/digimosa/concurrent-text-search/internal/config"
	"github.com/digimosa/concurrent-text-search/internal/ipc"
	"github.com/digimosa/concurrent-text-search/internal/models"
	"github.com/digimosa/concurrent-text-search/internal/worker"
)

var (
	ErrEmptyDirectory = errors.New("no files in directory")
	ErrWorkerLimit    = errors.New("worker limit reached")
	ErrPoolExists     = errors.New("worker pool already created")

	// ErrNoWorkers is returned by Reap when every spawned worker has
	// already been reaped.
	ErrNoWorkers = errors.New("no workers left to reap")
)

// SpawnError reports which assignment could not be started. By the time it
// is returned every worker spawned before it has been stopped and reaped.
type SpawnError struct {
	Index int
	Path  string
	Err   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn worker %d for %q: %v", e.Index, e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Handle is the coordinator's view of one worker: its identity, its
// assignment, the coordinator-side channel ends, and its shutdown trigger.
type Handle struct {
	ID         int
	Assignment models.FileAssignment
	Commands   *ipc.CommandWriter
	Results    *ipc.ResultReader

	stop     chan struct{}
	stopOnce sync.Once
}

// Supervisor spawns one worker per file and reaps them at shutdown
type Supervisor struct {
	cfg    *config.Config
	loader worker.Loader

	mu      sync.Mutex
	handles []*Handle
	exits   chan models.WorkerExit
	nextID  int
	spawned int
	reaped  int
}

func New(cfg *config.Config, loader worker.Loader) *Supervisor {
	return &Supervisor{
		cfg:    cfg,
		loader: loader,
	}
}

// CreateWorkerPool starts a worker for every path, in order, and hands each
// worker its path over the command channel. Creation is all or nothing.
func (s *Supervisor) CreateWorkerPool(paths []string) ([]*Handle, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyDirectory
	}

	s.mu.Lock()
	if s.exits != nil {
		s.mu.Unlock()
		return nil, ErrPoolExists
	}
	s.exits = make(chan models.WorkerExit, len(paths))
	s.mu.Unlock()

	for i, path := range paths {
		if err := s.spawn(models.FileAssignment{Index: i, Path: path}); err != nil {
			log.Printf("[ERROR] spawn failed at %d/%d: %v", i+1, len(paths), err)
			s.teardown()
			return nil, &SpawnError{Index: i, Path: path, Err: err}
		}
	}

	return s.Handles(), nil
}

func (s *Supervisor) spawn(a models.FileAssignment) error {
	s.mu.Lock()
	if s.cfg.MaxWorkers > 0 && s.spawned >= s.cfg.MaxWorkers {
		s.mu.Unlock()
		return fmt.Errorf("%w (%d)", ErrWorkerLimit, s.cfg.MaxWorkers)
	}
	s.nextID++
	coord, ends := ipc.NewChannelPair()
	h := &Handle{
		ID:         s.nextID,
		Assignment: a,
		Commands:   coord.Commands,
		Results:    coord.Results,
		stop:       make(chan struct{}),
	}
	s.handles = append(s.handles, h)
	s.spawned++
	s.mu.Unlock()

	// the worker gets the opposite ends; nothing here keeps a reference to them
	w := worker.New(h.ID, ends, h.stop, s.loader, s.cfg.Verbose)
	go func() {
		status := w.Run()
		s.exits <- models.WorkerExit{WorkerID: w.ID(), Status: status}
	}()

	if s.cfg.Verbose {
		log.Printf("[SPAWN] worker %d -> %s", h.ID, a.Path)
	}

	if err := h.Commands.Send(a.Path, ipc.MaxPathFrame); err != nil {
		return fmt.Errorf("hand off path: %w", err)
	}
	return nil
}

// teardown stops and reaps whatever a failed CreateWorkerPool left running.
func (s *Supervisor) teardown() {
	handles := s.Handles()
	for _, h := range handles {
		s.Terminate(h)
	}
	for range handles {
		exit, err := s.Reap(context.Background())
		if err != nil {
			break
		}
		if s.cfg.Verbose {
			log.Printf("[REAP] worker %d exited with status %d during teardown", exit.WorkerID, exit.Status)
		}
	}
	s.Close()
}

// Handles returns the spawned workers in assignment order.
func (s *Supervisor) Handles() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Handle, len(s.handles))
	copy(out, s.handles)
	return out
}

// Terminate sends the shutdown signal to one worker. It does not wait: the
// only confirmation is the worker's exit, observed through Reap.
func (s *Supervisor) Terminate(h *Handle) {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Reap blocks until any worker terminates and returns its exit record.
// There is no timeout; ctx only lets the caller give up waiting.
func (s *Supervisor) Reap(ctx context.Context) (models.WorkerExit, error) {
	s.mu.Lock()
	if s.exits == nil || s.reaped >= s.spawned {
		s.mu.Unlock()
		return models.WorkerExit{}, ErrNoWorkers
	}
	s.mu.Unlock()

	select {
	case exit := <-s.exits:
		s.mu.Lock()
		s.reaped++
		s.mu.Unlock()
		return exit, nil
	case <-ctx.Done():
		return models.WorkerExit{}, ctx.Err()
	}
}

// Spawned is the number of workers started so far.
func (s *Supervisor) Spawned() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawned
}

// Running is the number of workers not yet reaped.
func (s *Supervisor) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawned - s.reaped
}

// Close releases the coordinator-side channel ends. Call it after the
// workers have been reaped.
func (s *Supervisor) Close() {
	for _, h := range s.Handles() {
		h.Commands.Close()
		h.Results.Close()
	}
}
