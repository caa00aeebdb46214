package scanner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/digimosa/concurrent-text-search/internal/config"
	"github.com/digimosa/concurrent-text-search/internal/ipc"
	"github.com/digimosa/concurrent-text-search/internal/models"
	"github.com/digimosa/concurrent-text-search/internal/reporting"
	"github.com/digimosa/concurrent-text-search/internal/supervisor"
)

// ChannelIOError is fatal to the session. The coordinator returns it
// immediately and leaves the workers un-reaped.
type ChannelIOError struct {
	WorkerID int
	Op       string
	Err      error
}

func (e *ChannelIOError) Error() string {
	return fmt.Sprintf("worker %d: %s: %v", e.WorkerID, e.Op, e.Err)
}

func (e *ChannelIOError) Unwrap() error { return e.Err }

// Coordinator reads queries, broadcasts them to the worker pool, and prints
// one summary per round until the operator ends the session.
type Coordinator struct {
	cfg     *config.Config
	sup     *supervisor.Supervisor
	in      io.Reader
	report  *reporting.Reporter
	handles []*supervisor.Handle
}

func NewCoordinator(cfg *config.Config, sup *supervisor.Supervisor, in io.Reader, out io.Writer) *Coordinator {
	return &Coordinator{
		cfg:    cfg,
		sup:    sup,
		in:     in,
		report: reporting.NewReporter(out),
	}
}

// Start enumerates the root directory and spawns one worker per file.
func (c *Coordinator) Start() error {
	paths, err := ListFiles(c.cfg.RootPath)
	if err != nil {
		return err
	}

	handles, err := c.sup.CreateWorkerPool(paths)
	if err != nil {
		return err
	}
	c.handles = handles

	for _, h := range handles {
		c.report.Assignment(h.ID, h.Assignment.Path)
	}
	return nil
}

// Handles returns the workers in assignment order.
func (c *Coordinator) Handles() []*supervisor.Handle { return c.handles }

// Run is the round loop. It returns nil after a clean shutdown, which
// happens on an invalid line, end of input, or cancellation of ctx.
func (c *Coordinator) Run(ctx context.Context) error {
	quit := make(chan struct{})
	defer close(quit)
	lines := readLines(c.in, quit)

	round := 0
	for {
		c.report.Prompt(c.cfg.Prompt)

		var line string
		var ok bool
		select {
		case line, ok = <-lines:
		case <-ctx.Done():
			if c.cfg.Verbose {
				log.Printf("[SESSION] %v, shutting down", ctx.Err())
			}
		}

		query, valid := models.ParseQuery(line)
		if !ok || !valid {
			return c.Shutdown()
		}

		round++
		if c.cfg.Verbose {
			log.Printf("[ROUND %d] broadcasting %q to %d workers", round, query, len(c.handles))
		}

		if err := c.broadcast(query); err != nil {
			return err
		}

		summary, err := c.collect(query)
		if err != nil {
			return err
		}
		if err := c.report.Summary(summary); err != nil {
			return err
		}
	}
}

func (c *Coordinator) broadcast(q models.SearchQuery) error {
	for _, h := range c.handles {
		if err := h.Commands.Send(string(q), ipc.MaxQueryFrame); err != nil {
			return &ChannelIOError{WorkerID: h.ID, Op: "write query", Err: err}
		}
	}
	return nil
}

// Shutdown signals every worker, then reaps all of them. Reaping waits as
// long as it takes; a worker that never exits stalls it.
func (c *Coordinator) Shutdown() error {
	for _, h := range c.handles {
		c.sup.Terminate(h)
	}

	reaped := 0
	for range c.handles {
		exit, err := c.sup.Reap(context.Background())
		if err != nil {
			return err
		}
		c.report.Exit(exit)
		reaped++
	}
	c.sup.Close()

	if reaped == len(c.handles) {
		c.report.AllExited()
	}
	return nil
}

// readLines feeds input lines to the round loop. Only the trailing '\n' is
// removed. A final line without a newline is still delivered; after that, or
// on a read error, the channel is closed.
func readLines(in io.Reader, quit <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		br := bufio.NewReader(in)
		for {
			line, err := br.ReadString('\n')
			if err != nil && line == "" {
				return
			}
			select {
			case lines <- strings.TrimSuffix(line, "\n"):
			case <-quit:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}
