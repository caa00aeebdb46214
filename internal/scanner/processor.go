package scanner

import (
	"reflect"

	"github.com/digimosa/concurrent-text-search/internal/config"
	"github.com/digimosa/concurrent-text-search/internal/ipc"
	"github.com/digimosa/concurrent-text-search/internal/models"
)

func (c *Coordinator) collect(q models.SearchQuery) (models.SearchSummary, error) {
	if c.cfg.Collect == config.CollectUnordered {
		return c.collectUnordered(q)
	}
	return c.collectOrdered(q)
}

// collectOrdered waits on worker 0, then worker 1, and so on, even when a
// later worker answers first. Reports come out in assignment order.
func (c *Coordinator) collectOrdered(q models.SearchQuery) (models.SearchSummary, error) {
	summary := models.SearchSummary{Query: q}
	for _, h := range c.handles {
		n, err := h.Results.Recv()
		if err != nil {
			return summary, &ChannelIOError{WorkerID: h.ID, Op: "read result", Err: err}
		}
		summary.Add(models.WorkerResult{WorkerID: h.ID, Path: h.Assignment.Path, Count: n})
	}
	return summary, nil
}

// collectUnordered takes results as they arrive. Rows follow arrival order.
func (c *Coordinator) collectUnordered(q models.SearchQuery) (models.SearchSummary, error) {
	summary := models.SearchSummary{Query: q}

	cases := make([]reflect.SelectCase, len(c.handles))
	for i, h := range c.handles {
		cases[i] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(h.Results.Frames())}
	}

	for remaining := len(cases); remaining > 0; remaining-- {
		i, v, ok := reflect.Select(cases)
		h := c.handles[i]
		if !ok {
			return summary, &ChannelIOError{WorkerID: h.ID, Op: "read result", Err: ipc.ErrClosed}
		}

		n, err := ipc.DecodeCount(v.Bytes())
		if err != nil {
			return summary, &ChannelIOError{WorkerID: h.ID, Op: "read result", Err: err}
		}
		summary.Add(models.WorkerResult{WorkerID: h.ID, Path: h.Assignment.Path, Count: n})

		// a zero Chan makes reflect.Select skip the case
		cases[i].Chan = reflect.Value{}
	}
	return summary, nil
}
