package models

import "regexp"

// FileAssignment binds one worker to one file for the worker's whole lifetime
type FileAssignment struct {
	Index int    // position in the pool, also the collection order
	Path  string // file the worker loads during Init
}

// queryPattern accepts letters and spaces only; anything else ends the session.
var queryPattern = regexp.MustCompile(`^[A-Za-z ]+$`)

// SearchQuery is a validated search term broadcast to every worker in a round
type SearchQuery string

// ParseQuery validates a raw input line. ok is false for the shutdown sentinel.
func ParseQuery(line string) (SearchQuery, bool) {
	if !queryPattern.MatchString(line) {
		return "", false
	}
	return SearchQuery(line), true
}

// WorkerResult is one worker's answer for one round
type WorkerResult struct {
	WorkerID int
	Path     string
	Count    int
}

// SearchSummary aggregates a single round. Rows are kept in collection order.
type SearchSummary struct {
	Query SearchQuery
	Rows  []WorkerResult
	Total int
}

// Add appends a row and keeps Total equal to the sum of all counts.
func (s *SearchSummary) Add(r WorkerResult) {
	s.Rows = append(s.Rows, r)
	s.Total += r.Count
}

// WorkerExit is what the coordinator learns about a worker when it is reaped
type WorkerExit struct {
	WorkerID int
	Status   int
}

// Exit statuses reported by workers.
const (
	StatusOK      = 0
	StatusIOError = 1
)
