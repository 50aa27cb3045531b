// Package gotest feeds the output of "go test -json" to a framework.TestLogger, so that a run
// of ordinary Go tests can be summarized like any other test run.
package gotest

import "time"

// Event is one line of "go test -json" output.
type Event struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"` // start, run, pause, cont, pass, fail, skip, output, bench
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

const (
	actionRun    = "run"
	actionPass   = "pass"
	actionFail   = "fail"
	actionSkip   = "skip"
	actionOutput = "output"
)

const timeoutPanicText = "panic: test timed out"
