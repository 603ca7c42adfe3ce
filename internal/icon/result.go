package icon

import (
	"fmt"
	"time"
)

// Result is the outcome of generating one icon size.
type Result struct {
	Size   int
	Path   string
	Bytes  int
	SHA256 string
	Err    error
}

// OK reports whether the icon was written.
func (r Result) OK() bool { return r.Err == nil }

// Run collects the results of one generator invocation.
type Run struct {
	Time      time.Time
	Variant   string
	OutputDir string
	Results   []Result
}

// Failed returns the number of sizes that could not be generated.
func (r Run) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Summary returns a one-line description of the run, suitable for
// notifications.
func (r Run) Summary() string {
	ok := len(r.Results) - r.Failed()
	s := fmt.Sprintf("exticons: %d/%d %s icons written to %s", ok, len(r.Results), r.Variant, r.OutputDir)
	if f := r.Failed(); f > 0 {
		s += fmt.Sprintf(" (%d failed)", f)
	}
	return s
}
