package commands

import (
	"fmt"
	"io"

	"github.com/opsdd/ddx/internal/tracker"
)

// newProgressReporter renders tracker progress reports as console lines on
// the given writer (stderr, so it never mixes with printer output).
func newProgressReporter(w io.Writer) tracker.ReportFunc {
	return func(p tracker.Progress) {
		if p.Fraction >= 1 {
			fmt.Fprintf(w, "[100%%] %s\n", p.StepLabel)
			return
		}
		fmt.Fprintf(w, "[%3.0f%%] %s (%s)\n", p.Fraction*100, p.StepLabel, p.Remaining)
	}
}
