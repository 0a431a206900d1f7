package export

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
)

// Summary is the one-screen outcome of a run.
type Summary struct {
	Files      int
	InputBytes uint64
	Classes    int
	Members    int
	// Smelly counts classes with at least one issue; Issues counts all issues.
	Smelly  int
	Issues  int
	Elapsed time.Duration
	// Detected reports whether rules were applied.
	Detected bool
}

// WriteSummary writes a short human-readable summary.
func WriteSummary(w io.Writer, s Summary) {
	bold := color.New(color.Bold)

	bold.Fprintf(w, "Measured %s and %s from %s (%s) in %s\n",
		english.Plural(s.Classes, "class", "classes"),
		english.Plural(s.Members, "member", ""),
		english.Plural(s.Files, "file", ""),
		humanize.Bytes(s.InputBytes),
		s.Elapsed.Round(time.Millisecond))

	if !s.Detected {
		return
	}

	if s.Issues == 0 {
		color.New(color.FgGreen).Fprintln(w, "No design smells detected")

		return
	}

	warn := color.New(color.FgYellow)
	if s.Classes > 0 && s.Smelly*2 >= s.Classes {
		warn = color.New(color.FgRed)
	}

	warn.Fprintf(w, "%s in %s of %s\n",
		english.Plural(s.Issues, "issue", ""),
		english.Plural(s.Smelly, "class", "classes"),
		humanize.Comma(int64(s.Classes)))
}
