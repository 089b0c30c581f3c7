package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-pomcp/pkg/pomcp"
)

// display wraps a pomcp.Simulator's optional Displayer capability with a
// termenv color profile, degrading gracefully to plain text when stdout
// isn't a TTY (e.g. piped into a file alongside --outputfile).
type display struct {
	out     io.Writer
	profile *termenv.Output
}

func newDisplay(w io.Writer) *display {
	return &display{out: w, profile: termenv.NewOutput(w)}
}

func (d *display) header(title string) {
	styled := d.profile.String(title).Bold().Foreground(d.profile.Color("#5FAFFF"))
	fmt.Fprintln(d.out, styled)
}

// decision renders one decision step; if sim implements pomcp.Displayer its
// DisplayAction dump is used for the action, since state isn't threaded
// through the CLI's reporting loop. Observation and reward are always
// printed in the generic form — DisplayObservation needs the post-step
// state, which only the search loop itself holds.
func (d *display) decision(sim pomcp.Simulator, action, observation int, reward float64) {
	if disp, ok := sim.(pomcp.Displayer); ok {
		disp.DisplayAction(d.out, action)
	}
	fmt.Fprintf(d.out, "observation=%d reward=%g\n", observation, reward)
}

// belief renders sim's belief dump, if it implements pomcp.Displayer.
func (d *display) belief(sim pomcp.Simulator, b *pomcp.Belief) {
	if disp, ok := sim.(pomcp.Displayer); ok {
		disp.DisplayBelief(d.out, b)
	}
}

func (d *display) summary(mean, stderr float64, n int) {
	line := fmt.Sprintf("mean=%g stderr=%g n=%d", mean, stderr, n)
	styled := d.profile.String(line).Foreground(d.profile.Color("#8AE234"))
	fmt.Fprintln(d.out, styled)
}

var stdoutDisplay = newDisplay(os.Stdout)
