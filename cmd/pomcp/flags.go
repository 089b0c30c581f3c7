package main

import (
	"flag"
	"fmt"
)

// Flags holds the parsed CLI surface. Grounded on the one pack repo with a
// real flag.* parser (risk-agent's main2.go) rather than the teacher's own
// examples/*/main.go, which hardcode their parameters.
type Flags struct {
	Problem     string
	Size        int
	Number      int
	Runs        int
	Timeout     int
	Simulations int
	MinDoubles  int
	MaxDoubles  int

	UseTransforms bool
	UseRave       bool
	UsePGS        bool
	ReuseTree     bool

	OutputFile string
	ChartFile  string
}

// parseFlags parses args (normally os.Args[1:]) into a Flags, returning an
// error for any malformed value — the caller maps that to exit code 1.
func parseFlags(args []string) (*Flags, error) {
	fs := flag.NewFlagSet("pomcp", flag.ContinueOnError)

	f := &Flags{}
	fs.StringVar(&f.Problem, "problem", "bandit", "built-in domain to run (bandit, rockline)")
	fs.IntVar(&f.Size, "size", 5, "domain-defined size parameter")
	fs.IntVar(&f.Number, "number", 1, "domain-defined count parameter (e.g. number of rocks)")
	fs.IntVar(&f.Runs, "runs", 10, "number of independent experiments per simulation budget")
	fs.IntVar(&f.Timeout, "timeout", -1, "wall-clock safety stop per decision, in seconds (-1 disables)")
	fs.IntVar(&f.Simulations, "simulations", 0, "fixed per-decision simulation budget; if set, disables the mindoubles/maxdoubles sweep")
	fs.IntVar(&f.MinDoubles, "mindoubles", 6, "minimum simulation budget, expressed as log2(n), used when -simulations is unset")
	fs.IntVar(&f.MaxDoubles, "maxdoubles", 10, "maximum simulation budget, expressed as log2(n), used when -simulations is unset")
	fs.BoolVar(&f.UseTransforms, "usetransforms", false, "enable particle invigoration via LocalMove")
	fs.BoolVar(&f.UseRave, "userave", false, "enable RAVE/AMAF backup")
	fs.BoolVar(&f.UsePGS, "usepgs", false, "enable the Preferred Generator Search rollout variant")
	fs.BoolVar(&f.ReuseTree, "reusetree", false, "reuse the surviving subtree across Update calls")
	fs.StringVar(&f.OutputFile, "outputfile", "pomcp_results.csv", "CSV results file")
	fs.StringVar(&f.ChartFile, "chart", "", "optional HTML convergence chart path; empty disables it")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if f.Simulations < 0 {
		return nil, fmt.Errorf("simulations must be positive, got %d", f.Simulations)
	}
	if f.Simulations == 0 {
		if f.MinDoubles < 0 || f.MaxDoubles < f.MinDoubles {
			return nil, fmt.Errorf("invalid doubles range [%d, %d]", f.MinDoubles, f.MaxDoubles)
		}
	}
	if f.Runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", f.Runs)
	}

	return f, nil
}
