// Command pomcp runs a batch of POMCP experiments against a built-in
// domain, sweeping the per-decision simulation budget over powers of two
// and writing per-decision and summary results to a CSV-like file.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-pomcp/internal/domains/bandit"
	"github.com/IlikeChooros/go-pomcp/internal/domains/rockline"
	"github.com/IlikeChooros/go-pomcp/pkg/pomcp"
)

const maxDecisionsPerRun = 50

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sim, err := buildDomain(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	results, err := newResultsWriter(flags.OutputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer results.Close()

	stdoutDisplay.header(fmt.Sprintf("pomcp: %s (size=%d number=%d)", flags.Problem, flags.Size, flags.Number))

	budgets := sweepBudgets(flags)

	var chartPoints []budgetMean
	for _, simulations := range budgets {
		var budgetStats pomcp.Statistic

		for run := 0; run < flags.Runs; run++ {
			seed := pomcp.SeedGeneratorFn()
			returns := runExperiment(sim, flags, simulations, run, results)
			budgetStats.Add(returns)
			log.Debug().Int("run", run).Int("simulations", simulations).Int64("seed", seed).Msg("pomcp: experiment complete")
		}

		chartPoints = append(chartPoints, budgetMean{
			Simulations: simulations,
			Mean:        budgetStats.Mean(),
			StdErr:      budgetStats.StdErr(),
		})
		stdoutDisplay.summary(budgetStats.Mean(), budgetStats.StdErr(), budgetStats.Count())
	}

	if flags.ChartFile != "" {
		if err := renderConvergenceChart(flags.ChartFile, flags.Problem, chartPoints); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	return 0
}

// sweepBudgets returns the per-decision simulation budgets to run. A
// positive -simulations pins a single fixed budget; otherwise it expands
// the -mindoubles/-maxdoubles range into powers of two.
func sweepBudgets(f *Flags) []int {
	if f.Simulations > 0 {
		return []int{f.Simulations}
	}
	budgets := make([]int, 0, f.MaxDoubles-f.MinDoubles+1)
	for doubles := f.MinDoubles; doubles <= f.MaxDoubles; doubles++ {
		budgets = append(budgets, 1<<doubles)
	}
	return budgets
}

func buildDomain(f *Flags) (pomcp.Simulator, error) {
	switch f.Problem {
	case "bandit":
		return bandit.New(1.0, -1.0), nil
	case "rockline":
		rockPos := make([]int, f.Number)
		for i := range rockPos {
			rockPos[i] = (i + 1) * f.Size / (f.Number + 1)
		}
		return rockline.New(f.Size, rockPos), nil
	default:
		return nil, fmt.Errorf("unrecognized problem %q", f.Problem)
	}
}

// runExperiment runs one independent episode to completion (or
// maxDecisionsPerRun decisions, whichever comes first), streaming each
// decision to results, and returns the episode's total discounted return.
func runExperiment(sim pomcp.Simulator, f *Flags, simulations int, runID int, results *resultsWriter) float64 {
	cfg := DefaultExperimentConfig(simulations).
		SetUseTransforms(f.UseTransforms).
		SetUseRave(f.UseRave).
		SetUsePGS(f.UsePGS).
		SetReuseTree(f.ReuseTree)

	engine := pomcp.NewEngine(sim, cfg, pomcp.NewSeededRand())
	defer engine.Close()

	var limits *pomcp.Limits
	if f.Timeout >= 0 {
		limits = pomcp.DefaultLimits().SetMovetime(f.Timeout * 1000).SetCycles(uint32(simulations))
	}

	envRand := pomcp.NewSeededRand()
	totalReturn := 0.0
	discount := 1.0

	for decision := 0; decision < maxDecisionsPerRun; decision++ {
		var action int
		if limits != nil {
			action = engine.SelectActionWithLimits(limits)
		} else {
			action = engine.SelectAction()
		}

		state := engine.SampleRootState()
		observation, reward, terminal := sim.Step(state, action, envRand)
		sim.Free(state)

		discountedReturn := discount * reward
		totalReturn += discountedReturn
		discount *= sim.Discount()

		stdoutDisplay.decision(sim, action, observation, reward)
		stdoutDisplay.belief(sim, engine.RootBelief())
		_ = results.WriteRecord(decisionRecord{
			RunID:            runID,
			DecisionIndex:    decision,
			Simulations:      simulations,
			Action:           action,
			Observation:      observation,
			Reward:           reward,
			DiscountedReturn: discountedReturn,
		})

		engine.Update(action, observation, reward)

		if terminal {
			break
		}
	}

	return totalReturn
}

// DefaultExperimentConfig returns an engine Config for one decision's
// search, given the per-decision simulation budget.
func DefaultExperimentConfig(simulations int) *pomcp.Config {
	return pomcp.DefaultConfig().SetNumSimulations(simulations)
}
