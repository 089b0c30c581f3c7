package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/IlikeChooros/go-pomcp/pkg/pomcp"
)

// decisionRecord is one (run, decision, action, observation, reward,
// discounted_return) tuple, the persisted-output shape.
type decisionRecord struct {
	RunID            int
	DecisionIndex    int
	Simulations      int
	Action           int
	Observation      int
	Reward           float64
	DiscountedReturn float64
}

// resultsWriter streams decisionRecords to a CSV file and accumulates a
// running Statistic over discounted returns for the closing summary line.
// Grounded on risk-agent's experiments/metrics/writer.go: csv.NewWriter,
// an explicit header, one Write call per row.
type resultsWriter struct {
	f       *os.File
	w       *csv.Writer
	summary pomcp.Statistic
}

func newResultsWriter(path string) (*resultsWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create results file: %w", err)
	}

	w := csv.NewWriter(f)
	header := []string{"run_id", "decision_index", "simulations", "action", "observation", "reward", "discounted_return"}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write results header: %w", err)
	}

	return &resultsWriter{f: f, w: w}, nil
}

func (rw *resultsWriter) WriteRecord(r decisionRecord) error {
	rw.summary.Add(r.DiscountedReturn)
	row := []string{
		strconv.Itoa(r.RunID),
		strconv.Itoa(r.DecisionIndex),
		strconv.Itoa(r.Simulations),
		strconv.Itoa(r.Action),
		strconv.Itoa(r.Observation),
		strconv.FormatFloat(r.Reward, 'f', -1, 64),
		strconv.FormatFloat(r.DiscountedReturn, 'f', -1, 64),
	}
	return rw.w.Write(row)
}

// Close flushes the CSV writer, appends the closing summary line, and
// closes the file.
func (rw *resultsWriter) Close() error {
	rw.w.Flush()
	if err := rw.w.Error(); err != nil {
		rw.f.Close()
		return err
	}
	fmt.Fprintf(rw.f, "# summary mean=%g stderr=%g n=%d\n",
		rw.summary.Mean(), rw.summary.StdErr(), rw.summary.Count())
	return rw.f.Close()
}
