// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/term"

	"github.com/verte-zerg/vocadrill/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	curveLabel          = "Accuracy "
	terminalWidthBackup = 80
	minCurveWidth       = 10
)

// Accuracy returns score/total as a fraction, or 0 for an empty run.
func Accuracy(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := lo.Min(values), lo.Max(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample shrinks values to at most width points by averaging buckets.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// CurveWidthFor returns the sparkline width that fits a terminal of totalWidth.
func CurveWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	return max(totalWidth-len(curveLabel), minCurveWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints a summary block for runs.
func RenderSummary(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	accs := lo.Map(runs, func(r model.RunAggregate, _ int) float64 {
		return Accuracy(r.Score, r.Total)
	})
	avg := lo.Sum(accs) / float64(len(accs))
	best := lo.Max(accs)
	missed := lo.Sum(lo.Map(runs, func(r model.RunAggregate, _ int) int { return r.WrongCount }))

	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", len(runs)),
		fmt.Sprintf("Avg accuracy: %.2f%%", avg*100),
		fmt.Sprintf("Best accuracy: %.2f%%", best*100),
		fmt.Sprintf("Missed items: %d", missed),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurve prints the accuracy learning curve as a sparkline.
func RenderCurve(w io.Writer, runs []model.RunAggregate, window, totalWidth int) error {
	if len(runs) == 0 {
		return nil
	}
	accs := lo.Map(runs, func(r model.RunAggregate, _ int) float64 {
		return Accuracy(r.Score, r.Total) * 100
	})
	accs = Resample(MovingAverage(accs, window), CurveWidthFor(totalWidth))
	if _, err := fmt.Fprintln(w, "Learning Curve"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", curveLabel, Sparkline(accs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "min %.1f%%  max %.1f%%  last %.1f%%\n\n", lo.Min(accs), lo.Max(accs), accs[len(accs)-1]); err != nil {
		return err
	}
	return nil
}

// RenderMissTable prints the most-missed items.
func RenderMissTable(w io.Writer, aggs []model.MissAggregate, top int) error {
	rows := TopMisses(aggs, top)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No missed items found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Most Missed"); err != nil {
		return err
	}
	headers := []string{"Word", "Meaning", "Failures", "Runs"}
	tableRows := lo.Map(rows, func(agg model.MissAggregate, _ int) []string {
		return []string{
			agg.Word,
			agg.Expected,
			fmt.Sprintf("%d", agg.Failures),
			fmt.Sprintf("%d", agg.Runs),
		}
	})
	for _, line := range formatTable(headers, tableRows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
