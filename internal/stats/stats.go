// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuiaim/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns hits/shots as a rounded percentage, or 0 when no shots were fired.
func Accuracy(hits, shots int) int {
	if shots <= 0 {
		return 0
	}
	return int(math.Round(float64(hits) / float64(shots) * 100))
}

// RunningMean folds one more sample into a mean over prevCount samples.
func RunningMean(prevMean time.Duration, prevCount int, sample time.Duration) time.Duration {
	if prevCount <= 0 {
		return sample
	}
	total := prevMean*time.Duration(prevCount) + sample
	return total / time.Duration(prevCount+1)
}

// FormatClock renders an elapsed session time as MM:SS:d (tenths of a second).
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	minutes := ms / 60000
	seconds := (ms / 1000) % 60
	tenths := (ms % 1000) / 100
	return fmt.Sprintf("%02d:%02d:%d", minutes, seconds, tenths)
}

// FormatMillis renders a duration as whole milliseconds.
func FormatMillis(d time.Duration) string {
	return fmt.Sprintf("%d ms", d.Round(time.Millisecond).Milliseconds())
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
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
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// ReactionMillis converts reaction times to float milliseconds for plotting.
func ReactionMillis(times []time.Duration) []float64 {
	out := make([]float64, len(times))
	for i, rt := range times {
		out[i] = float64(rt) / float64(time.Millisecond)
	}
	return out
}

// SummaryRows returns label/value pairs describing a session.
func SummaryRows(mode model.Mode, difficulty model.Difficulty, s model.SessionStats) [][]string {
	rows := [][]string{
		{"Mode", string(mode)},
		{"Difficulty", string(difficulty)},
		{"Time", FormatClock(s.Elapsed)},
		{"Hits", fmt.Sprintf("%d", s.Hits)},
		{"Shots", fmt.Sprintf("%d", s.TotalShots)},
		{"Misses", fmt.Sprintf("%d", s.Misses)},
		{"Accuracy", fmt.Sprintf("%d%%", s.Accuracy)},
		{"Avg Reaction", FormatMillis(s.AverageReactionTime)},
		{"Last Hit", FormatMillis(s.LastHitReactionTime)},
		{"Speed", fmt.Sprintf("%.2f t/s", s.CurrentSpawnRate)},
	}
	if mode == model.ModePrecision {
		rows = append(rows, []string{"Best Combo", fmt.Sprintf("%d", s.BestConsecutiveHits)})
	}
	return rows
}

// RenderSummary prints a summary table and reaction-time trend for one session.
func RenderSummary(w io.Writer, mode model.Mode, difficulty model.Difficulty, s model.SessionStats, window int) error {
	if s.TotalShots == 0 && s.Hits == 0 {
		_, err := fmt.Fprintln(w, "No shots fired.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	lines := formatTable(nil, SummaryRows(mode, difficulty, s), map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(s.ReactionTimes) < 2 {
		return nil
	}
	trend := MovingAverage(ReactionMillis(s.ReactionTimes), window)
	width := TerminalWidth(w) - len("Reaction trend  ")
	line := Sparkline(Resample(trend, width))
	if _, err := fmt.Fprintf(w, "\nReaction trend  %s\n", line); err != nil {
		return err
	}
	return nil
}
