package stats

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	minTrendWidth       = 10
)

// TerminalWidth returns the column count of w when it is a terminal, else a fixed fallback.
func TerminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// Resample stretches or shrinks values to exactly width points by nearest index.
// Series shorter than width are returned unchanged.
func Resample(values []float64, width int) []float64 {
	if width < minTrendWidth {
		width = minTrendWidth
	}
	if len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		idx := i * (len(values) - 1) / (width - 1)
		out[i] = values[idx]
	}
	return out
}
