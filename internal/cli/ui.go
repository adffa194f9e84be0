package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/pckp"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// statusLine renders a status with an icon matching its severity.
func statusLine(s pckp.Status) string {
	switch s {
	case pckp.Optimal:
		return styleSuccess.Render(iconSuccess + " " + s.String())
	case pckp.Infeasible:
		return styleError.Render(iconError + " " + s.String())
	default:
		return styleWarning.Render(iconWarning + " " + s.String())
	}
}

// selectionString lists selected item indices, or fractional values when
// any coordinate is strictly between 0 and 1.
func selectionString(sel []float64, limit int) string {
	var parts []string
	fractional := false
	for _, x := range sel {
		if x > 0 && x < 1 {
			fractional = true
			break
		}
	}
	for i, x := range sel {
		switch {
		case fractional && x > 0:
			parts = append(parts, fmt.Sprintf("%d:%.3f", i, x))
		case !fractional && x == 1:
			parts = append(parts, fmt.Sprint(i))
		}
	}
	if len(parts) == 0 {
		return styleDim.Render("(none)")
	}
	if limit > 0 && len(parts) > limit {
		more := len(parts) - limit
		parts = append(parts[:limit], styleDim.Render(fmt.Sprintf("… %d more", more)))
	}

	return strings.Join(parts, " ")
}

func number(format string, args ...any) string {
	return styleNumber.Render(fmt.Sprintf(format, args...))
}
