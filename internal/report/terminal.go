package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorText   = lipgloss.Color("#e6edf3")
	colorDim    = lipgloss.Color("#8b949e")
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorYellow = lipgloss.Color("#d29922")
	colorBorder = lipgloss.Color("#30363d")

	predictionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	labelStyle      = lipgloss.NewStyle().Foreground(colorDim).Width(16)
	valueStyle      = lipgloss.NewStyle().Foreground(colorText)
	significant     = lipgloss.NewStyle().Foreground(colorGreen)
	insignificant   = lipgloss.NewStyle().Foreground(colorYellow)
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// alpha is the significance level used to colour p-values.
const alpha = 0.05

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func pValue(p float64) string {
	s := formatFloat(p)
	if p < alpha {
		return significant.Render(s)
	}
	return insignificant.Render(s)
}

// Terminal renders r as a styled block for an interactive terminal.
func Terminal(r Result) string {
	s := r.Stats

	var b strings.Builder
	b.WriteString(predictionStyle.Render(fmt.Sprintf("Prediction = %s", formatFloat(r.Prediction))))
	b.WriteString("\n\n")

	rows := []string{
		titleStyle.Render("Model Statistics"),
		row("Equation", fmt.Sprintf("%sx + %s", formatFloat(s.Slope), formatFloat(s.Intercept))),
		row("R^2", formatFloat(s.RSquared)),
		row("MSE", formatFloat(s.MSE)),
		row("Slope (m)", fmt.Sprintf("t = %s, p = %s", formatFloat(s.TStatSlope), pValue(s.PValueSlope))),
		row("Intercept (c)", fmt.Sprintf("t = %s, p = %s", formatFloat(s.TStatIntercept), pValue(s.PValueIntercept))),
		row("Samples", fmt.Sprintf("%d (df = %d, %s)", s.Samples, s.DegreesOfFreedom, s.PValueMethod)),
	}
	b.WriteString(panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	b.WriteString("\n")
	return b.String()
}
