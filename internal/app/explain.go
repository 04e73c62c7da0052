package app

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"autohan/internal/emitter"
	"autohan/internal/engine"
	"autohan/internal/layout"
)

// explain prints how each requested run would be handled at a separator
// and returns without touching the terminal.
func (rt *Runtime) explain() error {
	eng, err := rt.newEngine(emitter.NewTerminal(io.Discard))
	if err != nil {
		return err
	}
	renderer := lipgloss.NewRenderer(rt.stdout)
	styles := map[engine.Decision]lipgloss.Style{
		engine.DecisionConvert: renderer.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		engine.DecisionWait:    renderer.NewStyle().Foreground(lipgloss.Color("214")),
		engine.DecisionReject:  renderer.NewStyle().Foreground(lipgloss.Color("203")),
	}
	label := renderer.NewStyle().Foreground(lipgloss.Color("240"))

	for _, run := range rt.opts.Explain {
		a := eng.Analyze(run, engine.TriggerSeparator)
		candidate := a.Candidate
		if candidate == "" {
			candidate = "-"
		}
		if _, err := fmt.Fprintf(rt.stdout, "%s -> %s  %s (%s)\n",
			run, candidate, styles[a.Decision].Render(a.Decision.String()), a.Reason); err != nil {
			return err
		}
		line := func(name, value string) {
			fmt.Fprintf(rt.stdout, "  %s%s %s\n", label.Render(name), strings.Repeat(" ", 6-len(name)), value)
		}
		line("filter", a.Verdict.String())
		if len(a.Blocks) > 0 {
			blocks := make([]string, 0, len(a.Blocks))
			for _, block := range a.Blocks {
				blocks = append(blocks, block.String())
			}
			line("blocks", strings.Join(blocks, " "))
		}
		line("score", formatScore(a.Score))
		if a.Candidate != "" {
			line("retype", layout.Dubeolsik().Keystrokes(a.Candidate))
		}
	}
	return nil
}

func formatScore(score float64) string {
	if math.IsInf(score, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.3f", score)
}
