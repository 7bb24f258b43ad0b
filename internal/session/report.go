// SPDX-License-Identifier: MPL-2.0

package session

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Reporter renders the run report: one styled status line per environment,
// the captured output of failing steps, and an aggregate summary.
type Reporter struct {
	// Out receives the rendered report.
	Out io.Writer
	// Verbose additionally prints the captured output of passed steps.
	Verbose bool
}

// Render writes the report for the given results.
func (r *Reporter) Render(results []*ExecutionResult) {
	passedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))

	failedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))

	skippedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("242"))

	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	var sb strings.Builder
	var passed, failed, skipped int

	for _, result := range results {
		switch result.Status() {
		case StatusPassed:
			passed++
			sb.WriteString(passedStyle.Render("✓ PASSED "))
		case StatusFailed:
			failed++
			sb.WriteString(failedStyle.Render("✗ FAILED "))
		case StatusSkipped:
			skipped++
			sb.WriteString(skippedStyle.Render("- SKIPPED"))
			sb.WriteString(" ")
		default:
			sb.WriteString(dimStyle.Render(strings.ToUpper(result.Status().String())))
			sb.WriteString(" ")
		}

		sb.WriteString(nameStyle.Render(string(result.Env)))
		if result.Status() != StatusSkipped {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", result.Duration.Round(time.Millisecond))))
		}
		sb.WriteString("\n")

		if result.Status() == StatusFailed && result.Reason != nil {
			sb.WriteString(dimStyle.Render("  reason: " + result.Reason.Error()))
			sb.WriteString("\n")
		}

		r.renderStepOutput(&sb, result, dimStyle)
	}

	sb.WriteString("\n")
	summary := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if failed > 0 {
		sb.WriteString(failedStyle.Render(summary))
	} else {
		sb.WriteString(passedStyle.Render(summary))
	}
	sb.WriteString("\n")

	fmt.Fprint(r.Out, sb.String())
}

// renderStepOutput prints captured output: always for the failing step, and
// for every step under verbose.
func (r *Reporter) renderStepOutput(sb *strings.Builder, result *ExecutionResult, dimStyle lipgloss.Style) {
	if r.Verbose && result.Status() == StatusPassed {
		for _, outcome := range result.Steps {
			writeCaptured(sb, outcome.Step.String(), outcome.Result.Stdout, outcome.Result.Stderr, dimStyle)
		}
		return
	}

	if outcome := result.FailedStep(); outcome != nil {
		writeCaptured(sb, outcome.Step.String(), outcome.Result.Stdout, outcome.Result.Stderr, dimStyle)
	}
}

func writeCaptured(sb *strings.Builder, step, stdout, stderr string, dimStyle lipgloss.Style) {
	if stdout == "" && stderr == "" {
		return
	}
	sb.WriteString(dimStyle.Render("  $ " + step))
	sb.WriteString("\n")
	for _, line := range outputLines(stdout) {
		sb.WriteString("  " + line + "\n")
	}
	for _, line := range outputLines(stderr) {
		sb.WriteString("  " + line + "\n")
	}
}

func outputLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
