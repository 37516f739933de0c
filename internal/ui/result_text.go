package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/getlawrence/antiplag/internal/languages"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	percentBands = []struct {
		min   float64
		style lipgloss.Style
	}{
		{0.7, alertStyle},
		{0.3, warnStyle},
		{0, okStyle},
	}
)

// RenderResult formats a check result for the terminal.
func RenderResult(input domain.CheckInput, result *domain.CheckResult, color bool) string {
	if result == nil {
		return ""
	}
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", style(titleStyle, "🔎 Plagiarism Check"))
	b.WriteString(strings.Repeat("=", 20))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "🗣️  Language:   %s\n", input.Lang)
	fmt.Fprintf(&b, "📄 Candidates: %d\n\n", len(input.Candidates))

	percent := fmt.Sprintf("%.2f%%", result.Percent*100)
	if result.UUID == nil {
		fmt.Fprintf(&b, "%s\n", style(okStyle, "✅ No plagiarism detected"))
		fmt.Fprintf(&b, "   Similarity: %s\n", style(mutedStyle, percent))
		return b.String()
	}

	bandStyle := okStyle
	for _, band := range percentBands {
		if result.Percent >= band.min {
			bandStyle = band.style
			break
		}
	}
	fmt.Fprintf(&b, "⚠️  Most similar candidate: %s\n", style(titleStyle, *result.UUID))
	fmt.Fprintf(&b, "   Similarity: %s\n", style(bandStyle, percent))
	return b.String()
}

// RenderLanguages lists the registry contents with the tool used for each.
func RenderLanguages(registry *languages.LanguageRegistry, tools map[string]string) string {
	all := registry.All()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	fmt.Fprintf(&b, "🗣️  Supported Languages:\n")
	b.WriteString(strings.Repeat("=", 23))
	b.WriteString("\n\n")
	for _, id := range ids {
		l := all[id]
		fmt.Fprintf(&b, "📦 %s (%s)\n", id, l.Linguist)
		fmt.Fprintf(&b, "   Family: %s\n", l.Family)
		if l.Family == languages.FamilyTool {
			tool := tools[id]
			if tool == "" {
				tool = "(not configured)"
			}
			fmt.Fprintf(&b, "   Checker: %s\n", tool)
		} else {
			fmt.Fprintf(&b, "   Checker: in-process\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
