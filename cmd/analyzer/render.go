package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eshaffer321/finhelp-go/pkg/finhelp"
)

var (
	colorBorder = lipgloss.Color("#282726")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	badStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)
)

// RenderReport renders the report for a terminal
func RenderReport(r *Report) string {
	var b strings.Builder

	title := "Análise Financeira"
	if r.Client != "" {
		title = fmt.Sprintf("Análise Financeira · %s", r.Client)
	}
	b.WriteString(renderTitle(title))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Orçamento"))
	b.WriteString("\n")
	if r.OverExpenses {
		b.WriteString("  " + badStyle.Render("Gastos do mês passado superam saldo + renda mensal"))
	} else {
		b.WriteString("  " + goodStyle.Render("Saldo + renda mensal cobrem os gastos do mês passado"))
	}
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Gastos surpresa"))
	b.WriteString("\n")
	if len(r.Alerts) == 0 {
		b.WriteString("  " + mutedStyle.Render("Nenhum alerta"))
		b.WriteString("\n")
	}
	for _, a := range r.Alerts {
		fmt.Fprintf(&b, "  %s %s  R$ %s %s\n",
			warnStyle.Render("▲"),
			lipgloss.NewStyle().Width(16).Render(a.Category),
			finhelp.FormatMoney(a.SpentRecently),
			mutedStyle.Render(fmt.Sprintf("(média R$ %s, +%.1f%% em %s)", finhelp.FormatMoney(a.DailyAvg), a.PctOver, a.Date)))
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Empréstimos"))
	b.WriteString("\n")
	if len(r.Loans) == 0 {
		b.WriteString("  " + mutedStyle.Render("Nenhum empréstimo"))
		b.WriteString("\n")
	}
	for _, l := range r.Loans {
		fmt.Fprintf(&b, "  %s\n", lipgloss.NewStyle().Bold(true).Render(l.Type))
		fmt.Fprintf(&b, "    Dias até o vencimento: %d\n", l.DaysToDue)
		fmt.Fprintf(&b, "    Valor da parcela: R$ %s\n", finhelp.FormatMoney(l.BaseAmount))
		fmt.Fprintf(&b, "    Valor extra sugerido: R$ %s\n", finhelp.FormatMoney(l.ExtraAmount))
		fmt.Fprintf(&b, "    Economia estimada: %s\n", goodStyle.Render("R$ "+finhelp.FormatMoney(l.EstimatedInterestSaved)))
		for _, line := range strings.Split(l.Message, "\n") {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(line))
		}
	}

	return b.String()
}

func renderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}
