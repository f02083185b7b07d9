// Package ui renders CLI output: messages, SQL blocks and result tables.
package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	sqlStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)

	paramColor = color.New(color.FgCyan)
)

// Out is where normal output goes.
var Out io.Writer = os.Stdout

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	fmt.Fprintln(Out, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(Out, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintSection prints a section title
func PrintSection(title string) {
	fmt.Fprintln(Out, TitleStyle.Render(title))
}

// PrintSQL prints a SQL statement in a bordered block
func PrintSQL(sql string) {
	fmt.Fprintln(Out, sqlStyle.Render(sql))
}

// PrintParams prints bound parameters one per line, sorted by name.
func PrintParams(params map[string]Param) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := params[name]
		fmt.Fprintf(Out, "  %s = %s %s\n",
			paramColor.Sprint(name),
			FormatValue(p.Value),
			SecondaryStyle.Render("("+p.Type+")"))
	}
}

// Param is a bound value with its type name.
type Param struct {
	Value any
	Type  string
}

// PrintTable prints a table with a header row
func PrintTable(headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithWriter(Out).WithData(data).Render()
}

// PrintRows prints result rows as a table with the given column order.
func PrintRows(columns []string, rows []map[string]any) error {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, len(columns))
		for j, col := range columns {
			line[j] = FormatValue(row[col])
		}
		cells[i] = line
	}
	return PrintTable(columns, cells)
}

// FormatValue renders a value for display. Nil renders as NULL.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return strconv.Quote(val)
	case []byte:
		return strconv.Quote(string(val))
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
