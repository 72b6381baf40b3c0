package pager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/hlgrep/internal/textutil"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "Matches",
		entries: []helpEntry{
			{keys: "← / a", desc: "Previous match"},
			{keys: "→ / d", desc: "Next match"},
			{keys: "Shift+← / A", desc: "Previous file"},
			{keys: "Shift+→ / D", desc: "Next file"},
		},
	},
	{
		title: "View",
		entries: []helpEntry{
			{keys: "↑ / k", desc: "Scroll up"},
			{keys: "↓ / j", desc: "Scroll down"},
			{keys: "l", desc: "Toggle line numbers"},
		},
	},
	{
		title: "Exit",
		entries: []helpEntry{
			{keys: "h / ?", desc: "Show this help"},
			{keys: "q / Esc", desc: "Quit"},
			{keys: "Ctrl+C", desc: "Quit immediately"},
		},
	},
}

func buildHelpLines() []string {
	lines := make([]string, 0, 16)
	for i, section := range helpSections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, fmt.Sprintf("  %s %s", runewidth.FillRight(entry.keys, 14), entry.desc))
		}
	}
	lines = append(lines, "", "Any key closes this help.")
	return lines
}

var helpBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 2)

// helpBox renders the key reference as a bordered box.
func helpBox() []string {
	return strings.Split(helpBoxStyle.Render(strings.Join(buildHelpLines(), "\n")), "\n")
}

func (n *Navigator) writeHelp(sb *strings.Builder) {
	cols, rows := n.state.Cols, n.state.Rows
	box := helpBox()
	for row := 1; row <= rows; row++ {
		moveTo(sb, row)
		i := row - 2
		if i < 0 || i >= len(box) {
			continue
		}
		sb.WriteString(textutil.TruncateToWidth(box[i], cols))
	}
}
