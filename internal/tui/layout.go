package tui

import (
        "strings"

        "github.com/charmbracelet/lipgloss"
        xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height lines,
// so panes line up when joined horizontally.
func normalizePane(s string, width, height int) string {
        if width < 0 {
                width = 0
        }
        lines := strings.Split(s, "\n")
        if height > 0 {
                if len(lines) > height {
                        lines = lines[:height]
                }
                for len(lines) < height {
                        lines = append(lines, "")
                }
        }
        for i, ln := range lines {
                w := xansi.StringWidth(ln)
                switch {
                case w > width && width <= 1:
                        ln = xansi.Cut(ln, 0, width)
                case w > width:
                        ln = xansi.Cut(ln, 0, width-1) + "…"
                }
                if w = xansi.StringWidth(ln); w < width {
                        ln += strings.Repeat(" ", width-w)
                }
                lines[i] = ln
        }
        return strings.Join(lines, "\n")
}

// splitPanes renders main and side next to each other with a one-column rule.
func splitPanes(main, side string, width, height, sideW int) string {
        if sideW >= width-10 {
                sideW = width / 2
        }
        mainW := width - sideW - 1
        rule := lipgloss.NewStyle().Foreground(colorSidebarEdge).Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
        return lipgloss.JoinHorizontal(lipgloss.Top,
                normalizePane(main, mainW, height),
                rule,
                normalizePane(side, sideW, height),
        )
}
