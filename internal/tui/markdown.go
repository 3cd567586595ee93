package tui

import (
        "strconv"
        "strings"
        "sync"

        "github.com/charmbracelet/glamour"
        "github.com/charmbracelet/lipgloss"
)

var (
        mdRendererMu sync.Mutex
        // Renderers are cached by style and wrap width; WithAutoStyle may block on
        // terminal queries, so a fixed style is picked from the detected background.
        mdRenderers = map[string]*glamour.TermRenderer{}
)

func markdownStyle() string {
        if lipgloss.HasDarkBackground() {
                return "dark"
        }
        return "light"
}

func renderMarkdown(md string, width int) string {
        md = strings.TrimSpace(md)
        if md == "" {
                return ""
        }
        if width < 10 {
                width = 10
        }

        style := markdownStyle()
        key := style + ":" + strconv.Itoa(width)
        mdRendererMu.Lock()
        r := mdRenderers[key]
        mdRendererMu.Unlock()

        if r == nil {
                rr, err := glamour.NewTermRenderer(
                        glamour.WithStandardStyle(style),
                        glamour.WithWordWrap(width),
                )
                if err != nil {
                        return md
                }
                mdRendererMu.Lock()
                if existing := mdRenderers[key]; existing != nil {
                        r = existing
                } else {
                        mdRenderers[key] = rr
                        r = rr
                }
                mdRendererMu.Unlock()
        }

        out, err := r.Render(md)
        if err != nil {
                return md
        }
        return strings.TrimRight(out, "\n")
}
