package tui

import (
        "fmt"
        "io"
        "strings"

        "github.com/charmbracelet/bubbles/list"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
        xansi "github.com/charmbracelet/x/ansi"
)

// entryDelegate renders one list entry per line. Disabled entries are dimmed;
// the grabbed entry (while reordering) is highlighted.
type entryDelegate struct {
        normal   lipgloss.Style
        selected lipgloss.Style
        disabled lipgloss.Style
        grabbed  lipgloss.Style
}

func newEntryDelegate() entryDelegate {
        return entryDelegate{
                normal:   lipgloss.NewStyle(),
                selected: lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true),
                disabled: lipgloss.NewStyle().Foreground(colorDisabledFg).Strikethrough(true),
                grabbed:  lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorGrabbedBg).Bold(true),
        }
}

func (d entryDelegate) Height() int  { return 1 }
func (d entryDelegate) Spacing() int { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
        return nil
}

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
        contentW := m.Width()
        if contentW < 4 {
                fmt.Fprint(w, "")
                return
        }

        txt := fmt.Sprint(item)
        style := d.normal
        if it, ok := item.(entryItem); ok {
                txt = it.Title()
                if it.grabbed {
                        txt = "≡ " + txt
                } else {
                        txt = "  " + txt
                }
                if !it.item.IsEnabled {
                        style = d.disabled
                }
                if it.grabbed {
                        style = d.grabbed
                } else if index == m.Index() {
                        style = d.selected.Strikethrough(!it.item.IsEnabled)
                }
        } else if t, ok := item.(interface{ Title() string }); ok {
                txt = "  " + t.Title()
                if index == m.Index() {
                        style = d.selected
                }
        }

        line := txt
        lineW := xansi.StringWidth(line)
        if lineW < contentW {
                line += strings.Repeat(" ", contentW-lineW)
        } else if lineW > contentW {
                line = xansi.Cut(line, 0, contentW)
        }
        fmt.Fprint(w, style.Render(line))
}
