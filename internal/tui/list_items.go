package tui

import (
        "fmt"
        "strings"

        "issuecfg/internal/model"

        "github.com/charmbracelet/bubbles/list"
)

type kindItem struct {
        kind    model.ListKind
        schemes bool
        count   int
}

func (i kindItem) FilterValue() string { return i.Title() }
func (i kindItem) Title() string {
        if i.schemes {
                return fmt.Sprintf("Schemes  (%d)", i.count)
        }
        return fmt.Sprintf("%s  (%d)", kindLabel(i.kind), i.count)
}
func (i kindItem) Description() string { return "" }

func kindLabel(k model.ListKind) string {
        switch k {
        case model.ListKindStatus:
                return "Statuses"
        case model.ListKindIssueType:
                return "Issue types"
        case model.ListKindPriority:
                return "Priorities"
        default:
                return string(k)
        }
}

type entryItem struct {
        item    model.Item
        grabbed bool
}

func (i entryItem) FilterValue() string { return strings.TrimSpace(i.item.Value) }
func (i entryItem) Title() string {
        lbl := strings.TrimSpace(i.item.Value)
        if lbl == "" {
                lbl = "(unnamed)"
        }
        var flags []string
        if i.item.ID == "" {
                flags = append(flags, "new")
        }
        if !i.item.IsEnabled {
                flags = append(flags, "disabled")
        }
        if len(flags) > 0 {
                return lbl + "  (" + strings.Join(flags, ", ") + ")"
        }
        return lbl
}
func (i entryItem) Description() string { return i.item.Identity() }

type schemeItem struct {
        scheme model.Scheme
}

func (i schemeItem) FilterValue() string { return i.scheme.Name }
func (i schemeItem) Title() string {
        return fmt.Sprintf("%s  [%s]", i.scheme.Name, i.scheme.State)
}
func (i schemeItem) Description() string { return i.scheme.ID }

func newList(title string, items []list.Item) list.Model {
        l := list.New(items, newEntryDelegate(), 0, 0)
        l.Title = title
        // Header and footer are rendered by the app, keep list chrome minimal.
        l.SetShowTitle(false)
        l.SetShowHelp(false)
        l.SetShowStatusBar(false)
        l.SetShowPagination(false)
        l.SetFilteringEnabled(false)
        // ESC is "back/cancel" here, not quit.
        l.KeyMap.Quit.SetKeys("q")
        l.KeyMap.ForceQuit.SetKeys("ctrl+c")

        cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
        l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
        cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
        l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
        return l
}
