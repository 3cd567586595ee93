package tui

import (
        "testing"

        "issuecfg/internal/store"

        tea "github.com/charmbracelet/bubbletea"
)

func newSeededModel(t *testing.T) (appModel, store.Store) {
        t.Helper()
        s := store.Store{Dir: t.TempDir()}
        db := store.NewDB()
        s.Seed(db, "org-1")
        if err := s.Save(db); err != nil {
                t.Fatalf("Save: %v", err)
        }
        return newAppModel(s, db, "org-1"), s
}

func keyMsg(k string) tea.KeyMsg {
        switch k {
        case "enter":
                return tea.KeyMsg{Type: tea.KeyEnter}
        case "esc":
                return tea.KeyMsg{Type: tea.KeyEsc}
        case "ctrl+s":
                return tea.KeyMsg{Type: tea.KeyCtrlS}
        case "ctrl+u":
                return tea.KeyMsg{Type: tea.KeyCtrlU}
        case "up":
                return tea.KeyMsg{Type: tea.KeyUp}
        case "down":
                return tea.KeyMsg{Type: tea.KeyDown}
        default:
                return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
        }
}

func press(t *testing.T, m appModel, keys ...string) appModel {
        t.Helper()
        for _, k := range keys {
                mm, _ := m.Update(keyMsg(k))
                var ok bool
                m, ok = mm.(appModel)
                if !ok {
                        t.Fatalf("unexpected model type %T", mm)
                }
        }
        return m
}

func send(t *testing.T, m appModel, msg tea.Msg) appModel {
        t.Helper()
        mm, _ := m.Update(msg)
        return mm.(appModel)
}

func mustLoad(t *testing.T, s store.Store) *store.DB {
        t.Helper()
        db, err := s.Load()
        if err != nil {
                t.Fatalf("Load: %v", err)
        }
        return db
}
