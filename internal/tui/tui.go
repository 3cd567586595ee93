package tui

import (
        "issuecfg/internal/store"

        tea "github.com/charmbracelet/bubbletea"
        "github.com/golang/glog"
)

// Run starts the interactive editor on the workspace in s.
func Run(s store.Store, orgID string) error {
        applyThemePreference()
        applyColorProfilePreference()

        db, err := s.Load()
        if err != nil {
                return err
        }
        m := newAppModel(s, db, orgID)
        if st, err := s.LoadTUIState(); err != nil {
                glog.Warningf("tui: load state: %v", err)
        } else {
                m.restore(st)
        }
        final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
        if err != nil {
                return err
        }
        if fm, ok := final.(appModel); ok {
                fm.saveTUIState()
        }
        return nil
}
