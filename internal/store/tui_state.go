package store

import (
        "encoding/json"
        "path/filepath"
        "strings"

        "issuecfg/internal/model"

        "github.com/golang/glog"
        "github.com/peterbourgon/diskv/v3"
)

const tuiStateKey = "tui_state"

// TUIState stores small, user-facing UI state for restoring the last screen on relaunch.
//
// It lives inside the workspace directory, so state is scoped per workspace.
// Callers should tolerate missing/invalid data.
type TUIState struct {
        Version int `json:"version"`

        // View is one of: kinds|list|schemes
        View string `json:"view,omitempty"`

        Kind             model.ListKind `json:"kind,omitempty"`
        SelectedSchemeID string         `json:"selectedSchemeId,omitempty"`
}

func (s Store) tuiStateDisk() *diskv.Diskv {
        return diskv.New(diskv.Options{
                BasePath:     filepath.Join(s.Dir, "ui"),
                Transform:    func(string) []string { return []string{} },
                CacheSizeMax: 64 * 1024,
        })
}

func (s Store) LoadTUIState() (*TUIState, error) {
        if strings.TrimSpace(s.Dir) == "" {
                return &TUIState{Version: 1}, nil
        }
        if err := s.Ensure(); err != nil {
                return nil, err
        }
        d := s.tuiStateDisk()
        if !d.Has(tuiStateKey) {
                return &TUIState{Version: 1}, nil
        }
        b, err := d.Read(tuiStateKey)
        if err != nil {
                return nil, err
        }
        var st TUIState
        if err := json.Unmarshal(b, &st); err != nil {
                glog.Warningf("store: ignoring corrupt tui state: %v", err)
                return &TUIState{Version: 1}, nil
        }
        if st.Version == 0 {
                st.Version = 1
        }
        return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
        if st == nil {
                return nil
        }
        if strings.TrimSpace(s.Dir) == "" {
                return nil
        }
        if err := s.Ensure(); err != nil {
                return err
        }
        if st.Version == 0 {
                st.Version = 1
        }
        b, err := json.MarshalIndent(st, "", "  ")
        if err != nil {
                return err
        }
        return s.tuiStateDisk().Write(tuiStateKey, b)
}
