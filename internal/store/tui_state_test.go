package store

import (
        "os"
        "path/filepath"
        "reflect"
        "testing"

        "issuecfg/internal/model"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
        t.Parallel()

        dir := t.TempDir()
        s := Store{Dir: dir}

        // Missing file => default state.
        st0, err := s.LoadTUIState()
        if err != nil {
                t.Fatalf("LoadTUIState: %v", err)
        }
        if st0 == nil || st0.Version != 1 {
                t.Fatalf("expected default Version=1; got %#v", st0)
        }

        want := &TUIState{
                Version:          1,
                View:             "list",
                Kind:             model.ListKindPriority,
                SelectedSchemeID: "sch-1",
        }
        if err := s.SaveTUIState(want); err != nil {
                t.Fatalf("SaveTUIState: %v", err)
        }

        got, err := s.LoadTUIState()
        if err != nil {
                t.Fatalf("LoadTUIState (after save): %v", err)
        }
        if !reflect.DeepEqual(want, got) {
                t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
        }
}

func TestTUIState_CorruptFileLoadsDefault(t *testing.T) {
        t.Parallel()

        dir := t.TempDir()
        s := Store{Dir: dir}
        if err := os.MkdirAll(filepath.Join(dir, "ui"), 0o755); err != nil {
                t.Fatalf("mkdir: %v", err)
        }
        if err := os.WriteFile(filepath.Join(dir, "ui", tuiStateKey), []byte("{nope"), 0o644); err != nil {
                t.Fatalf("write: %v", err)
        }
        st, err := s.LoadTUIState()
        if err != nil {
                t.Fatalf("LoadTUIState: %v", err)
        }
        if st.Version != 1 || st.View != "" {
                t.Fatalf("expected default state, got %#v", st)
        }
}
