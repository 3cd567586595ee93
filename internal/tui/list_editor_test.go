package tui

import (
        "strings"
        "testing"

        "issuecfg/internal/model"
        "issuecfg/internal/orderlist"
)

func entryIDs(m appModel) []string {
        var out []string
        for _, it := range m.list.editor.Items() {
                out = append(out, it.Identity())
        }
        return out
}

func TestListEditor_OpenStatuses(t *testing.T) {
        t.Parallel()

        m, _ := newSeededModel(t)
        m = press(t, m, "enter")
        if m.view != viewList || m.list == nil {
                t.Fatalf("expected list view; got %v", m.view)
        }
        if m.list.kind != model.ListKindStatus {
                t.Fatalf("expected statuses; got %q", m.list.kind)
        }
        if got := len(m.entriesList.Items()); got != 5 {
                t.Fatalf("expected 5 entries; got %d", got)
        }
}

func TestListEditor_AddStagesThenSavePersists(t *testing.T) {
        t.Parallel()

        m, s := newSeededModel(t)
        m = press(t, m, "enter", "a", "QA", "enter")
        if m.modal != modalNone {
                t.Fatalf("expected modal closed; got %v", m.modal)
        }
        items := m.list.editor.Items()
        if len(items) != 6 {
                t.Fatalf("expected 6 items; got %d", len(items))
        }
        last := items[5]
        if last.Value != "QA" || last.ID != "" || !strings.HasPrefix(last.TempKey, "tmp-") {
                t.Fatalf("expected staged entry with temp key; got %#v", last)
        }
        if !m.list.buffer.Dirty() {
                t.Fatalf("expected dirty buffer")
        }
        if got := len(mustLoad(t, s).Lists[model.ListKindStatus]); got != 5 {
                t.Fatalf("expected nothing persisted before save; got %d statuses", got)
        }

        m = press(t, m, "ctrl+s")
        if m.list.buffer.Dirty() {
                t.Fatalf("expected clean buffer after save")
        }
        saved := mustLoad(t, s).Lists[model.ListKindStatus]
        if len(saved) != 6 || saved[5].ID != "qa" || saved[5].Value != "QA" {
                t.Fatalf("unexpected saved statuses: %#v", saved)
        }
        evs, err := s.ReadEventsForEntity(string(model.ListKindStatus), 0)
        if err != nil {
                t.Fatalf("ReadEventsForEntity: %v", err)
        }
        if len(evs) != 1 || evs[0].Type != "list.save" {
                t.Fatalf("expected one list.save event; got %#v", evs)
        }
}

func TestListEditor_EmptyDraftKeepsModal(t *testing.T) {
        t.Parallel()

        m, _ := newSeededModel(t)
        m = press(t, m, "enter", "a", "enter")
        if m.modal != modalAddEntry {
                t.Fatalf("expected add modal to stay open; got %v", m.modal)
        }
        if m.inputHint == "" {
                t.Fatalf("expected a hint for the empty name")
        }
        if m.list.editor.Session().Mode != orderlist.ModeAdding {
                t.Fatalf("expected adding session; got %v", m.list.editor.Session().Mode)
        }

        m = press(t, m, "esc")
        if m.modal != modalNone || m.list.editor.Session().Active() {
                t.Fatalf("expected cancel to close modal and end session")
        }
        if len(m.list.editor.Items()) != 5 {
                t.Fatalf("expected no new entry")
        }
}

func TestListEditor_DuplicateNameRejected(t *testing.T) {
        t.Parallel()

        m, _ := newSeededModel(t)
        m = press(t, m, "enter", "a", "done", "enter")
        if m.modal != modalAddEntry {
                t.Fatalf("expected modal to stay open on duplicate")
        }
        if !strings.Contains(m.inputHint, "duplicate") {
                t.Fatalf("expected duplicate hint; got %q", m.inputHint)
        }
        if len(m.list.editor.Items()) != 5 {
                t.Fatalf("expected no new entry")
        }
}

func TestListEditor_RenameKeepsID(t *testing.T) {
        t.Parallel()

        m, s := newSeededModel(t)
        m = press(t, m, "enter", "e")
        if m.modal != modalEditEntry || m.input.Value() != "Backlog" {
                t.Fatalf("expected edit modal preloaded with Backlog; modal=%v value=%q", m.modal, m.input.Value())
        }
        m = press(t, m, "ctrl+u", "Icebox", "enter")
        first := m.list.editor.Items()[0]
        if first.ID != "backlog" || first.Value != "Icebox" {
                t.Fatalf("unexpected first entry: %#v", first)
        }
        m = press(t, m, "ctrl+s")
        if got := mustLoad(t, s).Lists[model.ListKindStatus][0].Value; got != "Icebox" {
                t.Fatalf("expected persisted rename; got %q", got)
        }
}

func TestListEditor_ToggleEnabled(t *testing.T) {
        t.Parallel()

        m, _ := newSeededModel(t)
        m = press(t, m, "enter", "x")
        if m.list.editor.Items()[0].IsEnabled {
                t.Fatalf("expected first entry disabled")
        }
        m = press(t, m, "x")
        if !m.list.editor.Items()[0].IsEnabled {
                t.Fatalf("expected first entry enabled again")
        }
}

func TestListEditor_DeleteInUseIsBlocked(t *testing.T) {
        t.Parallel()

        m, _ := newSeededModel(t)
        m = press(t, m, "enter", "d")
        if m.modal != modalConfirmDelete {
                t.Fatalf("expected delete confirm; got %v", m.modal)
        }
        m = press(t, m, "y")
        if len(m.list.editor.Items()) != 5 {
                t.Fatalf("expected backlog to stay")
        }
        if !m.flashErr || !strings.Contains(m.flash, "Cannot delete") {
                t.Fatalf("expected in-use flash; got %q", m.flash)
        }
}

func TestListEditor_DeleteStagedEntry(t *testing.T) {
        t.Parallel()

        m, _ := newSeededModel(t)
        m = press(t, m, "enter", "a", "QA", "enter")
        if m.entriesList.Index() != 5 {
                t.Fatalf("expected cursor on new entry; got %d", m.entriesList.Index())
        }
        m = press(t, m, "d", "y")
        if got := len(m.list.editor.Items()); got != 5 {
                t.Fatalf("expected staged entry removed; got %d items", got)
        }
}

func TestListEditor_DragReorders(t *testing.T) {
        t.Parallel()

        m, s := newSeededModel(t)
        m = press(t, m, "enter", "m")
        if !m.list.editor.Dragging() {
                t.Fatalf("expected drag active")
        }
        m = press(t, m, "j", "j", "enter")
        if m.list.editor.Dragging() {
                t.Fatalf("expected drag ended")
        }
        want := []string{"todo", "in-progress", "backlog", "in-review", "done"}
        if got := entryIDs(m); strings.Join(got, ",") != strings.Join(want, ",") {
                t.Fatalf("unexpected order: %v", got)
        }
        m = press(t, m, "ctrl+s")
        var saved []string
        for _, it := range mustLoad(t, s).Lists[model.ListKindStatus] {
                saved = append(saved, it.ID)
        }
        if strings.Join(saved, ",") != strings.Join(want, ",") {
                t.Fatalf("unexpected saved order: %v", saved)
        }
}

func TestListEditor_DragCancelledLeavesOrder(t *testing.T) {
        t.Parallel()

        m, _ := newSeededModel(t)
        before := "backlog,todo,in-progress,in-review,done"
        m = press(t, m, "enter", "m", "j", "j", "esc")
        if m.list.editor.Dragging() {
                t.Fatalf("expected drag ended")
        }
        if got := strings.Join(entryIDs(m), ","); got != before {
                t.Fatalf("expected unchanged order %s; got %s", before, got)
        }
        if m.list.buffer.Dirty() {
                t.Fatalf("expected clean buffer after cancelled drag")
        }
}

func TestListEditor_DiscardConfirm(t *testing.T) {
        t.Parallel()

        m, s := newSeededModel(t)
        m = press(t, m, "enter", "x", "esc")
        if m.modal != modalConfirmDiscard {
                t.Fatalf("expected discard confirm; got %v", m.modal)
        }
        m = press(t, m, "n")
        if m.view != viewList || m.list == nil {
                t.Fatalf("expected to stay in list view")
        }
        m = press(t, m, "esc", "y")
        if m.view != viewKinds || m.list != nil {
                t.Fatalf("expected kinds view after discard")
        }
        if !mustLoad(t, s).Lists[model.ListKindStatus][0].IsEnabled {
                t.Fatalf("expected discarded change not persisted")
        }
}

func TestListEditor_ReloadPicksUpOtherWriters(t *testing.T) {
        t.Parallel()

        m, s := newSeededModel(t)
        m = press(t, m, "enter")

        db := mustLoad(t, s)
        items := db.List(model.ListKindStatus)
        items = append(items, model.Item{ID: "qa", Value: "QA", IsEnabled: true})
        if err := s.SaveList(model.ListKindStatus, items); err != nil {
                t.Fatalf("SaveList: %v", err)
        }

        m = press(t, m, "r")
        if got := len(m.list.editor.Items()); got != 6 {
                t.Fatalf("expected reloaded list with 6 entries; got %d", got)
        }
        if m.list.buffer.Dirty() {
                t.Fatalf("expected clean buffer after reload")
        }

        // Staged work survives a reload.
        m = press(t, m, "x", "r")
        if !m.list.buffer.Dirty() || m.list.editor.Items()[0].IsEnabled {
                t.Fatalf("expected staged toggle kept across reload")
        }
}
