package tui

import (
        "errors"
        "fmt"

        "issuecfg/internal/model"
        "issuecfg/internal/mutate"
        "issuecfg/internal/orderlist"
        "issuecfg/internal/store"

        "github.com/charmbracelet/bubbles/list"
        "github.com/charmbracelet/bubbles/textinput"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/golang/glog"
)

// listSession is the open list editor. Changes stay in buffer until saved.
type listSession struct {
        kind   model.ListKind
        db     *store.DB
        buffer *orderlist.Buffer
        editor *orderlist.Editor

        pendingDelete string
}

func newListSession(db *store.DB, kind model.ListKind) *listSession {
        ls := &listSession{kind: kind, db: db}
        ls.buffer = orderlist.NewBuffer(db.List(kind))
        ls.buffer.CanDelete = func(it model.Item) error {
                // Unsaved entries cannot be referenced yet.
                if it.ID == "" {
                        return nil
                }
                return mutate.EnsureUnused(ls.db, kind, it.ID)
        }
        base := ls.buffer.Hooks()
        hooks := base
        hooks.OnCreate = func(value string) error {
                if err := mutate.EnsureUniqueValue(ls.buffer.Items(), value, ""); err != nil {
                        return err
                }
                return base.OnCreate(value)
        }
        hooks.OnEdit = func(key, value string) error {
                return mutate.EnsureUniqueValue(ls.buffer.Items(), value, key)
        }
        ls.editor = orderlist.New(ls.buffer.Items(), hooks)
        return ls
}

// sync pushes the buffer back into the editor after a change.
func (ls *listSession) sync() {
        ls.editor.SetItems(ls.buffer.Items())
}

// save assigns ids to new entries and writes only this list. Ids are checked
// against the state on disk, which another writer (a publish) may have changed.
func (ls *listSession) save(s store.Store, orgID string) error {
        fresh, err := s.Load()
        if err != nil {
                return err
        }
        var reserved []string
        items := ls.buffer.Flush(func(it model.Item) string {
                id := store.NewEntryID(fresh, it.Value, reserved...)
                reserved = append(reserved, id)
                return id
        })
        if err := s.SaveList(ls.kind, items); err != nil {
                return err
        }
        fresh.SetList(ls.kind, items)
        ls.db = fresh
        ls.sync()
        if err := s.AppendEvent(orgID, "list.save", string(ls.kind), map[string]any{"kind": ls.kind, "count": len(items)}); err != nil {
                glog.Warningf("tui: append event: %v", err)
        }
        return nil
}

func (m *appModel) openList(kind model.ListKind) {
        m.list = newListSession(m.db, kind)
        m.view = viewList
        m.entriesList.Select(0)
        m.refreshEntries()
}

func (m *appModel) refreshEntries() {
        if m.list == nil {
                m.entriesList.SetItems(nil)
                return
        }
        idx := m.entriesList.Index()
        grabbed := -1
        if m.list.editor.Dragging() {
                grabbed = m.list.editor.DragFrom()
        }
        entries := m.list.editor.Items()
        items := make([]list.Item, 0, len(entries))
        for i, it := range entries {
                items = append(items, entryItem{item: it, grabbed: i == grabbed})
        }
        m.entriesList.SetItems(items)
        if idx >= len(items) {
                idx = len(items) - 1
        }
        if idx < 0 {
                idx = 0
        }
        m.entriesList.Select(idx)
}

func (m appModel) selectedEntry() (model.Item, bool) {
        it, ok := m.entriesList.SelectedItem().(entryItem)
        if !ok {
                return model.Item{}, false
        }
        return it.item, true
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        ed := m.list.editor
        if ed.Dragging() {
                return m.updateDrag(msg)
        }
        switch msg.String() {
        case "q":
                if m.list.buffer.Dirty() {
                        m.modal = modalConfirmDiscard
                        m.confirmFocus = confirmFocusCancel
                        m.discardQuit = true
                        return m, nil
                }
                return m, tea.Quit
        case "esc", "backspace":
                if m.list.buffer.Dirty() {
                        m.modal = modalConfirmDiscard
                        m.confirmFocus = confirmFocusCancel
                        m.discardQuit = false
                        return m, nil
                }
                m.leaveList()
                return m, nil
        case "r":
                m.reloadFromDisk()
                return m, nil
        case "ctrl+s":
                if err := m.list.save(m.store, m.orgID); err != nil {
                        m.setFlash("save failed: "+err.Error(), true)
                        return m, nil
                }
                m.db = m.list.db
                m.refreshEntries()
                m.refreshKinds()
                m.refreshSchemes()
                m.setFlash("Saved "+kindLabel(m.list.kind), false)
                return m, nil
        case "a":
                ed.BeginAdd()
                return m.openInput(modalAddEntry, "")
        case "e":
                it, ok := m.selectedEntry()
                if !ok {
                        return m, nil
                }
                if err := ed.BeginEdit(it.Identity()); err != nil {
                        m.setFlash(err.Error(), true)
                        return m, nil
                }
                return m.openInput(modalEditEntry, ed.Session().Draft)
        case "x", " ":
                it, ok := m.selectedEntry()
                if !ok {
                        return m, nil
                }
                m.applyListOp(ed.SetEnabled(it.Identity(), !it.IsEnabled))
                return m, nil
        case "d", "delete":
                it, ok := m.selectedEntry()
                if !ok {
                        return m, nil
                }
                m.list.pendingDelete = it.Identity()
                m.modal = modalConfirmDelete
                m.confirmFocus = confirmFocusCancel
                return m, nil
        case "m":
                if _, ok := m.selectedEntry(); !ok {
                        return m, nil
                }
                if err := ed.BeginDrag(m.entriesList.Index()); err != nil {
                        m.setFlash(err.Error(), true)
                        return m, nil
                }
                m.refreshEntries()
                return m, nil
        }
        var cmd tea.Cmd
        m.entriesList, cmd = m.entriesList.Update(msg)
        return m, cmd
}

// updateDrag handles keys while an entry is grabbed: the cursor marks the drop
// position.
func (m appModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        ed := m.list.editor
        switch msg.String() {
        case "enter", "m":
                to := m.entriesList.Index()
                m.applyListOp(ed.EndDrag(to, true))
                m.entriesList.Select(to)
                return m, nil
        case "esc":
                from := ed.DragFrom()
                m.applyListOp(ed.EndDrag(from, false))
                m.entriesList.Select(from)
                return m, nil
        case "up", "k", "down", "j", "home", "g", "end", "G":
                var cmd tea.Cmd
                m.entriesList, cmd = m.entriesList.Update(msg)
                return m, cmd
        }
        return m, nil
}

func (m *appModel) applyListOp(err error) {
        if err != nil {
                var inUse mutate.InUseError
                if errors.As(err, &inUse) {
                        m.setFlash(fmt.Sprintf("Cannot delete: %v", err), true)
                } else {
                        m.setFlash(err.Error(), true)
                }
        }
        m.list.sync()
        m.refreshEntries()
}

func (m *appModel) leaveList() {
        m.list = nil
        m.view = viewKinds
        m.refreshKinds()
        m.saveTUIState()
}

func (m appModel) openInput(kind modalKind, value string) (tea.Model, tea.Cmd) {
        m.modal = kind
        m.inputHint = ""
        m.input.SetValue(value)
        m.input.CursorEnd()
        m.input.Focus()
        return m, textinput.Blink
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        switch m.modal {
        case modalAddEntry, modalEditEntry:
                return m.updateInputModal(msg)
        case modalConfirmDelete, modalConfirmDiscard:
                return m.updateConfirmModal(msg)
        }
        return m, nil
}

func (m appModel) updateInputModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        ed := m.list.editor
        switch msg.String() {
        case "esc":
                ed.Cancel()
                m.closeModal()
                return m, nil
        case "enter":
                err := ed.Commit()
                switch {
                case errors.Is(err, orderlist.ErrEmptyDraft):
                        m.inputHint = "Name cannot be empty"
                        return m, nil
                case err != nil:
                        // The session is kept so the operator can fix the name.
                        m.inputHint = err.Error()
                        return m, nil
                }
                adding := m.modal == modalAddEntry
                m.closeModal()
                m.list.sync()
                m.refreshEntries()
                if adding {
                        m.entriesList.Select(len(m.entriesList.Items()) - 1)
                }
                return m, nil
        }
        var cmd tea.Cmd
        m.input, cmd = m.input.Update(msg)
        ed.SetDraft(m.input.Value())
        m.inputHint = ""
        return m, cmd
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        confirmed := false
        switch msg.String() {
        case "tab", "shift+tab", "left", "right", "h", "l":
                if m.confirmFocus == confirmFocusConfirm {
                        m.confirmFocus = confirmFocusCancel
                } else {
                        m.confirmFocus = confirmFocusConfirm
                }
                return m, nil
        case "esc", "n":
                m.closeModal()
                return m, nil
        case "y":
                confirmed = true
        case "enter":
                confirmed = m.confirmFocus == confirmFocusConfirm
        default:
                return m, nil
        }

        kind := m.modal
        m.closeModal()
        if !confirmed {
                return m, nil
        }
        switch kind {
        case modalConfirmDelete:
                key := m.list.pendingDelete
                m.list.pendingDelete = ""
                m.applyListOp(m.list.editor.Remove(key))
        case modalConfirmDiscard:
                if m.discardQuit {
                        return m, tea.Quit
                }
                m.leaveList()
        }
        return m, nil
}

func (m *appModel) closeModal() {
        m.modal = modalNone
        m.inputHint = ""
        m.input.Blur()
        m.input.SetValue("")
}

func (m appModel) viewList() string {
        if m.list == nil {
                return ""
        }
        if len(m.entriesList.Items()) == 0 {
                return styleMuted().Render("  No entries yet. Press a to add one.")
        }
        return m.entriesList.View()
}
