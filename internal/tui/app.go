package tui

import (
        "fmt"
        "strings"

        "issuecfg/internal/model"
        "issuecfg/internal/store"

        "github.com/charmbracelet/bubbles/list"
        "github.com/charmbracelet/bubbles/spinner"
        "github.com/charmbracelet/bubbles/textinput"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
        "github.com/golang/glog"
)

type view int

const (
        viewKinds view = iota
        viewList
        viewSchemes
)

func (v view) String() string {
        switch v {
        case viewList:
                return "list"
        case viewSchemes:
                return "schemes"
        default:
                return "kinds"
        }
}

func parseView(s string) view {
        switch s {
        case "list":
                return viewList
        case "schemes":
                return viewSchemes
        default:
                return viewKinds
        }
}

type appModel struct {
        store store.Store
        db    *store.DB
        orgID string

        width  int
        height int

        view         view
        modal        modalKind
        confirmFocus confirmModalFocus
        discardQuit  bool
        input        textinput.Model
        inputHint    string

        kindsList   list.Model
        entriesList list.Model
        schemesList list.Model

        // list is the open list editor (viewList only).
        list *listSession
        // pub is the publish sidebar; nil when closed.
        pub *publishSidebar
        // publishSeq numbers publish requests across sidebars.
        publishSeq int

        spinner spinner.Model

        flash    string
        flashErr bool
}

func newAppModel(s store.Store, db *store.DB, orgID string) appModel {
        if strings.TrimSpace(orgID) == "" {
                orgID = db.OrgID
        }
        in := textinput.New()
        in.Prompt = "> "
        in.CharLimit = 80

        sp := spinner.New()
        sp.Spinner = spinner.Line

        m := appModel{
                store:   s,
                db:      db,
                orgID:   orgID,
                width:   100,
                height:  30,
                view:    viewKinds,
                input:   in,
                spinner: sp,
        }
        m.kindsList = newList("Lists", []list.Item{})
        m.entriesList = newList("Entries", []list.Item{})
        m.schemesList = newList("Schemes", []list.Item{})
        m.refreshKinds()
        m.refreshSchemes()
        m.resizeLists()
        return m
}

// restore reopens the screen recorded in st. Unknown kinds fall back to the kinds view.
func (m *appModel) restore(st *store.TUIState) {
        if st == nil {
                return
        }
        switch parseView(st.View) {
        case viewList:
                if k, ok := model.ParseListKind(string(st.Kind)); ok {
                        m.openList(k)
                }
        case viewSchemes:
                m.view = viewSchemes
                for i, it := range m.schemesList.Items() {
                        if si, ok := it.(schemeItem); ok && si.scheme.ID == st.SelectedSchemeID {
                                m.schemesList.Select(i)
                        }
                }
        }
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
        switch msg := msg.(type) {
        case tea.WindowSizeMsg:
                m.width = msg.Width
                m.height = msg.Height
                m.resizeLists()
                return m, nil

        case spinner.TickMsg:
                if m.pub == nil || !(m.pub.publisher.Loading() || m.pub.publisher.InFlight()) {
                        return m, nil
                }
                var cmd tea.Cmd
                m.spinner, cmd = m.spinner.Update(msg)
                return m, cmd

        case publishDataMsg:
                return m.onPublishData(msg)

        case publishDoneMsg:
                return m.onPublishDone(msg)

        case tea.KeyMsg:
                if msg.String() == "ctrl+c" {
                        return m, tea.Quit
                }
                if m.modal != modalNone {
                        return m.updateModal(msg)
                }
                if m.sidebarOpen() {
                        return m.updatePublish(msg)
                }
                m.flash = ""
                switch m.view {
                case viewList:
                        return m.updateList(msg)
                case viewSchemes:
                        return m.updateSchemes(msg)
                default:
                        return m.updateKinds(msg)
                }
        }
        if m.modal == modalAddEntry || m.modal == modalEditEntry {
                // Cursor blink.
                var cmd tea.Cmd
                m.input, cmd = m.input.Update(msg)
                return m, cmd
        }
        return m, nil
}

func (m appModel) updateKinds(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        switch msg.String() {
        case "q":
                return m, tea.Quit
        case "r":
                m.reloadFromDisk()
                return m, nil
        case "enter":
                it, ok := m.kindsList.SelectedItem().(kindItem)
                if !ok {
                        return m, nil
                }
                if it.schemes {
                        m.view = viewSchemes
                        m.refreshSchemes()
                } else {
                        m.openList(it.kind)
                }
                m.saveTUIState()
                return m, nil
        }
        var cmd tea.Cmd
        m.kindsList, cmd = m.kindsList.Update(msg)
        return m, cmd
}

func (m appModel) updateSchemes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        switch msg.String() {
        case "q":
                return m, tea.Quit
        case "esc", "backspace":
                m.view = viewKinds
                m.refreshKinds()
                m.saveTUIState()
                return m, nil
        case "r":
                m.reloadFromDisk()
                return m, nil
        case "enter", "p":
                it, ok := m.schemesList.SelectedItem().(schemeItem)
                if !ok {
                        return m, nil
                }
                if it.scheme.State != model.SchemeDraft {
                        m.setFlash(fmt.Sprintf("%s is already published", it.scheme.Name), false)
                        return m, nil
                }
                m.saveTUIState()
                return m.openPublish(it.scheme)
        }
        var cmd tea.Cmd
        m.schemesList, cmd = m.schemesList.Update(msg)
        return m, cmd
}

func (m *appModel) setFlash(s string, isErr bool) {
        m.flash = s
        m.flashErr = isErr
}

func (m *appModel) resizeLists() {
        // Leave room for header/footer.
        h := m.height - 6
        if h < 3 {
                h = 3
        }
        w := m.width
        if m.sidebarOpen() {
                w = m.width - m.sidebarWidth() - 1
        }
        if w < 10 {
                w = 10
        }
        m.kindsList.SetSize(w, h)
        m.entriesList.SetSize(w, h)
        m.schemesList.SetSize(w, h)
        if m.pub != nil {
                m.pub.resize(m.sidebarWidth(), h)
        }
}

func (m appModel) sidebarOpen() bool {
        return m.pub != nil && (m.pub.publisher.Visible() || m.pub.publisher.Loading())
}

func (m appModel) sidebarWidth() int {
        w := m.width / 2
        if w < 40 {
                w = 40
        }
        if w > 72 {
                w = 72
        }
        return w
}

func (m *appModel) refreshKinds() {
        idx := m.kindsList.Index()
        var items []list.Item
        for _, k := range model.ListKinds() {
                items = append(items, kindItem{kind: k, count: len(m.db.Lists[k])})
        }
        items = append(items, kindItem{schemes: true, count: len(m.db.Schemes)})
        m.kindsList.SetItems(items)
        if idx >= 0 && idx < len(items) {
                m.kindsList.Select(idx)
        }
}

func (m *appModel) refreshSchemes() {
        idx := m.schemesList.Index()
        items := make([]list.Item, 0, len(m.db.Schemes))
        for _, sc := range m.db.Schemes {
                items = append(items, schemeItem{scheme: sc})
        }
        m.schemesList.SetItems(items)
        if idx >= 0 && idx < len(items) {
                m.schemesList.Select(idx)
        }
}

func (m *appModel) reloadFromDisk() {
        db, err := m.store.Load()
        if err != nil {
                m.setFlash("reload failed: "+err.Error(), true)
                return
        }
        m.db = db
        if m.list != nil {
                if m.list.buffer.Dirty() {
                        // Keep staged work; delete guards read the fresh state.
                        m.list.db = db
                } else {
                        m.list.db = db
                        m.list.buffer.Reset(db.List(m.list.kind))
                        m.list.sync()
                        m.refreshEntries()
                }
        }
        m.refreshKinds()
        m.refreshSchemes()
}

func (m appModel) saveTUIState() {
        st := &store.TUIState{View: m.view.String()}
        if m.list != nil {
                st.Kind = m.list.kind
        }
        if it, ok := m.schemesList.SelectedItem().(schemeItem); ok {
                st.SelectedSchemeID = it.scheme.ID
        }
        if err := m.store.SaveTUIState(st); err != nil {
                glog.Warningf("tui: save state: %v", err)
        }
}

func (m appModel) View() string {
        header := styleHeader().Render("issuecfg") +
                styleMuted().Render(fmt.Sprintf("  org=%s  %s", emptyAsDash(m.orgID), m.breadcrumb()))

        var body string
        switch m.view {
        case viewList:
                body = m.viewList()
        case viewSchemes:
                body = m.schemesList.View()
        default:
                body = m.kindsList.View()
        }

        bodyH := m.height - 4
        if bodyH < 3 {
                bodyH = 3
        }
        if m.sidebarOpen() {
                body = splitPanes(body, m.pub.view(m.spinner.View(), m.sidebarWidth()), m.width, bodyH, m.sidebarWidth())
        }

        switch m.modal {
        case modalAddEntry:
                body = overlay(m.width, bodyH, renderInputModal(m.width, "Add "+kindLabel(m.list.kind), m.input.View(), m.inputHint))
        case modalEditEntry:
                body = overlay(m.width, bodyH, renderInputModal(m.width, "Rename", m.input.View(), m.inputHint))
        case modalConfirmDelete:
                it, _ := m.list.editor.Lookup(m.list.pendingDelete)
                body = overlay(m.width, bodyH, renderConfirmModal(m.width, "Delete entry", fmt.Sprintf("Delete %q?", it.Value), "Delete", "Cancel", m.confirmFocus))
        case modalConfirmDiscard:
                body = overlay(m.width, bodyH, renderConfirmModal(m.width, "Unsaved changes", "Discard staged changes?", "Discard", "Keep editing", m.confirmFocus))
        }

        flash := ""
        if m.flash != "" {
                if m.flashErr {
                        flash = styleError().Render(m.flash)
                } else {
                        flash = lipgloss.NewStyle().Foreground(colorChromeFg).Render(m.flash)
                }
        }
        footer := styleMuted().Render(m.footerHelp())
        return strings.Join([]string{header, body, flash, footer}, "\n")
}

func (m appModel) breadcrumb() string {
        switch m.view {
        case viewList:
                crumb := "lists > " + kindLabel(m.list.kind)
                if m.list.buffer.Dirty() {
                        crumb += " (modified)"
                }
                return crumb
        case viewSchemes:
                return "schemes"
        default:
                return "lists"
        }
}

func (m appModel) footerHelp() string {
        if m.sidebarOpen() {
                return "j/k: row  h/l: target  enter: publish  s: summary  esc: close"
        }
        switch m.view {
        case viewList:
                if m.list.editor.Dragging() {
                        return "j/k: move  enter: drop  esc: cancel"
                }
                return "a: add  e: rename  x: enable/disable  d: delete  m: move  ctrl+s: save  r: reload  esc: back"
        case viewSchemes:
                return "enter/p: review & publish  r: reload  esc: back  q: quit"
        default:
                return "enter: open  r: reload  q: quit"
        }
}

func emptyAsDash(s string) string {
        if strings.TrimSpace(s) == "" {
                return "-"
        }
        return s
}
