package tui

import (
        "context"
        "errors"
        "fmt"
        "strings"
        "time"

        "issuecfg/internal/model"
        "issuecfg/internal/mutate"
        "issuecfg/internal/remap"
        "issuecfg/internal/store"

        "github.com/charmbracelet/bubbles/table"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
)

const publishTimeout = 30 * time.Second

type publishDataMsg struct {
        schemeID string
        groups   []model.TypeGroup
        err      error
}

type publishDoneMsg struct {
        schemeID string
        // seq identifies the request; replies for any other request are dropped.
        seq int
        err error
}

type sidebarRow struct {
        group int
        item  int
}

// publishSidebar reviews a draft scheme's status changes before publishing.
type publishSidebar struct {
        schemeID   string
        schemeName string
        publisher  *remap.Publisher

        table table.Model
        rows  []sidebarRow

        // pending is the request started by the last Begin, seq its number.
        pending     remap.Request
        seq         int
        showSummary bool
        lastErr     string

        // reloadPending is set by the publisher's refresh callback after a
        // successful publish; it outlives copies of the model.
        reloadPending *bool
}

func newPublishSidebar(s store.Store, sc model.Scheme) *publishSidebar {
        ps := &publishSidebar{
                schemeID:      sc.ID,
                schemeName:    sc.Name,
                reloadPending: new(bool),
        }
        pending := ps.reloadPending
        ps.publisher = remap.NewPublisher(mutate.PublishOperation(s), func() { *pending = true })
        ps.table = table.New(
                table.WithColumns(publishColumns(48)),
                table.WithFocused(true),
                table.WithHeight(10),
        )
        st := table.DefaultStyles()
        st.Header = st.Header.Bold(true).Foreground(colorAccent)
        st.Selected = st.Selected.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
        ps.table.SetStyles(st)
        return ps
}

func publishColumns(width int) []table.Column {
        // Three columns plus cell padding.
        w := width - 6
        if w < 24 {
                w = 24
        }
        typeW := w * 3 / 10
        fromW := w * 3 / 10
        return []table.Column{
                {Title: "Type", Width: typeW},
                {Title: "From", Width: fromW},
                {Title: "To", Width: w - typeW - fromW},
        }
}

func (ps *publishSidebar) resize(width, height int) {
        ps.table.SetColumns(publishColumns(width))
        ps.table.SetWidth(width)
        h := height - 6
        if h < 3 {
                h = 3
        }
        ps.table.SetHeight(h)
}

func loadPublishDataCmd(s store.Store, schemeID string) tea.Cmd {
        return func() tea.Msg {
                db, err := s.Load()
                if err != nil {
                        return publishDataMsg{schemeID: schemeID, err: err}
                }
                groups, err := db.PublishData(schemeID)
                return publishDataMsg{schemeID: schemeID, groups: groups, err: err}
        }
}

func runPublishCmd(p *remap.Publisher, req remap.Request, seq int) tea.Cmd {
        return func() tea.Msg {
                ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
                defer cancel()
                return publishDoneMsg{schemeID: req.SchemeID, seq: seq, err: p.Run(ctx, req)}
        }
}

func statusLabel(r model.StatusRef) string {
        if strings.TrimSpace(r.Name) != "" {
                return r.Name
        }
        return r.ID
}

func (ps *publishSidebar) rebuildRows() {
        overrides := ps.publisher.Overrides()
        var rows []table.Row
        ps.rows = ps.rows[:0]
        for gi, g := range ps.publisher.Groups() {
                typeName := g.IssueType.Name
                if typeName == "" {
                        typeName = g.IssueTypeID
                }
                typeCell := fmt.Sprintf("%s (%d)", typeName, g.IssueCount)
                for ii, it := range g.StatusChangeItems {
                        target, err := ps.publisher.Selected(g, it)
                        to := statusLabel(target)
                        if err != nil {
                                to = "! " + err.Error()
                        } else if _, ok := overrides[it.OldStatus.ID]; ok {
                                to += " *"
                        }
                        rows = append(rows, table.Row{typeCell, statusLabel(it.OldStatus), to})
                        ps.rows = append(ps.rows, sidebarRow{group: gi, item: ii})
                }
        }
        cursor := ps.table.Cursor()
        ps.table.SetRows(rows)
        if cursor >= len(rows) {
                cursor = len(rows) - 1
        }
        if cursor < 0 {
                cursor = 0
        }
        ps.table.SetCursor(cursor)
}

// cycle moves the selected row's target by step among its candidates. The
// override applies to every group with the same source status.
func (ps *publishSidebar) cycle(step int) error {
        i := ps.table.Cursor()
        if i < 0 || i >= len(ps.rows) {
                return nil
        }
        r := ps.rows[i]
        g := ps.publisher.Groups()[r.group]
        it := g.StatusChangeItems[r.item]
        next, err := remap.CycleTarget(g, it, ps.publisher.Overrides(), step)
        if err != nil {
                return err
        }
        ps.publisher.SetOverride(it.OldStatus.ID, next.ID)
        ps.rebuildRows()
        return nil
}

func (ps *publishSidebar) view(spin string, width int) string {
        var b strings.Builder
        b.WriteString(styleHeader().Render("Publish " + ps.schemeName))
        b.WriteString("\n\n")
        p := ps.publisher
        if p.Loading() {
                b.WriteString(spin + " Loading issue types…")
                return b.String()
        }
        if len(ps.rows) == 0 {
                b.WriteString(styleMuted().Render("No issues need to move."))
        } else {
                b.WriteString(ps.table.View())
        }
        if ps.showSummary {
                if md, err := remap.RenderMarkdown(ps.schemeName, p.Groups(), p.Overrides()); err == nil {
                        b.WriteString("\n\n")
                        b.WriteString(renderMarkdown(md, width-2))
                }
        }
        b.WriteString("\n\n")
        if p.InFlight() {
                b.WriteString(spin + " Publishing…")
        } else if lines := ps.overrideLines(); len(lines) > 0 {
                st := lipgloss.NewStyle().Foreground(colorOverrideFg)
                b.WriteString(st.Render(fmt.Sprintf("%d override(s)", len(lines))))
                for _, l := range lines {
                        b.WriteString("\n")
                        b.WriteString(st.Render("  " + l))
                }
        }
        if ps.lastErr != "" {
                b.WriteString("\n")
                b.WriteString(styleError().Render(ps.lastErr))
        }
        return b.String()
}

// overrideLines describes each override as "source → target" by status name.
func (ps *publishSidebar) overrideLines() []string {
        names := map[string]string{}
        for _, g := range ps.publisher.Groups() {
                for _, it := range g.StatusChangeItems {
                        names[it.OldStatus.ID] = it.OldStatus.Name
                }
                for _, t := range g.CandidateTargets {
                        names[t.ID] = t.Name
                }
        }
        name := func(id string) string {
                if n := names[id]; n != "" {
                        return n
                }
                return id
        }
        o := ps.publisher.Overrides()
        var out []string
        for _, src := range o.Sources() {
                out = append(out, name(src)+" → "+name(o[src]))
        }
        return out
}

func (m appModel) openPublish(sc model.Scheme) (tea.Model, tea.Cmd) {
        if m.pub != nil && m.pub.publisher.InFlight() {
                m.setFlash("Publish already in progress", true)
                return m, nil
        }
        m.pub = newPublishSidebar(m.store, sc)
        m.pub.publisher.SetLoading(true)
        m.resizeLists()
        return m, tea.Batch(m.spinner.Tick, loadPublishDataCmd(m.store, sc.ID))
}

func (m appModel) onPublishData(msg publishDataMsg) (tea.Model, tea.Cmd) {
        if m.pub == nil || msg.schemeID != m.pub.schemeID || !m.pub.publisher.Loading() {
                return m, nil
        }
        if msg.err != nil {
                m.pub = nil
                m.resizeLists()
                m.setFlash("load failed: "+msg.err.Error(), true)
                return m, nil
        }
        m.pub.publisher.Open(msg.groups)
        m.pub.rebuildRows()
        return m, nil
}

func (m appModel) onPublishDone(msg publishDoneMsg) (tea.Model, tea.Cmd) {
        if m.pub == nil || msg.schemeID != m.pub.schemeID || msg.seq != m.pub.seq || !m.pub.publisher.InFlight() {
                return m, nil
        }
        ps := m.pub
        if err := ps.publisher.Finish(msg.err); err != nil {
                ps.lastErr = "Publish failed: " + err.Error()
                return m, nil
        }
        m.pub = nil
        m.resizeLists()
        if *ps.reloadPending {
                m.reloadFromDisk()
        }
        m.setFlash(fmt.Sprintf("Published %s (%d changes)", ps.schemeName, remap.CountChanges(ps.pending.Changes)), false)
        return m, nil
}

func (m appModel) updatePublish(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        ps := m.pub
        p := ps.publisher
        switch msg.String() {
        case "esc", "q":
                if p.InFlight() {
                        // The sidebar stays until the request is answered.
                        m.setFlash("Publish in progress, wait for it to finish", true)
                        return m, nil
                }
                p.Close()
                m.pub = nil
                m.resizeLists()
                return m, nil
        }
        if p.Loading() {
                return m, nil
        }
        switch msg.String() {
        case "h", "left":
                if err := ps.cycle(-1); err != nil {
                        ps.lastErr = err.Error()
                }
                return m, nil
        case "l", "right":
                if err := ps.cycle(1); err != nil {
                        ps.lastErr = err.Error()
                }
                return m, nil
        case "s":
                ps.showSummary = !ps.showSummary
                return m, nil
        case "enter", "p":
                req, err := p.Begin(model.OrgContext{OrganizationID: m.orgID}, ps.schemeID)
                if err != nil {
                        if errors.Is(err, remap.ErrPublishInFlight) {
                                m.setFlash("Publish already in progress", true)
                        } else {
                                ps.lastErr = err.Error()
                        }
                        return m, nil
                }
                m.publishSeq++
                ps.pending = req
                ps.seq = m.publishSeq
                ps.lastErr = ""
                return m, tea.Batch(m.spinner.Tick, runPublishCmd(p, req, ps.seq))
        }
        var cmd tea.Cmd
        ps.table, cmd = ps.table.Update(msg)
        return m, cmd
}
