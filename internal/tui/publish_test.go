package tui

import (
        "context"
        "errors"
        "strings"
        "testing"

        "issuecfg/internal/model"
        "issuecfg/internal/mutate"
        "issuecfg/internal/remap"
)

func openSeededSidebar(t *testing.T) appModel {
        t.Helper()
        m, s := newSeededModel(t)
        m = press(t, m, "j", "j", "j", "enter")
        if m.view != viewSchemes {
                t.Fatalf("expected schemes view; got %v", m.view)
        }
        m = press(t, m, "p")
        if m.pub == nil || !m.pub.publisher.Loading() {
                t.Fatalf("expected sidebar loading")
        }
        m = send(t, m, loadPublishDataCmd(s, m.pub.schemeID)())
        if !m.pub.publisher.Visible() {
                t.Fatalf("expected sidebar visible after load")
        }
        return m
}

func TestPublishSidebar_LoadsRows(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        if got := len(m.pub.rows); got != 4 {
                t.Fatalf("expected 4 change rows; got %d", got)
        }
        rows := m.pub.table.Rows()
        if !strings.HasPrefix(rows[0][0], "Story (3)") || rows[0][1] != "Backlog" || rows[0][2] != "To do" {
                t.Fatalf("unexpected first row: %#v", rows[0])
        }
}

func TestPublishSidebar_OverrideAppliesAcrossGroups(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        m = press(t, m, "l")
        if got := m.pub.publisher.Overrides()["backlog"]; got != "in-progress" {
                t.Fatalf("expected backlog -> in-progress override; got %q", got)
        }
        for _, row := range m.pub.table.Rows() {
                if row[1] == "Backlog" && row[2] != "In progress *" {
                        t.Fatalf("expected every Backlog row overridden; got %#v", row)
                }
        }
        m = press(t, m, "h")
        if got := m.pub.publisher.Overrides()["backlog"]; got != "todo" {
                t.Fatalf("expected override cycled back to todo; got %q", got)
        }
}

func TestPublishSidebar_PublishSuccess(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        m = press(t, m, "l", "enter")
        ps := m.pub
        if !ps.publisher.InFlight() {
                t.Fatalf("expected publish in flight")
        }
        m = press(t, m, "enter")
        if !strings.Contains(m.flash, "already in progress") {
                t.Fatalf("expected in-flight guard flash; got %q", m.flash)
        }

        m = send(t, m, runPublishCmd(ps.publisher, ps.pending, ps.seq)())
        if m.pub != nil {
                t.Fatalf("expected sidebar closed after success")
        }
        if !strings.Contains(m.flash, "Published") {
                t.Fatalf("expected success flash; got %q", m.flash)
        }
        sc, ok := m.db.FindScheme("sch-1")
        if !ok || sc.State != model.SchemeActive {
                t.Fatalf("expected reloaded active scheme; got %#v", sc)
        }
        for id, want := range map[string]string{
                "iss-1": "todo",
                "iss-2": "in-progress",
                "iss-3": "todo",
                "iss-4": "in-progress",
                "iss-5": "todo",
        } {
                is, ok := m.db.FindIssue(id)
                if !ok || is.StatusID != want {
                        t.Fatalf("issue %s: expected %s; got %#v", id, want, is)
                }
        }
}

func TestPublishSidebar_FailureKeepsOverrides(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        m = press(t, m, "l", "enter")
        m = send(t, m, publishDoneMsg{schemeID: "sch-1", seq: m.pub.seq, err: errors.New("boom")})
        if m.pub == nil || !m.pub.publisher.Visible() {
                t.Fatalf("expected sidebar to stay open after failure")
        }
        if m.pub.publisher.InFlight() {
                t.Fatalf("expected in-flight cleared")
        }
        if got := m.pub.publisher.Overrides()["backlog"]; got != "in-progress" {
                t.Fatalf("expected override kept; got %q", got)
        }
        if !strings.Contains(m.pub.lastErr, "boom") {
                t.Fatalf("expected error shown; got %q", m.pub.lastErr)
        }
        sc, _ := m.db.FindScheme("sch-1")
        if sc.State != model.SchemeDraft {
                t.Fatalf("expected scheme still draft")
        }
}

func TestPublishSidebar_CloseDiscardsOverrides(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        m = press(t, m, "l", "esc")
        if m.pub != nil {
                t.Fatalf("expected sidebar closed")
        }
        m = press(t, m, "p")
        if m.pub == nil || len(m.pub.publisher.Overrides()) != 0 {
                t.Fatalf("expected fresh sidebar without overrides")
        }
}

func TestPublishSidebar_OverrideLinesNameStatuses(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        if got := m.pub.overrideLines(); len(got) != 0 {
                t.Fatalf("expected no override lines; got %#v", got)
        }
        m = press(t, m, "l")
        got := m.pub.overrideLines()
        if len(got) != 1 || got[0] != "Backlog → In progress" {
                t.Fatalf("unexpected override lines: %#v", got)
        }
}

func TestPublishSidebar_EscWhileInFlightKeepsSidebar(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        m = press(t, m, "l", "enter")
        ps := m.pub
        m = press(t, m, "esc")
        if m.pub != ps || !m.pub.publisher.Visible() {
                t.Fatalf("expected sidebar kept open while publishing")
        }
        if !strings.Contains(m.flash, "Publish in progress") {
                t.Fatalf("expected in-progress flash; got %q", m.flash)
        }
        // Keys never reach the list editor while the sidebar is up.
        m = press(t, m, "backspace", "enter")
        if m.view != viewSchemes || m.list != nil {
                t.Fatalf("expected schemes view without a list session; got %v", m.view)
        }

        m = send(t, m, runPublishCmd(ps.publisher, ps.pending, ps.seq)())
        if m.pub != nil {
                t.Fatalf("expected sidebar closed after success")
        }
        m = press(t, m, "esc")
        if m.pub != nil {
                t.Fatalf("expected sidebar to stay closed")
        }
}

func TestPublishSidebar_IgnoresStaleReplies(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        m = press(t, m, "l", "enter")
        ps := m.pub
        if ps.seq == 0 {
                t.Fatalf("expected request to be numbered")
        }

        m = send(t, m, publishDoneMsg{schemeID: ps.schemeID, seq: ps.seq - 1})
        if m.pub != ps || !ps.publisher.InFlight() {
                t.Fatalf("expected stale reply ignored")
        }
        m = send(t, m, publishDoneMsg{schemeID: ps.schemeID, seq: ps.seq + 1, err: errors.New("late")})
        if !ps.publisher.InFlight() || ps.lastErr != "" {
                t.Fatalf("expected reply for another request ignored; lastErr=%q", ps.lastErr)
        }

        m = send(t, m, runPublishCmd(ps.publisher, ps.pending, ps.seq)())
        if m.pub != nil {
                t.Fatalf("expected matching reply to close the sidebar")
        }
        sc, _ := m.db.FindScheme(ps.schemeID)
        if sc.State != model.SchemeActive {
                t.Fatalf("expected active scheme; got %q", sc.State)
        }
}

func TestPublishSidebar_RefusesSecondSidebarWhileInFlight(t *testing.T) {
        t.Parallel()

        m := openSeededSidebar(t)
        m = press(t, m, "enter")
        ps := m.pub
        sc, _ := m.db.FindScheme(ps.schemeID)
        mm, cmd := m.openPublish(*sc)
        m = mm.(appModel)
        if cmd != nil || m.pub != ps {
                t.Fatalf("expected the in-flight sidebar to be kept")
        }
        if !strings.Contains(m.flash, "already in progress") {
                t.Fatalf("expected refusal flash; got %q", m.flash)
        }
        if _, err := m.pub.publisher.Begin(model.OrgContext{OrganizationID: "org-1"}, ps.schemeID); !errors.Is(err, remap.ErrPublishInFlight) {
                t.Fatalf("expected ErrPublishInFlight; got %v", err)
        }
}

func TestListSave_KeepsConcurrentPublish(t *testing.T) {
        t.Parallel()

        m, s := newSeededModel(t)
        m = press(t, m, "enter", "x")
        if !m.list.buffer.Dirty() {
                t.Fatalf("expected staged toggle")
        }

        // Another writer publishes the draft while the list is being edited.
        data := loadPublishDataCmd(s, "sch-1")().(publishDataMsg)
        if data.err != nil {
                t.Fatalf("load publish data: %v", data.err)
        }
        changes, err := remap.BuildChangeSet(data.groups, nil)
        if err != nil {
                t.Fatalf("BuildChangeSet: %v", err)
        }
        op := mutate.PublishOperation(s)
        if err := op(context.Background(), model.OrgContext{OrganizationID: "org-1"}, "sch-1", changes); err != nil {
                t.Fatalf("publish: %v", err)
        }
        published := mustLoad(t, s)

        m = press(t, m, "ctrl+s")
        if m.list.buffer.Dirty() {
                t.Fatalf("expected clean buffer after save; flash %q", m.flash)
        }
        got := mustLoad(t, s)
        sc, ok := got.FindScheme("sch-1")
        if !ok || sc.State != model.SchemeActive {
                t.Fatalf("expected published scheme kept; got %#v", sc)
        }
        for _, want := range published.Issues {
                is, ok := got.FindIssue(want.ID)
                if !ok || is.StatusID != want.StatusID {
                        t.Fatalf("issue %s: expected %s; got %#v", want.ID, want.StatusID, is)
                }
        }
        if got.List(model.ListKindStatus)[0].IsEnabled {
                t.Fatalf("expected toggle persisted")
        }
        if sc, _ := m.db.FindScheme("sch-1"); sc.State != model.SchemeActive {
                t.Fatalf("expected model to pick up the published scheme; got %q", sc.State)
        }
}
