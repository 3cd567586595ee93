package store

import (
        "time"

        "issuecfg/internal/model"
)

// Seed fills an empty DB with a small working organization: statuses, issue
// types, priorities, a handful of issues and one draft scheme awaiting publish.
// It is a no-op when the DB already has statuses.
func (s Store) Seed(db *DB, orgID string) {
        if len(db.Lists[model.ListKindStatus]) > 0 {
                return
        }
        now := time.Now().UTC()
        if db.OrgID == "" {
                db.OrgID = orgID
        }

        db.SetList(model.ListKindStatus, []model.Item{
                {ID: "backlog", Value: "Backlog", IsEnabled: true},
                {ID: "todo", Value: "To do", IsEnabled: true},
                {ID: "in-progress", Value: "In progress", IsEnabled: true},
                {ID: "in-review", Value: "In review", IsEnabled: true},
                {ID: "done", Value: "Done", IsEnabled: true},
        })
        db.SetList(model.ListKindIssueType, []model.Item{
                {ID: "story", Value: "Story", IsEnabled: true},
                {ID: "bug", Value: "Bug", IsEnabled: true},
                {ID: "task", Value: "Task", IsEnabled: true},
        })
        db.IssueTypes = []model.IssueType{
                {ID: "story", Name: "Story", Icon: "◆", Colour: "#36B37E"},
                {ID: "bug", Name: "Bug", Icon: "●", Colour: "#FF5630"},
                {ID: "task", Name: "Task", Icon: "■", Colour: "#0065FF"},
        }
        db.SetList(model.ListKindPriority, []model.Item{
                {ID: "p-high", Value: "High", IsEnabled: true},
                {ID: "p-medium", Value: "Medium", IsEnabled: true},
                {ID: "p-low", Value: "Low", IsEnabled: true},
        })

        issues := []struct {
                title, typ, status string
        }{
                {"Sign-up form validation", "story", "in-review"},
                {"Password reset email", "story", "backlog"},
                {"Crash on empty project name", "bug", "in-review"},
                {"Duplicate notifications", "bug", "backlog"},
                {"Rotate API keys", "task", "todo"},
                {"Update onboarding copy", "story", "todo"},
        }
        for _, is := range issues {
                db.Issues = append(db.Issues, model.Issue{
                        ID:          s.NextID(db, "iss"),
                        Title:       is.title,
                        IssueTypeID: is.typ,
                        StatusID:    is.status,
                        CreatedAt:   now,
                        UpdatedAt:   now,
                })
        }

        ref := func(id string) model.StatusRef {
                for _, it := range db.Lists[model.ListKindStatus] {
                        if it.ID == id {
                                return model.StatusRef{ID: it.ID, Name: it.Value}
                        }
                }
                return model.StatusRef{ID: id}
        }
        targets := []model.StatusRef{ref("todo"), ref("in-progress"), ref("done")}
        group := func(typ string, pairs ...[2]string) model.TypeGroup {
                g := model.TypeGroup{IssueTypeID: typ, CandidateTargets: targets}
                if meta, ok := db.FindIssueType(typ); ok {
                        g.IssueType = *meta
                }
                for _, p := range pairs {
                        g.StatusChangeItems = append(g.StatusChangeItems, model.StatusChangeItem{
                                OldStatus: ref(p[0]),
                                NewStatus: ref(p[1]),
                        })
                }
                return g
        }
        db.Schemes = append(db.Schemes, model.Scheme{
                ID:        s.NextID(db, "sch"),
                OrgID:     db.OrgID,
                Name:      "Simplified workflow",
                State:     model.SchemeDraft,
                CreatedAt: now,
                Groups: []model.TypeGroup{
                        group("story", [2]string{"backlog", "todo"}, [2]string{"in-review", "in-progress"}),
                        group("bug", [2]string{"backlog", "todo"}, [2]string{"in-review", "done"}),
                },
        })
}
