package store

import (
        "fmt"

        "issuecfg/internal/model"
)

// PublishData returns the pending type groups of a scheme, with issue counts and
// issue type metadata taken from the current state.
func (db *DB) PublishData(schemeID string) ([]model.TypeGroup, error) {
        sc, ok := db.FindScheme(schemeID)
        if !ok {
                return nil, fmt.Errorf("scheme not found: %s", schemeID)
        }
        counts := db.IssueCountsByType()
        out := make([]model.TypeGroup, 0, len(sc.Groups))
        for _, g := range sc.Groups {
                g.IssueType = db.IssueTypeMeta(g.IssueTypeID)
                g.IssueCount = counts[g.IssueTypeID]
                g.StatusChangeItems = append([]model.StatusChangeItem(nil), g.StatusChangeItems...)
                g.CandidateTargets = append([]model.StatusRef(nil), g.CandidateTargets...)
                out = append(out, g)
        }
        return out, nil
}

// IssueTypeMeta returns display metadata for an issue type. The issue-type list
// entry wins for the name; icon and colour come from the metadata table.
func (db *DB) IssueTypeMeta(id string) model.IssueType {
        out := model.IssueType{ID: id, Name: id}
        if meta, ok := db.FindIssueType(id); ok {
                out = *meta
        }
        for _, it := range db.Lists[model.ListKindIssueType] {
                if it.ID == id {
                        out.Name = it.Value
                        break
                }
        }
        return out
}
