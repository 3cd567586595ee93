package mutate

import (
        "strings"

        "issuecfg/internal/model"
        "issuecfg/internal/store"
)

// EnsureUnused blocks removing a list entry that issues or draft schemes still refer to.
func EnsureUnused(db *store.DB, kind model.ListKind, id string) error {
        id = strings.TrimSpace(id)
        if db == nil || id == "" {
                return nil
        }
        switch kind {
        case model.ListKindStatus:
                n := 0
                for _, is := range db.Issues {
                        if is.StatusID == id {
                                n++
                        }
                }
                if n > 0 {
                        return InUseError{Kind: string(kind), ID: id, Count: n, By: "issue(s)"}
                }
                n = 0
                for _, sc := range db.Schemes {
                        if sc.State == model.SchemeDraft && schemeRefersToStatus(sc, id) {
                                n++
                        }
                }
                if n > 0 {
                        return InUseError{Kind: string(kind), ID: id, Count: n, By: "draft scheme(s)"}
                }
        case model.ListKindIssueType:
                n := db.IssueCountsByType()[id]
                if n > 0 {
                        return InUseError{Kind: string(kind), ID: id, Count: n, By: "issue(s)"}
                }
        }
        return nil
}

func schemeRefersToStatus(sc model.Scheme, id string) bool {
        for _, g := range sc.Groups {
                for _, c := range g.CandidateTargets {
                        if c.ID == id {
                                return true
                        }
                }
                for _, it := range g.StatusChangeItems {
                        if it.OldStatus.ID == id || it.NewStatus.ID == id {
                                return true
                        }
                }
        }
        return false
}

// EnsureUniqueValue rejects value when another entry (other than except) already
// uses it, compared case-insensitively.
func EnsureUniqueValue(items []model.Item, value, except string) error {
        v := strings.TrimSpace(value)
        for _, it := range items {
                if except != "" && it.Matches(except) {
                        continue
                }
                if strings.EqualFold(strings.TrimSpace(it.Value), v) {
                        return DuplicateValueError{Value: v}
                }
        }
        return nil
}
