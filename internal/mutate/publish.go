package mutate

import (
        "fmt"
        "strings"
        "time"

        "issuecfg/internal/model"
        "issuecfg/internal/statusutil"
        "issuecfg/internal/store"

        "github.com/golang/glog"
)

type ApplyResult struct {
        Scheme *model.Scheme
        // Moved counts issues whose status changed, per issue type id.
        Moved        map[string]int
        EventPayload map[string]any
}

// ApplyChangeSet publishes a draft scheme: issues of each listed issue type move
// from their old status to the new one, and the scheme becomes active.
// Nothing is modified unless the whole change set is valid.
// Callers are responsible for saving db and appending the scheme.publish event.
func ApplyChangeSet(db *store.DB, schemeID string, changes []model.TypeChange, now time.Time) (ApplyResult, error) {
        schemeID = strings.TrimSpace(schemeID)
        sc, ok := db.FindScheme(schemeID)
        if !ok {
                return ApplyResult{}, NotFoundError{Kind: "scheme", ID: schemeID}
        }
        if sc.State != model.SchemeDraft {
                return ApplyResult{}, fmt.Errorf("%s: %w", schemeID, ErrSchemeNotDraft)
        }

        statuses := db.List(model.ListKindStatus)
        moves := map[string]map[string]string{}
        for _, tc := range changes {
                if _, ok := moves[tc.IssueTypeID]; !ok {
                        moves[tc.IssueTypeID] = map[string]string{}
                }
                for _, ci := range tc.StatusChangeItems {
                        if !statusutil.ValidateStatusID(statuses, ci.NewStatus.ID) {
                                return ApplyResult{}, fmt.Errorf("%s: %q: %w", tc.IssueTypeID, ci.NewStatus.ID, ErrInvalidStatus)
                        }
                        moves[tc.IssueTypeID][ci.OldStatus.ID] = ci.NewStatus.ID
                }
        }

        moved := map[string]int{}
        for i := range db.Issues {
                is := &db.Issues[i]
                to, ok := moves[is.IssueTypeID][is.StatusID]
                if !ok || to == is.StatusID {
                        continue
                }
                glog.V(1).Infof("mutate: %s %s -> %s", is.ID, is.StatusID, to)
                is.StatusID = to
                is.UpdatedAt = now
                moved[is.IssueTypeID]++
        }

        sc.State = model.SchemeActive
        sc.Groups = nil
        publishedAt := now
        sc.PublishedAt = &publishedAt

        total := 0
        for _, n := range moved {
                total += n
        }
        return ApplyResult{
                Scheme: sc,
                Moved:  moved,
                EventPayload: map[string]any{
                        "schemeId": schemeID,
                        "changes":  changes,
                        "moved":    total,
                },
        }, nil
}
