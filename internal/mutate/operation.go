package mutate

import (
        "context"
        "fmt"
        "strings"
        "time"

        "issuecfg/internal/model"
        "issuecfg/internal/remap"
        "issuecfg/internal/store"

        "github.com/golang/glog"
)

// PublishOperation is the store-backed publish endpoint. Each call loads its own
// copy of the state, so it may run off the UI goroutine.
func PublishOperation(s store.Store) remap.OperationFunc {
        return func(ctx context.Context, org model.OrgContext, schemeID string, changes []model.TypeChange) error {
                if err := ctx.Err(); err != nil {
                        return err
                }
                db, err := s.Load()
                if err != nil {
                        return err
                }
                orgID := strings.TrimSpace(org.OrganizationID)
                if orgID != "" && db.OrgID != "" && orgID != db.OrgID {
                        return fmt.Errorf("organization %s: %w", orgID, ErrOrgMismatch)
                }
                res, err := ApplyChangeSet(db, schemeID, changes, time.Now().UTC())
                if err != nil {
                        return err
                }
                if err := ctx.Err(); err != nil {
                        return err
                }
                if err := s.Save(db); err != nil {
                        return err
                }
                if err := s.AppendEvent(orgID, "scheme.publish", schemeID, res.EventPayload); err != nil {
                        glog.Warningf("mutate: append scheme.publish event: %v", err)
                }
                return nil
        }
}
