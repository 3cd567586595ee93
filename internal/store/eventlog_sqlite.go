package store

import (
        "context"
        "encoding/json"
        "strings"
        "time"

        "issuecfg/internal/model"

        "github.com/golang/glog"
)

func (s Store) appendEventSQLite(ctx context.Context, orgID, typ, entityID string, payload any) error {
        db, err := s.openSQLite(ctx)
        if err != nil {
                return err
        }
        defer db.Close()

        id, err := newRandomID("evt")
        if err != nil {
                return err
        }
        b, err := json.Marshal(payload)
        if err != nil {
                return err
        }
        _, err = db.ExecContext(ctx,
                `INSERT INTO events(event_id, org_id, entity_id, type, issued_at_unixms, payload_json) VALUES(?, ?, ?, ?, ?, ?)`,
                id, strings.TrimSpace(orgID), strings.TrimSpace(entityID), typ, time.Now().UTC().UnixMilli(), string(b),
        )
        if err == nil {
                glog.V(2).Infof("store: event %s %s", typ, entityID)
        }
        return err
}

// ReadEvents returns events oldest first. limit <= 0 returns all; otherwise the newest limit.
func (s Store) ReadEvents(limit int) ([]model.Event, error) {
        return s.readEvents(context.Background(), "", limit)
}

// ReadEventsForEntity returns the events of one entity, oldest first.
func (s Store) ReadEventsForEntity(entityID string, limit int) ([]model.Event, error) {
        return s.readEvents(context.Background(), strings.TrimSpace(entityID), limit)
}

func (s Store) readEvents(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
        db, err := s.openSQLite(ctx)
        if err != nil {
                return nil, err
        }
        defer db.Close()

        q := `SELECT event_id, org_id, entity_id, type, issued_at_unixms, payload_json FROM events`
        var args []any
        if entityID != "" {
                q += ` WHERE entity_id = ?`
                args = append(args, entityID)
        }
        q += ` ORDER BY issued_at_unixms DESC, rowid DESC`
        if limit > 0 {
                q += ` LIMIT ?`
                args = append(args, limit)
        }
        rows, err := db.QueryContext(ctx, q, args...)
        if err != nil {
                return nil, err
        }
        defer rows.Close()

        var out []model.Event
        for rows.Next() {
                var ev model.Event
                var ms int64
                var payload string
                if err := rows.Scan(&ev.ID, &ev.OrgID, &ev.EntityID, &ev.Type, &ms, &payload); err != nil {
                        return nil, err
                }
                ev.TS = time.UnixMilli(ms).UTC()
                if payload != "" && payload != "null" {
                        var v any
                        if err := json.Unmarshal([]byte(payload), &v); err == nil {
                                ev.Payload = v
                        }
                }
                out = append(out, ev)
        }
        if err := rows.Err(); err != nil {
                return nil, err
        }
        // Oldest first.
        for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
                out[i], out[j] = out[j], out[i]
        }
        return out, nil
}
