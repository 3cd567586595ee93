package store

import (
        "context"
        "database/sql"
        "encoding/json"
        "errors"
        "path/filepath"
        "strconv"
        "strings"

        "issuecfg/internal/model"

        "github.com/golang/glog"
        _ "modernc.org/sqlite"
)

func (s Store) sqlitePath() string {
        return filepath.Join(filepath.Clean(s.Dir), "issuecfg.sqlite")
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
        if err := s.Ensure(); err != nil {
                return nil, err
        }
        // modernc.org/sqlite driver name is "sqlite".
        db, err := sql.Open("sqlite", s.sqlitePath())
        if err != nil {
                return nil, err
        }
        // WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
        pragmas := []string{
                "PRAGMA journal_mode=WAL;",
                "PRAGMA synchronous=NORMAL;",
                "PRAGMA foreign_keys=ON;",
                "PRAGMA busy_timeout=5000;",
        }
        for _, p := range pragmas {
                if _, err := db.ExecContext(ctx, p); err != nil {
                        _ = db.Close()
                        return nil, err
                }
        }
        if err := migrateSQLite(ctx, db); err != nil {
                _ = db.Close()
                return nil, err
        }
        return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
        stmts := []string{
                `CREATE TABLE IF NOT EXISTS state_meta (
                        k TEXT PRIMARY KEY,
                        v TEXT NOT NULL
                );`,
                `CREATE TABLE IF NOT EXISTS list_entries (
                        kind TEXT NOT NULL,
                        pos INTEGER NOT NULL,
                        id TEXT NOT NULL,
                        value TEXT NOT NULL,
                        enabled INTEGER NOT NULL,
                        PRIMARY KEY(kind, id)
                );`,
                `CREATE INDEX IF NOT EXISTS idx_list_entries_pos ON list_entries(kind, pos);`,
                `CREATE TABLE IF NOT EXISTS issue_types (
                        id TEXT PRIMARY KEY,
                        pos INTEGER NOT NULL,
                        json TEXT NOT NULL
                );`,
                `CREATE TABLE IF NOT EXISTS issues (
                        id TEXT PRIMARY KEY,
                        issue_type_id TEXT NOT NULL,
                        status_id TEXT NOT NULL,
                        json TEXT NOT NULL,
                        updated_at_unixms INTEGER NOT NULL
                );`,
                `CREATE INDEX IF NOT EXISTS idx_issues_type_status ON issues(issue_type_id, status_id);`,
                `CREATE TABLE IF NOT EXISTS schemes (
                        id TEXT PRIMARY KEY,
                        pos INTEGER NOT NULL,
                        state TEXT NOT NULL,
                        json TEXT NOT NULL
                );`,
                `CREATE TABLE IF NOT EXISTS events (
                        event_id TEXT PRIMARY KEY,
                        org_id TEXT NOT NULL,
                        entity_id TEXT NOT NULL,
                        type TEXT NOT NULL,
                        issued_at_unixms INTEGER NOT NULL,
                        payload_json TEXT NOT NULL
                );`,
                `CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, issued_at_unixms);`,
                `CREATE INDEX IF NOT EXISTS idx_events_issued ON events(issued_at_unixms);`,
        }
        for _, st := range stmts {
                if _, err := db.ExecContext(ctx, st); err != nil {
                        return err
                }
        }
        return nil
}

func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
        db, err := s.openSQLite(ctx)
        if err != nil {
                return nil, err
        }
        defer db.Close()

        out := NewDB()
        readMeta := func(k string) string {
                var v string
                _ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
                return strings.TrimSpace(v)
        }
        if v := readMeta("version"); v != "" {
                if n, err := strconv.Atoi(v); err == nil {
                        out.Version = n
                }
        }
        out.OrgID = readMeta("org_id")
        if v := readMeta("next_ids"); v != "" {
                if err := json.Unmarshal([]byte(v), &out.NextIDs); err != nil {
                        glog.Warningf("store: ignoring malformed next_ids: %v", err)
                        out.NextIDs = map[string]int{}
                }
        }

        rows, err := db.QueryContext(ctx, `SELECT kind, id, value, enabled FROM list_entries ORDER BY kind, pos`)
        if err != nil {
                return nil, err
        }
        defer rows.Close()
        for rows.Next() {
                var kind, id, value string
                var enabled int
                if err := rows.Scan(&kind, &id, &value, &enabled); err != nil {
                        return nil, err
                }
                k := model.ListKind(kind)
                out.Lists[k] = append(out.Lists[k], model.Item{ID: id, Value: value, IsEnabled: enabled != 0})
        }
        if err := rows.Err(); err != nil {
                return nil, err
        }

        if out.IssueTypes, err = readJSONRows[model.IssueType](ctx, db, `SELECT json FROM issue_types ORDER BY pos`); err != nil {
                return nil, err
        }
        if out.Issues, err = readJSONRows[model.Issue](ctx, db, `SELECT json FROM issues ORDER BY id`); err != nil {
                return nil, err
        }
        if out.Schemes, err = readJSONRows[model.Scheme](ctx, db, `SELECT json FROM schemes ORDER BY pos`); err != nil {
                return nil, err
        }
        return out, nil
}

func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
        if st == nil {
                return errors.New("nil db")
        }
        db, err := s.openSQLite(ctx)
        if err != nil {
                return err
        }
        defer db.Close()

        tx, err := db.BeginTx(ctx, &sql.TxOptions{})
        if err != nil {
                return err
        }
        defer func() { _ = tx.Rollback() }()

        nextIDs, err := json.Marshal(st.NextIDs)
        if err != nil {
                return err
        }
        meta := map[string]string{
                "version":  strconv.Itoa(st.Version),
                "org_id":   strings.TrimSpace(st.OrgID),
                "next_ids": string(nextIDs),
        }
        for k, v := range meta {
                if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
                        return err
                }
        }

        // Replace-all strategy: the state is small and always written as a whole.
        for _, t := range []string{"list_entries", "issue_types", "issues", "schemes"} {
                if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
                        return err
                }
        }

        for kind, items := range st.Lists {
                if err := insertListEntries(ctx, tx, kind, items); err != nil {
                        return err
                }
        }
        for pos, t := range st.IssueTypes {
                b, err := json.Marshal(t)
                if err != nil {
                        return err
                }
                if _, err := tx.ExecContext(ctx, `INSERT INTO issue_types(id, pos, json) VALUES(?, ?, ?)`, t.ID, pos, string(b)); err != nil {
                        return err
                }
        }
        for _, is := range st.Issues {
                b, err := json.Marshal(is)
                if err != nil {
                        return err
                }
                if _, err := tx.ExecContext(ctx,
                        `INSERT INTO issues(id, issue_type_id, status_id, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
                        is.ID, is.IssueTypeID, is.StatusID, string(b), is.UpdatedAt.UnixMilli(),
                ); err != nil {
                        return err
                }
        }
        for pos, sc := range st.Schemes {
                b, err := json.Marshal(sc)
                if err != nil {
                        return err
                }
                if _, err := tx.ExecContext(ctx, `INSERT INTO schemes(id, pos, state, json) VALUES(?, ?, ?, ?)`, sc.ID, pos, string(sc.State), string(b)); err != nil {
                        return err
                }
        }
        return tx.Commit()
}

// SaveList replaces the entries of one list kind and leaves the rest of the
// state as it is on disk.
func (s Store) SaveList(kind model.ListKind, items []model.Item) error {
        ctx := context.Background()
        db, err := s.openSQLite(ctx)
        if err != nil {
                return err
        }
        defer db.Close()

        tx, err := db.BeginTx(ctx, &sql.TxOptions{})
        if err != nil {
                return err
        }
        defer func() { _ = tx.Rollback() }()

        if _, err := tx.ExecContext(ctx, `DELETE FROM list_entries WHERE kind = ?`, string(kind)); err != nil {
                return err
        }
        if err := insertListEntries(ctx, tx, kind, items); err != nil {
                return err
        }
        return tx.Commit()
}

func insertListEntries(ctx context.Context, tx *sql.Tx, kind model.ListKind, items []model.Item) error {
        for pos, it := range items {
                if strings.TrimSpace(it.ID) == "" {
                        return errors.New("cannot save list entry without id: " + it.Value)
                }
                enabled := 0
                if it.IsEnabled {
                        enabled = 1
                }
                if _, err := tx.ExecContext(ctx,
                        `INSERT INTO list_entries(kind, pos, id, value, enabled) VALUES(?, ?, ?, ?, ?)`,
                        string(kind), pos, it.ID, it.Value, enabled,
                ); err != nil {
                        return err
                }
        }
        return nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, q string) ([]T, error) {
        rows, err := db.QueryContext(ctx, q)
        if err != nil {
                return nil, err
        }
        defer rows.Close()
        var out []T
        for rows.Next() {
                var raw string
                if err := rows.Scan(&raw); err != nil {
                        return nil, err
                }
                var v T
                if err := json.Unmarshal([]byte(raw), &v); err != nil {
                        return nil, err
                }
                out = append(out, v)
        }
        return out, rows.Err()
}
