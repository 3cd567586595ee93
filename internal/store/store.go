package store

import (
        "context"
        "errors"
        "fmt"
        "os"
        "path/filepath"
        "regexp"
        "strings"

        "issuecfg/internal/model"

        "github.com/mitchellh/go-homedir"
)

// DB is the in-memory state of one organization workspace.
type DB struct {
        Version    int                               `json:"version"`
        OrgID      string                            `json:"orgId,omitempty"`
        NextIDs    map[string]int                    `json:"nextIds"`
        Lists      map[model.ListKind][]model.Item   `json:"lists"`
        IssueTypes []model.IssueType                 `json:"issueTypes"`
        Issues     []model.Issue                     `json:"issues"`
        Schemes    []model.Scheme                    `json:"schemes"`
}

type Store struct {
        Dir string
}

func ConfigDir() (string, error) {
        // Test/advanced override (keeps unit tests from touching ~/.issuecfg).
        if v := strings.TrimSpace(os.Getenv("ISSUECFG_CONFIG_DIR")); v != "" {
                return v, nil
        }
        home, err := homedir.Dir()
        if err != nil {
                return "", err
        }
        return filepath.Join(home, ".issuecfg"), nil
}

var reWorkspaceName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func NormalizeWorkspaceName(name string) (string, error) {
        name = strings.TrimSpace(name)
        if name == "" {
                return "default", nil
        }
        if !reWorkspaceName.MatchString(name) {
                return "", fmt.Errorf("invalid workspace name: %q", name)
        }
        return name, nil
}

func WorkspaceDir(name string) (string, error) {
        name, err := NormalizeWorkspaceName(name)
        if err != nil {
                return "", err
        }
        dir, err := ConfigDir()
        if err != nil {
                return "", err
        }
        return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
        if strings.TrimSpace(s.Dir) == "" {
                return errors.New("store dir not set")
        }
        return os.MkdirAll(s.Dir, 0o755)
}

// Load reads the workspace state. An empty workspace loads as an empty DB.
func (s Store) Load() (*DB, error) {
        if err := s.Ensure(); err != nil {
                return nil, err
        }
        return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
        if err := s.Ensure(); err != nil {
                return err
        }
        return s.SaveSQLite(context.Background(), db)
}

// NextID returns a fresh sequential id like "iss-7".
func (s Store) NextID(db *DB, prefix string) string {
        if db.NextIDs == nil {
                db.NextIDs = map[string]int{}
        }
        for {
                db.NextIDs[prefix]++
                id := fmt.Sprintf("%s-%d", prefix, db.NextIDs[prefix])
                if !idExists(db, id) {
                        return id
                }
        }
}

func (s Store) AppendEvent(orgID, typ, entityID string, payload any) error {
        return s.appendEventSQLite(context.Background(), orgID, typ, entityID, payload)
}

func NewDB() *DB {
        return &DB{
                Version: 1,
                NextIDs: map[string]int{},
                Lists:   map[model.ListKind][]model.Item{},
        }
}

// List returns a copy of the entries of kind, in order.
func (db *DB) List(kind model.ListKind) []model.Item {
        return append([]model.Item(nil), db.Lists[kind]...)
}

func (db *DB) SetList(kind model.ListKind, items []model.Item) {
        if db.Lists == nil {
                db.Lists = map[model.ListKind][]model.Item{}
        }
        db.Lists[kind] = append([]model.Item(nil), items...)
}

func (db *DB) FindScheme(id string) (*model.Scheme, bool) {
        for i := range db.Schemes {
                if db.Schemes[i].ID == id {
                        return &db.Schemes[i], true
                }
        }
        return nil, false
}

func (db *DB) FindIssueType(id string) (*model.IssueType, bool) {
        for i := range db.IssueTypes {
                if db.IssueTypes[i].ID == id {
                        return &db.IssueTypes[i], true
                }
        }
        return nil, false
}

func (db *DB) FindIssue(id string) (*model.Issue, bool) {
        for i := range db.Issues {
                if db.Issues[i].ID == id {
                        return &db.Issues[i], true
                }
        }
        return nil, false
}

// StatusRefs returns the status list as StatusRefs, enabled entries only.
func (db *DB) StatusRefs() []model.StatusRef {
        var out []model.StatusRef
        for _, it := range db.Lists[model.ListKindStatus] {
                if !it.IsEnabled {
                        continue
                }
                out = append(out, model.StatusRef{ID: it.ID, Name: it.Value})
        }
        return out
}

// IssueCountsByType counts issues per issue type id.
func (db *DB) IssueCountsByType() map[string]int {
        out := map[string]int{}
        for _, is := range db.Issues {
                out[is.IssueTypeID]++
        }
        return out
}
