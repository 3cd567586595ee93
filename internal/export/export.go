// Package export writes derived Markdown snapshots of a workspace. The files are
// for reading and review; the SQLite state stays canonical.
package export

import (
        "errors"
        "fmt"
        "os"
        "path/filepath"
        "strings"

        "issuecfg/internal/store"

        "github.com/golang/glog"
)

type WriteOptions struct {
        Overwrite bool
}

type WriteResult struct {
        Written []string `json:"written"`
}

func WriteScheme(db *store.DB, schemeID, toDir string, opt WriteOptions) (WriteResult, error) {
        if db == nil {
                return WriteResult{}, errors.New("missing db")
        }
        schemeID = strings.TrimSpace(schemeID)
        if schemeID == "" {
                return WriteResult{}, errors.New("missing scheme id")
        }
        toDir = strings.TrimSpace(toDir)
        if toDir == "" {
                return WriteResult{}, errors.New("missing --to")
        }

        md, err := RenderSchemeMarkdown(db, schemeID)
        if err != nil {
                return WriteResult{}, err
        }
        outDir := filepath.Join(filepath.Clean(toDir), "schemes")
        if err := os.MkdirAll(outDir, 0o755); err != nil {
                return WriteResult{}, err
        }
        p := filepath.Join(outDir, schemeID+".md")
        if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
                return WriteResult{}, err
        }
        return WriteResult{Written: []string{p}}, nil
}

// WriteAll writes index.md, lists.md and one page per scheme. It stops at the
// first error.
func WriteAll(db *store.DB, toDir string, opt WriteOptions) (WriteResult, error) {
        if db == nil {
                return WriteResult{}, errors.New("missing db")
        }
        toDir = strings.TrimSpace(toDir)
        if toDir == "" {
                return WriteResult{}, errors.New("missing --to")
        }
        toDir = filepath.Clean(toDir)
        if err := os.MkdirAll(toDir, 0o755); err != nil {
                return WriteResult{}, err
        }

        var written []string
        pages := []struct{ name, body string }{
                {"index.md", RenderIndexMarkdown(db)},
                {"lists.md", RenderListsMarkdown(db)},
        }
        for _, pg := range pages {
                p := filepath.Join(toDir, pg.name)
                if err := writeFile(p, []byte(pg.body), opt.Overwrite); err != nil {
                        return WriteResult{}, err
                }
                written = append(written, p)
        }
        for _, sc := range db.Schemes {
                res, err := WriteScheme(db, sc.ID, toDir, opt)
                if err != nil {
                        return WriteResult{}, fmt.Errorf("scheme %s: %w", sc.ID, err)
                }
                written = append(written, res.Written...)
        }
        glog.V(1).Infof("export: wrote %d files to %s", len(written), toDir)
        return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
        if !overwrite {
                if _, err := os.Stat(path); err == nil {
                        return errors.New("file exists (use --overwrite): " + path)
                }
        }
        return os.WriteFile(path, b, 0o644)
}
