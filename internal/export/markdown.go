package export

import (
        "bytes"
        "fmt"
        "strings"
        "time"

        "issuecfg/internal/model"
        "issuecfg/internal/remap"
        "issuecfg/internal/store"
)

// RenderListsMarkdown renders every configuration list in order, one section per kind.
func RenderListsMarkdown(db *store.DB) string {
        var buf bytes.Buffer
        writeLn := func(s string) {
                buf.WriteString(s)
                buf.WriteString("\n")
        }

        writeLn("# Lists")
        writeLn("")
        for _, kind := range model.ListKinds() {
                writeLn("## " + string(kind))
                writeLn("")
                items := db.Lists[kind]
                if len(items) == 0 {
                        writeLn("_empty_")
                        writeLn("")
                        continue
                }
                for i, it := range items {
                        line := fmt.Sprintf("%d. %s (`%s`)", i+1, strings.TrimSpace(it.Value), it.ID)
                        if !it.IsEnabled {
                                line += " (disabled)"
                        }
                        writeLn(line)
                }
                writeLn("")
        }
        return buf.String()
}

// RenderSchemeMarkdown renders one scheme. Drafts show the pending status
// changes as they would be published; active schemes show when they were published.
func RenderSchemeMarkdown(db *store.DB, schemeID string) (string, error) {
        sc, ok := db.FindScheme(strings.TrimSpace(schemeID))
        if !ok {
                return "", fmt.Errorf("scheme not found: %s", schemeID)
        }
        if sc.State == model.SchemeDraft {
                groups, err := db.PublishData(sc.ID)
                if err != nil {
                        return "", err
                }
                return remap.RenderMarkdown(sc.Name, groups, nil)
        }

        var buf bytes.Buffer
        writeLn := func(s string) {
                buf.WriteString(s)
                buf.WriteString("\n")
        }
        writeLn("# " + strings.TrimSpace(sc.Name))
        writeLn("")
        writeLn("- ID: " + sc.ID)
        writeLn("- State: " + string(sc.State))
        if sc.PublishedAt != nil {
                writeLn("- Published: " + sc.PublishedAt.UTC().Format(time.RFC3339))
        }
        return buf.String(), nil
}

// RenderIndexMarkdown links the lists page and every scheme page.
func RenderIndexMarkdown(db *store.DB) string {
        var buf bytes.Buffer
        writeLn := func(s string) {
                buf.WriteString(s)
                buf.WriteString("\n")
        }
        title := "Workspace"
        if strings.TrimSpace(db.OrgID) != "" {
                title = db.OrgID
        }
        writeLn("# " + title)
        writeLn("")
        writeLn("- [Lists](lists.md)")
        for _, sc := range db.Schemes {
                writeLn(fmt.Sprintf("- [%s](schemes/%s.md) (%s)", strings.TrimSpace(sc.Name), sc.ID, sc.State))
        }
        return buf.String()
}
