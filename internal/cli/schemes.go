package cli

import (
        "context"
        "encoding/json"
        "errors"
        "fmt"
        "io"
        "os"
        "strconv"
        "strings"
        "time"

        "issuecfg/internal/model"
        "issuecfg/internal/mutate"
        "issuecfg/internal/remap"
        "issuecfg/internal/statusutil"
        "issuecfg/internal/store"

        "github.com/charmbracelet/glamour"
        "github.com/spf13/cobra"
)

type schemesPayload []model.Scheme

func (p schemesPayload) Table() ([]string, [][]string) {
        rows := make([][]string, 0, len(p))
        for _, sc := range p {
                published := "-"
                if sc.PublishedAt != nil {
                        published = sc.PublishedAt.Local().Format("2006-01-02 15:04")
                }
                rows = append(rows, []string{sc.ID, sc.Name, string(sc.State), strconv.Itoa(len(sc.Groups)), published})
        }
        return []string{"ID", "NAME", "STATE", "PENDING TYPES", "PUBLISHED"}, rows
}

type previewRow struct {
        Source     model.StatusRef `json:"source"`
        Suggested  model.StatusRef `json:"suggested"`
        Target     model.StatusRef `json:"target"`
        Overridden bool            `json:"overridden"`
}

type previewGroup struct {
        IssueType  model.IssueType `json:"issueType"`
        IssueCount int             `json:"issueCount"`
        Rows       []previewRow    `json:"rows"`
}

type previewPayload struct {
        SchemeID  string             `json:"schemeId"`
        Groups    []previewGroup     `json:"groups"`
        Overrides remap.Overrides    `json:"overrides"`
        Changes   []model.TypeChange `json:"changes"`
}

func (p previewPayload) Table() ([]string, [][]string) {
        var rows [][]string
        for _, g := range p.Groups {
                for _, r := range g.Rows {
                        target := r.Target.Name
                        if r.Overridden {
                                target += " *"
                        }
                        rows = append(rows, []string{
                                g.IssueType.Name,
                                strconv.Itoa(g.IssueCount),
                                r.Source.Name,
                                r.Suggested.Name,
                                target,
                        })
                }
        }
        return []string{"ISSUE TYPE", "ISSUES", "SOURCE", "SUGGESTED", "TARGET"}, rows
}

func newSchemesCmd(app *App) *cobra.Command {
        cmd := &cobra.Command{
                Use:     "schemes",
                Aliases: []string{"scheme"},
                Short:   "Review and publish state machine schemes",
        }
        cmd.AddCommand(newSchemesListCmd(app))
        cmd.AddCommand(newSchemesShowCmd(app))
        cmd.AddCommand(newSchemesPreviewCmd(app))
        cmd.AddCommand(newSchemesPublishCmd(app))
        cmd.AddCommand(newSchemesImportCmd(app))
        return cmd
}

func newSchemesListCmd(app *App) *cobra.Command {
        var drafts bool

        cmd := &cobra.Command{
                Use:   "list",
                Short: "List schemes",
                RunE: func(cmd *cobra.Command, args []string) error {
                        db, _, err := loadDB(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        out := schemesPayload{}
                        for _, sc := range db.Schemes {
                                if drafts && sc.State != model.SchemeDraft {
                                        continue
                                }
                                out = append(out, sc)
                        }
                        return writeOut(cmd, app, map[string]any{"data": out})
                },
        }
        cmd.Flags().BoolVar(&drafts, "drafts", false, "Only drafts awaiting publish")
        return cmd
}

func newSchemesShowCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "show <scheme-id>",
                Short: "Show a scheme with its pending status correspondence",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        db, _, err := loadDB(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        sc, ok := db.FindScheme(args[0])
                        if !ok {
                                return writeErr(cmd, errNotFound("scheme", args[0]))
                        }
                        groups, err := db.PublishData(sc.ID)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        out := *sc
                        out.Groups = groups
                        return writeOut(cmd, app, map[string]any{"data": out})
                },
        }
}

// openPublisher loads a scheme's publish data into a publisher and applies
// the --override flags to it.
func openPublisher(app *App, schemeID string, overrides []string) (*remap.Publisher, *store.DB, store.Store, error) {
        db, s, err := loadDB(app)
        if err != nil {
                return nil, nil, s, err
        }
        if _, ok := db.FindScheme(schemeID); !ok {
                return nil, nil, s, errNotFound("scheme", schemeID)
        }
        groups, err := db.PublishData(schemeID)
        if err != nil {
                return nil, nil, s, err
        }
        p := remap.NewPublisher(mutate.PublishOperation(s), nil)
        p.Open(groups)
        for _, spec := range overrides {
                src, dst, err := remap.ParseOverride(groups, spec)
                if err != nil {
                        return nil, nil, s, fmt.Errorf("--override %q: %w", spec, err)
                }
                p.SetOverride(src.ID, dst.ID)
        }
        return p, db, s, nil
}

func buildPreview(schemeID string, p *remap.Publisher) (previewPayload, error) {
        overrides := p.Overrides()
        out := previewPayload{SchemeID: schemeID, Overrides: overrides}
        for _, g := range p.Groups() {
                pg := previewGroup{IssueType: g.IssueType, IssueCount: g.IssueCount}
                for _, it := range g.StatusChangeItems {
                        target, err := p.Selected(g, it)
                        if err != nil {
                                return previewPayload{}, fmt.Errorf("%s: %w", g.IssueTypeID, err)
                        }
                        _, overridden := overrides[it.OldStatus.ID]
                        pg.Rows = append(pg.Rows, previewRow{
                                Source:     it.OldStatus,
                                Suggested:  it.NewStatus,
                                Target:     target,
                                Overridden: overridden,
                        })
                }
                out.Groups = append(out.Groups, pg)
        }
        changes, err := p.ChangeSet()
        if err != nil {
                return previewPayload{}, err
        }
        out.Changes = changes
        return out, nil
}

func newSchemesPreviewCmd(app *App) *cobra.Command {
        var overrides []string
        var markdown bool
        var width int

        cmd := &cobra.Command{
                Use:   "preview <scheme-id>",
                Short: "Show the change set a publish would send",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        p, db, _, err := openPublisher(app, args[0], overrides)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if markdown {
                                sc, _ := db.FindScheme(args[0])
                                md, err := remap.RenderMarkdown(sc.Name, p.Groups(), p.Overrides())
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                return writeMarkdown(cmd.OutOrStdout(), md, width)
                        }
                        out, err := buildPreview(args[0], p)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": out})
                },
        }
        cmd.Flags().StringArrayVar(&overrides, "override", nil, "source=target status (id or name; repeatable)")
        cmd.Flags().BoolVar(&markdown, "markdown", false, "Render a readable summary instead of data")
        cmd.Flags().IntVar(&width, "width", 100, "Wrap width for --markdown")
        return cmd
}

func newSchemesPublishCmd(app *App) *cobra.Command {
        var overrides []string
        var timeout time.Duration

        cmd := &cobra.Command{
                Use:   "publish <scheme-id>",
                Short: "Publish a draft scheme, moving issues to their target statuses",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        schemeID := args[0]
                        p, _, s, err := openPublisher(app, schemeID, overrides)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        changes, err := p.ChangeSet()
                        if err != nil {
                                return writeErr(cmd, err)
                        }

                        ctx := cmd.Context()
                        if ctx == nil {
                                ctx = context.Background()
                        }
                        if timeout > 0 {
                                var cancel context.CancelFunc
                                ctx, cancel = context.WithTimeout(ctx, timeout)
                                defer cancel()
                        }
                        if err := p.Publish(ctx, orgContext(app), schemeID); err != nil {
                                return writeErr(cmd, err)
                        }

                        db, err := s.Load()
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        sc, _ := db.FindScheme(schemeID)
                        return writeOut(cmd, app, map[string]any{"data": map[string]any{
                                "scheme":  sc,
                                "changes": changes,
                                "changed": remap.CountChanges(changes),
                        }})
                },
        }
        cmd.Flags().StringArrayVar(&overrides, "override", nil, "source=target status (id or name; repeatable)")
        cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up after this long (0 = no limit)")
        return cmd
}

type schemeImport struct {
        Name   string            `json:"name"`
        Groups []model.TypeGroup `json:"groups"`
}

func newSchemesImportCmd(app *App) *cobra.Command {
        var name string

        cmd := &cobra.Command{
                Use:   "import <file.json|->",
                Short: "Import a draft scheme with a precomputed status correspondence",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        var r io.Reader = cmd.InOrStdin()
                        if args[0] != "-" {
                                f, err := os.Open(args[0])
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                defer f.Close()
                                r = f
                        }
                        var in schemeImport
                        if err := json.NewDecoder(r).Decode(&in); err != nil {
                                return writeErr(cmd, fmt.Errorf("decode scheme: %w", err))
                        }
                        if strings.TrimSpace(name) != "" {
                                in.Name = strings.TrimSpace(name)
                        }
                        if in.Name == "" {
                                return writeErr(cmd, errors.New("missing scheme name (set \"name\" or pass --name)"))
                        }

                        db, s, err := loadDB(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        groups, err := normalizeGroups(db, in.Groups)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        sc := model.Scheme{
                                ID:        s.NextID(db, "sch"),
                                OrgID:     app.OrgID,
                                Name:      in.Name,
                                State:     model.SchemeDraft,
                                Groups:    groups,
                                CreatedAt: time.Now().UTC(),
                        }
                        db.Schemes = append(db.Schemes, sc)
                        if err := s.Save(db); err != nil {
                                return writeErr(cmd, err)
                        }
                        _ = s.AppendEvent(app.OrgID, "scheme.import", sc.ID, map[string]any{"name": sc.Name, "types": len(groups)})
                        return writeOut(cmd, app, map[string]any{"data": sc})
                },
        }
        cmd.Flags().StringVar(&name, "name", "", "Scheme name (overrides the file)")
        return cmd
}

// normalizeGroups checks imported groups against the workspace and fills in
// status names from the status list.
func normalizeGroups(db *store.DB, groups []model.TypeGroup) ([]model.TypeGroup, error) {
        statuses := db.List(model.ListKindStatus)
        named := func(r model.StatusRef) model.StatusRef {
                if r.Name == "" {
                        r.Name = statusutil.Label(statuses, r.ID)
                }
                return r
        }
        out := make([]model.TypeGroup, 0, len(groups))
        for _, g := range groups {
                if strings.TrimSpace(g.IssueTypeID) == "" {
                        return nil, errors.New("group without issueTypeId")
                }
                if len(g.CandidateTargets) == 0 {
                        return nil, fmt.Errorf("%s: %w", g.IssueTypeID, remap.ErrNoCandidateTargets)
                }
                for i, c := range g.CandidateTargets {
                        if !statusutil.ValidateStatusID(statuses, c.ID) {
                                return nil, fmt.Errorf("%s: candidate %q: %w", g.IssueTypeID, c.ID, mutate.ErrInvalidStatus)
                        }
                        g.CandidateTargets[i] = named(c)
                }
                for i, it := range g.StatusChangeItems {
                        g.StatusChangeItems[i] = model.StatusChangeItem{OldStatus: named(it.OldStatus), NewStatus: named(it.NewStatus)}
                }
                g.IssueType = db.IssueTypeMeta(g.IssueTypeID)
                out = append(out, g)
        }
        return out, nil
}

func writeMarkdown(w io.Writer, md string, width int) error {
        if width <= 0 {
                width = 100
        }
        r, err := glamour.NewTermRenderer(
                glamour.WithAutoStyle(),
                glamour.WithWordWrap(width),
        )
        if err != nil {
                return err
        }
        out, err := r.Render(md)
        if err != nil {
                return err
        }
        _, err = io.WriteString(w, out)
        return err
}
