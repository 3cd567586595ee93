package cli

import (
        "path/filepath"

        "issuecfg/internal/model"

        "github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
        var empty bool

        cmd := &cobra.Command{
                Use:   "init",
                Short: "Initialize a workspace (seeded with default lists and a draft scheme)",
                RunE: func(cmd *cobra.Command, args []string) error {
                        db, s, err := loadDB(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        seeded := false
                        if !empty && len(db.Schemes) == 0 && len(db.List(model.ListKindStatus)) == 0 {
                                s.Seed(db, app.OrgID)
                                seeded = true
                        }
                        if db.OrgID == "" {
                                db.OrgID = app.OrgID
                        }
                        if err := s.Save(db); err != nil {
                                return writeErr(cmd, err)
                        }
                        _ = s.AppendEvent(db.OrgID, "workspace.init", db.OrgID, map[string]any{"seeded": seeded})

                        return writeOut(cmd, app, map[string]any{
                                "data": map[string]any{
                                        "dir":        app.Dir,
                                        "orgId":      db.OrgID,
                                        "sqlitePath": filepath.Join(app.Dir, "issuecfg.sqlite"),
                                        "seeded":     seeded,
                                },
                        })
                },
        }
        cmd.Flags().BoolVar(&empty, "empty", false, "Do not seed default content")
        return cmd
}
