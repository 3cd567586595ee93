package cli

import (
        "flag"
        "fmt"
        "strings"

        "issuecfg/internal/config"
        "issuecfg/internal/format"
        "issuecfg/internal/model"
        "issuecfg/internal/store"
        "issuecfg/internal/tui"

        "github.com/spf13/cobra"
)

type App struct {
        Dir        string
        Workspace  string
        OrgID      string
        PrettyJSON bool
        Format     string
}

func NewRootCmd() *cobra.Command {
        app := &App{}

        cmd := &cobra.Command{
                Use:          "issuecfg",
                Short:        "Issue tracker configuration: orderable lists and status scheme publishing",
                SilenceUsage: true,
                Example: strings.TrimSpace(`
  # Start the interactive TUI
  issuecfg

  # Create a workspace with default statuses, issue types and a draft scheme
  issuecfg init

  # Manage orderable lists
  issuecfg lists show status --format table
  issuecfg lists add priority "Urgent"
  issuecfg lists reorder priority urgent --to 1

  # Review and publish a scheme's status correspondence
  issuecfg schemes preview sch-1 --override in-review=done --markdown
  issuecfg schemes publish sch-1 --override "in review=Done"
`),
                RunE: func(cmd *cobra.Command, args []string) error {
                        // No subcommand => interactive TUI.
                        if cmd.HasSubCommands() && len(args) == 0 {
                                return runTUI(app)
                        }
                        return cmd.Help()
                },
        }

        cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
                cfg, err := config.Load(cmd.Flags())
                if err != nil {
                        return writeErr(cmd, fmt.Errorf("config: %w", err))
                }
                app.Dir = cfg.Dir
                app.Workspace = cfg.Workspace
                app.OrgID = cfg.Org
                app.Format = cfg.Format
                app.PrettyJSON = cfg.Pretty
                return nil
        }

        cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to store dir (overrides workspace resolution; mostly for fixtures/tests)")
        cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", "", "Workspace name (default: 'default')")
        cmd.PersistentFlags().StringVar(&app.OrgID, "org", "", "Organization id (default: the workspace organization)")
        cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
        cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format (json|yaml|table)")
        // glog flags (-v, --logtostderr, ...).
        cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

        cmd.AddCommand(newInitCmd(app))
        cmd.AddCommand(newListsCmd(app))
        cmd.AddCommand(newSchemesCmd(app))
        cmd.AddCommand(newEventsCmd(app))
        cmd.AddCommand(newExportCmd(app))
        cmd.AddCommand(newDocsCmd(app))

        return cmd
}

func runTUI(app *App) error {
        _, s, err := loadDB(app)
        if err != nil {
                return err
        }
        return tui.Run(s, app.OrgID)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
        dir := app.Dir
        if dir == "" {
                d, err := store.WorkspaceDir(app.Workspace)
                if err != nil {
                        return nil, store.Store{}, err
                }
                dir = d
                app.Dir = dir
        }

        s := store.Store{Dir: dir}
        db, err := s.Load()
        if err != nil {
                return nil, s, err
        }
        if db.OrgID != "" && (app.OrgID == "" || app.OrgID == "org-local") {
                app.OrgID = db.OrgID
        }
        return db, s, nil
}

func orgContext(app *App) model.OrgContext {
        return model.OrgContext{OrganizationID: app.OrgID}
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
        return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
        fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
        return err
}
