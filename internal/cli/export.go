package cli

import (
        "errors"
        "strings"

        "issuecfg/internal/export"

        "github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
        var toDir string
        var overwrite bool

        cmd := &cobra.Command{
                Use:   "export",
                Short: "Write Markdown snapshots of lists and schemes (not canonical)",
        }

        schemeCmd := &cobra.Command{
                Use:   "scheme <scheme-id>",
                Short: "Export one scheme",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        db, _, err := loadDB(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if strings.TrimSpace(toDir) == "" {
                                return writeErr(cmd, errors.New("missing --to"))
                        }
                        res, err := export.WriteScheme(db, args[0], toDir, export.WriteOptions{Overwrite: overwrite})
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": res})
                },
        }
        allCmd := &cobra.Command{
                Use:   "all",
                Short: "Export an index, all lists and every scheme",
                Args:  cobra.NoArgs,
                RunE: func(cmd *cobra.Command, args []string) error {
                        db, _, err := loadDB(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if strings.TrimSpace(toDir) == "" {
                                return writeErr(cmd, errors.New("missing --to"))
                        }
                        res, err := export.WriteAll(db, toDir, export.WriteOptions{Overwrite: overwrite})
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": res})
                },
        }

        cmd.PersistentFlags().StringVar(&toDir, "to", "", "Output directory")
        cmd.PersistentFlags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
        cmd.AddCommand(schemeCmd, allCmd)
        return cmd
}
