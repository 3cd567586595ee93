package cli

import (
        "fmt"

        "issuecfg/internal/docs"

        "github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
        var raw bool
        var rendered bool
        var width int

        cmd := &cobra.Command{
                Use:   "docs [topic]",
                Short: "Show built-in documentation topics",
                Args:  cobra.MaximumNArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        if len(args) == 0 {
                                return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
                        }
                        topic := args[0]
                        body, ok := docs.Get(topic)
                        if !ok {
                                return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `issuecfg docs` to list topics)", topic))
                        }
                        switch {
                        case rendered:
                                return writeMarkdown(cmd.OutOrStdout(), body, width)
                        case raw:
                                _, err := fmt.Fprint(cmd.OutOrStdout(), body)
                                return err
                        }
                        return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
                },
        }
        cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")
        cmd.Flags().BoolVar(&rendered, "render", false, "Render markdown for the terminal")
        cmd.Flags().IntVar(&width, "width", 100, "Wrap width for --render")
        return cmd
}
