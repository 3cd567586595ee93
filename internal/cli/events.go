package cli

import (
        "encoding/json"
        "strings"

        "issuecfg/internal/model"

        "github.com/spf13/cobra"
)

type eventsPayload []model.Event

func (p eventsPayload) Table() ([]string, [][]string) {
        rows := make([][]string, 0, len(p))
        for _, ev := range p {
                payload := ""
                if ev.Payload != nil {
                        if b, err := json.Marshal(ev.Payload); err == nil {
                                payload = string(b)
                        }
                }
                rows = append(rows, []string{ev.TS.Local().Format("2006-01-02 15:04:05"), ev.Type, ev.EntityID, payload})
        }
        return []string{"TIME", "TYPE", "ENTITY", "PAYLOAD"}, rows
}

func newEventsCmd(app *App) *cobra.Command {
        var limit int
        var entity string

        cmd := &cobra.Command{
                Use:   "events",
                Short: "Inspect the workspace event log",
        }

        listCmd := &cobra.Command{
                Use:   "list",
                Short: "List events (oldest-first)",
                RunE: func(cmd *cobra.Command, args []string) error {
                        _, s, err := loadDB(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        var evs []model.Event
                        if strings.TrimSpace(entity) != "" {
                                evs, err = s.ReadEventsForEntity(entity, limit)
                        } else {
                                evs, err = s.ReadEvents(limit)
                        }
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if evs == nil {
                                evs = []model.Event{}
                        }
                        return writeOut(cmd, app, map[string]any{"data": eventsPayload(evs)})
                },
        }
        listCmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
        listCmd.Flags().StringVar(&entity, "entity", "", "Only events for this entity id")

        cmd.AddCommand(listCmd)
        return cmd
}
