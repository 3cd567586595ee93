package cli

import (
        "errors"
        "fmt"
        "strconv"
        "strings"

        "issuecfg/internal/format"
        "issuecfg/internal/model"
        "issuecfg/internal/mutate"
        "issuecfg/internal/orderlist"
        "issuecfg/internal/store"

        "github.com/spf13/cobra"
)

type listPayload struct {
        Kind  model.ListKind `json:"kind"`
        Items []model.Item   `json:"items"`
}

func (p listPayload) Table() ([]string, [][]string) {
        rows := make([][]string, 0, len(p.Items))
        for i, it := range p.Items {
                rows = append(rows, []string{strconv.Itoa(i + 1), it.ID, it.Value, format.Enabled(it.IsEnabled)})
        }
        return []string{"#", "ID", "VALUE", "STATE"}, rows
}

func newListsCmd(app *App) *cobra.Command {
        cmd := &cobra.Command{
                Use:     "lists",
                Aliases: []string{"list"},
                Short:   "Manage orderable lists (status|issue-type|priority)",
        }
        cmd.AddCommand(newListsShowCmd(app))
        cmd.AddCommand(newListsAddCmd(app))
        cmd.AddCommand(newListsEditCmd(app))
        cmd.AddCommand(newListsSetEnabledCmd(app, "enable", true))
        cmd.AddCommand(newListsSetEnabledCmd(app, "disable", false))
        cmd.AddCommand(newListsDeleteCmd(app))
        cmd.AddCommand(newListsReorderCmd(app))
        return cmd
}

func parseKind(s string) (model.ListKind, error) {
        k, ok := model.ParseListKind(s)
        if !ok {
                return "", fmt.Errorf("unknown list kind: %q (want status|issue-type|priority)", s)
        }
        return k, nil
}

// resolveKey accepts an entry id or, failing that, its value (case-insensitive).
func resolveKey(items []model.Item, key string) (string, error) {
        key = strings.TrimSpace(key)
        for _, it := range items {
                if it.Matches(key) {
                        return key, nil
                }
        }
        for _, it := range items {
                if strings.EqualFold(it.Value, key) {
                        return it.Identity(), nil
                }
        }
        return "", errNotFound("entry", key)
}

// listSession wires an orderlist.Editor to the workspace store: every change the
// editor reports is saved and logged as an event.
type listSession struct {
        app    *App
        db     *store.DB
        s      store.Store
        kind   model.ListKind
        editor *orderlist.Editor

        created *model.Item
}

func openListSession(app *App, kind model.ListKind) (*listSession, error) {
        db, s, err := loadDB(app)
        if err != nil {
                return nil, err
        }
        ls := &listSession{app: app, db: db, s: s, kind: kind}
        ls.editor = orderlist.New(db.List(kind), orderlist.Hooks{
                OnCreate: ls.create,
                OnEdit: func(key, value string) error {
                        return mutate.EnsureUniqueValue(ls.db.List(ls.kind), value, key)
                },
                OnDelete: func(key string) error {
                        return mutate.EnsureUnused(ls.db, ls.kind, key)
                },
                OnChange: ls.change,
        })
        return ls, nil
}

func (ls *listSession) create(value string) error {
        value = strings.TrimSpace(value)
        if err := mutate.EnsureUniqueValue(ls.db.List(ls.kind), value, ""); err != nil {
                return err
        }
        it := model.Item{ID: store.NewEntryID(ls.db, value), Value: value, IsEnabled: true}
        ls.db.SetList(ls.kind, append(ls.db.List(ls.kind), it))
        if err := ls.s.Save(ls.db); err != nil {
                return err
        }
        _ = ls.s.AppendEvent(ls.app.OrgID, "list.create", it.ID, map[string]any{"kind": ls.kind, "value": it.Value})
        ls.created = &it
        ls.editor.SetItems(ls.db.List(ls.kind))
        return nil
}

func (ls *listSession) change(items []model.Item, action orderlist.Action) error {
        ls.db.SetList(ls.kind, items)
        if err := ls.s.Save(ls.db); err != nil {
                return err
        }
        typ := "list.reorder"
        if action != orderlist.ActionNone {
                typ = "list." + string(action)
        }
        ids := make([]string, 0, len(items))
        for _, it := range items {
                ids = append(ids, it.ID)
        }
        _ = ls.s.AppendEvent(ls.app.OrgID, typ, string(ls.kind), map[string]any{"ids": ids})
        ls.editor.SetItems(ls.db.List(ls.kind))
        return nil
}

func (ls *listSession) payload() map[string]any {
        return map[string]any{"data": listPayload{Kind: ls.kind, Items: ls.db.List(ls.kind)}}
}

func newListsShowCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "show <kind>",
                Short: "Show a list in order",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        kind, err := parseKind(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        db, _, err := loadDB(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": listPayload{Kind: kind, Items: db.List(kind)}})
                },
        }
}

func newListsAddCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "add <kind> <value>",
                Short: "Append an enabled entry",
                Args:  cobra.ExactArgs(2),
                RunE: func(cmd *cobra.Command, args []string) error {
                        kind, err := parseKind(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ls, err := openListSession(app, kind)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ls.editor.BeginAdd()
                        ls.editor.SetDraft(strings.TrimSpace(args[1]))
                        if err := ls.editor.Commit(); err != nil {
                                return writeErr(cmd, err)
                        }
                        if ls.created == nil {
                                return writeErr(cmd, errors.New("entry was not created"))
                        }
                        return writeOut(cmd, app, map[string]any{"data": ls.created})
                },
        }
}

func newListsEditCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "edit <kind> <id-or-value> <new-value>",
                Short: "Rename an entry",
                Args:  cobra.ExactArgs(3),
                RunE: func(cmd *cobra.Command, args []string) error {
                        kind, err := parseKind(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ls, err := openListSession(app, kind)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        key, err := resolveKey(ls.editor.Items(), args[1])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := ls.editor.BeginEdit(key); err != nil {
                                return writeErr(cmd, err)
                        }
                        ls.editor.SetDraft(strings.TrimSpace(args[2]))
                        if err := ls.editor.Commit(); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, ls.payload())
                },
        }
}

func newListsSetEnabledCmd(app *App, use string, enabled bool) *cobra.Command {
        short := "Mark an entry active"
        if !enabled {
                short = "Mark an entry invalid (kept, but not offered for new use)"
        }
        return &cobra.Command{
                Use:   use + " <kind> <id-or-value>",
                Short: short,
                Args:  cobra.ExactArgs(2),
                RunE: func(cmd *cobra.Command, args []string) error {
                        kind, err := parseKind(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ls, err := openListSession(app, kind)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        key, err := resolveKey(ls.editor.Items(), args[1])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := ls.editor.SetEnabled(key, enabled); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, ls.payload())
                },
        }
}

func newListsDeleteCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:     "delete <kind> <id-or-value>",
                Aliases: []string{"rm"},
                Short:   "Delete an entry (blocked while issues or draft schemes use it)",
                Args:    cobra.ExactArgs(2),
                RunE: func(cmd *cobra.Command, args []string) error {
                        kind, err := parseKind(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ls, err := openListSession(app, kind)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        key, err := resolveKey(ls.editor.Items(), args[1])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := ls.editor.Remove(key); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, ls.payload())
                },
        }
}

func newListsReorderCmd(app *App) *cobra.Command {
        var to int

        cmd := &cobra.Command{
                Use:   "reorder <kind> <id-or-value>",
                Short: "Move an entry to a 1-based position",
                Args:  cobra.ExactArgs(2),
                RunE: func(cmd *cobra.Command, args []string) error {
                        kind, err := parseKind(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ls, err := openListSession(app, kind)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        items := ls.editor.Items()
                        key, err := resolveKey(items, args[1])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        from := -1
                        for i, it := range items {
                                if it.Matches(key) {
                                        from = i
                                        break
                                }
                        }
                        if to < 1 || to > len(items) {
                                return writeErr(cmd, fmt.Errorf("--to must be between 1 and %d", len(items)))
                        }
                        if err := ls.editor.Reorder(from, to-1); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, ls.payload())
                },
        }
        cmd.Flags().IntVar(&to, "to", 0, "Target position (1 = first)")
        _ = cmd.MarkFlagRequired("to")
        return cmd
}
