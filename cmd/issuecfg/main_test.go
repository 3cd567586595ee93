package main

import (
        "reflect"
        "testing"
)

func TestRewriteShortcutArgs(t *testing.T) {
        t.Parallel()

        tests := []struct {
                name string
                in   []string
                want []string
        }{
                {
                        name: "no args",
                        in:   []string{"issuecfg"},
                        want: []string{"issuecfg"},
                },
                {
                        name: "scheme id first token",
                        in:   []string{"issuecfg", "sch-3"},
                        want: []string{"issuecfg", "schemes", "show", "sch-3"},
                },
                {
                        name: "scheme id after value flag",
                        in:   []string{"issuecfg", "--dir", "./ws", "sch-3"},
                        want: []string{"issuecfg", "--dir", "./ws", "schemes", "show", "sch-3"},
                },
                {
                        name: "scheme id after equals flag",
                        in:   []string{"issuecfg", "--org=org-2", "sch-3"},
                        want: []string{"issuecfg", "--org=org-2", "schemes", "show", "sch-3"},
                },
                {
                        name: "scheme id after bool flag",
                        in:   []string{"issuecfg", "--pretty", "sch-3"},
                        want: []string{"issuecfg", "--pretty", "schemes", "show", "sch-3"},
                },
                {
                        name: "scheme id after double dash",
                        in:   []string{"issuecfg", "--", "sch-3"},
                        want: []string{"issuecfg", "--", "schemes", "show", "sch-3"},
                },
                {
                        name: "list kind alone",
                        in:   []string{"issuecfg", "--format", "table", "statuses"},
                        want: []string{"issuecfg", "--format", "table", "lists", "show", "statuses"},
                },
                {
                        name: "list kind with more args not rewritten",
                        in:   []string{"issuecfg", "status", "extra"},
                        want: []string{"issuecfg", "status", "extra"},
                },
                {
                        name: "subcommand not rewritten",
                        in:   []string{"issuecfg", "schemes", "show", "sch-3"},
                        want: []string{"issuecfg", "schemes", "show", "sch-3"},
                },
                {
                        name: "bare prefix not rewritten",
                        in:   []string{"issuecfg", "sch-"},
                        want: []string{"issuecfg", "sch-"},
                },
        }

        for _, tt := range tests {
                tt := tt
                t.Run(tt.name, func(t *testing.T) {
                        t.Parallel()
                        got := rewriteShortcutArgs(tt.in)
                        if !reflect.DeepEqual(got, tt.want) {
                                t.Fatalf("rewriteShortcutArgs:\n got: %#v\nwant: %#v", got, tt.want)
                        }
                })
        }
}
