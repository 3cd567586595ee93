package format

import (
        "bytes"
        "strings"
        "testing"

        "github.com/fatih/color"
)

type rows [][2]string

func (r rows) Table() ([]string, [][]string) {
        var out [][]string
        for _, x := range r {
                out = append(out, []string{x[0], x[1]})
        }
        return []string{"ID", "VALUE"}, out
}

func TestWrite_JSONEnvelope(t *testing.T) {
        var buf bytes.Buffer
        if err := Write(&buf, map[string]any{"data": map[string]any{"id": "todo"}}, "json", false); err != nil {
                t.Fatalf("write: %v", err)
        }
        if got := strings.TrimSpace(buf.String()); got != `{"data":{"id":"todo"}}` {
                t.Fatalf("unexpected json: %s", got)
        }
}

func TestWrite_YAMLUsesJSONTags(t *testing.T) {
        type item struct {
                IsEnabled bool `json:"isEnabled"`
        }
        var buf bytes.Buffer
        if err := Write(&buf, map[string]any{"data": item{IsEnabled: true}}, "yaml", false); err != nil {
                t.Fatalf("write: %v", err)
        }
        if !strings.Contains(buf.String(), "isEnabled: true") {
                t.Fatalf("expected json tag names in yaml, got:\n%s", buf.String())
        }
}

func TestWrite_TableUnwrapsEnvelope(t *testing.T) {
        color.NoColor = true
        var buf bytes.Buffer
        v := map[string]any{"data": rows{{"todo", "To do"}, {"done", "Done"}}}
        if err := Write(&buf, v, "table", false); err != nil {
                t.Fatalf("write: %v", err)
        }
        out := buf.String()
        for _, want := range []string{"ID", "VALUE", "todo", "To do", "Done"} {
                if !strings.Contains(out, want) {
                        t.Fatalf("expected %q in table:\n%s", want, out)
                }
        }
        if err := Write(&buf, map[string]any{"data": 1}, "table", false); err == nil {
                t.Fatalf("expected error for non-tabular payload")
        }
}

func TestWrite_UnknownFormat(t *testing.T) {
        if err := Write(&bytes.Buffer{}, 1, "xml", false); err == nil {
                t.Fatalf("expected error")
        }
}
