package format

import (
        "encoding/json"
        "fmt"
        "io"

        "gopkg.in/yaml.v2"
)

// Tabular is implemented by payloads that know how to render as a table.
type Tabular interface {
        Table() (header []string, rows [][]string)
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - yaml
// - table (payloads implementing Tabular, possibly wrapped in an envelope)
func Write(w io.Writer, v any, format string, pretty bool) error {
        switch format {
        case "", "json":
                return WriteJSON(w, v, pretty)
        case "yaml", "yml":
                return WriteYAML(w, v)
        case "table":
                t, ok := unwrapTabular(v)
                if !ok {
                        return fmt.Errorf("output cannot be rendered as a table: %T", v)
                }
                h, rows := t.Table()
                return WriteTable(w, h, rows)
        default:
                return fmt.Errorf("unknown format: %s", format)
        }
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
        var b []byte
        var err error
        if pretty {
                b, err = json.MarshalIndent(v, "", "  ")
        } else {
                b, err = json.Marshal(v)
        }
        if err != nil {
                return err
        }

        _, err = fmt.Fprintln(w, string(b))
        return err
}

// WriteYAML goes through JSON first so json tags drive the field names.
func WriteYAML(w io.Writer, v any) error {
        b, err := json.Marshal(v)
        if err != nil {
                return err
        }
        var x any
        if err := yaml.Unmarshal(b, &x); err != nil {
                return err
        }
        out, err := yaml.Marshal(x)
        if err != nil {
                return err
        }
        _, err = w.Write(out)
        return err
}

func unwrapTabular(v any) (Tabular, bool) {
        switch t := v.(type) {
        case Tabular:
                return t, true
        case map[string]any:
                if d, ok := t["data"]; ok {
                        return unwrapTabular(d)
                }
        }
        return nil, false
}
