package format

import (
        "io"

        "github.com/fatih/color"
        "github.com/gosuri/uitable"
)

const maxColWidth = 60

// WriteTable renders rows under a bold header. Color is dropped when w is not a terminal.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
        tbl := uitable.New()
        tbl.MaxColWidth = maxColWidth
        tbl.Wrap = true

        bold := color.New(color.Bold).SprintFunc()
        h := make([]interface{}, 0, len(header))
        for _, c := range header {
                h = append(h, bold(c))
        }
        tbl.AddRow(h...)
        for _, r := range rows {
                cells := make([]interface{}, 0, len(r))
                for _, c := range r {
                        cells = append(cells, c)
                }
                tbl.AddRow(cells...)
        }
        _, err := io.WriteString(w, tbl.String()+"\n")
        return err
}

// Enabled renders an enabled flag as a colored word.
func Enabled(on bool) string {
        if on {
                return color.GreenString("enabled")
        }
        return color.New(color.Faint).Sprint("disabled")
}
