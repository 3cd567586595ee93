package remap

import (
	"bytes"
	"fmt"
	"strings"

	"issuecfg/internal/model"
)

// RenderMarkdown renders the publish preview: one section per issue type with a
// source -> target table resolved against overrides.
func RenderMarkdown(schemeName string, groups []model.TypeGroup, overrides Overrides) (string, error) {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(schemeName)
	if title == "" {
		title = "Scheme"
	}
	writeLn("# Publish: " + title)
	writeLn("")
	if len(groups) == 0 {
		writeLn("No issue needs a status change.")
		return buf.String(), nil
	}

	for _, g := range groups {
		name := strings.TrimSpace(g.IssueType.Name)
		if name == "" {
			name = g.IssueTypeID
		}
		writeLn(fmt.Sprintf("## %s (%d)", name, g.IssueCount))
		writeLn("")
		writeLn("| Source | Suggested | Target |")
		writeLn("|---|---|---|")
		for _, it := range g.StatusChangeItems {
			target, err := ResolveTarget(g, it, overrides)
			if err != nil {
				return "", err
			}
			mark := ""
			if _, ok := overrides[it.OldStatus.ID]; ok {
				mark = " *"
			}
			writeLn(fmt.Sprintf("| %s | %s | %s%s |", statusText(it.OldStatus), statusText(it.NewStatus), statusText(target), mark))
		}
		writeLn("")
	}
	if len(overrides) > 0 {
		writeLn("`*` overridden")
	}
	return buf.String(), nil
}

func statusText(r model.StatusRef) string {
	if strings.TrimSpace(r.Name) == "" {
		return r.ID
	}
	return r.Name
}
