package docs

import (
        "strings"
        "testing"
)

func TestTopics_Sorted(t *testing.T) {
        t.Parallel()

        got := strings.Join(Topics(), ",")
        if got != "config,lists,publish" {
                t.Fatalf("unexpected topics: %s", got)
        }
}

func TestGet(t *testing.T) {
        t.Parallel()

        body, ok := Get(" Publish ")
        if !ok || !strings.HasPrefix(body, "# Publishing a scheme") {
                t.Fatalf("expected publish topic; ok=%v body=%q", ok, body)
        }
        for _, bad := range []string{"", "nope", "../docs"} {
                if _, ok := Get(bad); ok {
                        t.Fatalf("expected %q to be unknown", bad)
                }
        }
}
