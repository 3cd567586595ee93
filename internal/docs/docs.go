// Package docs embeds the command-line help topics shown by `issuecfg docs`.
package docs

import (
        "embed"
        "io/fs"
        "path"
        "sort"
        "strings"
)

//go:embed content/*.md
var contentFS embed.FS

func Topics() []string {
        entries, err := fs.Glob(contentFS, "content/*.md")
        if err != nil {
                return []string{}
        }
        topics := make([]string, 0, len(entries))
        for _, p := range entries {
                if topic := strings.TrimSuffix(path.Base(p), ".md"); topic != "" {
                        topics = append(topics, topic)
                }
        }
        sort.Strings(topics)
        return topics
}

// Get returns the markdown body of topic. Topics are case-insensitive.
func Get(topic string) (string, bool) {
        topic = strings.ToLower(strings.TrimSpace(topic))
        if topic == "" || strings.ContainsAny(topic, `/\`) {
                return "", false
        }
        b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
        if err != nil {
                return "", false
        }
        return string(b), true
}
