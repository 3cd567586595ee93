package store

import (
        "regexp"
        "strconv"
        "strings"

        "issuecfg/internal/model"
)

var reNonID = regexp.MustCompile(`[^a-z0-9-]+`)

func slugifyEntryID(value string) string {
        s := strings.ToLower(strings.TrimSpace(value))
        s = strings.ReplaceAll(s, " ", "-")
        s = reNonID.ReplaceAllString(s, "-")
        s = strings.Trim(s, "-")
        if s == "" {
                return "entry"
        }
        return s
}

// NewEntryID returns a stable id derived from value, unique across the whole
// workspace and distinct from reserved, and disambiguates with suffixes if needed.
func NewEntryID(db *DB, value string, reserved ...string) string {
        taken := func(id string) bool {
                for _, r := range reserved {
                        if r == id {
                                return true
                        }
                }
                return idExists(db, id)
        }
        base := slugifyEntryID(value)
        if !taken(base) {
                return base
        }
        for i := 2; i < 1000; i++ {
                candidate := base + "-" + strconv.Itoa(i)
                if !taken(candidate) {
                        return candidate
                }
        }
        return base + "-x"
}

// FirstEnabledID returns the first enabled entry id of a list, or "" if none exist.
func FirstEnabledID(items []model.Item) string {
        for _, it := range items {
                if it.IsEnabled {
                        return strings.TrimSpace(it.ID)
                }
        }
        return ""
}
