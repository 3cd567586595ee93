package statusutil

import (
        "fmt"
        "strings"

        "issuecfg/internal/model"
)

func NormalizeStatusID(s string) (string, error) {
        s = strings.TrimSpace(s)
        if s == "" {
                return "", fmt.Errorf("invalid status: empty")
        }
        return s, nil
}

// ValidateStatusID reports whether statusID names an enabled entry of the status list.
func ValidateStatusID(statuses []model.Item, statusID string) bool {
        sid := strings.TrimSpace(statusID)
        if sid == "" {
                return false
        }
        for _, it := range statuses {
                if it.ID == sid {
                        return it.IsEnabled
                }
        }
        return false
}

// Label returns the display value of a status id, or the id itself when unknown.
func Label(statuses []model.Item, statusID string) string {
        for _, it := range statuses {
                if it.ID == statusID {
                        return it.Value
                }
        }
        return statusID
}

// IsEndState treats the last enabled status of the list as the terminal one.
func IsEndState(statuses []model.Item, statusID string) bool {
        for i := len(statuses) - 1; i >= 0; i-- {
                if statuses[i].IsEnabled {
                        return statuses[i].ID == strings.TrimSpace(statusID)
                }
        }
        return false
}
