package model

import (
        "strings"
        "time"
)

// ListKind names one of the orderable configuration lists of an organization.
type ListKind string

const (
        ListKindStatus    ListKind = "status"
        ListKindIssueType ListKind = "issue-type"
        ListKindPriority  ListKind = "priority"
)

func ListKinds() []ListKind {
        return []ListKind{ListKindStatus, ListKindIssueType, ListKindPriority}
}

func ParseListKind(s string) (ListKind, bool) {
        switch strings.ToLower(strings.TrimSpace(s)) {
        case "status", "statuses":
                return ListKindStatus, true
        case "issue-type", "issue-types", "type", "types":
                return ListKindIssueType, true
        case "priority", "priorities":
                return ListKindPriority, true
        default:
                return "", false
        }
}

// Item is one entry of an orderable list.
//
// ID is the durable id once persisted. TempKey is set for entries created in a
// staging session that have not been persisted yet.
type Item struct {
        ID        string `json:"id,omitempty"`
        TempKey   string `json:"tempKey,omitempty"`
        Value     string `json:"value"`
        IsEnabled bool   `json:"isEnabled"`
}

// Identity returns the key that names the item within a snapshot.
func (it Item) Identity() string {
        if it.TempKey != "" {
                return it.TempKey
        }
        return it.ID
}

// Matches reports whether key names this item, by temp key or durable id.
func (it Item) Matches(key string) bool {
        if key == "" {
                return false
        }
        return it.TempKey == key || it.ID == key
}

type StatusRef struct {
        ID   string `json:"id"`
        Name string `json:"name,omitempty"`
}

// StatusChangeItem is a default source -> target correspondence computed upstream.
type StatusChangeItem struct {
        OldStatus StatusRef `json:"oldStatus"`
        NewStatus StatusRef `json:"newStatus"`
}

type IssueType struct {
        ID     string `json:"id"`
        Name   string `json:"name"`
        Icon   string `json:"icon,omitempty"`
        Colour string `json:"colour,omitempty"`
}

// TypeGroup is one issue type's share of a scheme republish.
// CandidateTargets is the new state machine's full status list.
type TypeGroup struct {
        IssueTypeID       string             `json:"issueTypeId"`
        IssueType         IssueType          `json:"issueType"`
        IssueCount        int                `json:"issueCount"`
        StatusChangeItems []StatusChangeItem `json:"statusChangeItems"`
        CandidateTargets  []StatusRef        `json:"candidateTargets"`
}

// StatusIDRef is the id-only status reference used on the publish wire.
type StatusIDRef struct {
        ID string `json:"id"`
}

type ChangeItem struct {
        OldStatus StatusIDRef `json:"oldStatus"`
        NewStatus StatusIDRef `json:"newStatus"`
}

// TypeChange is one issue type's entry in a publish change-set.
type TypeChange struct {
        IssueTypeID       string       `json:"issueTypeId"`
        StatusChangeItems []ChangeItem `json:"statusChangeItems"`
}

type OrgContext struct {
        OrganizationID string `json:"organizationId"`
}

type SchemeState string

const (
        SchemeDraft  SchemeState = "draft"
        SchemeActive SchemeState = "active"
)

// Scheme is a state machine scheme. Groups holds the pending, precomputed
// status correspondence of a draft awaiting publish.
type Scheme struct {
        ID          string      `json:"id"`
        OrgID       string      `json:"orgId"`
        Name        string      `json:"name"`
        State       SchemeState `json:"state"`
        Groups      []TypeGroup `json:"groups,omitempty"`
        CreatedAt   time.Time   `json:"createdAt"`
        PublishedAt *time.Time  `json:"publishedAt,omitempty"`
}

type Issue struct {
        ID          string    `json:"id"`
        Title       string    `json:"title"`
        IssueTypeID string    `json:"issueTypeId"`
        StatusID    string    `json:"statusId"`
        CreatedAt   time.Time `json:"createdAt"`
        UpdatedAt   time.Time `json:"updatedAt"`
}

type Event struct {
        ID       string    `json:"id"`
        TS       time.Time `json:"ts"`
        OrgID    string    `json:"orgId"`
        Type     string    `json:"type"`
        EntityID string    `json:"entityId"`
        Payload  any       `json:"payload"`
}
