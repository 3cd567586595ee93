// Package remap resolves a scheme republish: the per-issue-type status
// correspondences computed upstream, the operator's overrides, and the single
// change-set sent to the publish operation.
package remap

import (
	"errors"
	"fmt"
	"sort"

	"issuecfg/internal/model"
)

var ErrNoCandidateTargets = errors.New("no candidate target statuses")

// Overrides maps a source status id to the chosen target status id.
//
// The map is shared by every type group: an override for a source status applies
// wherever that status appears, not only in the group where it was chosen.
type Overrides map[string]string

func (o Overrides) Set(sourceStatusID, targetStatusID string) {
	o[sourceStatusID] = targetStatusID
}

// Sources returns the overridden source ids in sorted order.
func (o Overrides) Sources() []string {
	out := make([]string, 0, len(o))
	for k := range o {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (o Overrides) Clone() Overrides {
	out := make(Overrides, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// DefaultTarget is the target preselected for a group when nothing is overridden.
func DefaultTarget(g model.TypeGroup) (model.StatusRef, error) {
	if len(g.CandidateTargets) == 0 {
		return model.StatusRef{}, fmt.Errorf("issue type %s: %w", g.IssueTypeID, ErrNoCandidateTargets)
	}
	return g.CandidateTargets[0], nil
}

// ResolveTarget returns the target status for one change item of g.
func ResolveTarget(g model.TypeGroup, it model.StatusChangeItem, overrides Overrides) (model.StatusRef, error) {
	def, err := DefaultTarget(g)
	if err != nil {
		return model.StatusRef{}, err
	}
	id, ok := overrides[it.OldStatus.ID]
	if !ok {
		return def, nil
	}
	if ref, found := candidateByID(g, id); found {
		return ref, nil
	}
	// Chosen from another group's candidates; keep the id.
	return model.StatusRef{ID: id}, nil
}

// BuildChangeSet resolves every change item of every group, preserving order.
func BuildChangeSet(groups []model.TypeGroup, overrides Overrides) ([]model.TypeChange, error) {
	out := make([]model.TypeChange, 0, len(groups))
	for _, g := range groups {
		tc := model.TypeChange{
			IssueTypeID:       g.IssueTypeID,
			StatusChangeItems: make([]model.ChangeItem, 0, len(g.StatusChangeItems)),
		}
		for _, it := range g.StatusChangeItems {
			target, err := ResolveTarget(g, it, overrides)
			if err != nil {
				return nil, err
			}
			tc.StatusChangeItems = append(tc.StatusChangeItems, model.ChangeItem{
				OldStatus: model.StatusIDRef{ID: it.OldStatus.ID},
				NewStatus: model.StatusIDRef{ID: target.ID},
			})
		}
		out = append(out, tc)
	}
	return out, nil
}

// CountChanges returns the number of change items across a change-set.
func CountChanges(changes []model.TypeChange) int {
	n := 0
	for _, tc := range changes {
		n += len(tc.StatusChangeItems)
	}
	return n
}

// CycleTarget returns the candidate after (or before, when step < 0) the
// currently resolved target of it. Used by selectors that step through options.
func CycleTarget(g model.TypeGroup, it model.StatusChangeItem, overrides Overrides, step int) (model.StatusRef, error) {
	cur, err := ResolveTarget(g, it, overrides)
	if err != nil {
		return model.StatusRef{}, err
	}
	n := len(g.CandidateTargets)
	idx := 0
	for i, c := range g.CandidateTargets {
		if c.ID == cur.ID {
			idx = i
			break
		}
	}
	next := ((idx+step)%n + n) % n
	return g.CandidateTargets[next], nil
}

func candidateByID(g model.TypeGroup, id string) (model.StatusRef, bool) {
	for _, c := range g.CandidateTargets {
		if c.ID == id {
			return c, true
		}
	}
	return model.StatusRef{}, false
}
