package remap

import (
	"fmt"
	"strings"

	"issuecfg/internal/model"

	"github.com/sahilm/fuzzy"
)

// MatchStatus finds the status named by q among refs: exact id, then
// case-insensitive name, then the best fuzzy name match.
func MatchStatus(refs []model.StatusRef, q string) (model.StatusRef, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return model.StatusRef{}, fmt.Errorf("empty status")
	}
	for _, r := range refs {
		if r.ID == q {
			return r, nil
		}
	}
	for _, r := range refs {
		if strings.EqualFold(strings.TrimSpace(r.Name), q) {
			return r, nil
		}
	}

	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	matches := fuzzy.Find(q, names)
	if len(matches) == 0 {
		return model.StatusRef{}, fmt.Errorf("unknown status: %s", q)
	}
	if len(matches) > 1 && matches[0].Score == matches[1].Score {
		return model.StatusRef{}, fmt.Errorf("ambiguous status %q: %s or %s", q, names[matches[0].Index], names[matches[1].Index])
	}
	return refs[matches[0].Index], nil
}

// SourceStatuses returns every distinct source status across groups, in first-seen order.
func SourceStatuses(groups []model.TypeGroup) []model.StatusRef {
	seen := map[string]bool{}
	var out []model.StatusRef
	for _, g := range groups {
		for _, it := range g.StatusChangeItems {
			if seen[it.OldStatus.ID] {
				continue
			}
			seen[it.OldStatus.ID] = true
			out = append(out, it.OldStatus)
		}
	}
	return out
}

// TargetStatuses returns every distinct candidate target across groups, in first-seen order.
func TargetStatuses(groups []model.TypeGroup) []model.StatusRef {
	seen := map[string]bool{}
	var out []model.StatusRef
	for _, g := range groups {
		for _, c := range g.CandidateTargets {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}

// ParseOverride parses "source=target", resolving each side by id or name.
func ParseOverride(groups []model.TypeGroup, spec string) (source, target model.StatusRef, err error) {
	left, right, ok := strings.Cut(spec, "=")
	if !ok {
		return source, target, fmt.Errorf("invalid override %q (want source=target)", spec)
	}
	source, err = MatchStatus(SourceStatuses(groups), left)
	if err != nil {
		return source, target, fmt.Errorf("override %q: source: %w", spec, err)
	}
	target, err = MatchStatus(TargetStatuses(groups), right)
	if err != nil {
		return source, target, fmt.Errorf("override %q: target: %w", spec, err)
	}
	return source, target, nil
}
