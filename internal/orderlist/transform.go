package orderlist

import "issuecfg/internal/model"

// Reorder returns a copy of items with the element at from moved to to.
// The input slice is not modified.
func Reorder(items []model.Item, from, to int) ([]model.Item, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, ErrIndexOutRange
	}
	out := make([]model.Item, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	moved := items[from]
	out = append(out, model.Item{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, nil
}

// mapMatching returns a copy of items with fn applied to every item matching key,
// and whether anything matched.
func mapMatching(items []model.Item, key string, fn func(model.Item) model.Item) ([]model.Item, bool) {
	out := make([]model.Item, len(items))
	matched := false
	for i, it := range items {
		if it.Matches(key) {
			out[i] = fn(it)
			matched = true
			continue
		}
		out[i] = it
	}
	return out, matched
}

func withValue(items []model.Item, key, value string) ([]model.Item, bool) {
	return mapMatching(items, key, func(it model.Item) model.Item {
		it.Value = value
		return it
	})
}

func withEnabled(items []model.Item, key string, enabled bool) ([]model.Item, bool) {
	return mapMatching(items, key, func(it model.Item) model.Item {
		it.IsEnabled = enabled
		return it
	})
}

func without(items []model.Item, key string) ([]model.Item, bool) {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.Matches(key) {
			continue
		}
		out = append(out, it)
	}
	return out, len(out) != len(items)
}

func indexOf(items []model.Item, key string) int {
	for i, it := range items {
		if it.Matches(key) {
			return i
		}
	}
	return -1
}
