package orderlist

import (
	"strings"

	"issuecfg/internal/model"

	"github.com/oklog/ulid/v2"
)

// Buffer is an in-memory owner for an Editor's list. Changes are staged until
// Flush; entries created here carry a temp key until they get a durable id.
type Buffer struct {
	items []model.Item
	dirty bool

	// CanDelete, when set, may veto removing an entry.
	CanDelete func(it model.Item) error

	newKey func() string
}

func NewBuffer(items []model.Item) *Buffer {
	return &Buffer{
		items:  append([]model.Item(nil), items...),
		newKey: NewTempKey,
	}
}

// NewTempKey returns a fresh, never reused key for an unpersisted entry.
func NewTempKey() string {
	return "tmp-" + strings.ToLower(ulid.Make().String())
}

func (b *Buffer) Items() []model.Item {
	return append([]model.Item(nil), b.items...)
}

func (b *Buffer) Dirty() bool { return b.dirty }

// Hooks wires the buffer as the editor's collaborator.
func (b *Buffer) Hooks() Hooks {
	return Hooks{
		OnCreate: func(value string) error {
			b.items = append(b.items, model.Item{TempKey: b.newKey(), Value: value, IsEnabled: true})
			b.dirty = true
			return nil
		},
		OnDelete: func(key string) error {
			if b.CanDelete == nil {
				return nil
			}
			i := indexOf(b.items, key)
			if i < 0 {
				return nil
			}
			return b.CanDelete(b.items[i])
		},
		OnChange: func(items []model.Item, _ Action) error {
			b.items = append([]model.Item(nil), items...)
			b.dirty = true
			return nil
		},
	}
}

// Flush assigns durable ids to staged entries and returns the list to persist.
func (b *Buffer) Flush(assign func(it model.Item) string) []model.Item {
	for i := range b.items {
		if b.items[i].TempKey == "" {
			continue
		}
		if b.items[i].ID == "" {
			b.items[i].ID = assign(b.items[i])
		}
		b.items[i].TempKey = ""
	}
	b.dirty = false
	return b.Items()
}

// Reset discards staged changes.
func (b *Buffer) Reset(items []model.Item) {
	b.items = append([]model.Item(nil), items...)
	b.dirty = false
}
