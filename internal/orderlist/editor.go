// Package orderlist holds the editing logic for an ordered, named list of
// entries (statuses, issue types, ...): drag reordering, inline add/edit, enable/
// disable and delete.
//
// An Editor reads a snapshot of the list and reports every change through Hooks.
// It never mutates the snapshot it was given and never adopts the snapshot it
// computes; the owner pushes the authoritative list back with SetItems.
package orderlist

import (
	"strings"

	"issuecfg/internal/model"

	"github.com/golang/glog"
)

// Action tags the generic change notification. Reorders carry ActionNone.
type Action string

const (
	ActionNone    Action = ""
	ActionEdit    Action = "edit"
	ActionInvalid Action = "invalid"
	ActionActive  Action = "active"
	ActionDelete  Action = "delete"
)

// Hooks are the editor's collaborators. Any hook may be nil.
//
// Per-operation hooks run immediately before OnChange. A non-nil error stops the
// operation; later hooks are skipped and the edit session is kept.
type Hooks struct {
	OnChange  func(items []model.Item, action Action) error
	OnCreate  func(value string) error
	OnEdit    func(key, value string) error
	OnInvalid func(key string) error
	OnActive  func(key string) error
	OnDelete  func(key string) error
}

type Editor struct {
	items   []model.Item
	hooks   Hooks
	session Session

	dragging bool
	dragFrom int
}

func New(items []model.Item, hooks Hooks) *Editor {
	e := &Editor{hooks: hooks, session: idleSession()}
	e.SetItems(items)
	return e
}

// SetItems replaces the snapshot the editor reads from.
func (e *Editor) SetItems(items []model.Item) {
	e.items = append([]model.Item(nil), items...)
}

// Items returns a copy of the current snapshot.
func (e *Editor) Items() []model.Item {
	return append([]model.Item(nil), e.items...)
}

func (e *Editor) Session() Session { return e.session }

func (e *Editor) Dragging() bool { return e.dragging }

// DragFrom returns the index the active drag started at, or -1.
func (e *Editor) DragFrom() int {
	if !e.dragging {
		return -1
	}
	return e.dragFrom
}

// BeginDrag starts a drag gesture at index from. Any pending add/edit is cancelled.
func (e *Editor) BeginDrag(from int) error {
	if from < 0 || from >= len(e.items) {
		return ErrIndexOutRange
	}
	e.session = idleSession()
	e.dragging = true
	e.dragFrom = from
	return nil
}

// EndDrag finishes the active drag. When dropped is false the gesture ended
// outside a valid target and nothing happens.
func (e *Editor) EndDrag(to int, dropped bool) error {
	if !e.dragging {
		return ErrNoDragActive
	}
	from := e.dragFrom
	e.dragging = false
	e.dragFrom = 0
	if !dropped {
		return nil
	}
	return e.Reorder(from, to)
}

// Reorder moves the item at from to to and emits OnChange with ActionNone.
func (e *Editor) Reorder(from, to int) error {
	next, err := Reorder(e.items, from, to)
	if err != nil {
		return err
	}
	glog.V(2).Infof("orderlist: reorder %d -> %d", from, to)
	return e.notify(next, ActionNone)
}

func (e *Editor) BeginAdd() {
	e.session = Session{Mode: ModeAdding}
}

// BeginEdit starts editing key, preloading the draft from its current value.
func (e *Editor) BeginEdit(key string) error {
	i := indexOf(e.items, key)
	if i < 0 {
		return NotFoundError{Key: key}
	}
	e.session = Session{Mode: ModeEditing, Key: key, Draft: e.items[i].Value}
	return nil
}

// SetDraft updates the draft text. It is ignored while idle.
func (e *Editor) SetDraft(text string) {
	if e.session.Mode == ModeIdle {
		return
	}
	e.session.Draft = text
}

func (e *Editor) Cancel() {
	e.session = idleSession()
}

// Commit saves the draft: a create while adding, an edit while editing.
// It does nothing and returns ErrEmptyDraft while the draft cannot be saved.
func (e *Editor) Commit() error {
	switch e.session.Mode {
	case ModeAdding:
		if !e.session.CanSave() {
			return ErrEmptyDraft
		}
		return e.Create(e.session.Draft)
	case ModeEditing:
		if !e.session.CanSave() {
			return ErrEmptyDraft
		}
		return e.Edit(e.session.Key, e.session.Draft)
	default:
		return ErrNotEditing
	}
}

// Create asks OnCreate to add value. No item is synthesized locally and
// OnChange is not called; the owner assigns identity and pushes the new list.
func (e *Editor) Create(value string) error {
	if value == "" {
		return ErrEmptyDraft
	}
	if e.hooks.OnCreate != nil {
		if err := e.hooks.OnCreate(value); err != nil {
			return err
		}
	}
	glog.V(1).Infof("orderlist: create %q", value)
	e.session = idleSession()
	return nil
}

func (e *Editor) Edit(key, value string) error {
	if value == "" {
		return ErrEmptyDraft
	}
	next, ok := withValue(e.items, key, value)
	if !ok {
		return NotFoundError{Key: key}
	}
	if e.hooks.OnEdit != nil {
		if err := e.hooks.OnEdit(key, value); err != nil {
			return err
		}
	}
	return e.notify(next, ActionEdit)
}

// SetEnabled marks key enabled or disabled ("active"/"invalid").
func (e *Editor) SetEnabled(key string, enabled bool) error {
	next, ok := withEnabled(e.items, key, enabled)
	if !ok {
		return NotFoundError{Key: key}
	}
	action := ActionInvalid
	hook := e.hooks.OnInvalid
	if enabled {
		action = ActionActive
		hook = e.hooks.OnActive
	}
	if hook != nil {
		if err := hook(key); err != nil {
			return err
		}
	}
	return e.notify(next, action)
}

func (e *Editor) Remove(key string) error {
	next, ok := without(e.items, key)
	if !ok {
		return NotFoundError{Key: key}
	}
	if e.hooks.OnDelete != nil {
		if err := e.hooks.OnDelete(key); err != nil {
			return err
		}
	}
	return e.notify(next, ActionDelete)
}

func (e *Editor) notify(next []model.Item, action Action) error {
	if e.hooks.OnChange != nil {
		if err := e.hooks.OnChange(next, action); err != nil {
			return err
		}
	}
	if action != ActionNone {
		glog.V(1).Infof("orderlist: %s (%d items)", action, len(next))
	}
	e.session = idleSession()
	return nil
}

// Lookup returns the item named by key.
func (e *Editor) Lookup(key string) (model.Item, bool) {
	i := indexOf(e.items, strings.TrimSpace(key))
	if i < 0 {
		return model.Item{}, false
	}
	return e.items[i], true
}
