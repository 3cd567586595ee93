package orderlist

import (
	"errors"
	"reflect"
	"testing"

	"issuecfg/internal/model"

	"github.com/go-playground/assert/v2"
)

type recorder struct {
	calls   []string
	changes [][]model.Item
	actions []Action
	created []string
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnChange: func(items []model.Item, action Action) error {
			r.calls = append(r.calls, "change:"+string(action))
			r.changes = append(r.changes, items)
			r.actions = append(r.actions, action)
			return nil
		},
		OnCreate: func(value string) error {
			r.calls = append(r.calls, "create")
			r.created = append(r.created, value)
			return nil
		},
		OnEdit: func(key, value string) error {
			r.calls = append(r.calls, "edit:"+key)
			return nil
		},
		OnInvalid: func(key string) error {
			r.calls = append(r.calls, "invalid:"+key)
			return nil
		},
		OnActive: func(key string) error {
			r.calls = append(r.calls, "active:"+key)
			return nil
		},
		OnDelete: func(key string) error {
			r.calls = append(r.calls, "delete:"+key)
			return nil
		},
	}
}

func twoItems() []model.Item {
	return []model.Item{
		{ID: "1", Value: "A", IsEnabled: true},
		{ID: "2", Value: "B", IsEnabled: true},
	}
}

func ids(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Identity())
	}
	return out
}

func TestReorder_MovesOneElementAndKeepsTheRest(t *testing.T) {
	base := []model.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
	for from := range base {
		for to := range base {
			got, err := Reorder(base, from, to)
			if err != nil {
				t.Fatalf("reorder %d->%d: %v", from, to, err)
			}
			if len(got) != len(base) {
				t.Fatalf("reorder %d->%d: len %d", from, to, len(got))
			}
			if got[to].ID != base[from].ID {
				t.Fatalf("reorder %d->%d: expected %q at %d, got %q", from, to, base[from].ID, to, got[to].ID)
			}
			var rest, wantRest []string
			for i, it := range got {
				if i != to {
					rest = append(rest, it.ID)
				}
			}
			for i, it := range base {
				if i != from {
					wantRest = append(wantRest, it.ID)
				}
			}
			if !reflect.DeepEqual(rest, wantRest) {
				t.Fatalf("reorder %d->%d: others %v, want %v", from, to, rest, wantRest)
			}
		}
	}
	if got := ids(base); !reflect.DeepEqual(got, []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("input mutated: %v", got)
	}
}

func TestReorder_RejectsOutOfRange(t *testing.T) {
	if _, err := Reorder(twoItems(), 0, 2); !errors.Is(err, ErrIndexOutRange) {
		t.Fatalf("expected ErrIndexOutRange, got %v", err)
	}
	if _, err := Reorder(twoItems(), -1, 0); !errors.Is(err, ErrIndexOutRange) {
		t.Fatalf("expected ErrIndexOutRange, got %v", err)
	}
}

func TestEditor_ReorderScenario(t *testing.T) {
	r := &recorder{}
	e := New(twoItems(), r.hooks())

	assert.Equal(t, e.BeginDrag(0), nil)
	assert.Equal(t, e.EndDrag(1, true), nil)

	assert.Equal(t, len(r.changes), 1)
	assert.Equal(t, ids(r.changes[0]), []string{"2", "1"})
	assert.Equal(t, r.actions[0], ActionNone)
	// The snapshot belongs to the owner until it is pushed back.
	assert.Equal(t, ids(e.Items()), []string{"1", "2"})
}

func TestEditor_DragCancelsSessionAndDropOutsideIsNoop(t *testing.T) {
	r := &recorder{}
	e := New(twoItems(), r.hooks())

	e.BeginAdd()
	e.SetDraft("draft")
	assert.Equal(t, e.BeginDrag(1), nil)
	assert.Equal(t, e.Session().Mode, ModeIdle)
	assert.Equal(t, e.Session().Draft, "")

	assert.Equal(t, e.EndDrag(0, false), nil)
	assert.Equal(t, len(r.calls), 0)
	assert.Equal(t, e.Dragging(), false)

	if err := e.EndDrag(0, true); !errors.Is(err, ErrNoDragActive) {
		t.Fatalf("expected ErrNoDragActive, got %v", err)
	}
}

func TestSession_CanSaveTracksDraft(t *testing.T) {
	e := New(twoItems(), Hooks{})
	e.BeginAdd()
	assert.Equal(t, e.Session().CanSave(), false)

	for _, s := range []string{"x", " ", "IN REVIEW"} {
		e.SetDraft(s)
		assert.Equal(t, e.Session().CanSave(), true)
		e.SetDraft("")
		assert.Equal(t, e.Session().CanSave(), false)
	}

	assert.Equal(t, e.BeginEdit("2"), nil)
	assert.Equal(t, e.Session().Mode, ModeEditing)
	assert.Equal(t, e.Session().Draft, "B")
	assert.Equal(t, e.Session().CanSave(), true)
	e.SetDraft("")
	assert.Equal(t, e.Session().CanSave(), false)
}

func TestSession_SetDraftIgnoredWhileIdle(t *testing.T) {
	e := New(twoItems(), Hooks{})
	e.SetDraft("ignored")
	assert.Equal(t, e.Session(), Session{Mode: ModeIdle})
}

func TestCommit_EmptyDraftIsNoop(t *testing.T) {
	r := &recorder{}
	e := New(twoItems(), r.hooks())

	e.BeginAdd()
	before := e.Session()
	if err := e.Commit(); !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
	assert.Equal(t, e.Session(), before)

	assert.Equal(t, e.BeginEdit("1"), nil)
	e.SetDraft("")
	before = e.Session()
	if err := e.Commit(); !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
	assert.Equal(t, e.Session(), before)
	assert.Equal(t, len(r.calls), 0)
}

func TestCommit_AddOnlyCallsOnCreate(t *testing.T) {
	r := &recorder{}
	e := New(twoItems(), r.hooks())

	e.BeginAdd()
	e.SetDraft("")
	assert.Equal(t, e.Session().CanSave(), false)
	e.SetDraft("C")
	assert.Equal(t, e.Session().CanSave(), true)
	assert.Equal(t, e.Commit(), nil)

	assert.Equal(t, r.created, []string{"C"})
	assert.Equal(t, len(r.changes), 0)
	assert.Equal(t, r.calls, []string{"create"})
	assert.Equal(t, e.Session().Mode, ModeIdle)
	assert.Equal(t, len(e.Items()), 2)
}

func TestCommit_EditUpdatesOnlyMatchingItem(t *testing.T) {
	r := &recorder{}
	items := []model.Item{
		{ID: "1", Value: "A", IsEnabled: true},
		{TempKey: "tmp-x", Value: "X", IsEnabled: false},
		{ID: "2", Value: "B", IsEnabled: true},
	}
	e := New(items, r.hooks())

	assert.Equal(t, e.BeginEdit("tmp-x"), nil)
	e.SetDraft("Renamed")
	assert.Equal(t, e.Commit(), nil)

	assert.Equal(t, r.calls, []string{"edit:tmp-x", "change:edit"})
	want := []model.Item{
		{ID: "1", Value: "A", IsEnabled: true},
		{TempKey: "tmp-x", Value: "Renamed", IsEnabled: false},
		{ID: "2", Value: "B", IsEnabled: true},
	}
	assert.Equal(t, r.changes[0], want)
	assert.Equal(t, e.Session().Mode, ModeIdle)
}

func TestSetEnabled_InvalidScenario(t *testing.T) {
	r := &recorder{}
	e := New(twoItems(), r.hooks())

	assert.Equal(t, e.SetEnabled("2", false), nil)
	assert.Equal(t, r.calls, []string{"invalid:2", "change:invalid"})
	assert.Equal(t, r.changes[0], []model.Item{
		{ID: "1", Value: "A", IsEnabled: true},
		{ID: "2", Value: "B", IsEnabled: false},
	})

	assert.Equal(t, e.SetEnabled("1", true), nil)
	assert.Equal(t, r.calls[2:], []string{"active:1", "change:active"})
}

func TestRemove_FiltersMatchingItem(t *testing.T) {
	r := &recorder{}
	e := New(twoItems(), r.hooks())

	assert.Equal(t, e.Remove("1"), nil)
	assert.Equal(t, r.calls, []string{"delete:1", "change:delete"})
	assert.Equal(t, r.changes[0], []model.Item{{ID: "2", Value: "B", IsEnabled: true}})
}

func TestUnmatchedIdentity_SkipsCollaborators(t *testing.T) {
	r := &recorder{}
	e := New(twoItems(), r.hooks())

	var nf NotFoundError
	if err := e.Edit("nope", "v"); !errors.As(err, &nf) {
		t.Fatalf("edit: expected NotFoundError, got %v", err)
	}
	if err := e.SetEnabled("nope", false); !errors.As(err, &nf) {
		t.Fatalf("setEnabled: expected NotFoundError, got %v", err)
	}
	if err := e.Remove("nope"); !errors.As(err, &nf) {
		t.Fatalf("remove: expected NotFoundError, got %v", err)
	}
	if err := e.BeginEdit("nope"); !errors.As(err, &nf) {
		t.Fatalf("beginEdit: expected NotFoundError, got %v", err)
	}
	assert.Equal(t, len(r.calls), 0)
}

func TestHookError_KeepsSession(t *testing.T) {
	boom := errors.New("boom")
	changed := 0
	e := New(twoItems(), Hooks{
		OnEdit:   func(string, string) error { return boom },
		OnChange: func([]model.Item, Action) error { changed++; return nil },
	})

	assert.Equal(t, e.BeginEdit("1"), nil)
	e.SetDraft("Z")
	if err := e.Commit(); !errors.Is(err, boom) {
		t.Fatalf("expected hook error, got %v", err)
	}
	assert.Equal(t, changed, 0)
	assert.Equal(t, e.Session(), Session{Mode: ModeEditing, Key: "1", Draft: "Z"})
}

func TestCommit_WhileIdle(t *testing.T) {
	e := New(twoItems(), Hooks{})
	if err := e.Commit(); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
}
