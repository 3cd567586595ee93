package orderlist

// Mode is the state of an editor's edit session.
type Mode int

const (
	ModeIdle Mode = iota
	ModeAdding
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeAdding:
		return "adding"
	case ModeEditing:
		return "editing"
	default:
		return "idle"
	}
}

// Session is the transient add/edit state of an Editor. It never leaves the
// editor except as a copy.
type Session struct {
	Mode Mode
	// Key is the identity being edited (ModeEditing only).
	Key   string
	Draft string
}

// CanSave reports whether the draft may be committed.
func (s Session) CanSave() bool {
	return s.Draft != ""
}

func (s Session) Active() bool {
	return s.Mode != ModeIdle
}

func idleSession() Session {
	return Session{Mode: ModeIdle}
}
