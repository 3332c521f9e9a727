package domain

// EditMode tracks whether the record form is open and what it targets.
type EditMode int

const (
	EditIdle EditMode = iota
	EditCreating
	EditEditing
)

// String returns a human-readable edit mode.
func (m EditMode) String() string {
	switch m {
	case EditIdle:
		return "idle"
	case EditCreating:
		return "creating"
	case EditEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// EditSession is the state of the record form.
type EditSession struct {
	Mode   EditMode
	Target *Recipe // pre-edit snapshot, set only in EditEditing
	Fields Draft
}

// Open reports whether the form is showing.
func (s EditSession) Open() bool {
	return s.Mode != EditIdle
}

// TargetID returns the id an update would address, or "".
func (s EditSession) TargetID() string {
	if s.Mode != EditEditing || s.Target == nil {
		return ""
	}
	return s.Target.ID
}

// SubmitLabel is the caption of the form's submit action.
func (s EditSession) SubmitLabel() string {
	if s.Mode == EditEditing {
		return "Update Data"
	}
	return "Add Data"
}
