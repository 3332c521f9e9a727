package engine

import "github.com/hammamikhairi/ottoshelf/internal/domain"

// OpenCreate opens the form for a new recipe with every field cleared.
func OpenCreate(s domain.EditSession) domain.EditSession {
	return domain.EditSession{Mode: domain.EditCreating}
}

// OpenEdit opens the form on r, pre-filled with its current values. The
// recipe is kept as the update target.
func OpenEdit(s domain.EditSession, r domain.Recipe) domain.EditSession {
	target := r
	return domain.EditSession{
		Mode:   domain.EditEditing,
		Target: &target,
		Fields: r.Draft(),
	}
}

// CloseSession closes the form and forgets its target and fields.
func CloseSession(s domain.EditSession) domain.EditSession {
	return domain.EditSession{}
}

// SetField changes one form field. It has no effect while the form is
// closed.
func SetField(s domain.EditSession, f domain.Field, v string) domain.EditSession {
	if !s.Open() {
		return s
	}
	s.Fields = s.Fields.Set(f, v)
	return s
}
