package engine

import (
	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/favorites"
	"github.com/hammamikhairi/ottoshelf/internal/filter"
	"github.com/hammamikhairi/ottoshelf/internal/mirror"
)

// State is everything the view renders. It is only ever replaced, never
// mutated in place, and only by the goroutine running the event loop.
type State struct {
	Recipes   mirror.Collection
	Filter    filter.State
	Favorites favorites.List
	Session   domain.EditSession
	Err       string // the single user-visible error slot
}

// Visible returns the collection projected through the filter.
func (s State) Visible() []domain.Recipe {
	return filter.Project(s.Recipes.Items(), s.Filter)
}

// Categories returns the category picker entries, CategoryAll first.
func (s State) Categories() []string {
	return append([]string{filter.CategoryAll}, s.Recipes.Categories()...)
}

// ── User actions ─────────────────────────────────────────────────

// Search sets the name query.
func (s State) Search(q string) State {
	s.Filter = s.Filter.SetQuery(q)
	return s
}

// SelectCategory applies a category pick.
func (s State) SelectCategory(c string) State {
	s.Filter = s.Filter.SelectCategory(c)
	return s
}

// ToggleFavorite flips the favorite status of id.
func (s State) ToggleFavorite(id string) State {
	s.Favorites = s.Favorites.Toggle(s.Recipes, id)
	return s
}

// OpenCreate opens the empty form.
func (s State) OpenCreate() State {
	s.Session = OpenCreate(s.Session)
	return s
}

// OpenEdit opens the form on the collection entry id. Unknown ids leave
// the state unchanged.
func (s State) OpenEdit(id string) (State, bool) {
	r, ok := s.Recipes.Get(id)
	if !ok {
		return s, false
	}
	s.Session = OpenEdit(s.Session, r)
	return s, true
}

// CloseForm closes the form.
func (s State) CloseForm() State {
	s.Session = CloseSession(s.Session)
	return s
}

// SetField edits one form field.
func (s State) SetField(f domain.Field, v string) State {
	s.Session = SetField(s.Session, f, v)
	return s
}

// ── Completions ──────────────────────────────────────────────────

// Event is the outcome of a remote call, ready to be applied to State.
type Event interface {
	apply(State) State
}

// Apply folds an event into the state.
func Apply(s State, ev Event) State {
	if ev == nil {
		return s
	}
	return ev.apply(s)
}

// Loaded carries the initial collection.
type Loaded struct {
	Items []domain.Recipe
}

func (e Loaded) apply(s State) State {
	s.Recipes = s.Recipes.Load(e.Items)
	return s
}

// LoadFailed reports a failed initial fetch. It is logged, never shown,
// and leaves the collection as it was.
type LoadFailed struct {
	Err error
}

func (e LoadFailed) apply(s State) State { return s }

// Created carries a recipe the server just created.
type Created struct {
	Recipe domain.Recipe
}

func (e Created) apply(s State) State {
	s.Recipes = s.Recipes.ApplyCreate(e.Recipe)
	return submitted(s)
}

// Updated carries the server's copy of an updated recipe.
type Updated struct {
	Recipe domain.Recipe
}

func (e Updated) apply(s State) State {
	s.Recipes = s.Recipes.ApplyUpdate(e.Recipe)
	return submitted(s)
}

// submitted closes the form after a confirmed create or update. This
// happens even if the user reopened the form while the call was in
// flight.
func submitted(s State) State {
	s.Session = CloseSession(s.Session)
	s.Err = ""
	return s
}

// SubmitFailed reports a failed create or update. The form stays open
// with its values.
type SubmitFailed struct {
	Op  Op
	Err error
}

func (e SubmitFailed) apply(s State) State {
	s.Err = domain.MsgSubmit
	return s
}

// Deleted confirms a removal.
type Deleted struct {
	ID string
}

func (e Deleted) apply(s State) State {
	s.Recipes = s.Recipes.ApplyDelete(e.ID)
	return s
}

// DeleteFailed reports a failed removal. The edit session is untouched.
type DeleteFailed struct {
	ID  string
	Err error
}

func (e DeleteFailed) apply(s State) State {
	s.Err = domain.MsgDelete
	return s
}
