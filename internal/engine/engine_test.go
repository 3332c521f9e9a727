package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
	"github.com/hammamikhairi/ottoshelf/internal/remote"
	"github.com/hammamikhairi/ottoshelf/internal/remote/remotetest"
)

var (
	soup = domain.Recipe{ID: "1", Name: "Soup", Ingredients: "water", Steps: "boil", Cuisine: "Thai"}
	pie  = domain.Recipe{ID: "2", Name: "Pie", Ingredients: "flour", Steps: "bake", Cuisine: "French"}
)

// fakeStore records calls and answers from canned values.
type fakeStore struct {
	calls   int
	items   []domain.Recipe
	err     error
	nextID  string
	updated domain.Recipe
}

func (f *fakeStore) FetchAll(ctx context.Context) ([]domain.Recipe, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeStore) Create(ctx context.Context, d domain.Draft) (domain.Recipe, error) {
	f.calls++
	if f.err != nil {
		return domain.Recipe{}, f.err
	}
	return d.WithID(f.nextID), nil
}

func (f *fakeStore) Update(ctx context.Context, id string, d domain.Draft) (domain.Recipe, error) {
	f.calls++
	if f.err != nil {
		return domain.Recipe{}, f.err
	}
	f.updated = d.WithID(id)
	return f.updated, nil
}

func (f *fakeStore) Remove(ctx context.Context, id string) error {
	f.calls++
	return f.err
}

func setupEngine(t *testing.T, store domain.RecipeStore) (*Engine, context.Context) {
	t.Helper()
	return New(store, logger.New(logger.LevelOff, nil)), context.Background()
}

func loaded(items ...domain.Recipe) State {
	return Apply(State{}, Loaded{Items: items})
}

func TestLoad(t *testing.T) {
	store := &fakeStore{items: []domain.Recipe{soup, pie}}
	eng, ctx := setupEngine(t, store)

	s := Apply(State{}, eng.Load(ctx))
	if s.Recipes.Len() != 2 {
		t.Fatalf("expected 2 recipes, got %d", s.Recipes.Len())
	}
	cats := s.Categories()
	if len(cats) != 3 || cats[0] != "All" || cats[1] != "Thai" || cats[2] != "French" {
		t.Fatalf("unexpected categories: %v", cats)
	}
}

func TestLoadFailureIsSilent(t *testing.T) {
	store := &fakeStore{err: errors.New("offline")}
	eng, ctx := setupEngine(t, store)

	ev := eng.Load(ctx)
	lf, ok := ev.(LoadFailed)
	if !ok {
		t.Fatalf("expected LoadFailed, got %T", ev)
	}
	if !errors.Is(lf.Err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", lf.Err)
	}

	s := Apply(State{}, ev)
	if s.Recipes.Len() != 0 || s.Err != "" {
		t.Fatalf("expected empty collection and no error, got %d items, err=%q", s.Recipes.Len(), s.Err)
	}
}

func TestSubmitValidation(t *testing.T) {
	store := &fakeStore{}
	eng, _ := setupEngine(t, store)

	s := loaded(soup).OpenCreate()
	s = s.SetField(domain.FieldName, "Tacos")
	s = s.SetField(domain.FieldSteps, "fold")
	s = s.SetField(domain.FieldCuisine, "Mexican")
	// ingredients left empty

	next, req := eng.Submit(s)
	if req != nil {
		t.Fatalf("expected no request, got %+v", req)
	}
	if store.calls != 0 {
		t.Fatalf("expected no store calls, got %d", store.calls)
	}
	if next.Err != domain.MsgValidation {
		t.Fatalf("expected validation message, got %q", next.Err)
	}
	if next.Session.Mode != domain.EditCreating || next.Session.Fields.Name != "Tacos" {
		t.Fatalf("form should stay open with values, got %+v", next.Session)
	}
	if next.Recipes.Len() != 1 {
		t.Fatalf("collection changed: %d", next.Recipes.Len())
	}
}

func TestSubmitClosedForm(t *testing.T) {
	eng, _ := setupEngine(t, &fakeStore{})
	if _, req := eng.Submit(loaded(soup)); req != nil {
		t.Fatalf("expected no request while idle, got %+v", req)
	}
}

func TestCreateFlow(t *testing.T) {
	store := &fakeStore{nextID: "3"}
	eng, ctx := setupEngine(t, store)

	s := loaded(soup).OpenCreate()
	for f, v := range map[domain.Field]string{
		domain.FieldName:        "Tacos",
		domain.FieldIngredients: "tortilla",
		domain.FieldSteps:       "fold",
		domain.FieldCuisine:     "Mexican",
	} {
		s = s.SetField(f, v)
	}
	s.Err = "stale error"

	s, req := eng.Submit(s)
	if req == nil || req.Op != OpCreate {
		t.Fatalf("expected create request, got %+v", req)
	}
	s = eng.Run(ctx, s, req)

	if s.Recipes.Len() != 2 {
		t.Fatalf("expected 2 recipes, got %d", s.Recipes.Len())
	}
	if got := s.Recipes.Items()[1]; got.ID != "3" || got.Name != "Tacos" {
		t.Fatalf("unexpected appended recipe: %+v", got)
	}
	if s.Session.Open() || s.Session.Fields != (domain.Draft{}) {
		t.Fatalf("expected closed, cleared form, got %+v", s.Session)
	}
	if s.Err != "" {
		t.Fatalf("expected error cleared, got %q", s.Err)
	}
	cats := s.Recipes.Categories()
	if len(cats) != 2 || cats[1] != "Mexican" {
		t.Fatalf("categories not recomputed: %v", cats)
	}
}

func TestUpdateFlow(t *testing.T) {
	store := &fakeStore{}
	eng, ctx := setupEngine(t, store)

	s, ok := loaded(soup, pie).OpenEdit("1")
	if !ok {
		t.Fatal("open edit failed")
	}
	if s.Session.Mode != domain.EditEditing || s.Session.Fields != soup.Draft() {
		t.Fatalf("form not pre-filled: %+v", s.Session)
	}
	s = s.SetField(domain.FieldName, "Tom Yum")

	s, req := eng.Submit(s)
	if req == nil || req.Op != OpUpdate || req.ID != "1" {
		t.Fatalf("expected update request for 1, got %+v", req)
	}
	s = eng.Run(ctx, s, req)

	got, _ := s.Recipes.Get("1")
	if got != store.updated {
		t.Fatalf("expected server record %+v, got %+v", store.updated, got)
	}
	if s.Recipes.Items()[0].ID != "1" {
		t.Fatal("update changed element order")
	}
	if s.Session.Mode != domain.EditIdle || s.Session.Fields != (domain.Draft{}) {
		t.Fatalf("expected idle, cleared form, got %+v", s.Session)
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	store := &fakeStore{err: errors.New("409 conflict")}
	eng, ctx := setupEngine(t, store)

	s, _ := loaded(soup).OpenEdit("1")
	s = s.SetField(domain.FieldSteps, "boil longer")

	s, req := eng.Submit(s)
	ev := eng.Execute(ctx, *req)
	sf, ok := ev.(SubmitFailed)
	if !ok || !errors.Is(sf.Err, domain.ErrSubmit) {
		t.Fatalf("expected SubmitFailed wrapping ErrSubmit, got %#v", ev)
	}
	s = Apply(s, ev)

	if s.Err != domain.MsgSubmit {
		t.Fatalf("expected submit message, got %q", s.Err)
	}
	if s.Session.Mode != domain.EditEditing || s.Session.Fields.Steps != "boil longer" {
		t.Fatalf("form should keep its values, got %+v", s.Session)
	}
	if got, _ := s.Recipes.Get("1"); got != soup {
		t.Fatalf("collection changed on failure: %+v", got)
	}
}

func TestDeleteFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("404")}
	eng, ctx := setupEngine(t, store)

	s := loaded(soup, pie).OpenCreate().SetField(domain.FieldName, "draft")
	before := s.Session

	s = eng.Run(ctx, s, &Request{Op: OpDelete, ID: "1"})

	if s.Recipes.Len() != 2 {
		t.Fatalf("collection changed on failed delete: %d", s.Recipes.Len())
	}
	if s.Err != domain.MsgDelete {
		t.Fatalf("expected delete message, got %q", s.Err)
	}
	if s.Session != before {
		t.Fatalf("edit session changed: %+v -> %+v", before, s.Session)
	}
}

func TestDeleteSuccess(t *testing.T) {
	eng, ctx := setupEngine(t, &fakeStore{})

	s := loaded(soup, pie).ToggleFavorite("1")
	req := eng.DeleteRequest("1")
	s = Apply(s, eng.Execute(ctx, req))

	if _, ok := s.Recipes.Get("1"); ok {
		t.Fatal("expected recipe 1 removed")
	}
	if !s.Favorites.Contains("1") {
		t.Fatal("favorite should survive delete")
	}
}

func TestFavoriteStaysStaleAfterEdit(t *testing.T) {
	eng, ctx := setupEngine(t, &fakeStore{})

	s := loaded(soup, pie).ToggleFavorite("2")
	s, _ = s.OpenEdit("2")
	s = s.SetField(domain.FieldName, "Tart")
	s, req := eng.Submit(s)
	s = eng.Run(ctx, s, req)

	if got, _ := s.Recipes.Get("2"); got.Name != "Tart" {
		t.Fatalf("collection not updated: %+v", got)
	}
	if fav := s.Favorites.Items()[0]; fav.Name != "Pie" {
		t.Fatalf("favorite should keep pre-edit values, got %+v", fav)
	}
}

func TestLateCompletionAppliesByID(t *testing.T) {
	eng, ctx := setupEngine(t, &fakeStore{})

	s, _ := loaded(soup, pie).OpenEdit("1")
	s = s.SetField(domain.FieldName, "Tom Yum")
	s, req := eng.Submit(s)

	// The user moves on before the response arrives.
	s = s.CloseForm().SelectCategory("French")
	s, _ = s.OpenEdit("2")

	s = Apply(s, eng.Execute(ctx, *req))
	if got, _ := s.Recipes.Get("1"); got.Name != "Tom Yum" {
		t.Fatalf("late update not applied: %+v", got)
	}
	if s.Filter.CuisineFilter != "French" {
		t.Fatalf("filter changed: %+v", s.Filter)
	}
	if got := s.Visible(); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected visible set: %+v", got)
	}
}

func TestSelectAllResetsFilter(t *testing.T) {
	s := loaded(soup, pie).Search("so").SelectCategory("Thai")
	s = s.SelectCategory("All")
	if s.Filter.Active() {
		t.Fatalf("expected cleared filter, got %+v", s.Filter)
	}
	if len(s.Visible()) != 2 {
		t.Fatalf("expected everything visible, got %d", len(s.Visible()))
	}
}

func TestEndToEndAgainstServer(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	srv := remotetest.NewServer(remotetest.NewMemoryStore(log, soup, pie), log)
	defer srv.Close()

	eng := New(remote.NewClient(srv.URL(), log), log)
	ctx := context.Background()

	s := Apply(State{}, eng.Load(ctx))
	if s.Recipes.Len() != 2 {
		t.Fatalf("expected 2 recipes, got %d", s.Recipes.Len())
	}

	// Validation never reaches the server.
	before := srv.Requests()
	s = s.OpenCreate().SetField(domain.FieldName, "Soup")
	s, req := eng.Submit(s)
	if req != nil || srv.Requests() != before {
		t.Fatalf("validation failure hit the network (req=%+v)", req)
	}

	// Duplicate name: the server refuses, the form stays open.
	s = s.SetField(domain.FieldIngredients, "water")
	s = s.SetField(domain.FieldSteps, "boil")
	s = s.SetField(domain.FieldCuisine, "Thai")
	s, req = eng.Submit(s)
	s = eng.Run(ctx, s, req)
	if s.Err != domain.MsgSubmit || !s.Session.Open() {
		t.Fatalf("expected submit failure with open form, err=%q session=%+v", s.Err, s.Session)
	}

	// Rename and retry.
	s = s.SetField(domain.FieldName, "Laksa")
	s, req = eng.Submit(s)
	s = eng.Run(ctx, s, req)
	if s.Err != "" || s.Session.Open() || s.Recipes.Len() != 3 {
		t.Fatalf("create failed: err=%q session=%+v len=%d", s.Err, s.Session, s.Recipes.Len())
	}

	// Delete something the server no longer has.
	if _, err := srv.Store.Delete(pie.ID); err != nil {
		t.Fatalf("server delete: %v", err)
	}
	s = eng.Run(ctx, s, &Request{Op: OpDelete, ID: pie.ID})
	if s.Err != domain.MsgDelete || s.Recipes.Len() != 3 {
		t.Fatalf("expected delete failure, err=%q len=%d", s.Err, s.Recipes.Len())
	}
}
