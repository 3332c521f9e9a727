package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottoshelf/internal/display"
	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/engine"
	"github.com/hammamikhairi/ottoshelf/internal/filter"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
)

// screen is the part of display.UI the app draws with.
type screen interface {
	InputChan() <-chan string
	PrintHeader(text string)
	PrintLine(text string)
	PrintHint(text string)
	PrintRecipe(ref string, c display.Card)
	SetStatus(s display.Status)
}

// cliApp owns the State. Only run (and the handlers it calls) touch it;
// remote calls report back through events.
type cliApp struct {
	engine   *engine.Engine
	parser   domain.IntentParser
	notifier domain.Notifier
	ui       screen
	log      *logger.Logger

	state   engine.State
	events  chan engine.Event
	pending int
	refs    map[string]string // list reference -> recipe ID, from the last render
}

func newApp(eng *engine.Engine, parser domain.IntentParser, notifier domain.Notifier, ui screen, log *logger.Logger) *cliApp {
	return &cliApp{
		engine:   eng,
		parser:   parser,
		notifier: notifier,
		ui:       ui,
		log:      log,
		events:   make(chan engine.Event, 16),
		refs:     make(map[string]string),
	}
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintHint("Loading recipes...")
	a.dispatch(ctx, a.engine.Load)
	a.pushStatus()

	uiCh := a.ui.InputChan()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-a.events:
			a.handleEvent(ctx, ev)
		case input, ok := <-uiCh:
			if !ok {
				return
			}
			if !a.handleInput(ctx, input) {
				return
			}
		}
		a.pushStatus()
	}
}

// dispatch runs a remote call off the loop and posts its outcome back.
func (a *cliApp) dispatch(ctx context.Context, call func(context.Context) engine.Event) {
	a.pending++
	go func() {
		ev := call(ctx)
		select {
		case a.events <- ev:
		case <-ctx.Done():
		}
	}()
}

// handleInput parses and executes one line. It returns false on quit.
func (a *cliApp) handleInput(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return true
	}
	intent, err := a.parser.Parse(ctx, input)
	if err != nil {
		a.log.Error("parsing input: %v", err)
		return true
	}
	a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
	return a.handleIntent(ctx, intent)
}

func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentList:
		a.showList()
	case domain.IntentSearch:
		a.state = a.state.Search(intent.Payload)
		a.showList()
	case domain.IntentCategories:
		a.showCategories()
	case domain.IntentCategory:
		a.selectCategory(intent.Payload)
	case domain.IntentShowFavorites:
		a.showFavorites()
	case domain.IntentFavorite:
		a.toggleFavorite(ctx, intent.Payload)
	case domain.IntentAdd:
		a.state = a.state.OpenCreate()
		a.showForm()
	case domain.IntentEdit:
		a.openEdit(intent.Payload)
	case domain.IntentSetField:
		a.setField(intent.Payload, intent.Value)
	case domain.IntentSave:
		a.save(ctx)
	case domain.IntentClose:
		a.state = a.state.CloseForm()
		a.ui.PrintHint("Form closed.")
	case domain.IntentDelete:
		a.remove(ctx, intent.Payload)
	case domain.IntentStatus:
		a.status()
	case domain.IntentQuit:
		return false
	default:
		a.ui.PrintHint(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", intent.Payload))
	}
	return true
}

// handleEvent folds a remote outcome into the state and tells the user.
func (a *cliApp) handleEvent(ctx context.Context, ev engine.Event) {
	a.pending--
	a.state = engine.Apply(a.state, ev)

	switch ev := ev.(type) {
	case engine.Loaded:
		a.showList()
	case engine.LoadFailed:
		// Logged by the engine; the empty shelf is all the user sees.
		a.showList()
	case engine.Created:
		a.notifier.Notify(ctx, fmt.Sprintf("Added %s.", ev.Recipe.Name))
		a.showList()
	case engine.Updated:
		a.notifier.Notify(ctx, fmt.Sprintf("Updated %s.", ev.Recipe.Name))
		a.showList()
	case engine.Deleted:
		a.notifier.Notify(ctx, "Recipe deleted.")
		a.showList()
	case engine.SubmitFailed, engine.DeleteFailed:
		a.notifier.NotifyUrgent(ctx, a.state.Err)
	}
}

// ── Handlers ─────────────────────────────────────────────────────

func (a *cliApp) showHelp() {
	a.ui.PrintHeader("Commands")
	for _, l := range []string{
		"list                     show favorites and matching recipes",
		"search <text> | clear    filter by name",
		"categories               list cuisines",
		"category <name> | all    filter by cuisine ('all' also clears the search)",
		"fav <n>                  toggle favorite (f<n> for the favorites list)",
		"add | edit <n>           open the form",
		"set <field> <value>      fill the form (name, ingredients, steps, cuisine)",
		"<field>: <value>         same as set",
		"save | close             submit or discard the form",
		"delete <n>               delete a recipe",
		"status | quit",
	} {
		a.ui.PrintLine(l)
	}
}

// showList renders favorites (unfiltered) and then the visible recipes,
// renumbering the references the user can type.
func (a *cliApp) showList() {
	a.refs = make(map[string]string)

	if a.state.Favorites.Len() > 0 {
		a.renderFavorites()
	}

	a.ui.PrintHeader("Recipes")
	visible := a.state.Visible()
	if len(visible) == 0 {
		a.ui.PrintHint("No recipes to show.")
		return
	}
	for i, r := range visible {
		ref := strconv.Itoa(i + 1)
		a.refs[ref] = r.ID
		a.ui.PrintRecipe(ref, display.Card{Recipe: r, Favorite: a.state.Favorites.Contains(r.ID)})
	}
}

func (a *cliApp) showFavorites() {
	if a.state.Favorites.Len() == 0 {
		a.ui.PrintHint("No favorites yet. Use 'fav <n>'.")
		return
	}
	a.renderFavorites()
}

func (a *cliApp) renderFavorites() {
	a.ui.PrintHeader("Favorites")
	for i, r := range a.state.Favorites.Items() {
		ref := "f" + strconv.Itoa(i+1)
		a.refs[ref] = r.ID
		a.ui.PrintRecipe(ref, display.Card{Recipe: r, Favorite: true})
	}
}

func (a *cliApp) showCategories() {
	a.ui.PrintHeader("Categories")
	for _, c := range a.state.Categories() {
		a.ui.PrintLine(c)
	}
}

func (a *cliApp) selectCategory(name string) {
	if strings.EqualFold(name, filter.CategoryAll) {
		name = filter.CategoryAll
	}
	a.state = a.state.SelectCategory(name)
	a.showList()
}

func (a *cliApp) toggleFavorite(ctx context.Context, ref string) {
	id, ok := a.resolve(ref, true)
	if !ok {
		return
	}
	a.state = a.state.ToggleFavorite(id)
	if a.state.Favorites.Contains(id) {
		a.notifier.Notify(ctx, "Added to favorites.")
	} else {
		a.notifier.Notify(ctx, "Removed from favorites.")
	}
}

func (a *cliApp) openEdit(ref string) {
	id, ok := a.resolve(ref, false)
	if !ok {
		return
	}
	next, ok := a.state.OpenEdit(id)
	if !ok {
		a.ui.PrintHint("That recipe is no longer on the shelf.")
		return
	}
	a.state = next
	a.showForm()
}

func (a *cliApp) setField(name, value string) {
	if !a.state.Session.Open() {
		a.ui.PrintHint("Open the form first with 'add' or 'edit <n>'.")
		return
	}
	f, ok := domain.FieldFromString(name)
	if !ok {
		a.ui.PrintHint(fmt.Sprintf("Unknown field %q.", name))
		return
	}
	a.state = a.state.SetField(f, value)
	a.showForm()
}

func (a *cliApp) save(ctx context.Context) {
	if !a.state.Session.Open() {
		a.ui.PrintHint("Nothing to save. Use 'add' or 'edit <n>'.")
		return
	}
	next, req := a.engine.Submit(a.state)
	a.state = next
	if req == nil {
		a.notifier.NotifyUrgent(ctx, a.state.Err)
		return
	}
	a.ui.PrintHint("Saving...")
	r := *req
	a.dispatch(ctx, func(ctx context.Context) engine.Event { return a.engine.Execute(ctx, r) })
}

func (a *cliApp) remove(ctx context.Context, ref string) {
	id, ok := a.resolve(ref, false)
	if !ok {
		return
	}
	a.ui.PrintHint("Deleting...")
	req := a.engine.DeleteRequest(id)
	a.dispatch(ctx, func(ctx context.Context) engine.Event { return a.engine.Execute(ctx, req) })
}

func (a *cliApp) status() {
	a.ui.PrintLine(fmt.Sprintf("Filter: %s, %d of %d recipes, %d favorites, %d pending",
		a.state.Filter, len(a.state.Visible()), a.state.Recipes.Len(), a.state.Favorites.Len(), a.pending))
	if a.state.Err != "" {
		a.ui.PrintLine("Last error: " + a.state.Err)
	}
	if a.state.Session.Open() {
		a.showForm()
	}
}

func (a *cliApp) showForm() {
	for _, l := range display.FormLines(a.state.Session) {
		a.ui.PrintLine(strings.TrimPrefix(l, "  "))
	}
	if a.state.Err != "" {
		a.ui.PrintHint(a.state.Err)
	}
}

// resolve maps a list reference to a recipe ID. Favorites references
// ("f1") are accepted only when allowFav is set.
func (a *cliApp) resolve(ref string, allowFav bool) (string, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if strings.HasPrefix(ref, "f") && !allowFav {
		a.ui.PrintHint("Favorites can only be un-favorited. Use a number from the recipe list.")
		return "", false
	}
	id, ok := a.refs[ref]
	if !ok {
		a.ui.PrintHint(fmt.Sprintf("No entry %q in the last list. Type 'list' to refresh.", ref))
		return "", false
	}
	return id, true
}

func (a *cliApp) pushStatus() {
	a.ui.SetStatus(display.Status{
		Mode:      a.state.Session.Mode.String(),
		Filter:    a.state.Filter.String(),
		Total:     a.state.Recipes.Len(),
		Visible:   len(a.state.Visible()),
		Favorites: a.state.Favorites.Len(),
		Pending:   a.pending,
		Err:       a.state.Err,
	})
}
