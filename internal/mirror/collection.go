// Package mirror holds the local copy of the remote recipe collection.
//
// A Collection is a value: every operation returns a new Collection and
// leaves the receiver untouched. Operations only reflect outcomes the
// server has already confirmed; nothing here talks to the network.
package mirror

import "github.com/hammamikhairi/ottoshelf/internal/domain"

// Collection is an ordered sequence of recipes, unique by ID.
type Collection struct {
	items      []domain.Recipe
	categories []string
}

// Load replaces the collection wholesale. When the payload repeats an ID
// the first occurrence wins.
func (c Collection) Load(items []domain.Recipe) Collection {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.Recipe, 0, len(items))
	for _, r := range items {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return build(out)
}

// ApplyCreate appends a newly created recipe. A recipe whose ID is already
// present replaces that element instead.
func (c Collection) ApplyCreate(r domain.Recipe) Collection {
	if c.indexOf(r.ID) >= 0 {
		return c.ApplyUpdate(r)
	}
	out := make([]domain.Recipe, len(c.items), len(c.items)+1)
	copy(out, c.items)
	return build(append(out, r))
}

// ApplyUpdate replaces the element with the same ID. Unknown IDs are
// ignored.
func (c Collection) ApplyUpdate(r domain.Recipe) Collection {
	i := c.indexOf(r.ID)
	if i < 0 {
		return c
	}
	out := c.Items()
	out[i] = r
	return build(out)
}

// ApplyDelete removes the element with the given ID.
func (c Collection) ApplyDelete(id string) Collection {
	i := c.indexOf(id)
	if i < 0 {
		return c
	}
	out := make([]domain.Recipe, 0, len(c.items)-1)
	out = append(out, c.items[:i]...)
	out = append(out, c.items[i+1:]...)
	return build(out)
}

// Items returns a copy of the recipes in order.
func (c Collection) Items() []domain.Recipe {
	out := make([]domain.Recipe, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the recipe with the given ID.
func (c Collection) Get(id string) (domain.Recipe, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return domain.Recipe{}, false
}

// Len returns the number of recipes.
func (c Collection) Len() int { return len(c.items) }

// Categories returns the distinct cuisines in first-seen order.
func (c Collection) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c Collection) indexOf(id string) int {
	for i, r := range c.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// build takes ownership of items and derives the category set.
func build(items []domain.Recipe) Collection {
	seen := make(map[string]struct{})
	var cats []string
	for _, r := range items {
		if _, ok := seen[r.Cuisine]; ok {
			continue
		}
		seen[r.Cuisine] = struct{}{}
		cats = append(cats, r.Cuisine)
	}
	return Collection{items: items, categories: cats}
}
