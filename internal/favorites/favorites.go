// Package favorites keeps the user's hand-picked recipes.
//
// Entries are copies taken when the recipe was favorited. They are not
// refreshed when the collection changes, and deleting a recipe from the
// collection does not remove its favorite.
package favorites

import (
	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/mirror"
)

// List is an ordered set of recipe copies, distinct by ID.
type List struct {
	items []domain.Recipe
}

// Toggle removes id if it is a favorite, otherwise copies the current
// collection entry and appends it. An id found in neither is ignored.
func (l List) Toggle(c mirror.Collection, id string) List {
	if i := l.indexOf(id); i >= 0 {
		out := make([]domain.Recipe, 0, len(l.items)-1)
		out = append(out, l.items[:i]...)
		out = append(out, l.items[i+1:]...)
		return List{items: out}
	}

	r, ok := c.Get(id)
	if !ok {
		return l
	}
	out := make([]domain.Recipe, len(l.items), len(l.items)+1)
	copy(out, l.items)
	return List{items: append(out, r)}
}

// Contains reports whether id is a favorite.
func (l List) Contains(id string) bool {
	return l.indexOf(id) >= 0
}

// Items returns a copy of the favorites in the order they were added.
func (l List) Items() []domain.Recipe {
	out := make([]domain.Recipe, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of favorites.
func (l List) Len() int { return len(l.items) }

func (l List) indexOf(id string) int {
	for i, r := range l.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}
