package filter

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
)

var recipes = []domain.Recipe{
	{ID: "1", Name: "Soup", Cuisine: "Thai"},
	{ID: "2", Name: "Pie", Cuisine: "French"},
	{ID: "3", Name: "Soupe à l'oignon", Cuisine: "french"},
	{ID: "4", Name: "Green Curry", Cuisine: "Thai food"},
}

func ids(rs []domain.Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestProject(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{"no constraint", State{}, []string{"1", "2", "3", "4"}},
		{"name substring", State{NameQuery: "so"}, []string{"1", "3"}},
		{"name case-insensitive", State{NameQuery: "CURRY"}, []string{"4"}},
		{"cuisine exact case-insensitive", State{CuisineFilter: "FRENCH"}, []string{"2", "3"}},
		{"cuisine is not substring", State{CuisineFilter: "Thai"}, []string{"1"}},
		{"both", State{NameQuery: "soup", CuisineFilter: "french"}, []string{"3"}},
		{"no match", State{NameQuery: "pizza"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Project(recipes, tt.state)))
		})
	}
}

func TestProjectScenario(t *testing.T) {
	items := []domain.Recipe{
		{ID: "1", Name: "Soup", Cuisine: "Thai"},
		{ID: "2", Name: "Pie", Cuisine: "French"},
	}
	got := Project(items, State{NameQuery: "so"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestProjectIdempotent(t *testing.T) {
	s := State{NameQuery: "o", CuisineFilter: "thai"}
	first := Project(recipes, s)
	second := Project(recipes, s)
	assert.Equal(t, first, second)

	// Projecting the projection changes nothing either.
	assert.Equal(t, first, Project(first, s))
}

func TestSelectCategory(t *testing.T) {
	prior := []State{
		{},
		{NameQuery: "soup"},
		{CuisineFilter: "Thai"},
		{NameQuery: "pie", CuisineFilter: "French"},
	}

	for _, s := range prior {
		assert.Equal(t, State{}, s.SelectCategory(CategoryAll))

		got := s.SelectCategory("Greek")
		assert.Equal(t, "Greek", got.CuisineFilter)
		assert.Equal(t, s.NameQuery, got.NameQuery)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "All", State{}.String())
	assert.Equal(t, false, State{}.Active())
	assert.Equal(t, `"so" in Thai`, State{NameQuery: "so", CuisineFilter: "Thai"}.String())
	assert.Equal(t, true, State{}.SetQuery("x").Active())
}
