package display

import (
	"strings"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
)

// Card is one recipe as the list shows it.
type Card struct {
	Recipe   domain.Recipe
	Favorite bool
}

// Lines renders the card under the given reference.
func (c Card) Lines(ref string) []string {
	heart := secondaryStyle.Render("♡")
	if c.Favorite {
		heart = heartStyle.Render("♥")
	}

	head := "  " + heart + " " + secondaryStyle.Render("["+ref+"]") + " " +
		primaryStyle.Bold(true).Render(c.Recipe.Name) + " " +
		secondaryStyle.Render("("+c.Recipe.Cuisine+")")

	return []string{
		head,
		field("Ingredients", c.Recipe.Ingredients),
		field("Steps", c.Recipe.Steps),
	}
}

func field(label, value string) string {
	value = strings.Join(strings.Fields(value), " ")
	return "      " + labelStyle.Render(label+": ") + primaryStyle.Render(value)
}

// FormLines renders the open record form.
func FormLines(s domain.EditSession) []string {
	title := "New recipe"
	if s.Mode == domain.EditEditing && s.Target != nil {
		title = "Editing " + s.Target.Name
	}
	lines := []string{headerStyle.Render("  " + title)}
	for _, f := range domain.Fields {
		v := s.Fields.Get(f)
		if v == "" {
			v = secondaryStyle.Render("(empty)")
		} else {
			v = primaryStyle.Render(v)
		}
		lines = append(lines, "    "+labelStyle.Render(f.String()+": ")+v)
	}
	lines = append(lines, secondaryStyle.Render("    'save' to "+strings.ToLower(s.SubmitLabel())+", 'close' to discard"))
	return lines
}
