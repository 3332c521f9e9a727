// Package domain defines the core types and interfaces for the recipe shelf.
// All other packages depend on domain; domain depends on nothing but
// error aggregation.
package domain

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Recipe is a single record of the remote collection.
type Recipe struct {
	ID          string // server-assigned, immutable once set
	Name        string
	Ingredients string
	Steps       string
	Cuisine     string // doubles as the category key
}

// Draft returns the recipe's content fields without its identity.
func (r Recipe) Draft() Draft {
	return Draft{
		Name:        r.Name,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Cuisine:     r.Cuisine,
	}
}

// Draft is a recipe's content prior to server-assigned identity.
type Draft struct {
	Name        string
	Ingredients string
	Steps       string
	Cuisine     string
}

// WithID attaches an identity to the draft.
func (d Draft) WithID(id string) Recipe {
	return Recipe{
		ID:          id,
		Name:        d.Name,
		Ingredients: d.Ingredients,
		Steps:       d.Steps,
		Cuisine:     d.Cuisine,
	}
}

// Get returns the value of a single field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldIngredients:
		return d.Ingredients
	case FieldSteps:
		return d.Steps
	case FieldCuisine:
		return d.Cuisine
	default:
		return ""
	}
}

// Set returns a copy of the draft with one field replaced.
func (d Draft) Set(f Field, v string) Draft {
	switch f {
	case FieldName:
		d.Name = v
	case FieldIngredients:
		d.Ingredients = v
	case FieldSteps:
		d.Steps = v
	case FieldCuisine:
		d.Cuisine = v
	}
	return d
}

// Validate reports every empty content field. The combined error matches
// ErrValidation.
func (d Draft) Validate() error {
	var err error
	for _, f := range Fields {
		if d.Get(f) == "" {
			err = multierr.Append(err, &FieldError{Field: f})
		}
	}
	return err
}

// FieldError names a required field left empty.
type FieldError struct {
	Field Field
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Is lets errors.Is match a FieldError against ErrValidation.
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// Field identifies one content field of a recipe.
type Field int

const (
	FieldName Field = iota
	FieldIngredients
	FieldSteps
	FieldCuisine
)

// Fields lists the content fields in form order.
var Fields = []Field{FieldName, FieldIngredients, FieldSteps, FieldCuisine}

// String returns the lower-case field name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldIngredients:
		return "ingredients"
	case FieldSteps:
		return "steps"
	case FieldCuisine:
		return "cuisine"
	default:
		return "unknown"
	}
}

// FieldFromString resolves a field name, case-insensitively.
func FieldFromString(name string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "name":
		return FieldName, true
	case "ingredients", "ingredient":
		return FieldIngredients, true
	case "steps", "step":
		return FieldSteps, true
	case "cuisine", "category":
		return FieldCuisine, true
	}
	return 0, false
}
