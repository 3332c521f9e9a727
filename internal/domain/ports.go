package domain

import "context"

// RecipeStore is the remote collection. Implementations map every failure
// onto a single opaque error; callers must not branch on the cause.
type RecipeStore interface {
	FetchAll(ctx context.Context) ([]Recipe, error)
	Create(ctx context.Context, draft Draft) (Recipe, error)
	Update(ctx context.Context, id string, draft Draft) (Recipe, error)
	Remove(ctx context.Context, id string) error
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
