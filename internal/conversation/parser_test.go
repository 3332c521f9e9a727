package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
		wantValue   string
	}{
		// Browsing
		{"list", domain.IntentList, "", ""},
		{"LS", domain.IntentList, "", ""},
		{"search soup", domain.IntentSearch, "soup", ""},
		{"/pie", domain.IntentSearch, "pie", ""},
		{"clear", domain.IntentSearch, "", ""},
		{"categories", domain.IntentCategories, "", ""},
		{"category Thai", domain.IntentCategory, "Thai", ""},
		{"cat All", domain.IntentCategory, "All", ""},
		{"category Middle Eastern", domain.IntentCategory, "Middle Eastern", ""},

		// Records
		{"add", domain.IntentAdd, "", ""},
		{"Add Data", domain.IntentAdd, "", ""},
		{"edit 2", domain.IntentEdit, "2", ""},
		{"delete 3", domain.IntentDelete, "3", ""},
		{"rm f1", domain.IntentDelete, "f1", ""},
		{"fav 1", domain.IntentFavorite, "1", ""},
		{"favorites", domain.IntentShowFavorites, "", ""},

		// Form
		{"set name Pad Thai", domain.IntentSetField, "name", "Pad Thai"},
		{"cuisine: Thai", domain.IntentSetField, "cuisine", "Thai"},
		{"Ingredients: rice, noodles", domain.IntentSetField, "ingredients", "rice, noodles"},
		{"set steps", domain.IntentSetField, "steps", ""},
		{"save", domain.IntentSave, "", ""},
		{"cancel", domain.IntentClose, "", ""},

		// Meta
		{"status", domain.IntentStatus, "", ""},
		{"?", domain.IntentHelp, "", ""},
		{"q", domain.IntentQuit, "", ""},

		// Unknown
		{"", domain.IntentUnknown, "", ""},
		{"make me a sandwich", domain.IntentUnknown, "make me a sandwich", ""},
		{"colour: red", domain.IntentUnknown, "colour: red", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Fatalf("input=%q: expected %s, got %s", tt.input, tt.wantType, intent.Type)
			}
			if intent.Payload != tt.wantPayload {
				t.Fatalf("input=%q: expected payload %q, got %q", tt.input, tt.wantPayload, intent.Payload)
			}
			if intent.Value != tt.wantValue {
				t.Fatalf("input=%q: expected value %q, got %q", tt.input, tt.wantValue, intent.Value)
			}
		})
	}
}
