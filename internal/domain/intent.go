package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentList
	IntentSearch       // payload: query ("" clears)
	IntentCategories   // show the category picker
	IntentCategory     // payload: category name or "All"
	IntentAdd          // open the form in create mode
	IntentEdit         // payload: list reference
	IntentDelete       // payload: list reference
	IntentFavorite     // payload: list reference
	IntentShowFavorites
	IntentSetField // payload: field name; Value: new value
	IntentSave
	IntentClose
	IntentStatus
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentList:
		return "list"
	case IntentSearch:
		return "search"
	case IntentCategories:
		return "categories"
	case IntentCategory:
		return "category"
	case IntentAdd:
		return "add"
	case IntentEdit:
		return "edit"
	case IntentDelete:
		return "delete"
	case IntentFavorite:
		return "favorite"
	case IntentShowFavorites:
		return "show_favorites"
	case IntentSetField:
		return "set_field"
	case IntentSave:
		return "save"
	case IntentClose:
		return "close"
	case IntentStatus:
		return "status"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. the list reference for edit
	Value   string // field value for IntentSetField
}
