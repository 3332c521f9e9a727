// Package conversation provides command parsing and user notification
// for the terminal shell.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple
// patterns.
type KeywordParser struct {
	log      *logger.Logger
	exact    []patternRule
	prefixed []patternRule
	fieldRx  *regexp.Regexp
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.exact = []patternRule{
		{regexp.MustCompile(`(?i)^(list|ls|recipes|show|browse)$`), domain.IntentList},
		{regexp.MustCompile(`(?i)^(clear|reset)$`), domain.IntentSearch},
		{regexp.MustCompile(`(?i)^(categories|cats|cuisines)$`), domain.IntentCategories},
		{regexp.MustCompile(`(?i)^(add|new|add data|create)$`), domain.IntentAdd},
		{regexp.MustCompile(`(?i)^(favorites|favourites|favs)$`), domain.IntentShowFavorites},
		{regexp.MustCompile(`(?i)^(save|submit|update data)$`), domain.IntentSave},
		{regexp.MustCompile(`(?i)^(close|cancel|x)$`), domain.IntentClose},
		{regexp.MustCompile(`(?i)^(status|form|info)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit},
	}
	// Commands taking an argument; group 1 is the payload.
	p.prefixed = []patternRule{
		{regexp.MustCompile(`(?i)^(?:search|find|/)\s*:?\s*(.*)$`), domain.IntentSearch},
		{regexp.MustCompile(`(?i)^(?:category|cat|cuisine)\s+(.+)$`), domain.IntentCategory},
		{regexp.MustCompile(`(?i)^(?:edit|e)\s+(\S+)$`), domain.IntentEdit},
		{regexp.MustCompile(`(?i)^(?:delete|del|rm)\s+(\S+)$`), domain.IntentDelete},
		{regexp.MustCompile(`(?i)^(?:fav|favorite|favourite|heart|unfav)\s+(\S+)$`), domain.IntentFavorite},
	}
	// "set name Pad Thai" or "name: Pad Thai".
	p.fieldRx = regexp.MustCompile(`(?i)^(?:set\s+(\w+)(?:\s+|$)|(\w+)\s*:\s*)(.*)$`)
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.exact {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	if in, ok := p.parseField(trimmed); ok {
		return in, nil
	}

	for _, rule := range p.prefixed {
		if m := rule.regex.FindStringSubmatch(trimmed); m != nil {
			p.log.Debug("matched intent: %s (%q)", rule.intent, m[1])
			return &domain.Intent{Type: rule.intent, Payload: strings.TrimSpace(m[1])}, nil
		}
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// parseField recognises form edits. Unknown field names fall through so
// that e.g. "search: soup" is not mistaken for a field.
func (p *KeywordParser) parseField(s string) (*domain.Intent, bool) {
	m := p.fieldRx.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	name := m[1]
	if name == "" {
		name = m[2]
	}
	f, ok := domain.FieldFromString(name)
	if !ok {
		return nil, false
	}
	return &domain.Intent{
		Type:    domain.IntentSetField,
		Payload: f.String(),
		Value:   strings.TrimSpace(m[3]),
	}, true
}
