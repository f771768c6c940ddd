// Package conversation turns operator input into intents and validates
// numeric arguments at the boundary.
package conversation

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches console input to intents using a leading keyword.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(menu|list|recipes|ls)$`), domain.IntentMenu},
		{regexp.MustCompile(`(?i)^(add|new)$`), domain.IntentAddRecipe},
		{regexp.MustCompile(`(?i)^(edit|change|replace)$`), domain.IntentEditRecipe},
		{regexp.MustCompile(`(?i)^(delete|del|rm|remove)$`), domain.IntentDeleteRecipe},
		{regexp.MustCompile(`(?i)^(restock|refill|stock)$`), domain.IntentRestock},
		{regexp.MustCompile(`(?i)^(buy|make|purchase|order)$`), domain.IntentPurchase},
		{regexp.MustCompile(`(?i)^(inventory|inv|check)$`), domain.IntentInventory},
		{regexp.MustCompile(`(?i)^(sales|totals)$`), domain.IntentSales},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit},
	}
	return p
}

// Parse converts a console line into an intent. Arguments are passed
// through untouched; handlers validate them.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	fields := splitArgs(trimmed)
	if len(fields) == 0 {
		return &domain.Intent{Type: domain.IntentUnknown, Raw: trimmed}, nil
	}
	keyword, args := fields[0], fields[1:]

	// "<slot> <amount>" is shorthand for buy.
	if len(fields) == 2 && isDigits(fields[0]) {
		return &domain.Intent{Type: domain.IntentPurchase, Args: fields, Raw: trimmed}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(keyword) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent, Args: args, Raw: trimmed}, nil
		}
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Args: args, Raw: trimmed}, nil
}

// splitArgs splits on whitespace, keeping double-quoted runs together so
// names like "Hot Chocolate" stay one argument. An unclosed quote runs to
// the end of the line.
func splitArgs(s string) []string {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && unicode.IsSpace(r):
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, cur.String())
	}
	return args
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
